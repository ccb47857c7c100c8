package repository

import (
	"context"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// ProductRepository is the in-memory catalog index. The catalog is replaced
// wholesale on load and read-only afterwards, so Search and FindBySlug are
// safe for any number of concurrent callers.
type ProductRepository interface {
	// LoadCatalog replaces the whole index with the given products and slug
	// records. Normalized names are computed here, once per load.
	LoadCatalog(ctx context.Context, products []entity.Product, slugs []entity.SlugRecord) error

	// Search returns up to five candidates for a free-text product mention,
	// best first. It never fails on absence: when nothing clears the
	// thresholds the result carries the homepage sentinel URL.
	Search(ctx context.Context, query string) (entity.MatchResult, error)

	// FindBySlug resolves a product title to its canonical URL, falling back
	// to the homepage sentinel.
	FindBySlug(ctx context.Context, name string) string

	// GetAll returns every loaded product.
	GetAll(ctx context.Context) ([]entity.Product, error)
}
