package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
	"github.com/yourusername/instagram-ai-bot/pkg/farsi"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []entity.Product
	slugs    []entity.SlugRecord
	homeURL  string
}

// NewMemoryProductRepository creates the in-memory catalog index. homeURL is
// the shop homepage used as the no-confident-match sentinel.
func NewMemoryProductRepository(homeURL string) repository.ProductRepository {
	return &memoryProductRepository{homeURL: homeURL}
}

// LoadCatalog replaces the whole index. Normalized names and product URLs are
// computed once here, not per query.
func (m *memoryProductRepository) LoadCatalog(ctx context.Context, products []entity.Product, slugs []entity.SlugRecord) error {
	normalizedSlugs := make([]entity.SlugRecord, len(slugs))
	for i, s := range slugs {
		s.NormalizedTitle = farsi.Normalize(s.Title)
		normalizedSlugs[i] = s
	}

	indexed := make([]entity.Product, len(products))
	for i, p := range products {
		p.NormalizedName = farsi.Normalize(p.Name)
		if p.ProductURL == "" {
			p.ProductURL = lookupSlug(normalizedSlugs, p.NormalizedName, m.homeURL)
		}
		indexed[i] = p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = indexed
	m.slugs = normalizedSlugs
	return nil
}

// Search implements the two-tier match: exact containment first, then
// similarity scoring, then the homepage sentinel. Absence of a match is a
// normal terminal state, never an error.
func (m *memoryProductRepository) Search(ctx context.Context, query string) (entity.MatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sentinel := entity.MatchResult{Confidence: entity.ConfidenceNone, URL: m.homeURL}

	normalizedQuery := farsi.Normalize(query)
	if normalizedQuery == "" {
		return sentinel, nil
	}

	// Exact tier: catalog order, first qualifying entry wins the URL slot.
	var exact []entity.Product
	for _, p := range m.products {
		if matchesExact(p.NormalizedName, normalizedQuery) {
			exact = append(exact, p)
			if len(exact) == constants.MaxSearchResults {
				break
			}
		}
	}
	if len(exact) > 0 {
		return entity.MatchResult{
			Products:   exact,
			Confidence: entity.ConfidenceExact,
			URL:        exact[0].ProductURL,
		}, nil
	}

	// Fuzzy tier: rank everything above the threshold.
	type scored struct {
		product entity.Product
		score   float64
	}
	var candidates []scored
	for _, p := range m.products {
		score := farsi.Similarity(normalizedQuery, p.NormalizedName)
		if score >= constants.FuzzyThreshold {
			candidates = append(candidates, scored{product: p, score: score})
		}
	}
	if len(candidates) == 0 {
		return sentinel, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > constants.MaxSearchResults {
		candidates = candidates[:constants.MaxSearchResults]
	}
	products := make([]entity.Product, len(candidates))
	for i, c := range candidates {
		products[i] = c.product
	}
	return entity.MatchResult{
		Products:   products,
		Confidence: entity.ConfidenceFuzzy,
		URL:        products[0].ProductURL,
	}, nil
}

// matchesExact reports whether the catalog name and query qualify for the
// exact tier: the name contains the query, or the query contains the name's
// leading ExactPrefixLength characters (the whole name when shorter).
func matchesExact(normalizedName, normalizedQuery string) bool {
	if normalizedName == "" {
		return false
	}
	if strings.Contains(normalizedName, normalizedQuery) {
		return true
	}
	prefix := normalizedName
	if runes := []rune(normalizedName); len(runes) > constants.ExactPrefixLength {
		prefix = string(runes[:constants.ExactPrefixLength])
	}
	return strings.Contains(normalizedQuery, prefix)
}

// FindBySlug resolves a product title against the slug export.
func (m *memoryProductRepository) FindBySlug(ctx context.Context, name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lookupSlug(m.slugs, farsi.Normalize(name), m.homeURL)
}

// lookupSlug applies the same two-tier policy as Search over slug titles.
func lookupSlug(slugs []entity.SlugRecord, normalizedName, homeURL string) string {
	if normalizedName == "" {
		return homeURL
	}
	for _, s := range slugs {
		if matchesExact(s.NormalizedTitle, normalizedName) {
			return s.URL
		}
	}
	bestURL := homeURL
	bestScore := 0.0
	for _, s := range slugs {
		score := farsi.Similarity(normalizedName, s.NormalizedTitle)
		if score >= constants.FuzzyThreshold && score > bestScore {
			bestScore = score
			bestURL = s.URL
		}
	}
	return bestURL
}

// GetAll returns every loaded product.
func (m *memoryProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}
