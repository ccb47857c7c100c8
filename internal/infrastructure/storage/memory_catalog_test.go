package storage

import (
	"context"
	"testing"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

const testHomeURL = "https://shop.example.com"

func loadedRepo(t *testing.T) *memoryProductRepository {
	t.Helper()
	repo := NewMemoryProductRepository(testHomeURL).(*memoryProductRepository)
	products := []entity.Product{
		{ID: "1", Name: "خمیر دندان میسویک", Brand: entity.BrandMisswake, Price: "95000"},
		{ID: "2", Name: "کرم آبرسان کلامین", Brand: entity.BrandCollamin, Price: "250000"},
		{ID: "3", Name: "ضد آفتاب آمبرلا SPF50", Brand: entity.BrandUmbrella, Price: "310000"},
	}
	slugs := []entity.SlugRecord{
		{Title: "خمیر دندان میسویک", URL: "https://shop.example.com/products/misswake-toothpaste"},
		{Title: "کرم آبرسان کلامین", URL: "https://shop.example.com/products/collamin-cream"},
		{Title: "ضد آفتاب آمبرلا SPF50", URL: "https://shop.example.com/products/umbrella-spf50"},
	}
	if err := repo.LoadCatalog(context.Background(), products, slugs); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return repo
}

func TestSearchExactTier(t *testing.T) {
	repo := loadedRepo(t)

	// Substring containment fires before any fuzzy fallback.
	result, err := repo.Search(context.Background(), "میسویک")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Confidence != entity.ConfidenceExact {
		t.Errorf("confidence = %s, want exact", result.Confidence)
	}
	if len(result.Products) == 0 {
		t.Fatal("no products returned")
	}
	if result.Products[0].Brand != entity.BrandMisswake {
		t.Errorf("brand = %s, want Misswake", result.Products[0].Brand)
	}
	if result.URL == testHomeURL || result.URL == "" {
		t.Errorf("exact match must carry a product URL, got %q", result.URL)
	}
}

func TestSearchExactTierArabicVariantQuery(t *testing.T) {
	repo := loadedRepo(t)

	// Same query typed with Arabic yeh codepoints still matches.
	result, err := repo.Search(context.Background(), "ميسويک")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Confidence != entity.ConfidenceExact {
		t.Errorf("confidence = %s, want exact after normalization", result.Confidence)
	}
}

func TestSearchFuzzyTier(t *testing.T) {
	repo := loadedRepo(t)

	// One dropped letter: no containment, similarity still above threshold.
	result, err := repo.Search(context.Background(), "خمیر دندان میسیک")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Confidence != entity.ConfidenceFuzzy {
		t.Fatalf("confidence = %s, want fuzzy", result.Confidence)
	}
	if result.Products[0].ID != "1" {
		t.Errorf("top fuzzy candidate = %s, want product 1", result.Products[0].ID)
	}
}

func TestSearchNoMatchReturnsHomepageSentinel(t *testing.T) {
	repo := loadedRepo(t)

	result, err := repo.Search(context.Background(), "bluetooth headphones")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Confidence != entity.ConfidenceNone {
		t.Errorf("confidence = %s, want none", result.Confidence)
	}
	if result.URL != testHomeURL {
		t.Errorf("URL = %q, want homepage sentinel", result.URL)
	}
	if len(result.Products) != 0 {
		t.Errorf("sentinel result should carry no products, got %d", len(result.Products))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	repo := loadedRepo(t)
	result, err := repo.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Confidence != entity.ConfidenceNone || result.URL != testHomeURL {
		t.Errorf("blank query should yield the sentinel, got %+v", result)
	}
}

func TestMatchesExactPrefixRule(t *testing.T) {
	name := "ضد آفتاب آمبرلا spf50 حجم 50 میل مدل بژ روشن"
	runes := []rune(name)
	query := "سلام این " + string(runes[:constants.ExactPrefixLength]) + " رو دارید؟"
	if !matchesExact(name, query) {
		t.Error("query containing the name's 20-char prefix should qualify")
	}
	if matchesExact(name, "چیز دیگر") {
		t.Error("unrelated query must not qualify")
	}
}

func TestFindBySlug(t *testing.T) {
	repo := loadedRepo(t)

	url := repo.FindBySlug(context.Background(), "کرم آبرسان کلامین")
	if url != "https://shop.example.com/products/collamin-cream" {
		t.Errorf("FindBySlug = %q", url)
	}
	if url := repo.FindBySlug(context.Background(), "قهوه ترک"); url != testHomeURL {
		t.Errorf("unknown slug should fall back to homepage, got %q", url)
	}
}

func TestLoadCatalogResolvesProductURLs(t *testing.T) {
	repo := loadedRepo(t)
	products, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range products {
		if p.ProductURL == "" {
			t.Errorf("product %s has no resolved URL", p.ID)
		}
	}
}

func TestDetectBrand(t *testing.T) {
	cases := []struct {
		text string
		want entity.Brand
	}{
		{"یه خمیر دندان میسویک میخوام", entity.BrandMisswake},
		{"misswake toothpaste", entity.BrandMisswake},
		{"کرم کلامین دارید؟", entity.BrandCollamin},
		{"ضد آفتاب آمبرلا", entity.BrandUmbrella},
		{"نوار بهداشتی دافی", entity.BrandDafi},
		{"سلام خوبید؟", entity.BrandOther},
		{"", entity.BrandOther},
	}
	for _, tc := range cases {
		if got := entity.DetectBrand(tc.text); got != tc.want {
			t.Errorf("DetectBrand(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}
