package entity

import (
	"strings"

	"github.com/yourusername/instagram-ai-bot/pkg/farsi"
)

// Brand identifies the affiliate brand a product belongs to.
type Brand string

const (
	BrandMisswake Brand = "Misswake"
	BrandCollamin Brand = "Collamin"
	BrandUmbrella Brand = "Umbrella"
	BrandDafi     Brand = "Dafi"
	BrandIceBall  Brand = "IceBall"
	BrandCodex    Brand = "Codex"
	BrandOther    Brand = "Other"
)

// Label returns the Persian display name used in replies.
func (b Brand) Label() string {
	switch b {
	case BrandMisswake:
		return "میسویک"
	case BrandCollamin:
		return "کلامین"
	case BrandUmbrella:
		return "آمبرلا"
	case BrandDafi:
		return "دافی"
	case BrandIceBall:
		return "آیس بال"
	case BrandCodex:
		return "کدکس"
	default:
		return "سایر"
	}
}

// brandKeyword pairs a brand with the substrings that identify it. The slice
// is ordered; detection takes the first brand with any matching keyword.
type brandKeyword struct {
	Brand    Brand
	Keywords []string
}

// BrandKeywords is the ordered detection table shared by catalog loading and
// free-text brand extraction. Keywords are matched against normalized text, so
// they are listed in their normalized form.
var BrandKeywords = []brandKeyword{
	{BrandMisswake, []string{"میسویک", "misswake"}},
	{BrandCollamin, []string{"کلامین", "collamin"}},
	{BrandUmbrella, []string{"آمبرلا", "امبرلا", "umbrella"}},
	{BrandDafi, []string{"دافی", "dafi"}},
	{BrandIceBall, []string{"آیس بال", "ایس بال", "iceball", "ice ball"}},
	{BrandCodex, []string{"کدکس", "codex"}},
}

// DetectBrand returns the first brand whose keywords appear in text, walking
// the table in order. Unrecognized text maps to BrandOther. The same table
// drives catalog loading, so a product row and a free-text mention of the
// same brand always agree.
func DetectBrand(text string) Brand {
	normalized := farsi.Normalize(text)
	if normalized == "" {
		return BrandOther
	}
	for _, entry := range BrandKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(normalized, kw) {
				return entry.Brand
			}
		}
	}
	return BrandOther
}
