// Package farsi canonicalizes Persian text for comparison and scores string
// similarity. Shop exports and scraped messages mix Arabic and Persian
// codepoints for visually identical letters, so every comparison in the bot
// goes through Normalize first.
package farsi

import "strings"

var arabicReplacer = strings.NewReplacer(
	// Arabic kaf -> Persian kaf
	"ك", "ک",
	// Arabic yeh and alef maksura -> Persian yeh
	"ي", "ی",
	"ى", "ی",
	// hamza-bearing alef forms -> bare alef
	"أ", "ا",
	"إ", "ا",
	"ٱ", "ا",
	// teh marbuta -> heh
	"ة", "ه",
)

// Normalize maps Arabic presentation variants to their Persian equivalents,
// lowercases, and trims. It is idempotent: Normalize(Normalize(s)) == Normalize(s).
// Empty input yields the empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = arabicReplacer.Replace(text)
	return strings.TrimSpace(strings.ToLower(text))
}
