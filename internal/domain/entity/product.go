package entity

// Product is one catalog entry loaded from a shop export. Entries are
// immutable after load; the catalog is rebuilt wholesale, never patched.
type Product struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"-"`
	Brand          Brand  `json:"brand"`
	Price          string `json:"price"`
	Categories     string `json:"categories"`
	ImageURL       string `json:"image_url,omitempty"`
	ProductURL     string `json:"product_url"`
}

// SlugRecord maps a product title to its canonical shop URL. Loaded from the
// slug export and used only for URL resolution.
type SlugRecord struct {
	Title           string `json:"title"`
	NormalizedTitle string `json:"-"`
	URL             string `json:"url"`
}

// Confidence describes how a search candidate was matched.
type Confidence string

const (
	// ConfidenceExact means the query and catalog name matched by containment.
	ConfidenceExact Confidence = "exact"
	// ConfidenceFuzzy means the match came from similarity scoring only.
	// Callers should hedge wording when presenting fuzzy results.
	ConfidenceFuzzy Confidence = "fuzzy"
	// ConfidenceNone means nothing cleared the threshold; the result carries
	// the shop homepage as a sentinel URL.
	ConfidenceNone Confidence = "none"
)

// MatchResult is the outcome of a product search. Products holds up to five
// candidates, best first. URL is always usable: either the top candidate's
// resolved product URL or the homepage sentinel.
type MatchResult struct {
	Products   []Product  `json:"products"`
	Confidence Confidence `json:"confidence"`
	URL        string     `json:"url"`
}
