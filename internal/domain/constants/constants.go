package constants

// Matching constants
const (
	// FuzzyThreshold is the minimum similarity score for a fuzzy catalog match.
	FuzzyThreshold = 0.6

	// ExactPrefixLength is how many leading characters of a catalog name the
	// query must contain for the reverse-containment exact tier.
	ExactPrefixLength = 20

	// MaxSearchResults caps how many candidates a search returns.
	MaxSearchResults = 5
)

// Extraction constants
const (
	// MaxMessageLength is the sanity bound above which a scraped row is
	// treated as UI chrome rather than a message.
	MaxMessageLength = 1000
)

// Price constants
const (
	// ContactUsPrice is returned when a catalog row carries no usable price.
	ContactUsPrice = "تماس بگیرید"
)

// AI Model constants
const (
	// GeminiModelName is the Gemini model used for reply generation.
	GeminiModelName = "gemini-2.5-flash"

	// AITemperature keeps replies close to the catalog facts.
	AITemperature = 0.3

	// AITopK Top-K sampling parameter
	AITopK = 20

	// AITopP Top-P sampling parameter
	AITopP = 0.9

	// MaxRetries is the max attempts for a Gemini request.
	MaxRetries = 3

	// RetryDelaySeconds is the pause between Gemini attempts.
	RetryDelaySeconds = 10
)

// Sync constants
const (
	// ThreadSettleMaxAttempts bounds how often the orchestrator re-reads a
	// thread that has not finished rendering.
	ThreadSettleMaxAttempts = 3

	// ThreadSettleDelaySeconds is the base wait between settle attempts.
	ThreadSettleDelaySeconds = 2

	// DefaultSyncIntervalMinutes is how often a full inbox sync runs.
	DefaultSyncIntervalMinutes = 15
)

// Dashboard constants
const (
	// LogRingCapacity bounds the in-memory log buffer replayed to new
	// dashboard stream subscribers.
	LogRingCapacity = 200
)
