package entity

// ThreadState tracks one conversation thread through a sync run.
type ThreadState string

const (
	ThreadPending    ThreadState = "pending"
	ThreadProcessing ThreadState = "processing"
	ThreadSynced     ThreadState = "synced"
	ThreadSkipped    ThreadState = "skipped"
)

// Thread is one inbox conversation as enumerated by the browsing session.
// UsernameHint is whatever the inbox list showed for the counterparty; the
// extractor prefers what it finds inside the opened thread.
type Thread struct {
	URL          string `json:"url"`
	UsernameHint string `json:"username_hint"`
}

// SkipReason records why a thread was left out of a sync run.
type SkipReason struct {
	Thread string `json:"thread"`
	Reason string `json:"reason"`
}

// SyncReport summarizes a completed sync run. Every enumerated thread is
// accounted for either in Processed or in Skipped.
type SyncReport struct {
	Processed   int          `json:"processed"`
	Skipped     int          `json:"skipped"`
	SkipReasons []SkipReason `json:"skip_reasons,omitempty"`
	DurationMs  int64        `json:"duration_ms"`
}

// BotStatus is the dashboard-facing snapshot of the bot.
type BotStatus struct {
	Paused      bool       `json:"paused"`
	TotalRuns   int        `json:"total_runs"`
	RepliesSent int        `json:"replies_sent"`
	LastRunMs   int64      `json:"last_run_ms"`
	LastReport  SyncReport `json:"last_report"`
	LastError   string     `json:"last_error,omitempty"`
}
