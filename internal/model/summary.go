package model

import "time"

// RunSummary is the end-of-run report for either batch job.
type RunSummary struct {
	Task  string // "discover" or "fetch"
	Firms int

	// Discovery counts.
	GreenhouseMatches int
	LeverMatches      int
	Assumed           int // no provider hit; first candidate recorded anyway

	// Fetch counts.
	GreenhouseJobs int
	LeverJobs      int
	AggregatorJobs int
	Discoveries    int
	OutputBytes    int

	Duration time.Duration
}

// Notifier reports a completed run somewhere (log, Slack).
type Notifier interface {
	Notify(summary RunSummary) error
}

// ReviewStore tracks which discoveries have been dismissed during manual
// review, so they stay hidden across fetch runs that rewrite the
// discoveries file.
type ReviewStore interface {
	IsDismissed(key string) (bool, error)
	Dismiss(key string) error
	Close() error
}
