package notifier

import (
	"log/slog"

	"github.com/archfeed/archfeed/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes run summaries to the given logger as structured
// messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each run summary via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the summary. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(s model.RunSummary) error {
	args := []any{"task", s.Task, "firms", s.Firms, "duration", s.Duration.Round(1e6)}
	switch s.Task {
	case "discover":
		args = append(args,
			"greenhouse_matches", s.GreenhouseMatches,
			"lever_matches", s.LeverMatches,
			"assumed", s.Assumed,
		)
	case "fetch":
		args = append(args,
			"greenhouse_jobs", s.GreenhouseJobs,
			"lever_jobs", s.LeverJobs,
			"aggregator_jobs", s.AggregatorJobs,
			"discoveries", s.Discoveries,
			"output_bytes", s.OutputBytes,
		)
	}
	n.logger.Info("run complete", args...)
	return nil
}
