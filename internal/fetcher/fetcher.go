// Package fetcher drives the job-fetch run: per-firm provider passes, the
// broad aggregator pass with firm matching, and the final merge into each
// firm's job list.
package fetcher

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/archfeed/archfeed/internal/adapter"
	"github.com/archfeed/archfeed/internal/batch"
	"github.com/archfeed/archfeed/internal/config"
	"github.com/archfeed/archfeed/internal/match"
	"github.com/archfeed/archfeed/internal/model"
)

// JobSource fetches all postings behind one provider slug.
type JobSource interface {
	FetchJobs(ctx context.Context, slug string) ([]model.Job, error)
}

// AggregatorSource runs the broad free-text discovery pass.
type AggregatorSource interface {
	Enabled() bool
	Search(ctx context.Context, queries []string) []adapter.AggregatorResult
}

// Driver owns one fetch run. Job lists are fully replaced per run; a
// firm's list is only ever touched by its own work item or, after the
// concurrent passes finished, by the sequential aggregator merge.
type Driver struct {
	greenhouse JobSource
	lever      JobSource
	aggregator AggregatorSource
	queries    []string
	batch      config.BatchConfig
	logger     *slog.Logger
}

func New(greenhouse, lever JobSource, aggregator AggregatorSource, queries []string, batchCfg config.BatchConfig, logger *slog.Logger) *Driver {
	return &Driver{
		greenhouse: greenhouse,
		lever:      lever,
		aggregator: aggregator,
		queries:    queries,
		batch:      batchCfg,
		logger:     logger,
	}
}

// Run executes the three passes and returns the run summary plus the
// unmatched discoveries. Firms are mutated in place; only fatal errors
// (context cancellation) abort the run.
func (d *Driver) Run(ctx context.Context, firms []*model.Firm) (model.RunSummary, []model.Discovery, error) {
	start := time.Now()

	// Full replacement: no job survives from a previous run.
	for _, f := range firms {
		f.Jobs = nil
	}

	ghJobs, err := d.providerPass(ctx, "greenhouse", d.greenhouse, firms, func(f *model.Firm) string {
		return f.GreenhouseSlug
	})
	if err != nil {
		return model.RunSummary{}, nil, err
	}

	lvJobs, err := d.providerPass(ctx, "lever", d.lever, firms, func(f *model.Firm) string {
		return f.LeverSlug
	})
	if err != nil {
		return model.RunSummary{}, nil, err
	}

	aggJobs, discoveries := d.aggregatorPass(ctx, firms)

	return model.RunSummary{
		Task:           "fetch",
		Firms:          len(firms),
		GreenhouseJobs: ghJobs,
		LeverJobs:      lvJobs,
		AggregatorJobs: aggJobs,
		Discoveries:    len(discoveries),
		Duration:       time.Since(start),
	}, discoveries, nil
}

// providerPass fetches postings for every firm carrying the provider's
// slug, in bounded concurrent batches. Per-firm failures are absorbed as
// zero jobs.
func (d *Driver) providerPass(ctx context.Context, name string, src JobSource, firms []*model.Firm, slugOf func(*model.Firm) string) (int, error) {
	var withSlug []*model.Firm
	for _, f := range firms {
		if slugOf(f) != "" {
			withSlug = append(withSlug, f)
		}
	}

	var total atomic.Int64
	err := batch.Run(ctx, withSlug, d.batch.Size, d.batch.Delay, func(ctx context.Context, f *model.Firm) error {
		jobs, err := src.FetchJobs(ctx, slugOf(f))
		if err != nil {
			d.logger.Debug("provider fetch failed", "provider", name, "firm", f.Name, "error", err)
			return nil
		}
		f.Jobs = append(f.Jobs, jobs...)
		total.Add(int64(len(jobs)))
		return nil
	})
	if err != nil {
		return 0, err
	}

	d.logger.Info("provider pass complete", "provider", name, "firms", len(withSlug), "jobs", total.Load())
	return int(total.Load()), nil
}

// aggregatorPass matches broad search results against the firm index.
// Matched jobs merge into the firm's list unless a job of identical title
// is already there; misses become discoveries, deduplicated within the
// run by (employer, title).
func (d *Driver) aggregatorPass(ctx context.Context, firms []*model.Firm) (int, []model.Discovery) {
	if !d.aggregator.Enabled() {
		d.logger.Info("aggregator pass disabled, no API key configured")
		return 0, nil
	}

	results := d.aggregator.Search(ctx, d.queries)
	ix := match.NewIndex(firms)

	merged := 0
	var discoveries []model.Discovery
	seen := make(map[string]bool)

	for _, r := range results {
		firm, ok := ix.Lookup(r.Employer)
		if !ok {
			key := match.Key(r.Employer) + "\x00" + strings.ToLower(r.Job.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			discoveries = append(discoveries, model.Discovery{
				Employer: r.Employer,
				Title:    r.Job.Title,
				Location: r.Location,
				Salary:   r.Job.Salary,
				Posted:   r.Job.Posted,
				URL:      r.Job.URL,
			})
			continue
		}

		if hasTitle(firm.Jobs, r.Job.Title) {
			continue
		}
		firm.Jobs = append(firm.Jobs, r.Job)
		merged++
	}

	d.logger.Info("aggregator pass complete",
		"results", len(results),
		"merged", merged,
		"discoveries", len(discoveries),
	)
	return merged, discoveries
}

func hasTitle(jobs []model.Job, title string) bool {
	for _, j := range jobs {
		if j.Title == title {
			return true
		}
	}
	return false
}
