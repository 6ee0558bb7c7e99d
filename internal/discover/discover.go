// Package discover drives slug discovery: candidate generation, provider
// probing, and persistence of the annotated firm list.
package discover

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/archfeed/archfeed/internal/batch"
	"github.com/archfeed/archfeed/internal/config"
	"github.com/archfeed/archfeed/internal/model"
	"github.com/archfeed/archfeed/internal/probe"
	"github.com/archfeed/archfeed/internal/slug"
)

// Driver probes slug candidates for every firm in the database. Each firm's
// record is only ever touched by its own work item, so no locking is needed
// around firm mutation.
type Driver struct {
	greenhouse probe.Prober
	lever      probe.Prober
	batch      config.BatchConfig
	logger     *slog.Logger
}

func New(greenhouse, lever probe.Prober, batchCfg config.BatchConfig, logger *slog.Logger) *Driver {
	return &Driver{
		greenhouse: greenhouse,
		lever:      lever,
		batch:      batchCfg,
		logger:     logger,
	}
}

// Run probes all firms in bounded concurrent batches and annotates them in
// place. The returned summary counts slug state after the run.
func (d *Driver) Run(ctx context.Context, firms []*model.Firm) (model.RunSummary, error) {
	start := time.Now()
	var greenhouseMatches, leverMatches, assumed atomic.Int32

	err := batch.Run(ctx, firms, d.batch.Size, d.batch.Delay, func(ctx context.Context, f *model.Firm) error {
		wasAssumed := d.discoverFirm(ctx, f)
		if wasAssumed {
			assumed.Add(1)
		}
		if f.GreenhouseSlug != "" && !wasAssumed {
			greenhouseMatches.Add(1)
		}
		if f.LeverSlug != "" {
			leverMatches.Add(1)
		}
		return nil
	})
	if err != nil {
		return model.RunSummary{}, err
	}

	return model.RunSummary{
		Task:              "discover",
		Firms:             len(firms),
		GreenhouseMatches: int(greenhouseMatches.Load()),
		LeverMatches:      int(leverMatches.Load()),
		Assumed:           int(assumed.Load()),
		Duration:          time.Since(start),
	}, nil
}

// discoverFirm probes candidates in preference order, short-circuiting each
// provider independently and stopping once both have hit. Providers with a
// pre-existing slug are left alone. Reports whether the unverified-fallback
// path was taken.
func (d *Driver) discoverFirm(ctx context.Context, f *model.Firm) bool {
	if f.GreenhouseSlug != "" && f.LeverSlug != "" {
		return false
	}

	cands := slug.Candidates(*f)
	if len(cands) == 0 {
		d.logger.Debug("no slug candidates", "firm", f.Name)
		return false
	}

	for _, c := range cands {
		if ctx.Err() != nil {
			return false
		}
		if f.GreenhouseSlug == "" && d.greenhouse.Check(ctx, c).Found() {
			f.GreenhouseSlug = c
			d.logger.Debug("greenhouse slug found", "firm", f.Name, "slug", c)
		}
		if f.LeverSlug == "" && d.lever.Check(ctx, c).Found() {
			f.LeverSlug = c
			d.logger.Debug("lever slug found", "firm", f.Name, "slug", c)
		}
		if f.GreenhouseSlug != "" && f.LeverSlug != "" {
			break
		}
	}

	if f.GreenhouseSlug == "" && f.LeverSlug == "" {
		// Deliberate quirk: record the best-heuristic candidate even though
		// no provider confirmed it, so it surfaces for manual correction.
		// Consumers cannot tell it apart from a verified slug.
		f.GreenhouseSlug = cands[0]
		d.logger.Debug("no provider hit, recording first candidate", "firm", f.Name, "slug", cands[0])
		return true
	}
	return false
}
