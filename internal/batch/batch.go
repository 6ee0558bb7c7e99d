// Package batch runs work items in fixed-size concurrent groups with a
// fixed pause between groups. This bounds outstanding requests to the group
// size and throttles aggregate request rate against third-party APIs.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run processes items in groups of size. All items of a group run
// concurrently; the next group starts only after the whole group finished
// and delay elapsed. fn is expected to absorb its own per-item failures —
// an error returned from fn, or context cancellation, aborts the remaining
// groups and is returned.
func Run[T any](ctx context.Context, items []T, size int, delay time.Duration, fn func(ctx context.Context, item T) error) error {
	if size < 1 {
		size = 1
	}

	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, item := range items[start:end] {
			g.Go(func() error {
				return fn(gctx, item)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if end < len(items) && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil
}
