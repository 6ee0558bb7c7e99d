// Package ratelimit paces outbound requests per target host. The aggregator
// pass uses it to keep a fixed gap between its free-text queries.
package ratelimit

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostLimiter holds one token-bucket limiter per hostname. With burst 1 and
// a rate of one event per configured gap, consecutive requests to the same
// host are spaced by exactly that gap.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewHostLimiter returns a limiter enforcing minGap between consecutive
// requests to the same host. A non-positive gap disables limiting.
func NewHostLimiter(minGap time.Duration) *HostLimiter {
	limit := rate.Inf
	if minGap > 0 {
		limit = rate.Every(minGap)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    1,
	}
}

func (h *HostLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lim, ok := h.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(h.limit, h.burst)
	h.limiters[host] = lim
	return lim
}

// Wait blocks until a request to host may proceed, or ctx is cancelled.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.limiterFor(host).Wait(ctx)
}

// WaitURL is Wait keyed by the URL's hostname. Unparseable URLs share a
// single fallback bucket.
func (h *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return h.Wait(ctx, "_")
	}
	return h.Wait(ctx, u.Host)
}
