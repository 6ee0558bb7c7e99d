// Package probe answers one question per (slug, provider) pair: does this
// slug resolve to a live job board? A hit requires HTTP 200 and the
// provider's expected body shape; everything else is a miss. Misses are
// final within a run — there are no retries.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"
	leverBaseURL      = "https://api.lever.co/v0/postings"
)

// Status classifies a probe outcome. NotFound and TransportError lead to
// the same downstream action, but the distinction is kept so "confirmed
// absent" and "could not determine" stay separable.
type Status int

const (
	StatusHit Status = iota
	StatusNotFound
	StatusTransportError
)

// Result is the tagged outcome of a single probe.
type Result struct {
	Status Status
	Err    error // underlying cause for TransportError, nil otherwise
}

// Found reports whether the probe confirmed a live board.
func (r Result) Found() bool { return r.Status == StatusHit }

// Prober checks a single slug against one provider.
type Prober interface {
	Name() string
	Check(ctx context.Context, slug string) Result
}

// Greenhouse probes the public Greenhouse boards API. A board exists when
// the response is an object carrying a "jobs" array.
type Greenhouse struct {
	baseURL string
	client  *http.Client
}

func NewGreenhouse(client *http.Client) *Greenhouse {
	return &Greenhouse{baseURL: greenhouseBaseURL, client: client}
}

func (g *Greenhouse) Name() string { return "greenhouse" }

func (g *Greenhouse) Check(ctx context.Context, slug string) Result {
	var body struct {
		Jobs *[]json.RawMessage `json:"jobs"`
	}
	res := get(ctx, g.client, fmt.Sprintf("%s/%s/jobs", g.baseURL, slug), &body)
	if res.Status == StatusHit && body.Jobs == nil {
		return Result{Status: StatusNotFound}
	}
	return res
}

// Lever probes the public Lever postings API. A board exists when the
// response is a top-level JSON array.
type Lever struct {
	baseURL string
	client  *http.Client
}

func NewLever(client *http.Client) *Lever {
	return &Lever{baseURL: leverBaseURL, client: client}
}

func (l *Lever) Name() string { return "lever" }

func (l *Lever) Check(ctx context.Context, slug string) Result {
	var body []json.RawMessage
	return get(ctx, l.client, fmt.Sprintf("%s/%s?mode=json", l.baseURL, slug), &body)
}

// get issues the GET and classifies the response. Non-200 statuses and
// decode failures are NotFound; only failures below HTTP are
// TransportError.
func get(ctx context.Context, client *http.Client, url string, into any) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Status: StatusTransportError, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Status: StatusTransportError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Status: StatusNotFound}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return Result{Status: StatusNotFound}
	}
	return Result{Status: StatusHit}
}
