package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/archfeed/archfeed/internal/model"
	"github.com/archfeed/archfeed/internal/ratelimit"
)

// AggregatorResult is a normalized aggregator hit, not yet attached to a
// firm. Employer is matched downstream against the firm index.
type AggregatorResult struct {
	Employer string
	Location string
	Job      model.Job
}

// Aggregator queries a free-text job-search API (JSearch-shaped: /search
// endpoint, credential header, "data" array response) for broad discovery
// beyond the per-firm boards.
type Aggregator struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *ratelimit.HostLimiter
	now     func() time.Time
}

// NewAggregator creates the aggregator client. The limiter spaces the
// serialized queries; an empty apiKey disables the pass (Enabled).
func NewAggregator(baseURL, apiKey string, client *http.Client, limiter *ratelimit.HostLimiter) *Aggregator {
	return &Aggregator{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		limiter: limiter,
		now:     time.Now,
	}
}

// Enabled reports whether an API credential is configured. A missing key is
// a deliberate feature-disable, not an error.
func (a *Aggregator) Enabled() bool { return a.apiKey != "" }

// Search runs every query in order, paced by the limiter, and accumulates
// normalized results. Per-query failures of any kind yield zero results for
// that query and never abort the rest.
func (a *Aggregator) Search(ctx context.Context, queries []string) []AggregatorResult {
	var out []AggregatorResult
	for _, q := range queries {
		if ctx.Err() != nil {
			return out
		}
		if err := a.limiter.WaitURL(ctx, a.baseURL); err != nil {
			return out
		}
		out = append(out, a.searchOne(ctx, q)...)
	}
	return out
}

type aggregatorJob struct {
	EmployerName      string  `json:"employer_name"`
	JobTitle          string  `json:"job_title"`
	JobEmploymentType string  `json:"job_employment_type"`
	JobApplyLink      string  `json:"job_apply_link"`
	JobCity           string  `json:"job_city"`
	JobState          string  `json:"job_state"`
	JobMinSalary      float64 `json:"job_min_salary"`
	JobMaxSalary      float64 `json:"job_max_salary"`
	JobPostedAt       string  `json:"job_posted_at_datetime_utc"`
}

type aggregatorResponse struct {
	Data []aggregatorJob `json:"data"`
}

func (a *Aggregator) searchOne(ctx context.Context, query string) []AggregatorResult {
	reqURL := fmt.Sprintf("%s/search?query=%s&num_pages=1", a.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("X-RapidAPI-Key", a.apiKey)
	if u, err := url.Parse(a.baseURL); err == nil {
		req.Header.Set("X-RapidAPI-Host", u.Host)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var body aggregatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}

	now := a.now()
	out := make([]AggregatorResult, 0, len(body.Data))
	for _, j := range body.Data {
		if j.EmployerName == "" || j.JobTitle == "" {
			continue
		}

		posted := ""
		if j.JobPostedAt != "" {
			if t, err := time.Parse(time.RFC3339, j.JobPostedAt); err == nil {
				posted = relativeTime(t, now)
			}
		}

		out = append(out, AggregatorResult{
			Employer: j.EmployerName,
			Location: joinLocation(j.JobCity, j.JobState),
			Job: model.Job{
				Title:  j.JobTitle,
				Type:   mapEmploymentType(j.JobEmploymentType),
				Salary: formatSalary(j.JobMinSalary, j.JobMaxSalary),
				Posted: posted,
				URL:    j.JobApplyLink,
			},
		})
	}
	return out
}

func joinLocation(city, state string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, state} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
