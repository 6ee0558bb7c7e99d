package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/archfeed/archfeed/internal/model"
	"github.com/archfeed/archfeed/internal/ratelimit"
)

func aggregatorForServer(srv *httptest.Server, apiKey string) *Aggregator {
	a := NewAggregator(srv.URL, apiKey, srv.Client(), ratelimit.NewHostLimiter(0))
	a.now = func() time.Time { return testNow }
	return a
}

func TestAggregator_Search(t *testing.T) {
	payload := `{
		"data": [
			{
				"employer_name": "Foo & Bar Architects",
				"job_title": "Architectural Designer",
				"job_employment_type": "FULLTIME",
				"job_apply_link": "https://example.com/apply/1",
				"job_city": "Chicago",
				"job_state": "IL",
				"job_min_salary": 65000,
				"job_max_salary": 85000,
				"job_posted_at_datetime_utc": "2026-03-08T00:00:00Z"
			},
			{
				"employer_name": "Unknown Practice",
				"job_title": "Intern",
				"job_employment_type": "INTERN",
				"job_apply_link": "https://example.com/apply/2"
			},
			{
				"employer_name": "",
				"job_title": "No Employer, Skipped"
			}
		]
	}`
	var gotKey atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") == "" {
			t.Error("missing query parameter")
		}
		gotKey.Store(r.Header.Get("X-RapidAPI-Key"))
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	results := aggregatorForServer(srv, "test-key").Search(context.Background(), []string{"architect job"})
	if k, _ := gotKey.Load().(string); k != "test-key" {
		t.Errorf("credential header = %q, want test-key", k)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results (empty employer skipped), got %d", len(results))
	}

	r := results[0]
	if r.Employer != "Foo & Bar Architects" {
		t.Errorf("Employer = %q", r.Employer)
	}
	if r.Location != "Chicago, IL" {
		t.Errorf("Location = %q", r.Location)
	}
	if r.Job.Salary != "$65K–$85K" {
		t.Errorf("Salary = %q, want $65K–$85K", r.Job.Salary)
	}
	if r.Job.Type != model.FullTime {
		t.Errorf("Type = %q", r.Job.Type)
	}
	if r.Job.Posted != "2 days ago" {
		t.Errorf("Posted = %q, want 2 days ago", r.Job.Posted)
	}

	// Missing salary bounds use the fallback literal.
	if results[1].Job.Salary != salaryFallback {
		t.Errorf("Salary = %q, want fallback", results[1].Job.Salary)
	}
	if results[1].Job.Type != model.Internship {
		t.Errorf("Type = %q, want Internship", results[1].Job.Type)
	}
}

func TestAggregator_QueryPerRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	aggregatorForServer(srv, "k").Search(context.Background(), []string{"a", "b", "c"})
	if c := calls.Load(); c != 3 {
		t.Errorf("expected 3 requests (one per query), got %d", c)
	}
}

func TestAggregator_FailedQueryYieldsNothing(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data": [{"employer_name": "X", "job_title": "Y", "job_apply_link": "https://x/y"}]}`))
	}))
	defer srv.Close()

	// First query fails, second still runs: failures never abort the pass.
	results := aggregatorForServer(srv, "k").Search(context.Background(), []string{"a", "b"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result from surviving query, got %d", len(results))
	}
}

func TestAggregator_Enabled(t *testing.T) {
	lim := ratelimit.NewHostLimiter(0)
	if NewAggregator("https://x", "", http.DefaultClient, lim).Enabled() {
		t.Error("empty key must disable the pass")
	}
	if !NewAggregator("https://x", "k", http.DefaultClient, lim).Enabled() {
		t.Error("non-empty key must enable the pass")
	}
}
