package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/archfeed/archfeed/internal/model"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func greenhouseForServer(srv *httptest.Server) *Greenhouse {
	a := NewGreenhouse(srv.Client())
	a.baseURL = srv.URL
	a.now = func() time.Time { return testNow }
	return a
}

func TestGreenhouse_FetchJobs(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"id": 12345,
				"title": "Project Architect",
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/12345",
				"first_published": "2026-03-07T09:00:00Z",
				"updated_at": "2026-03-09T10:00:00Z",
				"metadata": [{"name": "Employment Type", "value": "Contract"}],
				"departments": [{"name": "Design"}]
			},
			{
				"id": 67890,
				"title": "Architectural Intern",
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/67890",
				"updated_at": "2026-03-10T08:00:00Z"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/jobs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("content") != "true" {
			t.Errorf("expected content=true, got query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	jobs, err := greenhouseForServer(srv).FetchJobs(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Project Architect" {
		t.Errorf("Title = %q", j.Title)
	}
	// Metadata "type" field wins over department and title.
	if j.Type != model.Contract {
		t.Errorf("Type = %q, want Contract", j.Type)
	}
	if j.Salary != salaryFallback {
		t.Errorf("Salary = %q, want fallback", j.Salary)
	}
	if j.Posted != "3 days ago" {
		t.Errorf("Posted = %q, want 3 days ago", j.Posted)
	}
	if j.URL != "https://boards.greenhouse.io/acme/jobs/12345" {
		t.Errorf("URL = %q", j.URL)
	}

	// No metadata or department: title drives the inference.
	if jobs[1].Type != model.Internship {
		t.Errorf("Type = %q, want Internship from title", jobs[1].Type)
	}
	if jobs[1].Posted != "Today" {
		t.Errorf("Posted = %q, want Today", jobs[1].Posted)
	}
}

func TestGreenhouse_DepartmentBeatsTitle(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"id": 1,
				"title": "Designer (Contract)",
				"absolute_url": "https://example.com/1",
				"departments": [{"name": "Internships"}]
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	jobs, err := greenhouseForServer(srv).FetchJobs(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs[0].Type != model.Internship {
		t.Errorf("Type = %q, want Internship from department", jobs[0].Type)
	}
}

func TestGreenhouse_EmptyBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": []}`))
	}))
	defer srv.Close()

	jobs, err := greenhouseForServer(srv).FetchJobs(context.Background(), "empty-co")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}

func TestGreenhouse_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := greenhouseForServer(srv).FetchJobs(context.Background(), "fail-co"); err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
}

func TestGreenhouse_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not valid json`))
	}))
	defer srv.Close()

	if _, err := greenhouseForServer(srv).FetchJobs(context.Background(), "bad-co"); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestMetadataTypeHint(t *testing.T) {
	tests := []struct {
		name string
		md   []greenhouseMetadata
		want string
	}{
		{
			name: "string value",
			md:   []greenhouseMetadata{{Name: "Job Type", Value: "Part-time"}},
			want: "Part-time",
		},
		{
			name: "list value",
			md:   []greenhouseMetadata{{Name: "Employment Type", Value: []any{"Contract", "Remote"}}},
			want: "Contract Remote",
		},
		{
			name: "null value skipped, no other type field",
			md:   []greenhouseMetadata{{Name: "Type", Value: nil}},
			want: "",
		},
		{
			name: "unrelated fields ignored",
			md:   []greenhouseMetadata{{Name: "Salary Band", Value: "B3"}},
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := metadataTypeHint(tc.md); got != tc.want {
				t.Errorf("metadataTypeHint = %q, want %q", got, tc.want)
			}
		})
	}
}
