package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/archfeed/archfeed/internal/model"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

type greenhouseMetadata struct {
	Name  string `json:"name"`
	Value any    `json:"value"` // string, list of strings, or null
}

type greenhouseDepartment struct {
	Name string `json:"name"`
}

// greenhouseJob represents a single job in the Greenhouse API response.
type greenhouseJob struct {
	ID             int64                  `json:"id"`
	Title          string                 `json:"title"`
	AbsoluteURL    string                 `json:"absolute_url"`
	UpdatedAt      string                 `json:"updated_at"`
	FirstPublished string                 `json:"first_published"`
	Metadata       []greenhouseMetadata   `json:"metadata"`
	Departments    []greenhouseDepartment `json:"departments"`
}

// greenhouseResponse is the top-level Greenhouse jobs API response.
type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// Greenhouse fetches postings from the public Greenhouse boards API and
// normalizes them into the unified Job model.
type Greenhouse struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewGreenhouse creates an adapter shared across all Greenhouse boards.
func NewGreenhouse(client *http.Client) *Greenhouse {
	return &Greenhouse{baseURL: greenhouseBaseURL, client: client, now: time.Now}
}

// FetchJobs retrieves all postings on a board. The employment type is
// inferred from a "type"-named metadata field first, then the department
// name, then the title.
func (a *Greenhouse) FetchJobs(ctx context.Context, boardSlug string) ([]model.Job, error) {
	url := fmt.Sprintf("%s/%s/jobs?content=true", a.baseURL, boardSlug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("greenhouse fetch for %s: %w", boardSlug, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse fetch for %s: %w", boardSlug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("greenhouse fetch for %s: unexpected status %d", boardSlug, resp.StatusCode)
	}

	var ghResp greenhouseResponse
	if err := json.NewDecoder(resp.Body).Decode(&ghResp); err != nil {
		return nil, fmt.Errorf("greenhouse fetch for %s: %w", boardSlug, err)
	}

	now := a.now()
	jobs := make([]model.Job, 0, len(ghResp.Jobs))
	for _, gj := range ghResp.Jobs {
		posted := ""
		for _, raw := range []string{gj.FirstPublished, gj.UpdatedAt} {
			if raw == "" {
				continue
			}
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				posted = relativeTime(t, now)
				break
			}
		}

		dept := ""
		if len(gj.Departments) > 0 {
			dept = gj.Departments[0].Name
		}

		jobs = append(jobs, model.Job{
			Title:  gj.Title,
			Type:   inferType(metadataTypeHint(gj.Metadata), dept, gj.Title),
			Salary: salaryFallback,
			Posted: posted,
			URL:    gj.AbsoluteURL,
		})
	}

	return jobs, nil
}

// metadataTypeHint returns the value of the first metadata field whose name
// contains "type", flattened to a string.
func metadataTypeHint(md []greenhouseMetadata) string {
	for _, m := range md {
		if !strings.Contains(strings.ToLower(m.Name), "type") {
			continue
		}
		switch v := m.Value.(type) {
		case string:
			return v
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					parts = append(parts, s)
				}
			}
			return strings.Join(parts, " ")
		}
	}
	return ""
}
