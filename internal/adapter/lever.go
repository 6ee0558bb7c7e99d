package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/archfeed/archfeed/internal/model"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// leverCategories represents the categories object in a Lever posting.
type leverCategories struct {
	Team       string `json:"team"`
	Department string `json:"department"`
	Location   string `json:"location"`
	Commitment string `json:"commitment"`
}

// leverJob represents a single posting in the Lever API response.
type leverJob struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Categories leverCategories `json:"categories"`
	CreatedAt  int64           `json:"createdAt"` // ms epoch
	HostedURL  string          `json:"hostedUrl"`
}

// Lever fetches postings from the public Lever postings API and normalizes
// them into the unified Job model.
type Lever struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewLever creates an adapter shared across all Lever accounts.
func NewLever(client *http.Client) *Lever {
	return &Lever{baseURL: leverBaseURL, client: client, now: time.Now}
}

// FetchJobs retrieves all postings for an account. The employment type
// comes from the structured commitment category, defaulting to Full-time.
func (a *Lever) FetchJobs(ctx context.Context, accountSlug string) ([]model.Job, error) {
	url := fmt.Sprintf("%s/%s?mode=json", a.baseURL, accountSlug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", accountSlug, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", accountSlug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lever fetch for %s: unexpected status %d", accountSlug, resp.StatusCode)
	}

	var leverJobs []leverJob
	if err := json.NewDecoder(resp.Body).Decode(&leverJobs); err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", accountSlug, err)
	}

	now := a.now()
	jobs := make([]model.Job, 0, len(leverJobs))
	for _, lj := range leverJobs {
		posted := ""
		if lj.CreatedAt > 0 {
			posted = relativeTime(time.UnixMilli(lj.CreatedAt), now)
		}

		jobs = append(jobs, model.Job{
			Title:  lj.Text,
			Type:   inferType(lj.Categories.Commitment),
			Salary: salaryFallback,
			Posted: posted,
			URL:    lj.HostedURL,
		})
	}

	return jobs, nil
}
