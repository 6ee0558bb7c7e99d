package model

// Firm is one entry of the curated firm database. The slug fields are the
// only fields mutated by the slug discoverer; everything else is
// hand-maintained. An empty slug means "unknown/unprobed", not confirmed
// absent.
type Firm struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Lat         float64  `json:"lat,omitempty"`
	Lng         float64  `json:"lng,omitempty"`
	Size        string   `json:"size,omitempty"`
	Discipline  string   `json:"discipline,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Website     string   `json:"website,omitempty"`
	About       string   `json:"about,omitempty"`

	GreenhouseSlug string `json:"greenhouse_slug,omitempty"`
	LeverSlug      string `json:"lever_slug,omitempty"`

	// Jobs is fully replaced on each fetch run; there is no merge across runs.
	Jobs []Job `json:"jobs"`
}

// Discovery is an aggregator job result that matched no known firm. It is
// written to a side file for manual review instead of the public output.
type Discovery struct {
	Employer string `json:"employer"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Salary   string `json:"salary,omitempty"`
	Posted   string `json:"posted,omitempty"`
	URL      string `json:"url"`
}
