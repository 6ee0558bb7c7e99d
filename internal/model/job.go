package model

// EmploymentType is the enumerated job commitment classification.
type EmploymentType string

const (
	FullTime   EmploymentType = "Full-time"
	PartTime   EmploymentType = "Part-time"
	Internship EmploymentType = "Internship"
	Contract   EmploymentType = "Contract"
	Other      EmploymentType = "Other"
)

// Job is the unified representation of a posting from any provider,
// normalized down to the fields the public board renders.
type Job struct {
	Title  string         `json:"title"`
	Type   EmploymentType `json:"type"`
	Salary string         `json:"salary"`           // formatted range or fallback literal
	Posted string         `json:"posted,omitempty"` // human-relative, e.g. "3 days ago"
	URL    string         `json:"url"`
}
