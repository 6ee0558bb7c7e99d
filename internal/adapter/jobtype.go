package adapter

import (
	"strings"

	"github.com/archfeed/archfeed/internal/model"
)

// typeRule maps a keyword to an employment type. Rules are evaluated in
// order; the first hit wins.
type typeRule struct {
	keyword string
	result  model.EmploymentType
}

var typeRules = []typeRule{
	{"intern", model.Internship},
	{"co-op", model.Internship},
	{"part-time", model.PartTime},
	{"part time", model.PartTime},
	{"contract", model.Contract},
	{"temporary", model.Contract},
	{"freelance", model.Contract},
	{"full-time", model.FullTime},
	{"full time", model.FullTime},
}

// inferType classifies an employment type from free-text hints. Hints are
// checked one at a time so an earlier hint (e.g. a "type" metadata field)
// always beats a later one (department, title). No rule hit anywhere
// defaults to Full-time.
func inferType(hints ...string) model.EmploymentType {
	for _, h := range hints {
		if h == "" {
			continue
		}
		lower := strings.ToLower(h)
		for _, r := range typeRules {
			if strings.Contains(lower, r.keyword) {
				return r.result
			}
		}
	}
	return model.FullTime
}

// mapEmploymentType converts an aggregator's structured employment-type
// value to the canonical enum: pass-through for known values, Other for
// unknown non-empty values, Full-time when absent.
func mapEmploymentType(raw string) model.EmploymentType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return model.FullTime
	case "FULLTIME", "FULL-TIME", "FULL_TIME":
		return model.FullTime
	case "PARTTIME", "PART-TIME", "PART_TIME":
		return model.PartTime
	case "INTERN", "INTERNSHIP":
		return model.Internship
	case "CONTRACTOR", "CONTRACT":
		return model.Contract
	default:
		return model.Other
	}
}
