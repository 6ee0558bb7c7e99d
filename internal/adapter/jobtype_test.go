package adapter

import (
	"testing"

	"github.com/archfeed/archfeed/internal/model"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name  string
		hints []string
		want  model.EmploymentType
	}{
		{"metadata beats title", []string{"Contract", "", "Summer Intern"}, model.Contract},
		{"department beats title", []string{"", "Internships", "Contract Admin"}, model.Internship},
		{"title only", []string{"", "", "Part-Time Librarian"}, model.PartTime},
		{"no hint defaults full-time", []string{"", "", "Project Architect"}, model.FullTime},
		{"empty hints", []string{"", "", ""}, model.FullTime},
		{"freelance maps to contract", []string{"Freelance"}, model.Contract},
		{"rule order within one hint", []string{"Full time internship program"}, model.Internship},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := inferType(tc.hints...); got != tc.want {
				t.Errorf("inferType(%v) = %q, want %q", tc.hints, got, tc.want)
			}
		})
	}
}

func TestMapEmploymentType(t *testing.T) {
	tests := []struct {
		in   string
		want model.EmploymentType
	}{
		{"FULLTIME", model.FullTime},
		{"parttime", model.PartTime},
		{"CONTRACTOR", model.Contract},
		{"INTERN", model.Internship},
		{"", model.FullTime},
		{"VOLUNTEER", model.Other},
	}
	for _, tc := range tests {
		if got := mapEmploymentType(tc.in); got != tc.want {
			t.Errorf("mapEmploymentType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
