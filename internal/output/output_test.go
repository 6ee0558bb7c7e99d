package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/archfeed/archfeed/internal/model"
)

func TestWritePublic_ExcludesSlugFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "jobs.json")
	firms := []*model.Firm{
		{
			ID: 1, Name: "Acme Studio", City: "Portland",
			GreenhouseSlug: "acme", LeverSlug: "acme-studio",
			Jobs: []model.Job{{Title: "Architect", Type: model.FullTime, Salary: "Competitive", URL: "https://x/1"}},
		},
	}

	n, err := WritePublic(path, firms)
	if err != nil {
		t.Fatalf("WritePublic: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Errorf("reported %d bytes, file has %d", n, len(data))
	}

	body := string(data)
	if strings.Contains(body, "greenhouse_slug") || strings.Contains(body, "lever_slug") {
		t.Errorf("public output leaks slug fields: %s", body)
	}
	if !strings.Contains(body, `"Acme Studio"`) || !strings.Contains(body, `"Architect"`) {
		t.Errorf("public output missing expected content: %s", body)
	}
	// Compact serialization: no indentation newlines.
	if strings.Contains(body, "\n  ") {
		t.Error("public output should be compact")
	}
}

func TestWritePublic_NilJobsBecomesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if _, err := WritePublic(path, []*model.Firm{{ID: 1, Name: "A"}}); err != nil {
		t.Fatalf("WritePublic: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"jobs":[]`) {
		t.Errorf("expected empty jobs array, got %s", data)
	}
}

func TestWriteDiscoveries_PrettyAndOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discoveries.json")

	first := []model.Discovery{
		{Employer: "Old Practice", Title: "Old Role", URL: "https://x/old"},
		{Employer: "Another", Title: "Role", URL: "https://x/2"},
	}
	if err := WriteDiscoveries(path, first); err != nil {
		t.Fatalf("WriteDiscoveries: %v", err)
	}

	second := []model.Discovery{{Employer: "New Practice", Title: "New Role", URL: "https://x/new"}}
	if err := WriteDiscoveries(path, second); err != nil {
		t.Fatalf("WriteDiscoveries: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []model.Discovery
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("discoveries file not valid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Employer != "New Practice" {
		t.Errorf("expected file fully replaced, got %+v", got)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("discoveries file should be pretty-printed")
	}
}

func TestWriteDiscoveries_NilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discoveries.json")
	if err := WriteDiscoveries(path, nil); err != nil {
		t.Fatalf("WriteDiscoveries: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected [], got %q", data)
	}
}
