package review

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/archfeed/archfeed/internal/model"
)

type memStore struct {
	dismissed map[string]bool
}

func newMemStore() *memStore { return &memStore{dismissed: map[string]bool{}} }

func (s *memStore) IsDismissed(key string) (bool, error) { return s.dismissed[key], nil }
func (s *memStore) Dismiss(key string) error             { s.dismissed[key] = true; return nil }
func (s *memStore) Close() error                         { return nil }

func TestKey_StableAcrossNameVariants(t *testing.T) {
	a := model.Discovery{Employer: "Mystery Practice LLC", Title: "Architect II"}
	b := model.Discovery{Employer: "mystery practice", Title: "ARCHITECT II"}
	if Key(a) != Key(b) {
		t.Errorf("keys differ: %q vs %q", Key(a), Key(b))
	}

	c := model.Discovery{Employer: "Mystery Practice", Title: "Architect III"}
	if Key(a) == Key(c) {
		t.Error("different titles must produce different keys")
	}
}

func TestLoad_FiltersDismissed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discoveries.json")
	data := `[
		{"employer": "Alpha Studio", "title": "Architect", "url": "https://x/1"},
		{"employer": "Beta Workshop", "title": "Designer", "url": "https://x/2"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	store := newMemStore()
	if err := store.Dismiss(Key(model.Discovery{Employer: "Alpha Studio", Title: "Architect"})); err != nil {
		t.Fatal(err)
	}

	pending, err := Load(path, store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pending) != 1 || pending[0].Employer != "Beta Workshop" {
		t.Errorf("pending = %+v, want only Beta Workshop", pending)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	pending, err := Load(filepath.Join(t.TempDir(), "absent.json"), newMemStore())
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want empty", pending)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discoveries.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, newMemStore()); err == nil {
		t.Error("expected error for malformed discoveries file")
	}
}
