// Package firmdb reads and writes the curated firm database file. The file
// is the source of truth for both batch runs: discover rewrites it in place
// with discovered slugs, fetch only reads it.
package firmdb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archfeed/archfeed/internal/model"
)

// Load parses the firm database at path. A read or parse failure is fatal
// to the run, so it is returned rather than absorbed.
func Load(path string) ([]*model.Firm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read firm database: %w", err)
	}

	var firms []*model.Firm
	if err := json.Unmarshal(data, &firms); err != nil {
		return nil, fmt.Errorf("parse firm database %s: %w", path, err)
	}

	return firms, nil
}

// Save writes the firm list back to path, pretty-printed since the file is
// hand-curated. The write goes through a temp file in the same directory so
// a failed run never leaves a truncated database behind.
func Save(path string, firms []*model.Firm) error {
	data, err := json.MarshalIndent(firms, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal firm database: %w", err)
	}
	data = append(data, '\n')

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write firm database: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write firm database: %w", err)
	}
	return nil
}
