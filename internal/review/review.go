// Package review provides the interactive discovery-review TUI. Discoveries
// are aggregator postings that matched no known firm; reviewing one either
// leaves it for the next run or dismisses it permanently via the review store.
package review

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/archfeed/archfeed/internal/match"
	"github.com/archfeed/archfeed/internal/model"
)

// Key returns the stable identity of a discovery, shared with the fetch
// pipeline's dedup key so a dismissal survives the file being rewritten.
func Key(d model.Discovery) string {
	return match.Key(d.Employer) + "\x00" + strings.ToLower(d.Title)
}

// Load reads the discoveries file and drops entries already dismissed in the
// store. A missing file is not an error; it just means no run has produced
// discoveries yet.
func Load(path string, store model.ReviewStore) ([]model.Discovery, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading discoveries file %s: %w", path, err)
	}

	var all []model.Discovery
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing discoveries file %s: %w", path, err)
	}

	pending := make([]model.Discovery, 0, len(all))
	for _, d := range all {
		dismissed, err := store.IsDismissed(Key(d))
		if err != nil {
			return nil, fmt.Errorf("checking dismissal for %q: %w", d.Employer, err)
		}
		if !dismissed {
			pending = append(pending, d)
		}
	}
	return pending, nil
}
