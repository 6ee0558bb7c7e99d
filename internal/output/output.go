// Package output writes the two fetch artifacts: the compact public
// listing and the pretty-printed discoveries side file.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archfeed/archfeed/internal/model"
)

// publicFirm is the public projection of a firm. The slug fields are
// excluded by construction: they exist nowhere in this type, so they can
// never leak into the output file.
type publicFirm struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Lat         float64     `json:"lat,omitempty"`
	Lng         float64     `json:"lng,omitempty"`
	Size        string      `json:"size,omitempty"`
	Discipline  string      `json:"discipline,omitempty"`
	Specialties []string    `json:"specialties,omitempty"`
	Website     string      `json:"website,omitempty"`
	About       string      `json:"about,omitempty"`
	Jobs        []model.Job `json:"jobs"`
}

// WritePublic serializes one record per firm, compactly, and returns the
// number of bytes written.
func WritePublic(path string, firms []*model.Firm) (int, error) {
	public := make([]publicFirm, 0, len(firms))
	for _, f := range firms {
		jobs := f.Jobs
		if jobs == nil {
			jobs = []model.Job{}
		}
		public = append(public, publicFirm{
			ID:          f.ID,
			Name:        f.Name,
			City:        f.City,
			State:       f.State,
			Lat:         f.Lat,
			Lng:         f.Lng,
			Size:        f.Size,
			Discipline:  f.Discipline,
			Specialties: f.Specialties,
			Website:     f.Website,
			About:       f.About,
			Jobs:        jobs,
		})
	}

	data, err := json.Marshal(public)
	if err != nil {
		return 0, fmt.Errorf("marshal public output: %w", err)
	}
	if err := write(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// WriteDiscoveries overwrites the discoveries file with this run's
// unmatched results, pretty-printed for manual review. Prior contents are
// not merged.
func WriteDiscoveries(path string, discoveries []model.Discovery) error {
	if discoveries == nil {
		discoveries = []model.Discovery{}
	}
	data, err := json.MarshalIndent(discoveries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal discoveries: %w", err)
	}
	return write(path, append(data, '\n'))
}

func write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
