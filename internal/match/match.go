// Package match associates aggregator employer names with known firms by
// exact equality of a normalized name key. Despite the informal "fuzzy
// matching" name this is deliberately not edit-distance matching: a near
// miss becomes a discovery for manual review rather than a wrong merge.
package match

import (
	"regexp"
	"strings"

	"github.com/archfeed/archfeed/internal/model"
	"github.com/archfeed/archfeed/internal/slug"
)

var punctRe = regexp.MustCompile(`[^a-z0-9 ]+`)

// Key normalizes an employer name for equality comparison: lower-case,
// punctuation stripped, firm-type suffixes stripped, whitespace collapsed.
func Key(name string) string {
	s := punctRe.ReplaceAllString(strings.ToLower(name), " ")
	s = strings.Join(strings.Fields(s), " ")
	s = slug.StripFirmSuffixes(s)
	return strings.Join(strings.Fields(s), " ")
}

// Index maps normalized employer keys to firms.
type Index struct {
	byKey map[string]*model.Firm
}

// NewIndex builds the lookup table. On key collision the first firm wins;
// curated data is expected to keep names distinct.
func NewIndex(firms []*model.Firm) *Index {
	byKey := make(map[string]*model.Firm, len(firms))
	for _, f := range firms {
		k := Key(f.Name)
		if k == "" {
			continue
		}
		if _, exists := byKey[k]; !exists {
			byKey[k] = f
		}
	}
	return &Index{byKey: byKey}
}

// Lookup resolves an employer name to a known firm.
func (ix *Index) Lookup(employer string) (*model.Firm, bool) {
	f, ok := ix.byKey[Key(employer)]
	return f, ok
}
