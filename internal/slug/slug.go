// Package slug derives plausible ATS board slugs from a firm's name and
// website. The heuristics are best-effort: a candidate is only ever a guess
// that the probe layer confirms or rejects.
package slug

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/archfeed/archfeed/internal/model"
)

// FirmSuffixes are corporate/firm-type name suffixes, in strip priority
// order. Longer forms come before their substrings so "pllc" is never
// half-stripped as "llc".
var FirmSuffixes = []string{
	"architecture", "architects", "architect",
	"associates", "partners", "collective",
	"studios", "studio", "design", "group", "office", "company",
	"pllc", "llp", "llc", "ltd", "inc", "pc", "co",
}

var (
	acronymRe = regexp.MustCompile(`\(([A-Z][A-Z ]*[A-Z])\)`)
	parenRe   = regexp.MustCompile(`\([^)]*\)`)
	nonSlugRe = regexp.MustCompile(`[^a-z0-9 -]+`)
	multiDash = regexp.MustCompile(`-{2,}`)
)

// Candidates returns an ordered list of slug guesses for a firm, shortest
// and simplest first. Pure function of the firm record.
func Candidates(f model.Firm) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}

	if label := hostLabel(f.Website); label != "" {
		add(label)
	}

	// All-caps parenthetical acronym: "Foo Bar (FBA)" -> "fba".
	if m := acronymRe.FindStringSubmatch(f.Name); m != nil {
		add(strings.ToLower(strings.ReplaceAll(m[1], " ", "")))
	}

	cleaned := strings.ToLower(strings.TrimSpace(parenRe.ReplaceAllString(f.Name, " ")))

	// Iteratively strip one firm-type suffix at a time, emitting the
	// remainder at each stage.
	cur := cleaned
	for {
		next, ok := StripOneSuffix(cur)
		if !ok {
			break
		}
		cur = next
		add(slugify(cur))
	}

	// Name normalization: an "&/+ -> and" variant and a removal variant,
	// plus a hyphen-free form of the normalized string. Applied to the
	// suffix-stripped base and to the full cleaned name.
	base := cur
	for _, src := range []string{base, cleaned} {
		andVariant := slugify(replaceAmpersands(src, " and "))
		add(andVariant)
		add(slugify(replaceAmpersands(src, " ")))
		add(strings.ReplaceAll(andVariant, "-", ""))
	}

	if first := firstWord(cleaned); len([]rune(first)) > 1 {
		add(first)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return strings.Count(out[i], "-") < strings.Count(out[j], "-")
	})

	return out
}

// StripOneSuffix removes the highest-priority matching firm-type suffix
// from the end of name, returning the trimmed remainder. ok is false when
// no suffix matches or the match would consume the whole name.
func StripOneSuffix(name string) (string, bool) {
	for _, suf := range FirmSuffixes {
		if len(name) <= len(suf) || !strings.HasSuffix(name, suf) {
			continue
		}
		// Require a word boundary so "tempo" never loses its "co".
		boundary := name[len(name)-len(suf)-1]
		if boundary != ' ' && boundary != '-' && boundary != ',' && boundary != '.' {
			continue
		}
		rest := strings.TrimRightFunc(name[:len(name)-len(suf)], func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == '-' || r == '.'
		})
		if rest == "" {
			continue
		}
		return rest, true
	}
	return name, false
}

// StripFirmSuffixes strips firm-type suffixes repeatedly until none match.
func StripFirmSuffixes(name string) string {
	for {
		next, ok := StripOneSuffix(name)
		if !ok {
			return name
		}
		name = next
	}
}

// hostLabel extracts the first hostname label of a website URL, minus a
// leading "www.". Returns "" if the URL does not parse.
func hostLabel(website string) string {
	if website == "" {
		return ""
	}
	raw := website
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	return label
}

func replaceAmpersands(s, with string) string {
	s = strings.ReplaceAll(s, "&", with)
	return strings.ReplaceAll(s, "+", with)
}

// slugify lower-cases, strips punctuation, joins words with hyphens,
// collapses repeats, and trims hyphens from the edges.
func slugify(s string) string {
	s = nonSlugRe.ReplaceAllString(strings.ToLower(s), "")
	s = strings.Join(strings.Fields(s), "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func firstWord(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
