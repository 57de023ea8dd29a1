// Package fuzzy implements Levenshtein-based prefix fuzzy search on
// entry names, exactly, including the intentional
// truncate-to-search-length penalty documented (preserved as
// specified, not "fixed").
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ivuorinen/ff/internal/entry"
)

// MaxSearchDistance is the inclusive cutoff below which a candidate is
// considered a match.
const MaxSearchDistance = 2

// Match is one fuzzy hit against an entry, before the dispatcher assigns a
// final DisplayIndex.
type Match struct {
	Name         string
	Path         string
	EditDistance int
	DisplayIndex int // filled in by the caller after sorting
}

// Search runs the fuzzy matcher over entries for term. An empty term
// returns an empty slice
func Search(entries []entry.Entry, term string) []Match {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	m := len([]rune(needle))

	var out []Match
	for _, e := range entries {
		full := strings.ToLower(e.Name)
		stem := stripExtension(full)

		d1 := distance(truncate(full, m), needle)
		d2 := distance(truncate(stem, m), needle)
		d := d1
		if d2 < d {
			d = d2
		}

		if d <= MaxSearchDistance {
			out = append(out, Match{
				Name:         e.Name,
				Path:         e.AbsPath,
				EditDistance: d,
			})
		}
	}

	sortMatches(out)
	for i := range out {
		out[i].DisplayIndex = i + 1
	}
	return out
}

// distance computes the Levenshtein edit distance using the agnivade
// library's standard two-row DP, as the algorithm in  step 4
// calls for.
func distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// truncate cuts s to at most m runes, UTF-8 aware.
func truncate(s string, m int) string {
	r := []rune(s)
	if len(r) <= m {
		return s
	}
	return string(r[:m])
}

// stripExtension removes the substring after the final '.', a no-op when
// there is no '.'.
func stripExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// sortMatches orders by distance ascending, then by original name length
// ascending, matching the final-ordering rule.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.EditDistance != b.EditDistance {
			return a.EditDistance < b.EditDistance
		}
		return len([]rune(a.Name)) < len([]rune(b.Name))
	})
}
