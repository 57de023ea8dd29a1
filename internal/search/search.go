// Package search parses search flags, chooses recursive
// enumeration, routes to the fuzzy or grep matcher, deduplicates recursive
// grep results by file, and renumbers the final result list.
package search

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/entry"
	"github.com/ivuorinen/ff/internal/fuzzy"
	"github.com/ivuorinen/ff/internal/grep"
	"github.com/ivuorinen/ff/internal/walk"
)

// Flags are the parsed search modifiers.
type Flags struct {
	Recursive     bool
	Grep          bool
	CaseSensitive bool
}

// ParseFlags splits the remaining whitespace-separated tokens (after the
// search term) into Flags. Unrecognized tokens are ignored rather than
// rejected, matching the tolerant parsing the rest of input handling uses.
func ParseFlags(tokens []string) Flags {
	var f Flags
	for _, tok := range tokens {
		switch tok {
		case "-r", "--recursive":
			f.Recursive = true
		case "-g", "--grep":
			f.Grep = true
		case "-c", "--case-sensitive":
			f.CaseSensitive = true
		}
	}
	return f
}

// Kind discriminates a Result's payload.
type Kind int

const (
	KindFuzzy Kind = iota
	KindGrep
)

// Result is the tagged union a dispatched search returns. Exactly one of
// the Fuzzy/Grep-shaped field sets is meaningful, selected by Kind.
type Result struct {
	Kind Kind

	// Fuzzy fields.
	Name         string
	EditDistance int

	// Grep fields.
	FileName    string
	LineNumber  int
	LineContent string

	// Shared.
	Path         string
	DisplayIndex int
}

// Dispatch runs the search described by term+flags, starting from
// currentDir with currentDirEntries already read.
func Dispatch(fs afero.Fs, currentDir string, currentDirEntries []entry.Entry, term string, flags Flags) []Result {
	source := currentDirEntries
	preserveOriginalIndex := !flags.Recursive && !flags.Grep

	if flags.Recursive {
		res := walk.Walk(fs, currentDir, walk.DefaultCaps())
		source = res.Entries
		// A cap breach still yields partial results; the warning is
		// logged inside walk.Walk itself.
	}

	var results []Result
	if flags.Grep {
		matches := grep.Search(fs, source, term, flags.CaseSensitive)
		if flags.Recursive {
			// Recursive grep can turn up many files; so that one file's
			// repeated-line matches (up to grep.MaxMatchesPerFile) do not
			// crowd out other files' hits, only each file's first match
			// survives.
			results = dedupGrepByPath(matches)
		} else {
			results = grepMatchesToResults(matches)
		}
	} else {
		matches := fuzzy.Search(source, term)
		for _, m := range matches {
			results = append(results, Result{
				Kind:         KindFuzzy,
				Name:         m.Name,
				Path:         m.Path,
				EditDistance: m.EditDistance,
				DisplayIndex: m.DisplayIndex,
			})
		}
	}

	if preserveOriginalIndex {
		// Plain in-directory fuzzy: fuzzy.Search has already numbered the
		// matches 1..N in match order, so nothing further to renumber.
		return results
	}

	// Renumbering rule: recursive or grep results are
	// renumbered to 1..N in emitted order.
	for i := range results {
		results[i].DisplayIndex = i + 1
	}
	return results
}

// grepMatchesToResults converts every match to a Result with no dedup,
// preserving the per-line detail a single-directory grep search needs
// (MaxMatchesPerFile already bounds how many lines one file contributes).
func grepMatchesToResults(matches []grep.Match) []Result {
	out := make([]Result, len(matches))
	for i, m := range matches {
		out[i] = Result{
			Kind:        KindGrep,
			FileName:    m.FileName,
			Path:        m.FilePath,
			LineNumber:  m.LineNumber,
			LineContent: m.LineContent,
		}
	}
	return out
}

// dedupGrepByPath keeps each file's first match as the representative,
// sorted by file name ascending for stable order. Scoped to the recursive
// case only; a non-recursive single-directory grep keeps every per-line
// match instead.
func dedupGrepByPath(matches []grep.Match) []Result {
	seen := map[string]bool{}
	var reps []grep.Match
	for _, m := range matches {
		if seen[m.FilePath] {
			continue
		}
		seen[m.FilePath] = true
		reps = append(reps, m)
	}

	sort.SliceStable(reps, func(i, j int) bool {
		return strings.ToLower(reps[i].FileName) < strings.ToLower(reps[j].FileName)
	})

	out := make([]Result, len(reps))
	for i, m := range reps {
		out[i] = Result{
			Kind:        KindGrep,
			FileName:    m.FileName,
			Path:        m.FilePath,
			LineNumber:  m.LineNumber,
			LineContent: m.LineContent,
		}
	}
	return out
}
