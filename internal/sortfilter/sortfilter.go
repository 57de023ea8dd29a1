// Package sortfilter implements a stable dirs-first sort and
// (All/DirsOnly/FilesOnly projection) over entry.Entry slices.
package sortfilter

import (
	"sort"
	"strings"

	"github.com/ivuorinen/ff/internal/entry"
)

// SortKey identifies which field a SortMode compares on.
type SortKey rune

const (
	KeyName  SortKey = 'n'
	KeySize  SortKey = 's'
	KeyMtime SortKey = 'm'
)

// SortMode is one of {ByName, BySize, ByMtime} plus a direction. Directories
// always precede files regardless of mode; that invariant is enforced by
// Sort, not by the mode itself.
type SortMode struct {
	Key SortKey
	Asc bool
}

// DefaultSortMode is name-ascending, the initial mode of a fresh session.
func DefaultSortMode() SortMode { return SortMode{Key: KeyName, Asc: true} }

// Sort stably reorders entries in place: directories first, then the
// mode-specific comparator with direction applied.
func Sort(entries []entry.Entry, mode SortMode) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		// Primary key: !IsDir, so directories (false) sort before files (true).
		if a.IsDir != b.IsDir {
			return a.IsDir && !b.IsDir
		}

		less := compare(a, b, mode.Key)
		if mode.Asc {
			return less
		}
		return compare(b, a, mode.Key)
	})
}

func compare(a, b entry.Entry, key SortKey) bool {
	switch key {
	case KeySize:
		if a.Size != b.Size {
			return a.Size < b.Size
		}
	case KeyMtime:
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.Before(b.ModTime)
		}
	}
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// Filter is one of {All, DirectoriesOnly, FilesOnly}.
type Filter int

const (
	FilterAll Filter = iota
	FilterDirsOnly
	FilterFilesOnly
)

// Apply returns the projection of entries under f. FilterAll returns
// entries itself; the other filters return a new slice holding copies of
// the matching entries.
func Apply(entries []entry.Entry, f Filter) []entry.Entry {
	if f == FilterAll {
		return entries
	}
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		switch f {
		case FilterDirsOnly:
			if e.IsDir {
				out = append(out, e)
			}
		case FilterFilesOnly:
			if !e.IsDir {
				out = append(out, e)
			}
		}
	}
	return out
}
