// Package navstate implements the session's navigation state: sort
// mode, filter, selection, active search, TUI size, current page, and the
// display-index lookup table. Owned and mutated exclusively by the
// session loop.
package navstate

import "github.com/ivuorinen/ff/internal/sortfilter"

// DefaultItemsPerPage and DefaultNameWidth back the "use default" (sign
// irrelevant, magnitude 0) case of TuiAdjustment. They are package-level
// vars, not consts, so SetDefaults can apply config-provided overrides
// once at startup before any State is built.
var (
	DefaultItemsPerPage = 16
	DefaultNameWidth    = 30
)

// FilenameSuffixLen is the number of trailing runes a truncated name keeps
// after its "..." marker; name_width can never shrink below this + 3.
const FilenameSuffixLen = 8

// SetDefaults overrides DefaultItemsPerPage/DefaultNameWidth from
// configuration. Values <= 0 are ignored, leaving the built-in default in
// place.
func SetDefaults(itemsPerPage, nameWidth int) {
	if itemsPerPage > 0 {
		DefaultItemsPerPage = itemsPerPage
	}
	if nameWidth > 0 {
		DefaultNameWidth = nameWidth
	}
}

// EntryKind discriminates what a display index maps to.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

// Lookup is one display_index -> {path, kind} row.
type Lookup struct {
	Path string
	Kind EntryKind
}

// Adjustment is one (magnitude, sign) pair: magnitude 0 means "use
// default"; sign is irrelevant when magnitude is 0.
type Adjustment struct {
	Magnitude uint16
	Positive  bool
}

// TuiAdjustment holds the independent tall/wide adjustments.
type TuiAdjustment struct {
	Tall Adjustment
	Wide Adjustment
}

// ItemsPerPage resolves the effective items-per-page:
// max(0, DEFAULT_ITEMS ± magnitude).
func (t TuiAdjustment) ItemsPerPage() int {
	return applySigned(DefaultItemsPerPage, t.Tall)
}

// NameWidth resolves the effective name-column width, clamped to
// FilenameSuffixLen+3 at minimum.
func (t TuiAdjustment) NameWidth() int {
	w := applySigned(DefaultNameWidth, t.Wide)
	if min := FilenameSuffixLen + 3; w < min {
		return min
	}
	return w
}

func applySigned(base int, a Adjustment) int {
	if a.Magnitude == 0 {
		return base
	}
	delta := int(a.Magnitude)
	v := base
	if a.Positive {
		v += delta
	} else {
		v -= delta
	}
	if v < 0 {
		v = 0
	}
	return v
}

// State is the mutable per-session navigation state, created once per
// session.
type State struct {
	Sort        sortfilter.SortMode
	lastSortKey sortfilter.SortKey
	Filter      sortfilter.Filter
	Selected    *int // display index, nil when nothing is selected
	ActiveSearch *string
	Tui         TuiAdjustment
	CurrentPage int

	lookup map[int]Lookup
}

// New returns a fresh State: name-ascending sort, filter All, no
// selection, no search, default TUI size, page 0.
func New() *State {
	return &State{
		Sort:        sortfilter.DefaultSortMode(),
		lastSortKey: sortfilter.KeyName,
		Filter:      sortfilter.FilterAll,
		lookup:      map[int]Lookup{},
	}
}

// ToggleSort implements the toggle rule: same key as last time flips
// direction; a new key resets to ascending. Updates the "last key".
func (s *State) ToggleSort(key sortfilter.SortKey) {
	if key == s.lastSortKey {
		s.Sort.Asc = !s.Sort.Asc
	} else {
		s.Sort = sortfilter.SortMode{Key: key, Asc: true}
	}
	s.lastSortKey = key
}

// SetFilter implements the exclusivity+self-clearing toggle from 
// selecting the currently active filter clears it back to All.
func (s *State) SetFilter(key rune) {
	var target sortfilter.Filter
	switch key {
	case 'd':
		target = sortfilter.FilterDirsOnly
	case 'f':
		target = sortfilter.FilterFilesOnly
	default:
		return
	}
	if s.Filter == target {
		s.Filter = sortfilter.FilterAll
	} else {
		s.Filter = target
	}
}

// ResetToCleanState clears filter, page, selection, and active search,
// preserving sort mode.
func (s *State) ResetToCleanState() {
	s.Filter = sortfilter.FilterAll
	s.CurrentPage = 0
	s.Selected = nil
	s.ActiveSearch = nil
}

// RebuildLookup replaces the display_index map from the given page
// entries (path, kind pairs in display order starting at 1). Must be
// called before dispatching any numeric selection.
func (s *State) RebuildLookup(pageEntries []Lookup) {
	s.lookup = make(map[int]Lookup, len(pageEntries))
	for i, e := range pageEntries {
		s.lookup[i+1] = e
	}
}

// Resolve looks up a display index in the current table.
func (s *State) Resolve(displayIndex int) (Lookup, bool) {
	l, ok := s.lookup[displayIndex]
	return l, ok
}

// ApplyTuiAdjustment applies a tall or wide delta. A tall-dimension change
// resets the current page; a wide-dimension change does not.
func (s *State) ApplyTuiAdjustment(tall bool, a Adjustment) {
	if tall {
		s.Tui.Tall = combine(s.Tui.Tall, a)
		s.CurrentPage = 0
	} else {
		s.Tui.Wide = combine(s.Tui.Wide, a)
	}
}

// combine composes two adjustments into one signed delta, so that
// applying tall+a then tall-b equals applying tall±(a-b) in one step
//, clamped only at the point of use (ItemsPerPage/
// NameWidth), not here.
func combine(existing, delta Adjustment) Adjustment {
	e := signedValue(existing)
	d := signedValue(delta)
	sum := e + d
	if sum < 0 {
		return Adjustment{Magnitude: uint16(-sum), Positive: false}
	}
	return Adjustment{Magnitude: uint16(sum), Positive: true}
}

func signedValue(a Adjustment) int {
	if a.Positive {
		return int(a.Magnitude)
	}
	return -int(a.Magnitude)
}

// OnDirectoryChange clears selection and active search term, per the
// "after directory change" invariant in 
func (s *State) OnDirectoryChange() {
	s.Selected = nil
	s.ActiveSearch = nil
}
