// Package pagination, given an ordered entry slice and a page size,
// exposes the current page slice, page navigation, and the
// display-index <-> entry-index mapping.
package pagination

import "github.com/ivuorinen/ff/internal/entry"

// View borrows an ordered entry slice and owns the current page index.
// When ItemsPerPage is 0, there is exactly one (empty) page — a legal,
// header-only display.
type View struct {
	entries      []entry.Entry
	itemsPerPage int
	currentPage  int
}

// New builds a View over entries with the given page size. currentPage
// starts at 0.
func New(entries []entry.Entry, itemsPerPage int) *View {
	if itemsPerPage < 0 {
		itemsPerPage = 0
	}
	return &View{entries: entries, itemsPerPage: itemsPerPage}
}

// PageCount returns ceil(len(entries)/itemsPerPage), or 1 when
// itemsPerPage is 0 or there are no entries.
func (v *View) PageCount() int {
	if v.itemsPerPage == 0 || len(v.entries) == 0 {
		return 1
	}
	n := len(v.entries) / v.itemsPerPage
	if len(v.entries)%v.itemsPerPage != 0 {
		n++
	}
	return n
}

// CurrentPage returns the active page index.
func (v *View) CurrentPage() int { return v.currentPage }

// PageEntries returns the entries on the current page. Empty when
// itemsPerPage is 0.
func (v *View) PageEntries() []entry.Entry {
	if v.itemsPerPage == 0 {
		return nil
	}
	start := v.currentPage * v.itemsPerPage
	if start >= len(v.entries) {
		return nil
	}
	end := start + v.itemsPerPage
	if end > len(v.entries) {
		end = len(v.entries)
	}
	return v.entries[start:end]
}

// SetCurrentPage clamps i to [0, PageCount()-1] and sets it as current. It
// returns whether the requested index was already in range.
func (v *View) SetCurrentPage(i int) bool {
	last := v.PageCount() - 1
	inRange := i >= 0 && i <= last
	switch {
	case i < 0:
		i = 0
	case i > last:
		i = last
	}
	v.currentPage = i
	return inRange
}

// NextPage advances to the next page if one exists.
func (v *View) NextPage() bool { return v.SetCurrentPage(v.currentPage + 1) }

// PrevPage moves to the previous page if one exists.
func (v *View) PrevPage() bool { return v.SetCurrentPage(v.currentPage - 1) }

// GetActualIndex maps a 1-based page-relative display position k to its
// index into the full (pre-pagination) entries slice. Returns (0, false)
// when k is out of bounds for the current page.
func (v *View) GetActualIndex(k int) (int, bool) {
	page := v.PageEntries()
	if k < 1 || k > len(page) {
		return 0, false
	}
	return v.currentPage*v.itemsPerPage + (k - 1), true
}
