// Package display implements human-readable sizes, adaptive
// timestamps, filename truncation, and the header/footer/row rendering
// the session loop prints each cycle.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ivuorinen/ff/internal/entry"
	"github.com/ivuorinen/ff/internal/navstate"
	"github.com/ivuorinen/ff/internal/sortfilter"
)

var (
	dirColor    = color.New(color.FgBlue, color.Bold)
	headerColor = color.New(color.Underline)
)

// HumanSize renders bytes as a short human-readable size: "512B", "1.2K",
// "3.4M", and so on through "T". One decimal place below 10 units, none at
// or above.
func HumanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := "KMGT"
	val := float64(bytes) / float64(div)
	suffix := suffixes[exp]
	if val < 10 {
		return fmt.Sprintf("%.1f%c", val, suffix)
	}
	return fmt.Sprintf("%.0f%c", val, suffix)
}

// AdaptiveTimestamp renders t relative to now: a bare time for the same
// calendar day, "Jan 02" for the same year, and "Jan 02 2006" otherwise.
func AdaptiveTimestamp(t, now time.Time) string {
	t = t.Local()
	now = now.Local()
	switch {
	case sameDay(t, now):
		return t.Format("15:04")
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 2006")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TruncateName shortens name to fit width runes, preserving the last
// navstate.FilenameSuffixLen runes (so an extension stays legible) and
// collapsing the middle to "...". Names already within width pass through
// unchanged.
func TruncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	suffixLen := navstate.FilenameSuffixLen
	if suffixLen > width-3 {
		suffixLen = width - 3
	}
	if suffixLen < 0 {
		suffixLen = 0
	}
	headLen := width - 3 - suffixLen
	if headLen < 0 {
		headLen = 0
	}
	head := string(runes[:headLen])
	tail := string(runes[len(runes)-suffixLen:])
	return head + "..." + tail
}

// RenderHeader prints the current directory, sort mode (active column
// underlined), and filter.
func RenderHeader(dir string, mode sortfilter.SortMode, filter sortfilter.Filter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", dir)
	fmt.Fprintf(&b, "%s  %s  %s  filter=%s\n",
		sortLabel(mode, sortfilter.KeyName, "name"),
		sortLabel(mode, sortfilter.KeySize, "size"),
		sortLabel(mode, sortfilter.KeyMtime, "modified"),
		filterLabel(filter))
	return b.String()
}

func sortLabel(mode sortfilter.SortMode, key sortfilter.SortKey, label string) string {
	if mode.Key != key {
		return label
	}
	dir := "asc"
	if !mode.Asc {
		dir = "desc"
	}
	return headerColor.Sprintf("%s(%s)", label, dir)
}

func filterLabel(f sortfilter.Filter) string {
	switch f {
	case sortfilter.FilterDirsOnly:
		return "dirs"
	case sortfilter.FilterFilesOnly:
		return "files"
	default:
		return "all"
	}
}

// RenderRow formats one numbered entry row: index, colored name (bold blue
// for directories), size (blank for directories), and adaptive timestamp.
func RenderRow(displayIndex int, e entry.Entry, nameWidth int, now time.Time) string {
	name := TruncateName(e.Name, nameWidth)
	if e.IsDir {
		name = dirColor.Sprint(name + "/")
	}
	size := ""
	if !e.IsDir {
		size = HumanSize(e.Size)
	}
	return fmt.Sprintf("%3d) %-*s %8s %s", displayIndex, nameWidth+1, name, size, AdaptiveTimestamp(e.ModTime, now))
}

// RenderFooter prints the current page out of the page count.
func RenderFooter(page, pageCount int) string {
	return fmt.Sprintf("page %d/%d", page+1, pageCount)
}
