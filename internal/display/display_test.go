package display

import (
	"strings"
	"testing"
	"time"

	"github.com/ivuorinen/ff/internal/entry"
	"github.com/ivuorinen/ff/internal/sortfilter"
)

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		0:                 "0B",
		512:               "512B",
		1536:              "1.5K",
		10 * 1024:         "10K",
		5 * 1024 * 1024:   "5.0M",
		12 * 1024 * 1024:  "12M",
	}
	for in, want := range cases {
		if got := HumanSize(in); got != want {
			t.Fatalf("HumanSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestAdaptiveTimestamp(t *testing.T) {
	now := time.Date(2026, 7, 31, 14, 0, 0, 0, time.UTC)

	today := time.Date(2026, 7, 31, 9, 5, 0, 0, time.UTC)
	if got := AdaptiveTimestamp(today, now); got != "09:05" {
		t.Fatalf("expected bare time for same day, got %q", got)
	}

	sameYear := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := AdaptiveTimestamp(sameYear, now); got != "Jan 02" {
		t.Fatalf("expected month/day for same year, got %q", got)
	}

	older := time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := AdaptiveTimestamp(older, now); got != "Jan 02 2019" {
		t.Fatalf("expected full date for a different year, got %q", got)
	}
}

func TestTruncateNamePreservesSuffix(t *testing.T) {
	name := "a-very-long-filename-indeed.tar.gz"
	got := TruncateName(name, 15)
	if len([]rune(got)) > 15 {
		t.Fatalf("expected truncation to fit width 15, got %q (%d runes)", got, len([]rune(got)))
	}
	if !strings.HasSuffix(got, name[len(name)-8:]) {
		t.Fatalf("expected the last 8 runes preserved, got %q", got)
	}
	if !strings.Contains(got, "...") {
		t.Fatalf("expected an ellipsis marker, got %q", got)
	}
}

func TestTruncateNameUnchangedWhenShort(t *testing.T) {
	if got := TruncateName("short.go", 30); got != "short.go" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestRenderHeaderMarksActiveSortColumn(t *testing.T) {
	h := RenderHeader("/tmp", sortfilter.SortMode{Key: sortfilter.KeySize, Asc: false}, sortfilter.FilterDirsOnly)
	if !strings.Contains(h, "/tmp") || !strings.Contains(h, "filter=dirs") {
		t.Fatalf("expected header to contain dir and filter, got %q", h)
	}
	if !strings.Contains(h, "size(desc)") {
		t.Fatalf("expected the active size column to be marked with its direction, got %q", h)
	}
}

func TestRenderRowDirectoryHasNoSize(t *testing.T) {
	e := entry.Entry{Name: "sub", IsDir: true}
	row := RenderRow(1, e, 30, time.Now())
	if strings.Contains(row, "0B") {
		t.Fatalf("did not expect a byte size for a directory row: %q", row)
	}
}
