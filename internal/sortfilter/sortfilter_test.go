package sortfilter

import (
	"testing"
	"time"

	"github.com/ivuorinen/ff/internal/entry"
)

func sample() []entry.Entry {
	return []entry.Entry{
		{Name: "a.txt", Size: 10, IsDir: false, ModTime: time.Unix(100, 0)},
		{Name: "Alpha", Size: 0, IsDir: true, ModTime: time.Unix(300, 0)},
		{Name: "b.txt", Size: 2048, IsDir: false, ModTime: time.Unix(200, 0)},
		{Name: "Beta", Size: 0, IsDir: true, ModTime: time.Unix(400, 0)},
	}
}

// Size-descending order (the mode two size toggles select) yields
// Beta, Alpha, b.txt, a.txt.
func TestSortBySizeDescending(t *testing.T) {
	entries := sample()
	Sort(entries, SortMode{Key: KeySize, Asc: false})

	got := names(entries)
	want := []string{"Beta", "Alpha", "b.txt", "a.txt"}
	if !equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDirsAlwaysFirst(t *testing.T) {
	for _, mode := range []SortMode{
		{Key: KeyName, Asc: true},
		{Key: KeyName, Asc: false},
		{Key: KeySize, Asc: true},
		{Key: KeyMtime, Asc: false},
	} {
		entries := sample()
		Sort(entries, mode)
		sawFile := false
		for _, e := range entries {
			if !e.IsDir {
				sawFile = true
			} else if sawFile {
				t.Fatalf("mode %+v: directory %q appeared after a file", mode, e.Name)
			}
		}
	}
}

func TestApplyFilter(t *testing.T) {
	entries := sample()

	dirsOnly := Apply(entries, FilterDirsOnly)
	if len(dirsOnly) != 2 {
		t.Fatalf("expected 2 dirs, got %d", len(dirsOnly))
	}

	filesOnly := Apply(entries, FilterFilesOnly)
	if len(filesOnly) != 2 {
		t.Fatalf("expected 2 files, got %d", len(filesOnly))
	}

	all := Apply(entries, FilterAll)
	if len(all) != len(entries) {
		t.Fatalf("FilterAll must return every entry")
	}
}

func names(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
