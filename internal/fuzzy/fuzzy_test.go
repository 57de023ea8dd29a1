package fuzzy

import (
	"testing"

	"github.com/ivuorinen/ff/internal/entry"
)

func TestSearchEmptyTerm(t *testing.T) {
	got := Search([]entry.Entry{{Name: "a.txt"}}, "")
	if got != nil {
		t.Fatalf("expected nil for empty term, got %v", got)
	}
}

// Law: exact prefix match has d=0 and sorts before any d>0 result.
func TestExactPrefixIsDistanceZero(t *testing.T) {
	entries := []entry.Entry{
		{Name: "document.pdf"},
		{Name: "doc.txt"},
		{Name: "random.bin"},
	}
	got := Search(entries, "doc")
	if len(got) == 0 {
		t.Fatal("expected at least one match")
	}
	if got[0].EditDistance != 0 {
		t.Fatalf("expected first match distance 0, got %d", got[0].EditDistance)
	}
	for i := 1; i < len(got); i++ {
		if got[i].EditDistance < got[i-1].EditDistance {
			t.Fatalf("results not sorted by distance ascending: %+v", got)
		}
	}
}

func TestDisplayIndexIsDenseFromOne(t *testing.T) {
	entries := []entry.Entry{
		{Name: "doc1.txt"},
		{Name: "doc2.txt"},
		{Name: "zzz.bin"},
	}
	got := Search(entries, "doc")
	for i, m := range got {
		if m.DisplayIndex != i+1 {
			t.Fatalf("expected DisplayIndex %d, got %d", i+1, m.DisplayIndex)
		}
	}
}

func TestStripExtensionNoOpWithoutDot(t *testing.T) {
	if stripExtension("README") != "README" {
		t.Fatalf("expected no-op when there is no dot")
	}
	if stripExtension("archive.tar.gz") != "archive.tar" {
		t.Fatalf("expected only the final extension stripped")
	}
}

func TestFarMatchExcluded(t *testing.T) {
	// Candidates are truncated to the term's length, so only the leading
	// "zzz" is compared with "doc": distance 3.
	got := Search([]entry.Entry{{Name: "zzzzz_unrelated_name.bin"}}, "doc")
	if len(got) != 0 {
		t.Fatalf("expected no matches beyond MaxSearchDistance, got %v", got)
	}
}
