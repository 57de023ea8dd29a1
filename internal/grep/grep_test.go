package grep

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/entry"
)

func setup(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	content := "hello\nDOCument\ndoc again\ndock\n"
	if err := afero.WriteFile(fs, "/d/notes.txt", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fs
}

// "doc" case-insensitive against "hello"/"DOCument"/"doc again"/"dock"
// yields 3 matches (lines 2,3,4 all contain "doc" once lowercased).
// Case-sensitive against the same needle still yields 2 matches: line 3
// ("doc again") matches verbatim, and line 4 ("dock") contains "doc" as
// a literal prefix under plain substring comparison. Only line 2
// ("DOCument") is excluded by case sensitivity.
func TestGrepCaseInsensitiveAndSensitive(t *testing.T) {
	fs := setup(t)
	entries := []entry.Entry{{Name: "notes.txt", AbsPath: "/d/notes.txt"}}

	insensitive := Search(fs, entries, "doc", false)
	if len(insensitive) != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", len(insensitive))
	}
	wantLines := []int{2, 3, 4}
	for i, m := range insensitive {
		if m.LineNumber != wantLines[i] {
			t.Fatalf("match %d: expected line %d, got %d", i, wantLines[i], m.LineNumber)
		}
	}

	sensitive := Search(fs, entries, "doc", true)
	if len(sensitive) != 2 {
		t.Fatalf("expected 2 case-sensitive matches, got %d: %+v", len(sensitive), sensitive)
	}
	wantSensitiveLines := []int{3, 4}
	for i, m := range sensitive {
		if m.LineNumber != wantSensitiveLines[i] {
			t.Fatalf("sensitive match %d: expected line %d, got %d", i, wantSensitiveLines[i], m.LineNumber)
		}
	}
}

func TestGrepNulByteAbandonsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "doc\x00withnul\ndoc again\n"
	if err := afero.WriteFile(fs, "/d/bin.txt", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	entries := []entry.Entry{{Name: "bin.txt", AbsPath: "/d/bin.txt"}}
	got := Search(fs, entries, "doc", false)
	if len(got) != 0 {
		t.Fatalf("expected zero results for a file with a NUL byte, got %v", got)
	}
}

func TestGrepCapsMatchesPerFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("match line\n")
	}
	if err := afero.WriteFile(fs, "/d/many.txt", []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	entries := []entry.Entry{{Name: "many.txt", AbsPath: "/d/many.txt"}}
	got := Search(fs, entries, "match", false)
	if len(got) != MaxMatchesPerFile {
		t.Fatalf("expected cap of %d matches, got %d", MaxMatchesPerFile, len(got))
	}
}

func TestGrepSkipsNonPlaintextAndDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/d/photo.png", []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	entries := []entry.Entry{
		{Name: "photo.png", AbsPath: "/d/photo.png"},
		{Name: "sub", AbsPath: "/d/sub", IsDir: true},
	}
	got := Search(fs, entries, "doc", false)
	if len(got) != 0 {
		t.Fatalf("expected no matches from non-plaintext/dir entries, got %v", got)
	}
}

func TestIsPlaintext(t *testing.T) {
	cases := map[string]bool{
		"notes.txt":  true,
		"main.go":    true,
		"image.png":  false,
		"README":     true,
		"Dockerfile": true,
		"binary":     false,
	}
	for name, want := range cases {
		if got := IsPlaintext(name); got != want {
			t.Fatalf("IsPlaintext(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTruncateLine(t *testing.T) {
	long := strings.Repeat("x", 150)
	got := truncateLine(long)
	if len([]rune(got)) != MaxLineLen+1 { // +1 for the ellipsis rune
		t.Fatalf("expected truncated length %d, got %d", MaxLineLen+1, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}
