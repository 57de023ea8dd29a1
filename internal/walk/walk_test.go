package walk

import (
	"testing"

	"github.com/spf13/afero"
)

func buildTree(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	dirs := []string{
		"/root/a/b/c",
		"/root/d",
		"/root/unreadable",
	}
	for _, d := range dirs {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	files := []string{
		"/root/top.txt",
		"/root/a/one.txt",
		"/root/a/b/two.txt",
		"/root/a/b/c/three.txt",
		"/root/d/four.txt",
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestWalkFindsAllEntries(t *testing.T) {
	fs := buildTree(t)
	res := Walk(fs, "/root", DefaultCaps())
	if res.Truncated {
		t.Fatalf("did not expect truncation")
	}
	// 3 top-level dirs + top.txt, then nested: a/{one.txt,b/}, b/{two.txt,c/}, c/three.txt, d/four.txt
	if len(res.Entries) == 0 {
		t.Fatalf("expected entries, got none")
	}
	var names []string
	for _, e := range res.Entries {
		names = append(names, e.Name)
	}
	mustContain(t, names, "three.txt")
	mustContain(t, names, "four.txt")
}

func TestWalkRespectsDepthCap(t *testing.T) {
	fs := buildTree(t)
	res := Walk(fs, "/root", Caps{MaxDepth: 1, MaxEntries: 100_000, MaxMemoryBytes: 1 << 30})
	for _, e := range res.Entries {
		if e.Name == "three.txt" {
			t.Fatalf("three.txt is at depth 3 and must not appear with MaxDepth=1")
		}
	}
}

func TestWalkRespectsEntryCap(t *testing.T) {
	fs := buildTree(t)
	res := Walk(fs, "/root", Caps{MaxDepth: 20, MaxEntries: 2, MaxMemoryBytes: 1 << 30})
	if !res.Truncated {
		t.Fatalf("expected truncation when entry cap is hit")
	}
	if len(res.Entries) > 2 {
		t.Fatalf("expected at most 2 entries, got %d", len(res.Entries))
	}
}

func mustContain(t *testing.T, haystack []string, want string) {
	t.Helper()
	for _, s := range haystack {
		if s == want {
			return
		}
	}
	t.Fatalf("expected %q among %v", want, haystack)
}
