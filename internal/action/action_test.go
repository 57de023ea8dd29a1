package action

import (
	"testing"

	"github.com/ivuorinen/ff/internal/navstate"
)

func TestParseEmptyIsRefresh(t *testing.T) {
	a := Parse("   ", nil)
	if a.Kind != KindRefresh {
		t.Fatalf("expected Refresh, got %+v", a)
	}
}

func TestParseSingleCharCommands(t *testing.T) {
	cases := map[string]Kind{
		"q": KindQuit,
		"b": KindParentDirectory,
		"t": KindOpenTerminalHere,
		"a": KindArchiveShortcut,
	}
	for in, want := range cases {
		got := Parse(in, nil)
		if got.Kind != want {
			t.Fatalf("Parse(%q).Kind = %v, want %v", in, got.Kind, want)
		}
	}
}

func TestParseSortAndFilterKeys(t *testing.T) {
	a := Parse("s", nil)
	if a.Kind != KindSort || a.SortKey != 's' {
		t.Fatalf("expected Sort('s'), got %+v", a)
	}
	f := Parse("d", nil)
	if f.Kind != KindFilter || f.FilterKey != 'd' {
		t.Fatalf("expected Filter('d'), got %+v", f)
	}
}

func TestParseGetSendKeys(t *testing.T) {
	for _, k := range []string{"v", "c", "y", "p", "g"} {
		a := Parse(k, nil)
		if a.Kind != KindEnterGetSendMode || string(a.GetSendKey) != k {
			t.Fatalf("Parse(%q) expected EnterGetSendMode, got %+v", k, a)
		}
	}
}

func TestParseSplitCommands(t *testing.T) {
	a := Parse("vsplit", nil)
	if a.Kind != KindTmuxSplit || !a.TmuxVertical {
		t.Fatalf("expected vertical tmux split, got %+v", a)
	}
	b := Parse("hsplit", nil)
	if b.Kind != KindTmuxSplit || b.TmuxVertical {
		t.Fatalf("expected horizontal tmux split, got %+v", b)
	}
}

// A tall-4 adjustment.
func TestParseTuiSize(t *testing.T) {
	a := Parse("tall-4", nil)
	if a.Kind != KindAdjustTuiSize || !a.Tall || a.Adjustment.Magnitude != 4 || a.Adjustment.Positive {
		t.Fatalf("expected tall-4, got %+v", a)
	}
	b := Parse("wide+12", nil)
	if b.Kind != KindAdjustTuiSize || b.Tall || b.Adjustment.Magnitude != 12 || !b.Adjustment.Positive {
		t.Fatalf("expected wide+12, got %+v", b)
	}
}

func TestParseTuiSizeRejectsOutOfRange(t *testing.T) {
	a := Parse("tall+99999", nil)
	if a.Kind == KindAdjustTuiSize {
		t.Fatalf("expected N > 65535 to fall through to search, got %+v", a)
	}
}

func TestParseNumericResolvesViaLookup(t *testing.T) {
	resolve := func(i int) (navstate.Lookup, bool) {
		if i == 3 {
			return navstate.Lookup{Path: "/some/dir", Kind: navstate.KindDirectory}, true
		}
		if i == 4 {
			return navstate.Lookup{Path: "/some/file.txt", Kind: navstate.KindFile}, true
		}
		return navstate.Lookup{}, false
	}

	dir := Parse("3", resolve)
	if dir.Kind != KindChangeDirectory || dir.Path != "/some/dir" {
		t.Fatalf("expected ChangeDirectory, got %+v", dir)
	}

	file := Parse("4", resolve)
	if file.Kind != KindOpenFile || file.Path != "/some/file.txt" {
		t.Fatalf("expected OpenFile, got %+v", file)
	}
}

func TestParseNumericMissFallsToSearch(t *testing.T) {
	resolve := func(i int) (navstate.Lookup, bool) { return navstate.Lookup{}, false }
	a := Parse("99", resolve)
	if a.Kind != KindSearch || a.SearchTerm != "99" {
		t.Fatalf("expected unresolved numeric input to fall to search, got %+v", a)
	}
}

func TestParseSearchWithFlags(t *testing.T) {
	a := Parse("doc -g -c", nil)
	if a.Kind != KindSearch || a.SearchTerm != "doc" || !a.SearchFlags.Grep || !a.SearchFlags.CaseSensitive {
		t.Fatalf("expected search doc/-g/-c, got %+v", a)
	}
}

func TestMatchPagination(t *testing.T) {
	if MatchPagination("w") != PagePrev {
		t.Fatalf("expected 'w' to be PagePrev")
	}
	if MatchPagination("next") != PageNext {
		t.Fatalf("expected 'next' to be PageNext")
	}
	if MatchPagination("zzz") != PageNone {
		t.Fatalf("expected unrecognized token to be PageNone")
	}
}
