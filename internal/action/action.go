// Package action turns one trimmed line of input into a
// tagged Action, following a fixed resolution order.
package action

import (
	"strconv"
	"strings"

	"github.com/ivuorinen/ff/internal/navstate"
	"github.com/ivuorinen/ff/internal/search"
)

// Kind discriminates an Action's payload.
type Kind int

const (
	KindInvalid Kind = iota
	KindQuit
	KindParentDirectory
	KindRefresh
	KindSort
	KindFilter
	KindOpenTerminalHere
	KindTmuxSplit
	KindAdjustTuiSize
	KindChangeDirectory
	KindOpenFile
	KindArchiveShortcut
	KindEnterGetSendMode
	KindSearch
)

// Action is the tagged union the session loop dispatches on.
type Action struct {
	Kind Kind

	SortKey   rune // for KindSort
	FilterKey rune // for KindFilter

	TmuxVertical bool // for KindTmuxSplit: true = vsplit, false = hsplit

	Tall       bool                 // for KindAdjustTuiSize
	Adjustment navstate.Adjustment  // for KindAdjustTuiSize

	Path string // for KindChangeDirectory / KindOpenFile

	GetSendKey rune // for KindEnterGetSendMode: one of v,c,y,p,g

	SearchTerm  string       // for KindSearch
	SearchFlags search.Flags // for KindSearch
}

// Resolver answers "what does this display index point at" using the
// navigation state's current lookup table.
type Resolver func(displayIndex int) (navstate.Lookup, bool)

var vsplitNames = map[string]bool{"vsplit": true}
var hsplitNames = map[string]bool{"hsplit": true}

// singleCharCommands is the step-2 lowercase single-character command set.
var singleCharCommands = map[rune]Kind{
	'q': KindQuit,
	'b': KindParentDirectory,
	't': KindOpenTerminalHere,
	'n': KindSort,
	's': KindSort,
	'm': KindSort,
	'd': KindFilter,
	'f': KindFilter,
	'a': KindArchiveShortcut,
	'v': KindEnterGetSendMode,
	'c': KindEnterGetSendMode,
	'y': KindEnterGetSendMode,
	'p': KindEnterGetSendMode,
	'g': KindEnterGetSendMode,
}

// Parse turns a raw line of input into an Action, following 
// the fixed seven-step resolution order. resolve is used only for step 6
// (numeric display-index lookup); it may be nil if no directory is
// currently displayed (numeric input then simply fails to resolve).
func Parse(raw string, resolve Resolver) Action {
	input := strings.TrimSpace(raw)

	// Step 1: empty -> Refresh.
	if input == "" {
		return Action{Kind: KindRefresh}
	}

	// Step 2: single lowercase character commands.
	if runes := []rune(input); len(runes) == 1 {
		r := runes[0]
		if kind, ok := singleCharCommands[r]; ok {
			switch kind {
			case KindSort:
				return Action{Kind: KindSort, SortKey: r}
			case KindFilter:
				return Action{Kind: KindFilter, FilterKey: r}
			case KindEnterGetSendMode:
				return Action{Kind: KindEnterGetSendMode, GetSendKey: r}
			default:
				return Action{Kind: kind}
			}
		}
	}

	// Step 3: lowercase word commands.
	lower := strings.ToLower(input)
	if vsplitNames[lower] {
		return Action{Kind: KindTmuxSplit, TmuxVertical: true}
	}
	if hsplitNames[lower] {
		return Action{Kind: KindTmuxSplit, TmuxVertical: false}
	}

	// Step 4: TUI size commands tall(+|-)N / wide(+|-)N.
	if a, tall, ok := parseTuiSize(lower); ok {
		return Action{Kind: KindAdjustTuiSize, Tall: tall, Adjustment: a}
	}

	// Step 5 (pagination) is intentionally not handled here: 
	// Pagination-key matching applies only inside the session loop while paging
	// shown results, not as a general Action.

	// Step 6: numeric input resolved against the current display-index
	// lookup.
	if n, err := strconv.Atoi(input); err == nil && resolve != nil {
		if l, ok := resolve(n); ok {
			if l.Kind == navstate.KindDirectory {
				return Action{Kind: KindChangeDirectory, Path: l.Path}
			}
			return Action{Kind: KindOpenFile, Path: l.Path}
		}
	}

	// Step 7: otherwise, the search path. The first token is the term;
	// the rest may be recognized flags.
	tokens := strings.Fields(input)
	term := tokens[0]
	flags := search.ParseFlags(tokens[1:])
	return Action{Kind: KindSearch, SearchTerm: term, SearchFlags: flags}
}

// parseTuiSize parses "tall+N", "tall-N", "wide+N", "wide-N" with
// N in [1,65535], no spaces.
func parseTuiSize(lower string) (navstate.Adjustment, bool, bool) {
	var tall bool
	var rest string
	switch {
	case strings.HasPrefix(lower, "tall"):
		tall = true
		rest = lower[len("tall"):]
	case strings.HasPrefix(lower, "wide"):
		tall = false
		rest = lower[len("wide"):]
	default:
		return navstate.Adjustment{}, false, false
	}

	if len(rest) < 2 {
		return navstate.Adjustment{}, false, false
	}
	sign := rest[0]
	if sign != '+' && sign != '-' {
		return navstate.Adjustment{}, false, false
	}
	digits := rest[1:]
	if !isAllDigits(digits) {
		return navstate.Adjustment{}, false, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > 65535 {
		return navstate.Adjustment{}, false, false
	}
	return navstate.Adjustment{Magnitude: uint16(n), Positive: sign == '+'}, tall, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PageDirection is the outcome of matching a pagination token, used by the
// session loop only while a paginated view (directory or search results)
// is shown 5.
type PageDirection int

const (
	PageNone PageDirection = iota
	PagePrev
	PageNext
)

var prevTokens = map[string]bool{
	"w": true, "j": true, "<": true, "[": true,
	"up": true, "prev": true, ",": true, "+": true, "\x1b[a": true,
}

var nextTokens = map[string]bool{
	"x": true, "k": true, ">": true, "]": true,
	"down": true, "next": true, ".": true, "-": true, "\x1b[b": true,
}

// MatchPagination checks raw against the shown-pages token sets from
//  ESC[A / ESC[B are matched case-insensitively against their
// literal escape sequence form.
func MatchPagination(raw string) PageDirection {
	input := strings.TrimSpace(raw)
	lower := strings.ToLower(input)
	if prevTokens[lower] {
		return PagePrev
	}
	if nextTokens[lower] {
		return PageNext
	}
	return PageNone
}
