// Package opener implements maps a user's open-with prompt to a
// launch strategy — system default, headless-in-place, tmux split,
// registered partner executable, named GUI editor, or a prioritized
// terminal-emulator spawn.
package opener

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/fferr"
	"github.com/ivuorinen/ff/internal/procrunner"
)

// guiEditors is the known GUI editor set that gets spawned detached
// rather than inside a new terminal window.
var guiEditors = map[string]bool{
	"code": true, "sublime": true, "subl": true,
	"gedit": true, "kate": true, "notepad++": true,
}

// terminalPriority is tried in order when spawning a new terminal window
// for a non-GUI editor name.
var terminalPriority = []string{
	"gnome-terminal", "konsole", "xfce4-terminal", "terminator",
	"tilix", "kitty", "alacritty", "xterm",
}

// Opener launches the platform default handler for a path (open,
// xdg-open, cmd /C start).
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Terminal spawns an editor in a new terminal window or a tmux split.
type Terminal interface {
	SpawnWindow(ctx context.Context, editor, path string) error
	SpawnTmuxSplit(ctx context.Context, editor, path string, vertical bool) error
}

// CSVAnalyzer is the out-of-core CSV pre-analysis collaborator invoked by
// -rc/--rows-and-columns.
type CSVAnalyzer interface {
	Analyze(ctx context.Context, path string) (string, error)
}

// LinuxOpener shells out to xdg-open, the POSIX/Linux platform default.
type LinuxOpener struct {
	Runner procrunner.Runner
}

func (o LinuxOpener) Open(ctx context.Context, path string) error {
	return o.Runner.Start(ctx, "xdg-open", path)
}

// LinuxTerminal implements Terminal by trying Priority (or the built-in
// terminalPriority when Priority is empty) in order, and by driving tmux
// split-window for the split strategies.
type LinuxTerminal struct {
	Runner   procrunner.Runner
	Priority []string
}

func (t LinuxTerminal) SpawnWindow(ctx context.Context, editor, path string) error {
	priority := t.Priority
	if len(priority) == 0 {
		priority = terminalPriority
	}
	for _, term := range priority {
		if err := t.Runner.Start(ctx, term, "-e", editor, path); err == nil {
			return nil
		}
	}
	return fferr.ErrNoTerminalFound
}

func (t LinuxTerminal) SpawnTmuxSplit(ctx context.Context, editor, path string, vertical bool) error {
	flag := "-h"
	if vertical {
		flag = "-v"
	}
	return t.Runner.Run(ctx, "tmux", "split-window", flag, editor, path)
}

// Flags are the recognized opener-prompt modifiers.
type Flags struct {
	Headless       bool
	VerticalSplit  bool
	HorizontalSplit bool
	RowsAndColumns bool
}

func parseFlag(tok string) (Flags, bool) {
	switch tok {
	case "-h", "--headless":
		return Flags{Headless: true}, true
	case "-vsplit", "--vertical-split-tmux":
		return Flags{VerticalSplit: true}, true
	case "-hsplit", "--horizontal-split-tmux":
		return Flags{HorizontalSplit: true}, true
	case "-rc", "--rows-and-columns":
		return Flags{RowsAndColumns: true}, true
	default:
		return Flags{}, false
	}
}

// splitPrompt separates recognized flag tokens from the remaining tokens
// (the editor name or partner-program number).
func splitPrompt(tokens []string) (Flags, []string) {
	var flags Flags
	var rest []string
	for _, tok := range tokens {
		if f, ok := parseFlag(tok); ok {
			flags.Headless = flags.Headless || f.Headless
			flags.VerticalSplit = flags.VerticalSplit || f.VerticalSplit
			flags.HorizontalSplit = flags.HorizontalSplit || f.HorizontalSplit
			flags.RowsAndColumns = flags.RowsAndColumns || f.RowsAndColumns
			continue
		}
		rest = append(rest, tok)
	}
	return flags, rest
}

// Dependencies bundles the strategy collaborators Dispatch needs.
type Dependencies struct {
	Runner          procrunner.Runner
	Opener          Opener
	Terminal        Terminal
	CSVAnalyzer     CSVAnalyzer
	PartnerPrograms []string

	// DefaultEditor fills in for a missing editor token in the flag-only
	// forms (-h, -vsplit, -hsplit) and the bare terminal-editor step, so a
	// configured $EDITOR/$VISUAL still works without typing it every time.
	// The empty-prompt platform-default step and a bare numeric
	// partner-program token are unaffected.
	DefaultEditor string
}

// Dispatch resolves prompt against targetPath following a fixed
// seven-step resolution order, returning the path actually opened (which
// may have been replaced by the CSV analyzer).
func Dispatch(ctx context.Context, deps Dependencies, prompt, targetPath string) (string, error) {
	input := strings.TrimSpace(prompt)

	// Step 1: empty -> platform default.
	if input == "" {
		return targetPath, deps.Opener.Open(ctx, targetPath)
	}

	tokens := strings.Fields(input)
	flags, rest := splitPrompt(tokens)

	// Step 2: CSV pre-analysis.
	if flags.RowsAndColumns && strings.EqualFold(filepath.Ext(targetPath), ".csv") {
		if deps.CSVAnalyzer == nil {
			return "", fferr.Wrap("opener", targetPath, fferr.ErrUnsupportedPlatform)
		}
		analyzed, err := deps.CSVAnalyzer.Analyze(ctx, targetPath)
		if err != nil {
			return "", fmt.Errorf("opener: csv analysis: %w", err)
		}
		targetPath = analyzed
	}

	var editorToken string
	if len(rest) > 0 {
		editorToken = rest[0]
	}
	if editorToken == "" {
		editorToken = deps.DefaultEditor
	}

	// Step 3: headless, synchronous, in the current terminal.
	if flags.Headless {
		if editorToken == "" {
			return "", fferr.Wrap("opener", targetPath, fferr.ErrInvalidName)
		}
		return targetPath, deps.Runner.Run(ctx, editorToken, targetPath)
	}

	// Step 4: tmux split.
	if flags.VerticalSplit || flags.HorizontalSplit {
		if editorToken == "" {
			return "", fferr.Wrap("opener", targetPath, fferr.ErrInvalidName)
		}
		return targetPath, deps.Terminal.SpawnTmuxSplit(ctx, editorToken, targetPath, flags.VerticalSplit)
	}

	// Step 5: numeric partner-program selection.
	if n, err := strconv.Atoi(editorToken); err == nil {
		if n < 1 || n > len(deps.PartnerPrograms) {
			return "", fferr.Wrap("opener", editorToken, fferr.ErrInvalidName)
		}
		program := deps.PartnerPrograms[n-1]
		return targetPath, deps.Terminal.SpawnWindow(ctx, program, targetPath)
	}

	// Step 6: known GUI editor, spawned detached.
	if guiEditors[editorToken] {
		if err := deps.Runner.Start(ctx, editorToken, targetPath); err != nil {
			return "", fferr.Wrap("opener", editorToken, fferr.ErrEditorLaunchFailed)
		}
		return targetPath, nil
	}

	// Step 7: terminal editor; fall back to the platform default if no
	// terminal emulator succeeds.
	if editorToken == "" {
		return "", fferr.Wrap("opener", targetPath, fferr.ErrInvalidName)
	}
	if err := deps.Terminal.SpawnWindow(ctx, editorToken, targetPath); err != nil {
		return targetPath, deps.Opener.Open(ctx, targetPath)
	}
	return targetPath, nil
}

const partnerProgramsHelpHeader = `# One absolute path per line to a partner file-opening executable.
# Blank lines and lines starting with # are ignored.
`

// LoadPartnerPrograms reads
// <execDir>/ff_data/absolute_paths_to_local_partner_fileopening_executibles.txt,
// creating it with a help header if absent. Each surviving line is
// validated to exist, not be a directory, and have at least one execute
// bit set; a line that fails validation is skipped silently, and a failure
// reading the file yields an empty list.
func LoadPartnerPrograms(fs afero.Fs, execDir string) []string {
	path := filepath.Join(execDir, "ff_data", "absolute_paths_to_local_partner_fileopening_executibles.txt")

	if _, err := fs.Stat(path); err != nil {
		_ = fs.MkdirAll(filepath.Dir(path), 0o755)
		_ = afero.WriteFile(fs, path, []byte(partnerProgramsHelpHeader), 0o644)
		return nil
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil
	}

	var out []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		info, err := fs.Stat(line)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 == 0 {
			continue
		}
		out = append(out, line)
	}
	return out
}
