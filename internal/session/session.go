// Package session implements the per-iteration render, read, dispatch
// loop that ties the directory reader, sorter/filter, paginated view,
// navigation state, input parser, search dispatcher, state manager, and
// opener together.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/action"
	"github.com/ivuorinen/ff/internal/archive"
	"github.com/ivuorinen/ff/internal/copyarchive"
	"github.com/ivuorinen/ff/internal/display"
	"github.com/ivuorinen/ff/internal/entry"
	"github.com/ivuorinen/ff/internal/fferr"
	"github.com/ivuorinen/ff/internal/navstate"
	"github.com/ivuorinen/ff/internal/opener"
	"github.com/ivuorinen/ff/internal/pagination"
	"github.com/ivuorinen/ff/internal/search"
	"github.com/ivuorinen/ff/internal/sortfilter"
	"github.com/ivuorinen/ff/internal/statemgr"
)

// Session owns the one piece of mutable state a running loop needs: the
// navigation state and the state manager, both single-writer, held here.
type Session struct {
	fs afero.Fs

	currentDir string
	nav        *navstate.State
	state      *statemgr.Manager

	openerDeps opener.Dependencies
	zipper     archive.Zipper

	in  *bufio.Scanner
	out io.Writer

	now func() time.Time
	pid int
}

// New builds a Session rooted at startDir, reading lines from in and
// writing rendered output to out.
func New(fs afero.Fs, startDir string, openerDeps opener.Dependencies, zipper archive.Zipper, in io.Reader, out io.Writer) *Session {
	return &Session{
		fs:         fs,
		currentDir: startDir,
		nav:        navstate.New(),
		state:      statemgr.New(fs),
		openerDeps: openerDeps,
		zipper:     zipper,
		in:         bufio.NewScanner(in),
		out:        out,
		now:        time.Now,
		pid:        os.Getpid(),
	}
}

// Run executes the session loop until the user quits or stdin is
// exhausted. On clean quit it prints the current absolute directory to
// out, so a calling shell can `cd` there.
func (s *Session) Run(ctx context.Context) error {
	for {
		entries, err := s.readCurrentDirectory()
		if err != nil {
			if !s.recoverFromDirectoryError(err) {
				return err
			}
			continue
		}

		sortfilter.Sort(entries, s.nav.Sort)
		filtered := sortfilter.Apply(entries, s.nav.Filter)

		view := pagination.New(filtered, s.nav.Tui.ItemsPerPage())
		view.SetCurrentPage(s.nav.CurrentPage)
		page := view.PageEntries()
		s.rebuildLookup(page)

		s.render(page, view)

		if !s.in.Scan() {
			return nil
		}
		line := s.in.Text()

		if dir := action.MatchPagination(line); dir != action.PageNone {
			s.applyPagination(view, dir)
			continue
		}

		act := action.Parse(line, s.nav.Resolve)
		quit, err := s.dispatch(ctx, act, entries)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			fmt.Fprintln(s.out, s.currentDir)
			return nil
		}
	}
}

func (s *Session) readCurrentDirectory() ([]entry.Entry, error) {
	return entry.ReadDirectory(s.fs, s.currentDir)
}

// recoverFromDirectoryError implements the recovery policy: NotFound
// navigates to the parent (or cwd as a last resort); PermissionDenied is
// reported and also falls back to the parent. Returns false if recovery
// itself is impossible.
func (s *Session) recoverFromDirectoryError(err error) bool {
	fmt.Fprintf(s.out, "error: %v\n", err)

	switch {
	case errors.Is(err, fferr.ErrNotFound), errors.Is(err, fferr.ErrPermissionDenied):
		parent := filepath.Dir(s.currentDir)
		if parent == s.currentDir {
			cwd, cwdErr := os.Getwd()
			if cwdErr != nil {
				return false
			}
			s.currentDir = cwd
			return true
		}
		s.currentDir = parent
		return true
	default:
		return false
	}
}

func (s *Session) rebuildLookup(page []entry.Entry) {
	rows := make([]navstate.Lookup, len(page))
	for i, e := range page {
		kind := navstate.KindFile
		if e.IsDir {
			kind = navstate.KindDirectory
		}
		rows[i] = navstate.Lookup{Path: e.AbsPath, Kind: kind}
	}
	s.nav.RebuildLookup(rows)
}

func (s *Session) render(page []entry.Entry, view *pagination.View) {
	fmt.Fprint(s.out, display.RenderHeader(s.currentDir, s.nav.Sort, s.nav.Filter))
	now := s.now()
	for i, e := range page {
		fmt.Fprintln(s.out, display.RenderRow(i+1, e, s.nav.Tui.NameWidth(), now))
	}
	fmt.Fprintln(s.out, display.RenderFooter(view.CurrentPage(), view.PageCount()))
}

func (s *Session) applyPagination(view *pagination.View, dir action.PageDirection) {
	if dir == action.PagePrev {
		view.PrevPage()
	} else {
		view.NextPage()
	}
	s.nav.CurrentPage = view.CurrentPage()
}

// dispatch executes act, returning whether the session should quit.
func (s *Session) dispatch(ctx context.Context, act action.Action, currentEntries []entry.Entry) (bool, error) {
	switch act.Kind {
	case action.KindQuit:
		return true, nil

	case action.KindParentDirectory:
		s.currentDir = filepath.Dir(s.currentDir)
		s.nav.OnDirectoryChange()

	case action.KindRefresh:
		s.nav.ResetToCleanState()

	case action.KindSort:
		s.nav.ToggleSort(sortfilter.SortKey(act.SortKey))

	case action.KindFilter:
		s.nav.SetFilter(act.FilterKey)

	case action.KindOpenTerminalHere:
		if err := s.openerDeps.Runner.Start(ctx, "x-terminal-emulator"); err != nil {
			logrus.WithError(err).Warn("session: failed to open a terminal here")
		}

	case action.KindTmuxSplit:
		flag := "-h"
		if act.TmuxVertical {
			flag = "-v"
		}
		if err := s.openerDeps.Runner.Run(ctx, "tmux", "split-window", flag, "-c", s.currentDir); err != nil {
			logrus.WithError(err).Warn("session: tmux split failed")
		}

	case action.KindAdjustTuiSize:
		s.nav.ApplyTuiAdjustment(act.Tall, act.Adjustment)

	case action.KindChangeDirectory:
		s.currentDir = act.Path
		s.nav.OnDirectoryChange()

	case action.KindOpenFile:
		return false, s.openFile(ctx, act.Path)

	case action.KindArchiveShortcut:
		return false, s.archiveSelection(act)

	case action.KindEnterGetSendMode:
		return false, s.getSendSubmenu(act.GetSendKey)

	case action.KindSearch:
		return false, s.runSearch(currentEntries, act)

	default:
		fmt.Fprintln(s.out, "invalid input")
	}
	return false, nil
}

// openFile reads one further line as the opener prompt (editor name,
// flags, or partner-program number) and dispatches it.
func (s *Session) openFile(ctx context.Context, path string) error {
	fmt.Fprint(s.out, "open with: ")
	if !s.in.Scan() {
		return nil
	}
	_, err := opener.Dispatch(ctx, s.openerDeps, s.in.Text(), path)
	return err
}

// archiveSelection archives the current directory as a whole, per the
// single-key 'a' shortcut (no secondary prompt).
func (s *Session) archiveSelection(act action.Action) error {
	target, err := entry.StatEntry(s.fs, s.currentDir)
	if err != nil {
		return err
	}

	dest, err := s.state.ArchiveSelection(filepath.Dir(s.currentDir), target, s.zipper, false, s.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "archived to %s\n", dest)
	return nil
}

// runSearch dispatches a search, renders the results, and resolves the
// user's secondary numeric selection by probing the target on disk
// (renumbered recursive/grep results aren't present in the current
// directory's lookup table).
func (s *Session) runSearch(currentEntries []entry.Entry, act action.Action) error {
	results := search.Dispatch(s.fs, s.currentDir, currentEntries, act.SearchTerm, act.SearchFlags)
	if len(results) == 0 {
		fmt.Fprintln(s.out, "no matches")
		return nil
	}
	for _, r := range results {
		switch r.Kind {
		case search.KindFuzzy:
			fmt.Fprintf(s.out, "%3d) %s (d=%d)\n", r.DisplayIndex, r.Name, r.EditDistance)
		case search.KindGrep:
			fmt.Fprintf(s.out, "%3d) %s:%d: %s\n", r.DisplayIndex, r.FileName, r.LineNumber, r.LineContent)
		}
	}

	fmt.Fprint(s.out, "select: ")
	if !s.in.Scan() {
		return nil
	}
	n, err := strconv.Atoi(s.in.Text())
	if err != nil || n < 1 || n > len(results) {
		return nil
	}
	selected := results[n-1]

	e, err := entry.StatEntry(s.fs, selected.Path)
	if err != nil {
		return err
	}
	if e.IsDir {
		s.currentDir = e.AbsPath
		s.nav.OnDirectoryChange()
		return nil
	}
	return s.openFile(context.Background(), e.AbsPath)
}

// getSendSubmenu handles the Get/Send interactive workflow. Key mapping
// (not pinned by spec beyond "the interactive submenu"): c pushes the
// selection, p pops and copies the top of the file stack into the
// current directory, y saves a pocket dimension under a prompted
// nickname, g restores one by nickname, v lists both stacks and all
// saved pocket dimensions.
func (s *Session) getSendSubmenu(key rune) error {
	switch key {
	case 'c':
		fmt.Fprint(s.out, "push which display index: ")
		if !s.in.Scan() {
			return nil
		}
		n, err := strconv.Atoi(s.in.Text())
		if err != nil {
			return fferr.Wrap("get_send", s.in.Text(), fferr.ErrInvalidName)
		}
		l, ok := s.nav.Resolve(n)
		if !ok {
			return fferr.Wrap("get_send", s.in.Text(), fferr.ErrInvalidName)
		}
		if l.Kind == navstate.KindDirectory {
			return s.state.PushDirectory(l.Path)
		}
		return s.state.PushFile(l.Path)

	case 'p':
		top, ok := s.state.PopFile()
		if !ok {
			fmt.Fprintln(s.out, "file stack is empty")
			return nil
		}
		return copyarchive.Copy(s.fs, top, s.currentDir, s.pid, s.now)

	case 'y':
		fmt.Fprint(s.out, "nickname (blank for auto): ")
		nickname := ""
		if s.in.Scan() {
			nickname = s.in.Text()
		}
		_, err := s.state.SavePocketDimension(
			s.currentDir, s.nav.Sort, s.nav.Filter, s.nav.Selected, s.nav.ActiveSearch,
			s.nav.Tui, s.nav.CurrentPage, nickname, s.now(), s.confirmOverwrite)
		return err

	case 'g':
		fmt.Fprint(s.out, "restore nickname: ")
		if !s.in.Scan() {
			return nil
		}
		saved, ok := s.state.RestorePocketDimension(s.in.Text())
		if !ok {
			fmt.Fprintln(s.out, "no such pocket dimension")
			return nil
		}
		s.currentDir = saved.Directory
		s.nav.Sort = saved.Sort
		s.nav.Filter = saved.Filter
		s.nav.Selected = saved.Selected
		s.nav.ActiveSearch = saved.ActiveSearch
		s.nav.Tui = saved.Tui
		s.nav.CurrentPage = saved.CurrentPage
		return nil

	case 'v':
		fmt.Fprintln(s.out, "files:", s.state.FileStack())
		fmt.Fprintln(s.out, "directories:", s.state.DirStack())
		for _, p := range s.state.ListPocketDimensions() {
			fmt.Fprintf(s.out, "%s -> %s (%s)\n", p.Nickname, p.Directory, p.Description)
		}
		return nil
	}
	return fferr.Wrap("get_send", string(key), fferr.ErrInvalidName)
}

func (s *Session) confirmOverwrite(nickname string) bool {
	fmt.Fprintf(s.out, "%q already exists, overwrite? [y/N] ", nickname)
	if !s.in.Scan() {
		return false
	}
	return s.in.Text() == "y" || s.in.Text() == "Y"
}
