// Package statemgr implements the file/directory LIFO stacks and the
// nicknamed "pocket dimension" saved-navigation-state table that back the
// Get/Send submenu, plus the archive-selection workflow.
//
// Supplement from original_source: the original's interactive submenus
// additionally let the user list and remove individual stack entries one
// at a time rather than only LIFO-pop, preserved here as
// Manager.RemoveFileAt/RemoveDirAt.
package statemgr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/archive"
	"github.com/ivuorinen/ff/internal/entry"
	"github.com/ivuorinen/ff/internal/fferr"
	"github.com/ivuorinen/ff/internal/navstate"
	"github.com/ivuorinen/ff/internal/sortfilter"
)

// SavedNavState is a value-copy snapshot of NavigationState's user-visible
// settings plus the directory, a timestamp, nickname, and an
// auto-generated description.
type SavedNavState struct {
	Directory    string
	Sort         sortfilter.SortMode
	Filter       sortfilter.Filter
	Selected     *int
	ActiveSearch *string
	Tui          navstate.TuiAdjustment
	CurrentPage  int

	Nickname    string
	Description string
	Timestamp   time.Time
}

// Manager owns the three StateManager collections: a file stack, a
// directory stack, and the nickname -> SavedNavState table.
type Manager struct {
	fs afero.Fs

	fileStack []string
	dirStack  []string
	pockets   map[string]SavedNavState
}

// New builds an empty Manager backed by fs, used to validate pushed paths
// and to create archive directories.
func New(fs afero.Fs) *Manager {
	return &Manager{fs: fs, pockets: map[string]SavedNavState{}}
}

// PushFile validates that path exists and is a regular file, then pushes
// it onto the file stack.
func (m *Manager) PushFile(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		return fferr.Wrap("push_file", path, fferr.ErrNotFound)
	}
	if info.IsDir() {
		return fferr.Wrap("push_file", path, fferr.ErrInvalidName)
	}
	m.fileStack = append(m.fileStack, path)
	return nil
}

// PopFile removes and returns the top of the file stack.
func (m *Manager) PopFile() (string, bool) {
	if len(m.fileStack) == 0 {
		return "", false
	}
	top := m.fileStack[len(m.fileStack)-1]
	m.fileStack = m.fileStack[:len(m.fileStack)-1]
	return top, true
}

// RemoveFileAt removes a single file-stack entry by its 0-based index
// without disturbing LIFO order for the rest, per the original
// implementation's per-entry delete in the Get/Send submenu.
func (m *Manager) RemoveFileAt(i int) bool {
	return removeAt(&m.fileStack, i)
}

// PushDirectory validates that path exists and is a directory, then pushes
// it onto the directory stack.
func (m *Manager) PushDirectory(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil || !info.IsDir() {
		return fferr.Wrap("push_directory", path, fferr.ErrNotFound)
	}
	m.dirStack = append(m.dirStack, path)
	return nil
}

// PopDirectory removes and returns the top of the directory stack.
func (m *Manager) PopDirectory() (string, bool) {
	if len(m.dirStack) == 0 {
		return "", false
	}
	top := m.dirStack[len(m.dirStack)-1]
	m.dirStack = m.dirStack[:len(m.dirStack)-1]
	return top, true
}

// RemoveDirAt removes a single directory-stack entry by its 0-based index.
func (m *Manager) RemoveDirAt(i int) bool {
	return removeAt(&m.dirStack, i)
}

// FileStack and DirStack expose read-only snapshots for rendering the
// Get/Send submenu.
func (m *Manager) FileStack() []string { return append([]string(nil), m.fileStack...) }
func (m *Manager) DirStack() []string  { return append([]string(nil), m.dirStack...) }

func removeAt(stack *[]string, i int) bool {
	s := *stack
	if i < 0 || i >= len(s) {
		return false
	}
	*stack = append(s[:i], s[i+1:]...)
	return true
}

// SavePocketDimension snapshots the given state under nickname. If
// nickname is empty, one is generated from the directory's leaf name plus
// a short modulo-10000 timestamp suffix. If nickname already names a
// saved state, confirmOverwrite is consulted; a false return (or a nil
// confirmOverwrite) aborts the save and returns an error.
func (m *Manager) SavePocketDimension(
	dir string,
	sortMode sortfilter.SortMode,
	filter sortfilter.Filter,
	selected *int,
	activeSearch *string,
	tui navstate.TuiAdjustment,
	currentPage int,
	nickname string,
	now time.Time,
	confirmOverwrite func(nickname string) bool,
) (string, error) {
	if nickname == "" {
		nickname = autoNickname(dir, now)
	}
	if _, exists := m.pockets[nickname]; exists {
		if confirmOverwrite == nil || !confirmOverwrite(nickname) {
			return "", fmt.Errorf("statemgr: nickname %q already exists", nickname)
		}
	}

	m.pockets[nickname] = SavedNavState{
		Directory:    dir,
		Sort:         sortMode,
		Filter:       filter,
		Selected:     selected,
		ActiveSearch: activeSearch,
		Tui:          tui,
		CurrentPage:  currentPage,
		Nickname:     nickname,
		Description:  fmt.Sprintf("%s @ %s", filepath.Base(dir), now.Format("2006-01-02 15:04")),
		Timestamp:    now,
	}
	return nickname, nil
}

func autoNickname(dir string, now time.Time) string {
	leaf := filepath.Base(dir)
	if leaf == "" || leaf == "." || leaf == string(filepath.Separator) {
		leaf = "root"
	}
	return fmt.Sprintf("%s_%04d", leaf, now.UnixNano()%10000)
}

// RestorePocketDimension returns the saved snapshot for nickname. The
// caller is responsible for applying its fields back onto live navigation
// state and directory view.
func (m *Manager) RestorePocketDimension(nickname string) (SavedNavState, bool) {
	s, ok := m.pockets[nickname]
	return s, ok
}

// ListPocketDimensions returns every saved state, most recently saved
// first.
func (m *Manager) ListPocketDimensions() []SavedNavState {
	out := make([]SavedNavState, 0, len(m.pockets))
	for _, s := range m.pockets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// ArchiveSelection implements the interactive archive workflow: ensure a
// sibling archive/ directory exists under currentDir, then either zip a
// directory target via zipper or copy a file target with a timestamped
// name (optionally wrapped in the bespoke single-file format). It returns
// the path written under archive/.
func (m *Manager) ArchiveSelection(
	currentDir string,
	target entry.Entry,
	zipper archive.Zipper,
	wrapBespoke bool,
	now time.Time,
) (string, error) {
	archiveDir := filepath.Join(currentDir, "archive")
	if err := m.fs.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("statemgr: creating archive directory: %w", err)
	}

	if target.IsDir {
		zipName := archive.TimestampedZipName(filepath.Base(target.AbsPath), "", now)
		dest := filepath.Join(archiveDir, zipName)
		if zipper == nil {
			return "", fferr.Wrap("archive_selection", target.AbsPath, fferr.ErrUnsupportedPlatform)
		}
		return dest, zipper.ZipDirectory(context.Background(), target.AbsPath, dest)
	}

	content, err := afero.ReadFile(m.fs, target.AbsPath)
	if err != nil {
		return "", fferr.Wrap("archive_selection", target.AbsPath, fferr.ErrNotFound)
	}
	name := archive.TimestampedName(filepath.Base(target.AbsPath), now)
	dest := filepath.Join(archiveDir, name)

	if wrapBespoke {
		f, err := m.fs.OpenFile(dest+".ffarc", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return "", fmt.Errorf("statemgr: opening bespoke archive: %w", err)
		}
		defer f.Close()
		if err := archive.WriteSingleFileArchive(f, filepath.Base(target.AbsPath), content); err != nil {
			return "", fmt.Errorf("statemgr: writing bespoke archive: %w", err)
		}
		return dest + ".ffarc", nil
	}

	if err := afero.WriteFile(m.fs, dest, content, 0o644); err != nil {
		return "", fmt.Errorf("statemgr: writing archived copy: %w", err)
	}
	return dest, nil
}
