// Package entry reads one directory's worth of filesystem entries.
// It never recurses and never mutates the entries it returns;
// their lifetime is the current render cycle unless the caller copies them
// into a search result.
package entry

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/fferr"
)

// Entry is one filesystem item exposed to the UI, with a metadata snapshot
// taken at read time.
type Entry struct {
	Name    string // display name, not a path
	AbsPath string
	Size    int64 // 0 for directories
	ModTime time.Time
	IsDir   bool
}

// ReadDirectory enumerates one directory via fs. Opening the directory
// itself is the only whole-listing failure point: NotFound, PermissionDenied,
// or an unclassified error there aborts the read. Once open, each child
// name is stat'd independently; a name whose metadata can't be read is
// logged and skipped rather than discarding the entries that did read
// cleanly.
func ReadDirectory(fs afero.Fs, path string) ([]Entry, error) {
	dir, err := fs.Open(path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fferr.Wrap("read_directory", path, fferr.ErrNotFound)
		case errors.Is(err, os.ErrPermission):
			return nil, fferr.Wrap("read_directory", path, fferr.ErrPermissionDenied)
		default:
			return nil, fferr.Wrap("read_directory", path, err)
		}
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrPermission):
			return nil, fferr.Wrap("read_directory", path, fferr.ErrPermissionDenied)
		default:
			return nil, fferr.Wrap("read_directory", path, err)
		}
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		absPath := filepath.Join(path, name)

		info, statErr := fs.Stat(absPath)
		if statErr != nil {
			logrus.WithField("path", absPath).WithError(statErr).Warn("entry: skipping unreadable directory entry")
			continue
		}

		modTime := info.ModTime()
		if modTime.IsZero() {
			modTime = time.Unix(0, 0).UTC()
		}

		size := info.Size()
		isDir := info.IsDir()
		if isDir {
			size = 0
		}

		entries = append(entries, Entry{
			Name:    name,
			AbsPath: absPath,
			Size:    size,
			ModTime: modTime.UTC(),
			IsDir:   isDir,
		})
	}

	return entries, nil
}

// StatEntry builds a single Entry by probing path on disk, used by the
// search result pager to classify renumbered
// recursive/grep results that aren't present in the current directory's
// display-index lookup.
func StatEntry(fs afero.Fs, path string) (Entry, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, fferr.Wrap("stat", path, fferr.ErrNotFound)
		}
		logrus.WithField("path", path).WithError(err).Warn("entry: metadata read failed")
		return Entry{}, fferr.Wrap("stat", path, fferr.ErrMetadata)
	}
	size := info.Size()
	if info.IsDir() {
		size = 0
	}
	return Entry{
		Name:    info.Name(),
		AbsPath: path,
		Size:    size,
		ModTime: info.ModTime().UTC(),
		IsDir:   info.IsDir(),
	}, nil
}
