// Package copyarchive implements the six-step atomic overwrite
// protocol. At every intermediate failure point an
// uncorrupted copy of the prior target file survives somewhere on disk.
package copyarchive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/calendar"
	"github.com/ivuorinen/ff/internal/fferr"
)

// Clock is injectable so tests can pin the timestamp used in the temp-file
// uniquifier and the archived file's name (the pid is passed to Copy).
type Clock func() time.Time

// Copy performs the protocol: copy sourceFile into destinationDir, safely
// displacing any existing file of the same name into destinationDir's
// sibling archive/ directory.
func Copy(fs afero.Fs, sourceFile, destinationDir string, pid int, now Clock) error {
	if now == nil {
		now = time.Now
	}

	srcInfo, err := fs.Stat(sourceFile)
	if err != nil {
		return fferr.Wrap("copy_with_archive", sourceFile, fferr.ErrNotFound)
	}
	if srcInfo.IsDir() {
		return fferr.Wrap("copy_with_archive", sourceFile, fferr.ErrInvalidName)
	}
	dstInfo, err := fs.Stat(destinationDir)
	if err != nil || !dstInfo.IsDir() {
		return fferr.Wrap("copy_with_archive", destinationDir, fferr.ErrNotFound)
	}

	name := filepath.Base(sourceFile)
	target := filepath.Join(destinationDir, name)

	if _, err := fs.Stat(target); errors.Is(err, os.ErrNotExist) {
		return copyFile(fs, sourceFile, target)
	}

	uniq := fmt.Sprintf("%d_%d", pid, now().UnixNano())
	backup := filepath.Join(destinationDir, "backup_"+uniq+"_"+name)
	tempNew := filepath.Join(destinationDir, "newfile_"+uniq+"_"+name)
	archiveDir := filepath.Join(destinationDir, "archive")

	// Step a: back up the existing target. If it vanished meanwhile,
	// there is no conflict: fall back to a plain copy.
	if err := copyFile(fs, target, backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return copyFile(fs, sourceFile, target)
		}
		return fmt.Errorf("copy_with_archive: backing up %s: %w", target, err)
	}

	// Step b: copy source into a temp name in the destination.
	if err := copyFile(fs, sourceFile, tempNew); err != nil {
		_ = fs.Remove(backup)
		return fmt.Errorf("copy_with_archive: staging new copy: %w", err)
	}

	// Step c: ensure archive/ exists.
	if err := fs.MkdirAll(archiveDir, 0o755); err != nil {
		_ = fs.Remove(tempNew)
		_ = fs.Remove(backup)
		return fmt.Errorf("copy_with_archive: creating archive dir: %w", err)
	}

	// Step d: move the existing target into archive/ with a timestamp
	// suffix.
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	suffix := calendar.FormatSuffix(calendar.FromEpochSeconds(now().Unix()))
	archived := filepath.Join(archiveDir, stem+"_"+suffix+ext)
	if err := moveFile(fs, target, archived); err != nil {
		_ = fs.Remove(tempNew)
		return fmt.Errorf("copy_with_archive: archiving prior %s (backup preserved at %s): %w", target, backup, err)
	}

	// Step e: move the staged new file into place.
	if err := moveFile(fs, tempNew, target); err != nil {
		if restoreErr := moveFile(fs, backup, target); restoreErr != nil {
			if restoreErr2 := copyFile(fs, archived, target); restoreErr2 != nil {
				return fmt.Errorf(
					"copy_with_archive: placing new file failed (%v); restore from backup failed (%v); restore from archive failed (%v)",
					err, restoreErr, restoreErr2)
			}
		}
		return fmt.Errorf("copy_with_archive: placing new file: %w", err)
	}

	// Step f: clean up the backup. Failure here is non-fatal.
	if err := fs.Remove(backup); err != nil {
		logrus.WithField("path", backup).WithError(err).Warn("copy_with_archive: failed to remove backup copy")
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := fs.Stat(src)
	if err != nil {
		return err
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// moveFile renames src to dst, falling back to copy+remove when rename
// fails (e.g. crossing a filesystem boundary).
func moveFile(fs afero.Fs, src, dst string) error {
	if err := fs.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(fs, src, dst); err != nil {
		return err
	}
	return fs.Remove(src)
}
