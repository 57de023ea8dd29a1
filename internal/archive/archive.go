// Package archive implements timestamped archive naming, a Zipper
// strategy for directory archival via the external zip binary, and a
// bespoke single-file archive format.
//
// The single-file format is not a real ZIP; it exists only to give users
// something when the external zip tool is absent, with no cross-tool
// compatibility guarantee.
package archive

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivuorinen/ff/internal/calendar"
	"github.com/ivuorinen/ff/internal/procrunner"
)

// TimestampedName builds "{stem}_{YY_MM_DD_HH_MM_SS}{ext}" for t.
func TimestampedName(name string, t time.Time) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	suffix := calendar.FormatSuffix(calendar.FromEpochSeconds(t.Unix()))
	return stem + "_" + suffix + ext
}

// TimestampedZipName builds "{dirName}_{YY_MM_DD_HH_MM_SS}.zip", with an
// optional custom prefix inserted as "{dirName}_{prefix}_{...}.zip".
func TimestampedZipName(dirName, prefix string, t time.Time) string {
	suffix := calendar.FormatSuffix(calendar.FromEpochSeconds(t.Unix()))
	if prefix == "" {
		return dirName + "_" + suffix + ".zip"
	}
	return dirName + "_" + prefix + "_" + suffix + ".zip"
}

// Zipper builds a zip archive of a directory. The concrete implementation
// shells out to the external zip binary; tests substitute a fake.
type Zipper interface {
	ZipDirectory(ctx context.Context, srcDir, destZipPath string) error
}

// ExternalZipper invokes the system `zip` binary via an injectable Runner,
// the same process-boundary seam used for tmux and editor invocation.
type ExternalZipper struct {
	Runner procrunner.Runner
}

// ZipDirectory runs `zip -r destZipPath srcDir` with absolute paths.
func (z ExternalZipper) ZipDirectory(ctx context.Context, srcDir, destZipPath string) error {
	runner := z.Runner
	if runner == nil {
		runner = procrunner.ExecRunner{}
	}
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return fmt.Errorf("archive: resolving source directory: %w", err)
	}
	absDest, err := filepath.Abs(destZipPath)
	if err != nil {
		return fmt.Errorf("archive: resolving zip destination: %w", err)
	}
	return runner.Run(ctx, "zip", "-r", absDest, absSrc)
}

// WriteSingleFileArchive writes the bespoke format:
// [filename_len: u32 LE][filename bytes][content_len: u64 LE][content bytes].
func WriteSingleFileArchive(w io.Writer, filename string, content []byte) error {
	nameBytes := []byte(filename)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(nameBytes))); err != nil {
		return err
	}
	if _, err := w.Write(nameBytes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(content))); err != nil {
		return err
	}
	_, err := w.Write(content)
	return err
}

// ReadSingleFileArchive reads back the format WriteSingleFileArchive wrote.
func ReadSingleFileArchive(r io.Reader) (filename string, content []byte, err error) {
	var nameLen uint32
	if err = binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return "", nil, err
	}
	nameBytes := make([]byte, nameLen)
	if _, err = io.ReadFull(r, nameBytes); err != nil {
		return "", nil, err
	}

	var contentLen uint64
	if err = binary.Read(r, binary.LittleEndian, &contentLen); err != nil {
		return "", nil, err
	}
	content = make([]byte, contentLen)
	if _, err = io.ReadFull(r, content); err != nil {
		return "", nil, err
	}
	return string(nameBytes), content, nil
}

