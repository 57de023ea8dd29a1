// Package walk implements a bounded, iterative BFS over a directory
// tree with depth, entry-count, and memory caps.
//
// The traversal is a single-root iterative FIFO queue rather than a
// goroutine-per-root fan-out, so that caps can stop enumeration
// mid-traversal deterministically without extra coordination.
package walk

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/entry"
)

// Caps bounds a single enumeration. MaxMemoryBytes is advisory: it is
// estimated from entry count * a fixed per-entry overhead, since Go does
// not expose per-allocation byte accounting cheaply.
type Caps struct {
	MaxDepth       int
	MaxEntries     int
	MaxMemoryBytes int64
}

// DefaultCaps matches the resource caps.
func DefaultCaps() Caps {
	return Caps{MaxDepth: 20, MaxEntries: 100_000, MaxMemoryBytes: 500 * 1024 * 1024}
}

// estimatedBytesPerEntry is a conservative guess for the advisory memory
// cap: a full path string, a small struct, and map/slice overhead.
const estimatedBytesPerEntry = 256

type queueItem struct {
	path  string
	depth int
}

// Result is the output of Walk: every entry reached within the caps, plus
// whether traversal stopped early because a cap was hit.
type Result struct {
	Entries  []entry.Entry
	Truncated bool
}

// Walk performs the bounded BFS starting at root. Unreadable directories
// are skipped with a warning rather than aborting the walk, and a cap
// breach is logged as a warning before the partial result is returned. Child
// directories are enqueued only when depth+1 <= caps.MaxDepth.
func Walk(fs afero.Fs, root string, caps Caps) Result {
	queue := []queueItem{{path: root, depth: 0}}
	var out []entry.Entry
	truncated := false

	for len(queue) > 0 {
		if len(out) >= caps.MaxEntries {
			truncated = true
			break
		}
		if int64(len(out))*estimatedBytesPerEntry >= caps.MaxMemoryBytes {
			truncated = true
			break
		}

		item := queue[0]
		queue = queue[1:]

		children, err := entry.ReadDirectory(fs, item.path)
		if err != nil {
			logrus.WithField("path", item.path).WithError(err).Warn("walk: skipping unreadable directory")
			continue
		}

		for _, c := range children {
			if len(out) >= caps.MaxEntries {
				truncated = true
				break
			}
			out = append(out, c)

			if c.IsDir && item.depth+1 <= caps.MaxDepth {
				queue = append(queue, queueItem{path: c.AbsPath, depth: item.depth + 1})
			}
		}
	}

	if truncated {
		logrus.WithField("path", root).WithField("entries", len(out)).Warn("walk: cap reached, returning partial results")
	}
	return Result{Entries: out, Truncated: truncated}
}
