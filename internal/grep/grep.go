// Package grep implements a streaming, line-by-line substring search
// over entries filtered to plaintext
package grep

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/spf13/afero"

	"github.com/ivuorinen/ff/internal/entry"
)

// MaxMatchesPerFile caps how many lines a single file may contribute.
const MaxMatchesPerFile = 10

// MaxLineLen is the display truncation length for a matched line.
const MaxLineLen = 100

// bufferSize is the approximate buffered-reader chunk size 
// calls for.
const bufferSize = 8 * 1024

// Match is one grep hit.
type Match struct {
	FileName     string
	FilePath     string
	LineNumber   int // 1-based
	LineContent  string
	DisplayIndex int // filled in by the caller after ordering
}

// Search scans every regular file in entries whose name passes
// IsPlaintext, opening it and checking line by line. A file is abandoned
// (its partial matches discarded) on first read error or on the first line
// containing a NUL byte.
func Search(fs afero.Fs, entries []entry.Entry, term string, caseSensitive bool) []Match {
	if term == "" {
		return nil
	}
	needle := term
	if !caseSensitive {
		needle = strings.ToLower(term)
	}

	var out []Match
	for _, e := range entries {
		if e.IsDir || !IsPlaintext(e.Name) {
			continue
		}
		matches, ok := searchFile(fs, e, needle, caseSensitive)
		if !ok {
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func searchFile(fs afero.Fs, e entry.Entry, needle string, caseSensitive bool) ([]Match, bool) {
	f, err := fs.Open(e.AbsPath)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, bufferSize), 1024*1024)

	var matches []Match
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if bytes.IndexByte(line, 0) >= 0 {
			// Binary heuristic: abandon the whole file, no partial results.
			return nil, false
		}

		haystack := string(line)
		compare := haystack
		if !caseSensitive {
			compare = strings.ToLower(haystack)
		}
		if !strings.Contains(compare, needle) {
			continue
		}

		matches = append(matches, Match{
			FileName:    e.Name,
			FilePath:    e.AbsPath,
			LineNumber:  lineNo,
			LineContent: truncateLine(haystack),
		})
		if len(matches) >= MaxMatchesPerFile {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, false
	}
	return matches, true
}

// truncateLine returns a UTF-8-safe copy of line capped to MaxLineLen
// characters, with a "…" suffix on truncation.
func truncateLine(line string) string {
	r := []rune(line)
	if len(r) <= MaxLineLen {
		return line
	}
	return string(r[:MaxLineLen]) + "…"
}

// plaintextExtensions and plaintextNames are initialized once and exposed
// read-only, per the Design Notes' instruction for global-ish lazy sets.
var plaintextExtensions = map[string]struct{}{
	"txt": {}, "csv": {}, "tsv": {}, "json": {}, "yaml": {}, "yml": {},
	"toml": {}, "md": {}, "markdown": {}, "rs": {}, "go": {}, "py": {},
	"c": {}, "cc": {}, "cpp": {}, "h": {}, "hpp": {}, "js": {}, "ts": {},
	"jsx": {}, "tsx": {}, "html": {}, "htm": {}, "css": {}, "sh": {},
	"bash": {}, "zsh": {}, "sql": {}, "log": {}, "ini": {}, "cfg": {},
	"conf": {}, "xml": {}, "rb": {}, "java": {}, "kt": {}, "swift": {},
	"php": {}, "pl": {}, "lua": {}, "r": {}, "scala": {}, "gradle": {},
	"properties": {}, "env": {},
}

var plaintextExtensionlessNames = map[string]struct{}{
	"readme": {}, "license": {}, "changelog": {}, "makefile": {},
	"dockerfile": {}, "authors": {}, "contributing": {}, "notice": {},
	"gemfile": {}, "rakefile": {}, "procfile": {},
}

// IsPlaintext classifies name by extension (case-insensitive) or by a
// known extensionless name
func IsPlaintext(name string) bool {
	lower := strings.ToLower(name)
	if idx := strings.LastIndex(lower, "."); idx >= 0 && idx < len(lower)-1 {
		ext := lower[idx+1:]
		if _, ok := plaintextExtensions[ext]; ok {
			return true
		}
	}
	_, ok := plaintextExtensionlessNames[lower]
	return ok
}
