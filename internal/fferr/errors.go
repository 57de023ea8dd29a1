// Package fferr collects the error taxonomy shared across ff's components,
// so callers can branch with errors.Is/errors.As instead of string matching.
package fferr

import "fmt"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", Err...)
// to attach the path or detail that triggered them.
var (
	ErrNotFound           = fmt.Errorf("not found")
	ErrPermissionDenied   = fmt.Errorf("permission denied")
	ErrInvalidName        = fmt.Errorf("invalid name")
	ErrNoTerminalFound    = fmt.Errorf("no terminal emulator found")
	ErrMetadata           = fmt.Errorf("metadata read failed")
	ErrEditorLaunchFailed = fmt.Errorf("editor launch failed")
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")
)

// PathError wraps one of the sentinels above with the path it concerns.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Wrap builds a PathError for op on path, wrapping one of the sentinels.
func Wrap(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
