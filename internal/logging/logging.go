// Package logging sets up ff's structured logger: always to a file
// under the config directory, never to stdout/stderr, since stderr is
// reserved for the user-visible error line.
package logging

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup points the package-level logrus logger (the one every other ff
// package logs through via logrus.WithField/Warn) at "ff.log" under
// configDir, creating the directory and file as needed. debug raises
// the level to Debug; otherwise Info. The returned file should be
// closed by the caller at shutdown.
func Setup(configDir string, debug bool) (*os.File, error) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(configDir, "ff.log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(f)
	return f, nil
}
