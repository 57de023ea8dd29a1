// Command ff is an interactive terminal file browser.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ivuorinen/ff/internal/archive"
	"github.com/ivuorinen/ff/internal/config"
	"github.com/ivuorinen/ff/internal/logging"
	"github.com/ivuorinen/ff/internal/navstate"
	"github.com/ivuorinen/ff/internal/opener"
	"github.com/ivuorinen/ff/internal/procrunner"
	"github.com/ivuorinen/ff/internal/session"
)

// version is set via -ldflags "-X main.version=..." at release build time.
var version = "dev"

func main() {
	root := newRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		debug      bool
		showVer    bool
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "ff [PATH]",
		Short: "An interactive terminal file browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVer {
				fmt.Fprintf(cmd.OutOrStdout(), "ff version %s\n", version)
				return nil
			}
			start := "."
			if len(args) == 1 {
				start = args[0]
			}
			return run(cmd.Context(), start, configFile, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")
	cmd.Flags().BoolVarP(&showVer, "version", "v", false, "print the version and exit")
	cmd.Flags().StringVar(&configFile, "config", "", "explicit config file path")

	return cmd
}

func run(ctx context.Context, start, configFile string, debug bool) error {
	if dir, err := config.Path(); err == nil {
		if logFile, err := logging.Setup(filepath.Dir(dir), debug); err == nil {
			defer logFile.Close()
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		logrus.WithError(err).Warn("main: config load failed, using defaults")
	}
	navstate.SetDefaults(cfg.ItemsPerPage, cfg.NameColumnWidth)

	absStart, err := filepath.Abs(start)
	if err != nil {
		return fmt.Errorf("ff: resolving start path: %w", err)
	}

	fs := afero.NewOsFs()
	runner := procrunner.ExecRunner{}

	execDir, err := os.Executable()
	if err != nil {
		execDir = "."
	} else {
		execDir = filepath.Dir(execDir)
	}
	partnerPrograms := opener.LoadPartnerPrograms(fs, execDir)

	deps := opener.Dependencies{
		Runner:          runner,
		Opener:          opener.LinuxOpener{Runner: runner},
		Terminal:        opener.LinuxTerminal{Runner: runner, Priority: cfg.TerminalPriority},
		PartnerPrograms: partnerPrograms,
		DefaultEditor:   cfg.Editor,
	}

	zipper := archive.ExternalZipper{Runner: runner}

	sess := session.New(fs, absStart, deps, zipper, os.Stdin, os.Stdout)
	return sess.Run(ctx)
}
