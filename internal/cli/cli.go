// Package cli implements the linttime command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcelocantos/linttime/internal/config"
	"github.com/marcelocantos/linttime/internal/logging"
	"github.com/marcelocantos/linttime/internal/runner"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1 // a command exited non-zero
	ExitFatal  = 2 // configuration or execution error
)

// Deps holds the collaborators the commands use. Tests replace them.
type Deps struct {
	// Runner runs generated command lines. Nil means a shell in the working directory.
	Runner      runner.Runner
	StagedFiles func(ctx context.Context, dir string) ([]string, error)
	Stdout      io.Writer
	Stderr      io.Writer
	Version     string
}

type app struct {
	deps Deps
	code int

	dir          string
	logLevel     string
	maxArgLength int
}

// Execute runs the command line given by args and returns the process exit code.
func Execute(ctx context.Context, args []string, deps Deps) int {
	a := &app{deps: deps}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(deps.Stdout)
	root.SetErr(deps.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "linttime: %v\n", err)
		return ExitFatal
	}
	return a.code
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "linttime",
		Short: "Run lint and format commands on staged files",
		Long: `linttime runs the commands configured for each glob against the files
staged for commit, sharing one process per command wherever file command
lists allow it, and re-stages the results.

Instructions are read from .linttime.yaml or the "lint-time" key of
package.json in the working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runLint,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dir, "dir", ".", "working directory")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	pf.IntVar(&a.maxArgLength, "max-arg-length", 0, "maximum length of one generated command line (overrides config)")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the configured commands (default)",
			Args:  cobra.NoArgs,
			RunE:  a.runLint,
		},
		a.planCommand(),
		a.logCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "linttime %s\n", a.deps.Version)
			},
		},
	)
	return root
}

// workDir returns the absolute working directory.
func (a *app) workDir() (string, error) {
	return filepath.Abs(a.dir)
}

// loadConfig reads the project config and applies flag overrides.
func (a *app) loadConfig(dir string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.maxArgLength > 0 {
		cfg.MaxArgLength = a.maxArgLength
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	log := logging.New(a.deps.Stderr, level)
	for _, w := range cfg.Warnings {
		log.Warn(w, "source", cfg.Source)
	}
	return cfg, log, nil
}
