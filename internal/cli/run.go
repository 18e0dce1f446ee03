package cli

import (
	"github.com/spf13/cobra"

	"github.com/marcelocantos/linttime/internal/logging"
	"github.com/marcelocantos/linttime/internal/pipeline"
	"github.com/marcelocantos/linttime/internal/runlog"
	"github.com/marcelocantos/linttime/internal/runner"
)

// runLint builds pipelines for the staged files and executes them.
// Configuration and execution errors are returned; a failing command sets
// the exit code and prints the verdict.
func (a *app) runLint(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dir, err := a.workDir()
	if err != nil {
		return err
	}
	cfg, log, err := a.loadConfig(dir)
	if err != nil {
		return err
	}

	paths, err := a.deps.StagedFiles(ctx, dir)
	if err != nil {
		return err
	}
	pipelines, err := pipeline.Build(cfg.Instructions, paths, dir)
	if err != nil {
		return err
	}
	log.Debug("built pipelines", "staged", len(paths), "pipelines", len(pipelines))

	r := a.deps.Runner
	if r == nil {
		r = &runner.Shell{Dir: dir}
	}
	ex := &pipeline.Executor{
		Runner:       r,
		Dir:          dir,
		MaxArgLength: cfg.MaxArgLength,
		Logger:       log,
	}
	if cfg.RunLog != "" {
		rl, err := runlog.NewLogger(cfg.RunLog, dir)
		if err != nil {
			// Continue without a run log.
			log.Warn("run log disabled", "err", err)
		} else {
			ex.Recorder = rl
			log.Debug("recording run", "run_id", rl.RunID(), "path", rl.Path())
		}
	}

	ok, err := ex.Run(ctx, pipelines)
	if err != nil {
		return err
	}

	logging.Verdict(cmd.OutOrStdout(), ok)
	if !ok {
		a.code = ExitFailed
	}
	return nil
}
