package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcelocantos/linttime/internal/runlog"
)

func (a *app) logCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the run log",
	}

	var n int
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Show the most recent lint runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 1 {
				return fmt.Errorf("--lines must be at least 1, got %d", n)
			}
			path, err := a.runLogPath()
			if err != nil {
				return err
			}
			runs, err := runlog.Tail(path, n)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(w, "no lint runs logged")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(w, "run %s %s: %d invocations, %d failed\n",
					r.ID, r.Start().Format(time.RFC3339), len(r.Entries), r.Failures())
				for _, e := range r.Entries {
					fmt.Fprintf(w, "  %d/%d %s (%d files) exit %d %.0fms\n",
						e.Pipeline, e.Step, e.Command, e.Files, e.ExitCode, e.Duration)
				}
			}
			return nil
		},
	}
	tail.Flags().IntVarP(&n, "lines", "n", 5, "number of runs")

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check the run log hash chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.runLogPath()
			if err != nil {
				return err
			}
			s, err := runlog.Verify(path)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "run log verification FAILED: %v\n", err)
				a.code = ExitFailed
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run log integrity verified: %d entries in %d runs, %d failed\n",
				s.Entries, s.Runs, s.FailedRuns)
			return nil
		},
	}

	cmd.AddCommand(tail, verify)
	return cmd
}

func (a *app) runLogPath() (string, error) {
	dir, err := a.workDir()
	if err != nil {
		return "", err
	}
	cfg, _, err := a.loadConfig(dir)
	if err != nil {
		return "", err
	}
	if cfg.RunLog == "" {
		return "", errors.New("no run_log configured")
	}
	return cfg.RunLog, nil
}
