package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcelocantos/linttime/internal/pipeline"
)

func (a *app) planCommand() *cobra.Command {
	var showFiles bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the pipelines that would run, without running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := a.workDir()
			if err != nil {
				return err
			}
			cfg, _, err := a.loadConfig(dir)
			if err != nil {
				return err
			}
			paths, err := a.deps.StagedFiles(cmd.Context(), dir)
			if err != nil {
				return err
			}
			pipelines, err := pipeline.Build(cfg.Instructions, paths, dir)
			if err != nil {
				return err
			}
			printPlan(cmd, dir, pipelines, showFiles)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showFiles, "files", false, "list the files of every step")
	return cmd
}

func printPlan(cmd *cobra.Command, dir string, pipelines []*pipeline.Pipeline, showFiles bool) {
	w := cmd.OutOrStdout()
	if len(pipelines) == 0 {
		fmt.Fprintln(w, "no staged files match any instruction")
		return
	}
	for i, p := range pipelines {
		fmt.Fprintf(w, "pipeline %d (%d files)\n", i+1, len(p.Entries))
		for step, command := range p.Commands {
			files := p.Files(step)
			fmt.Fprintf(w, "  %d. %s (%d files)\n", step+1, command, len(files))
			if !showFiles {
				continue
			}
			for _, f := range files {
				if rel, err := filepath.Rel(dir, f); err == nil {
					f = rel
				}
				fmt.Fprintf(w, "       %s\n", f)
			}
		}
	}
}
