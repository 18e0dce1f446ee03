// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marcelocantos/linttime/internal/runner"
	"github.com/marcelocantos/linttime/internal/shell"
)

// Invocation describes one finished chunk invocation.
type Invocation struct {
	Pipeline int
	Step     int
	Command  string
	Files    int
	Err      error
	Duration time.Duration
}

// Recorder receives every chunk invocation after it finishes.
type Recorder interface {
	Record(inv Invocation) error
}

// Executor runs pipelines against a working directory.
type Executor struct {
	Runner       runner.Runner
	Dir          string // working directory; file tokens are made relative to it
	MaxArgLength int    // per-invocation budget; DefaultMaxArgLength if zero
	Logger       *slog.Logger
	Recorder     Recorder // optional
}

// Run executes every pipeline concurrently. Within a pipeline, steps run in
// order and a step starts only after every chunk of the previous one has
// finished. A failing pipeline stops its own remaining steps but does not
// cancel the others.
//
// Run returns (true, nil) if every invocation succeeded and (false, nil) if
// one exited non-zero. Any other failure is returned as an error.
func (e *Executor) Run(ctx context.Context, pipelines []*Pipeline) (bool, error) {
	dir := e.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return false, err
		}
		dir = wd
	}

	var g errgroup.Group
	for i, p := range pipelines {
		i, p := i, p
		g.Go(func() error {
			return e.runPipeline(ctx, dir, i, p)
		})
	}

	err := g.Wait()
	if err == nil {
		return true, nil
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

func (e *Executor) runPipeline(ctx context.Context, dir string, index int, p *Pipeline) error {
	log := e.logger().With("pipeline", index)

	for step, command := range p.Commands {
		files := p.Files(step)
		tokens := make([]string, 0, len(files))
		for _, f := range files {
			rel, err := filepath.Rel(dir, f)
			if err != nil {
				return fmt.Errorf("pipeline %d: %w", index, err)
			}
			tokens = append(tokens, shell.Escape(filepath.ToSlash(rel)))
		}

		for _, chunk := range Chunk(command, tokens, e.maxArgLength()) {
			cmdline := command + " " + strings.Join(chunk, " ")
			log.Debug("running", "step", step, "command", command, "files", len(chunk))

			start := time.Now()
			err := e.Runner.Run(ctx, cmdline)
			inv := Invocation{
				Pipeline: index,
				Step:     step,
				Command:  command,
				Files:    len(chunk),
				Err:      err,
				Duration: time.Since(start),
			}
			e.record(log, inv)

			if err != nil {
				log.Debug("step failed", "step", step, "command", command, "err", err)
				return fmt.Errorf("pipeline %d: %s: %w", index, command, err)
			}
		}
	}
	return nil
}

func (e *Executor) record(log *slog.Logger, inv Invocation) {
	if e.Recorder == nil {
		return
	}
	// Best-effort: a broken run log never fails the lint run.
	if err := e.Recorder.Record(inv); err != nil {
		log.Warn("run log", "err", err)
	}
}

func (e *Executor) maxArgLength() int {
	if e.MaxArgLength > 0 {
		return e.MaxArgLength
	}
	return DefaultMaxArgLength
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
