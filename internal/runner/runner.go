// Package runner executes generated command lines through the shell.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner runs one full command line synchronously.
type Runner interface {
	Run(ctx context.Context, cmdline string) error
}

// ExitError represents a command that exited with a non-zero status.
// It carries the exit code so callers can propagate it without extra messaging.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Shell runs command lines with "sh -c". Nil streams are inherited from the
// current process so tool output is visible live.
type Shell struct {
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = (*Shell)(nil)

// Run executes cmdline. Non-zero exit codes are returned as *ExitError.
// Other errors (e.g. sh not found) are returned as-is.
func (s *Shell) Run(ctx context.Context, cmdline string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	cmd.Dir = s.Dir
	if s.Env != nil {
		cmd.Env = s.Env
	}
	cmd.Stdin = orReader(s.Stdin, os.Stdin)
	cmd.Stdout = orWriter(s.Stdout, os.Stdout)
	cmd.Stderr = orWriter(s.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
