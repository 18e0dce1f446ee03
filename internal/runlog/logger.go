// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package runlog keeps an append-only, hash-chained JSONL record of every
// command invocation made by lint runs. Entries of one run share a run ID.
package runlog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marcelocantos/linttime/internal/pipeline"
	"github.com/marcelocantos/linttime/internal/runner"
)

// Logger appends the entries of one lint run.
type Logger struct {
	mu       sync.Mutex
	path     string
	runID    string
	cwd      string
	seq      uint64
	prevHash string
}

var _ pipeline.Recorder = (*Logger)(nil)

// NewLogger opens or creates a run log at path and starts a new run.
// Entries are chained onto the last entry already in the log.
func NewLogger(path, cwd string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create run log dir: %w", err)
	}

	entries, err := readEntries(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	l := &Logger{path: path, runID: uuid.NewString(), cwd: cwd}
	if n := len(entries); n > 0 {
		l.seq = entries[n-1].Seq
		l.prevHash = entries[n-1].Hash
	}
	return l, nil
}

// Record appends one invocation to the log.
func (l *Logger) Record(inv pipeline.Invocation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	code, msg := exitStatus(inv.Err)
	entry := Entry{
		Seq:      l.seq + 1,
		Time:     time.Now().UTC(),
		PrevHash: l.prevHash,
		RunID:    l.runID,
		Pipeline: inv.Pipeline,
		Step:     inv.Step,
		Command:  inv.Command,
		Files:    inv.Files,
		ExitCode: code,
		Error:    msg,
		Duration: float64(inv.Duration.Microseconds()) / 1000.0,
		Cwd:      l.cwd,
	}
	entry.Hash = hashEntry(entry)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal run log entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log entry: %w", err)
	}
	l.seq = entry.Seq
	l.prevHash = entry.Hash
	return nil
}

// RunID identifies the entries written by this logger.
func (l *Logger) RunID() string { return l.runID }

// Path returns the run log file path.
func (l *Logger) Path() string { return l.path }

func exitStatus(err error) (int, string) {
	if err == nil {
		return 0, ""
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, ""
	}
	return -1, err.Error()
}

// hashEntry hashes e with its Hash field cleared.
func hashEntry(e Entry) string {
	e.Hash = ""
	data, _ := json.Marshal(e)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
