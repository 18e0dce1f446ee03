package runlog

import "time"

// Entry is one chunk invocation in the run log.
type Entry struct {
	Seq      uint64    `json:"seq"`
	Time     time.Time `json:"ts"`
	PrevHash string    `json:"prev_hash,omitempty"` // empty for the first entry
	RunID    string    `json:"run_id"`              // shared by every entry of one lint run
	Pipeline int       `json:"pipeline"`            // pipeline index within the run
	Step     int       `json:"step"`                // step index within the pipeline
	Command  string    `json:"command"`             // command template, without file tokens
	Files    int       `json:"files"`               // number of files in the chunk
	ExitCode int       `json:"exit_code"`           // 0 = success, -1 = did not run
	Error    string    `json:"error,omitempty"`     // set when the command could not run
	Duration float64   `json:"duration_ms"`
	Cwd      string    `json:"cwd"`
	Hash     string    `json:"hash"` // SHA-256 of this entry (with hash field empty)
}

// Failed reports whether the invocation did not exit cleanly.
func (e Entry) Failed() bool { return e.ExitCode != 0 }

// Run is every entry written by one lint run, in log order.
type Run struct {
	ID      string
	Entries []Entry
}

// Start returns the time of the run's first invocation.
func (r Run) Start() time.Time {
	if len(r.Entries) == 0 {
		return time.Time{}
	}
	return r.Entries[0].Time
}

// Failures counts the run's invocations that did not exit cleanly.
func (r Run) Failures() int {
	n := 0
	for _, e := range r.Entries {
		if e.Failed() {
			n++
		}
	}
	return n
}

// OK reports whether every invocation of the run succeeded.
func (r Run) OK() bool { return r.Failures() == 0 }

// Summary describes a verified run log.
type Summary struct {
	Entries    int
	Runs       int
	FailedRuns int
}
