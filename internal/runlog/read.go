package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// readEntries decodes every entry in the log at path.
func readEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read run log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	dec := json.NewDecoder(f)
	for {
		var e Entry
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("run log entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
}

// Verify checks that the log's entries are numbered without gaps and that
// each is chained to the one before it. On success it summarizes the runs.
func Verify(path string) (Summary, error) {
	entries, err := readEntries(path)
	if err != nil {
		return Summary{}, err
	}

	prev := Entry{}
	for i, e := range entries {
		if e.Seq != prev.Seq+1 {
			return Summary{}, fmt.Errorf("entry %d: expected seq %d, got %d", i+1, prev.Seq+1, e.Seq)
		}
		if e.PrevHash != prev.Hash {
			return Summary{}, fmt.Errorf("entry %d (run %s): not chained to entry %d", i+1, e.RunID, prev.Seq)
		}
		if e.Hash != hashEntry(e) {
			return Summary{}, fmt.Errorf("entry %d (run %s): content does not match its hash", i+1, e.RunID)
		}
		prev = e
	}

	runs := groupRuns(entries)
	s := Summary{Entries: len(entries), Runs: len(runs)}
	for _, r := range runs {
		if !r.OK() {
			s.FailedRuns++
		}
	}
	return s, nil
}

// Runs returns every run in the log, ordered by first invocation.
func Runs(path string) ([]Run, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	return groupRuns(entries), nil
}

// Tail returns the last n runs in the log. n <= 0 returns none.
func Tail(path string, n int) ([]Run, error) {
	runs, err := Runs(path)
	if err != nil {
		return nil, err
	}
	n = max(0, min(n, len(runs)))
	return runs[len(runs)-n:], nil
}

// groupRuns groups entries by run ID. Concurrent runs may interleave in the
// log, so grouping is by ID rather than by adjacency.
func groupRuns(entries []Entry) []Run {
	byID := orderedmap.New[string, []Entry]()
	for _, e := range entries {
		group, _ := byID.Get(e.RunID)
		byID.Set(e.RunID, append(group, e))
	}

	runs := make([]Run, 0, byID.Len())
	for pair := byID.Oldest(); pair != nil; pair = pair.Next() {
		runs = append(runs, Run{ID: pair.Key, Entries: pair.Value})
	}
	return runs
}
