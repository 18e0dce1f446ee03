// Package pipeline merges per-file command lists into shared pipelines and
// runs them.
package pipeline

import "slices"

// StageCommand is the trailing step appended to every pipeline. It re-stages
// the files once all other commands have run.
const StageCommand = "git add"

// DefaultMaxArgLength bounds the length of one generated command line.
const DefaultMaxArgLength = 120_000

// Instruction maps a glob to the commands run, in order, on matching files.
type Instruction struct {
	Glob     string
	Commands []string
}

// Entry is one file in a pipeline and the step indices that apply to it.
// Steps is strictly increasing.
type Entry struct {
	Path  string
	Steps []int
}

// Has reports whether step i applies to the entry.
func (e Entry) Has(i int) bool {
	_, ok := slices.BinarySearch(e.Steps, i)
	return ok
}

// Pipeline is an ordered list of commands shared by a group of files.
type Pipeline struct {
	Commands []string
	Entries  []Entry
}

// Files returns the paths of every entry the given step applies to.
func (p *Pipeline) Files(step int) []string {
	var paths []string
	for _, e := range p.Entries {
		if e.Has(step) {
			paths = append(paths, e.Path)
		}
	}
	return paths
}
