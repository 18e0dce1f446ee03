// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/marcelocantos/linttime/internal/glob"
)

type fileCommands struct {
	path     string
	commands []string
}

// Build groups files into the fewest pipelines it can find greedily. Each
// file's commands are the concatenation, in instruction order, of every
// instruction whose glob matches it; files matching nothing are dropped.
// Relative globs are resolved against base.
func Build(instructions []Instruction, paths []string, base string) ([]*Pipeline, error) {
	byFile := orderedmap.New[string, []string]()

	for _, in := range instructions {
		m, err := glob.Compile(instructionGlob(in.Glob), base)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", in.Glob, err)
		}
		for _, p := range paths {
			if !m.Match(p) {
				continue
			}
			cmds, _ := byFile.Get(p)
			byFile.Set(p, append(cmds, in.Commands...))
		}
	}

	files := make([]fileCommands, 0, byFile.Len())
	for pair := byFile.Oldest(); pair != nil; pair = pair.Next() {
		files = append(files, fileCommands{path: pair.Key, commands: pair.Value})
	}
	slices.SortStableFunc(files, func(a, b fileCommands) int {
		return cmp.Compare(len(b.commands), len(a.commands))
	})

	var pipelines []*Pipeline
next:
	for _, f := range files {
		for _, p := range pipelines {
			if steps, ok := subsequence(f.commands, p.Commands); ok {
				p.Entries = append(p.Entries, Entry{Path: f.path, Steps: steps})
				continue next
			}
		}
		steps := make([]int, len(f.commands))
		for i := range steps {
			steps[i] = i
		}
		pipelines = append(pipelines, &Pipeline{
			Commands: slices.Clone(f.commands),
			Entries:  []Entry{{Path: f.path, Steps: steps}},
		})
	}

	for _, p := range pipelines {
		stage := len(p.Commands)
		p.Commands = append(p.Commands, StageCommand)
		for i := range p.Entries {
			p.Entries[i].Steps = append(p.Entries[i].Steps, stage)
		}
	}

	return pipelines, nil
}

// instructionGlob makes a glob relative to the base directory. A leading "/"
// anchors it at the base; anything not already starting with "**/" matches
// at any depth.
func instructionGlob(g string) string {
	if rest, ok := strings.CutPrefix(g, "/"); ok {
		return rest
	}
	if !strings.HasPrefix(g, "**/") {
		return "**/" + g
	}
	return g
}

// subsequence reports whether want occurs in order within have, returning
// the indices into have that matched.
func subsequence(want, have []string) ([]int, bool) {
	steps := make([]int, 0, len(want)+1)
	j := 0
	for i := 0; i < len(have) && j < len(want); i++ {
		if have[i] == want[j] {
			steps = append(steps, i)
			j++
		}
	}
	return steps, j == len(want)
}
