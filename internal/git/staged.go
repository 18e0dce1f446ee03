// Package git queries the repository index.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// StagedFiles returns the absolute paths of files added, copied or modified
// in the index, in the order git reports them. Paths are joined onto dir.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--diff-filter=ACM", "--name-only", "--cached")
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git diff: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("git diff: %w", err)
	}
	return parseNames(stdout.String(), dir), nil
}

func parseNames(out, dir string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, dir+"/"+line)
	}
	return paths
}
