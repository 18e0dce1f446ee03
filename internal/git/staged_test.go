package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseNames(t *testing.T) {
	got := parseNames("a.ts\n  lib/b.json \n\n", "/repo")
	want := []string{"/repo/a.ts", "/repo/lib/b.json"}
	if !slices.Equal(got, want) {
		t.Errorf("parseNames = %v, want %v", got, want)
	}
	if got := parseNames("", "/repo"); len(got) != 0 {
		t.Errorf("expected no paths, got %v", got)
	}
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestStagedFiles(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	gitCmd(t, dir, "init", "-q")

	for _, name := range []string{"a.ts", "b.json", "unstaged.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	gitCmd(t, dir, "add", "a.ts", "b.json")

	got, err := StagedFiles(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{dir + "/a.ts", dir + "/b.json"}
	if !slices.Equal(got, want) {
		t.Errorf("StagedFiles = %v, want %v", got, want)
	}
}

func TestStagedFilesOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	if _, err := StagedFiles(context.Background(), dir); err == nil {
		t.Error("expected error outside a repository")
	}
}
