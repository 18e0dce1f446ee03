package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/marcelocantos/linttime/internal/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PackageJSON, `{
  "name": "demo",
  "lint-time": [
    ["*.ts", "eslint --fix"],
    ["*.{ts,json}", "prettier --write", "echo done"]
  ]
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []pipeline.Instruction{
		{Glob: "*.ts", Commands: []string{"eslint --fix"}},
		{Glob: "*.{ts,json}", Commands: []string{"prettier --write", "echo done"}},
	}
	if !reflect.DeepEqual(cfg.Instructions, want) {
		t.Errorf("instructions = %+v, want %+v", cfg.Instructions, want)
	}
	if cfg.MaxArgLength != pipeline.DefaultMaxArgLength {
		t.Errorf("MaxArgLength = %d", cfg.MaxArgLength)
	}
	if cfg.Source != filepath.Join(dir, PackageJSON) {
		t.Errorf("Source = %q", cfg.Source)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", cfg.Warnings)
	}
}

func TestLoadPackageJSONInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing key", `{"name": "demo"}`},
		{"not an array", `{"lint-time": "eslint"}`},
		{"flat array", `{"lint-time": ["*.ts", "eslint"]}`},
		{"non-string member", `{"lint-time": [["*.ts", 3]]}`},
		{"no command", `{"lint-time": [["*.ts"]]}`},
		{"empty instruction", `{"lint-time": [[]]}`},
		{"broken json", `{"lint-time": [[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, PackageJSON, tt.content)
			_, err := Load(dir)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMissingFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error when no config exists")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadYAMLPreferred(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PackageJSON, `{"lint-time": [["*.js", "ignored"]]}`)
	writeFile(t, dir, YAMLFile, `instructions:
  - ["*.go", "gofmt -w"]
  - ["**/*.md", "markdownlint --fix", "prettier --write"]
max_arg_length: 4096
log_level: debug
run_log: .git/linttime.jsonl
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []pipeline.Instruction{
		{Glob: "*.go", Commands: []string{"gofmt -w"}},
		{Glob: "**/*.md", Commands: []string{"markdownlint --fix", "prettier --write"}},
	}
	if !reflect.DeepEqual(cfg.Instructions, want) {
		t.Errorf("instructions = %+v, want %+v", cfg.Instructions, want)
	}
	if cfg.MaxArgLength != 4096 {
		t.Errorf("MaxArgLength = %d, want 4096", cfg.MaxArgLength)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.RunLog != filepath.Join(dir, ".git", "linttime.jsonl") {
		t.Errorf("RunLog = %q", cfg.RunLog)
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no instructions", "log_level: info\n"},
		{"no command", "instructions:\n  - [\"*.go\"]\n"},
		{"wrong shape", "instructions:\n  glob: \"*.go\"\n"},
		{"bad yaml", "instructions: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, YAMLFile, tt.content)
			_, err := Load(dir)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestMalformedGlobWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PackageJSON, `{"lint-time": [["*.{ts,js", "eslint"]]}`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", cfg.Warnings)
	}
	if len(cfg.Instructions) != 1 {
		t.Errorf("malformed glob should still be loaded")
	}
}
