// Package config loads lint instructions from the project directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/linttime/internal/pipeline"
)

// File names searched in the project directory, in order.
const (
	YAMLFile    = ".linttime.yaml"
	PackageJSON = "package.json"
	PackageKey  = "lint-time"
)

// ErrInvalidConfig indicates missing or malformed instructions.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the project's lint-time configuration.
type Config struct {
	Instructions []pipeline.Instruction
	MaxArgLength int
	LogLevel     string
	RunLog       string // path of the invocation log; empty disables it

	// Source is the file the instructions were read from.
	Source string
	// Warnings lists non-fatal problems, such as globs that look malformed.
	Warnings []string
}

// fileConfig is the on-disk shape of .linttime.yaml.
type fileConfig struct {
	Instructions [][]string `yaml:"instructions"`
	MaxArgLength int        `yaml:"max_arg_length"`
	LogLevel     string     `yaml:"log_level"`
	RunLog       string     `yaml:"run_log"`
}

// DefaultConfig returns a config with no instructions.
func DefaultConfig() *Config {
	return &Config{
		MaxArgLength: pipeline.DefaultMaxArgLength,
		LogLevel:     "warn",
	}
}

// Load reads .linttime.yaml from dir if it exists, and otherwise the
// "lint-time" key of dir/package.json.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, YAMLFile)
	if _, err := os.Stat(path); err == nil {
		return LoadYAML(path)
	}
	return LoadPackageJSON(filepath.Join(dir, PackageJSON))
}

// LoadYAML reads the config from a YAML file.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	if fc.Instructions == nil {
		return nil, fmt.Errorf("%w: %s: \"instructions\" must be a list of [glob, command, ...] lists", ErrInvalidConfig, path)
	}

	cfg := DefaultConfig()
	cfg.Source = path
	if fc.MaxArgLength > 0 {
		cfg.MaxArgLength = fc.MaxArgLength
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.RunLog != "" {
		cfg.RunLog = expandPath(filepath.Dir(path), fc.RunLog)
	}
	if err := cfg.setInstructions(fc.Instructions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadPackageJSON reads instructions from the "lint-time" key of a
// package.json file. The key must be an array of string arrays.
func LoadPackageJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidConfig, path)
	}

	shapeErr := fmt.Errorf("%w: %q key must appear in %s and must be of type string[][]", ErrInvalidConfig, PackageKey, path)
	value := gjson.GetBytes(data, PackageKey)
	if !value.IsArray() {
		return nil, shapeErr
	}

	var raw [][]string
	for _, item := range value.Array() {
		if !item.IsArray() {
			return nil, shapeErr
		}
		var fields []string
		for _, s := range item.Array() {
			if s.Type != gjson.String {
				return nil, shapeErr
			}
			fields = append(fields, s.String())
		}
		raw = append(raw, fields)
	}

	cfg := DefaultConfig()
	cfg.Source = path
	if err := cfg.setInstructions(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// setInstructions validates [glob, command, ...] lists and stores them.
func (c *Config) setInstructions(raw [][]string) error {
	c.Instructions = make([]pipeline.Instruction, 0, len(raw))
	for _, fields := range raw {
		if len(fields) < 2 {
			return fmt.Errorf("%w: %q is not a valid instruction", ErrInvalidConfig, fields)
		}
		glob := fields[0]
		if !doublestar.ValidatePattern(glob) {
			c.Warnings = append(c.Warnings, fmt.Sprintf("glob %q looks malformed; unmatched parts are matched literally", glob))
		}
		c.Instructions = append(c.Instructions, pipeline.Instruction{
			Glob:     glob,
			Commands: fields[1:],
		})
	}
	return nil
}

// expandPath resolves ~ and paths relative to dir.
func expandPath(dir, p string) string {
	if p[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	if !filepath.IsAbs(p) {
		return filepath.Join(dir, p)
	}
	return p
}
