// Package config loads the executor/layout knobs that sit outside the
// core's pure-function boundary: how much history to fetch and which
// branches downstream collaborators must treat as immutable.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration mirrors spec.md's external "configuration" struct: the
// executor reads MaxCommits/Since/Until when invoking Git; the core's
// layout only ever reads ProtectedBranches.
type Configuration struct {
	MaxCommits        int        `yaml:"max_commits"`
	Since             *time.Time `yaml:"since"`
	Until             *time.Time `yaml:"until"`
	ProtectedBranches []string   `yaml:"protected_branches"`
}

// Default returns the zero-friction configuration: no commit cap, no
// date filter, "main" and "master" protected.
func Default() Configuration {
	return Configuration{
		ProtectedBranches: []string{"main", "master"},
	}
}

// Load reads and parses a YAML configuration file at path. Fields absent
// from the file keep Default's values via a merge rather than a bare
// unmarshal, so a config file only needs to override what it cares
// about.
func Load(path string) (Configuration, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Configuration{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if raw.MaxCommits != nil {
		cfg.MaxCommits = *raw.MaxCommits
	}
	cfg.Since = raw.Since
	cfg.Until = raw.Until
	if raw.ProtectedBranches != nil {
		cfg.ProtectedBranches = raw.ProtectedBranches
	}

	return cfg, nil
}

// rawConfig distinguishes "field absent" from "field zero value" during
// unmarshal, so Load can merge onto Default instead of overwriting it.
type rawConfig struct {
	MaxCommits        *int       `yaml:"max_commits"`
	Since             *time.Time `yaml:"since"`
	Until             *time.Time `yaml:"until"`
	ProtectedBranches []string   `yaml:"protected_branches"`
}
