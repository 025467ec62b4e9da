// Package config loads optional boxfix.toml files so a repository can
// pin its own correction thresholds. Flags always win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"boxfix/internal/correct"
)

// FileName is the manifest discovered by walking up from the start dir.
const FileName = "boxfix.toml"

// File is the on-disk layout.
type File struct {
	Correct Section `toml:"correct"`
}

// Section mirrors the tunables of correct.Config. Pointers distinguish
// "absent" from "zero".
type Section struct {
	MaxIters *int64   `toml:"max_iters"`
	MinScore *float64 `toml:"min_score"`
	TabWidth *int64   `toml:"tab_width"`
	All      *bool    `toml:"all"`
}

// Find walks up from startDir looking for a boxfix.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return f, nil
}

// Apply overlays the file's settings onto cfg and validates the result.
func (f File) Apply(cfg correct.Config) (correct.Config, error) {
	if f.Correct.MaxIters != nil {
		v, err := safecast.Conv[int](*f.Correct.MaxIters)
		if err != nil {
			return cfg, fmt.Errorf("max_iters: %w", err)
		}
		cfg.MaxIters = v
	}
	if f.Correct.MinScore != nil {
		cfg.MinScore = *f.Correct.MinScore
	}
	if f.Correct.TabWidth != nil {
		v, err := safecast.Conv[int](*f.Correct.TabWidth)
		if err != nil {
			return cfg, fmt.Errorf("tab_width: %w", err)
		}
		cfg.TabWidth = v
	}
	if f.Correct.All != nil {
		cfg.AllBlocks = *f.Correct.All
	}
	return cfg, Validate(cfg)
}

// Validate checks the ranges shared by flag and file configuration.
func Validate(cfg correct.Config) error {
	if cfg.MaxIters < 1 {
		return fmt.Errorf("max_iters must be a positive integer, got %d", cfg.MaxIters)
	}
	if cfg.MinScore < 0 || cfg.MinScore > 1 {
		return fmt.Errorf("min_score must be within [0, 1], got %v", cfg.MinScore)
	}
	if cfg.TabWidth < 1 {
		return fmt.Errorf("tab_width must be a positive integer, got %d", cfg.TabWidth)
	}
	return nil
}
