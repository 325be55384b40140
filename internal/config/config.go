// Package config holds runtime configuration: defaults, CLI flag parsing,
// validation, and the optional YAML tool profile. A Config is resolved once
// at startup and treated as read-only for the rest of the run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/term"
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths (set from positional args).
	InputRoot  string // Root of the per-library raw directory tree.
	OutputRoot string // Root of the per-unit output tree; created if missing.
	Reference  string // Reference genome FASTA, shared by align and call stages.

	// Scheduling.
	Threads int // Requested thread count; clamped against the detected allocation.

	// Behavior flags.
	DryRun  bool
	Verbose bool

	// Display and diagnostics.
	ColorMode term.ColorMode // Default: "auto".
	CheckOnly bool           // Run --check diagnostics and exit.

	// External tool profile.
	ToolsFile string      // Optional YAML file with tool/threshold overrides.
	Tools     ToolProfile // Resolved profile (defaults merged with ToolsFile).
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Threads:   16,
		DryRun:    false,
		Verbose:   false,
		ColorMode: term.ColorAuto,
		CheckOnly: false,
		Tools:     DefaultToolProfile(),
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks field values that can be judged without touching the
// filesystem. Path existence is verified separately by [ValidateInputs]
// once the paths have been resolved to absolute form.
func (c *Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("thread count must be at least 1 (got %d)", c.Threads)
	}
	switch c.ColorMode {
	case term.ColorAuto, term.ColorAlways, term.ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if err := c.Tools.Validate(); err != nil {
		return err
	}
	if c.CheckOnly {
		return nil
	}
	if c.InputRoot == "" || c.OutputRoot == "" || c.Reference == "" {
		return errors.New("need exactly input_dir, output_dir and reference.fa")
	}
	return nil
}

// ValidateInputs checks that the input root is a readable directory and the
// reference genome is a readable file. Both must exist before any unit is
// processed; a missing path here is a configuration error, not a data error.
func (c *Config) ValidateInputs() error {
	fi, err := os.Stat(c.InputRoot)
	if err != nil {
		return fmt.Errorf("input root %s: %w", c.InputRoot, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("input root %s is not a directory", c.InputRoot)
	}
	rf, err := os.Stat(c.Reference)
	if err != nil {
		return fmt.Errorf("reference genome %s: %w", c.Reference, err)
	}
	if rf.IsDir() {
		return fmt.Errorf("reference genome %s is a directory", c.Reference)
	}
	return nil
}

// ValidatePaths ensures the resolved output root is not inside (or equal
// to) the resolved input root. This prevents the pipeline from discovering
// its own output directories on a re-run. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
