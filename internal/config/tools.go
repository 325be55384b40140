package config

// This file defines the external tool profile: binary names, artifact
// completion thresholds, and stage thread ceilings. Defaults cover a
// standard samtools/dorado/modkit/qualimap installation; a YAML file
// passed via --tools overrides individual fields.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ToolProfile names the external collaborators and the completion
// thresholds used by the per-stage idempotency checks.
type ToolProfile struct {
	// Binary names or absolute paths.
	Samtools string `yaml:"samtools"`
	Dorado   string `yaml:"dorado"`
	Modkit   string `yaml:"modkit"`
	Qualimap string `yaml:"qualimap"`

	// Minimum artifact sizes for a stage to count as already complete.
	// Bulk BAMs need a large floor so a truncated file from a crashed run
	// is redone; the bedMethyl table is judged with a much smaller floor.
	MergedMinBytes  int64 `yaml:"merged_min_bytes"`
	AlignedMinBytes int64 `yaml:"aligned_min_bytes"`
	BedMinBytes     int64 `yaml:"bed_min_bytes"`

	// Marker file inside the QC report directory that signals completion.
	QCMarker string `yaml:"qc_marker"`

	// Qualimap degrades with high -nt values, so the QC stage is capped
	// independently of the general thread budget.
	QCThreadCeiling int `yaml:"qc_thread_ceiling"`

	// Fallback thread allocation when no scheduler allocation is detected.
	// 0 means "use the machine's CPU count".
	DefaultAllocation int `yaml:"default_allocation"`
}

// DefaultToolProfile returns the profile for a standard installation.
func DefaultToolProfile() ToolProfile {
	return ToolProfile{
		Samtools:          "samtools",
		Dorado:            "dorado",
		Modkit:            "modkit",
		Qualimap:          "qualimap",
		MergedMinBytes:    200_000_000,
		AlignedMinBytes:   200_000_000,
		BedMinBytes:       1000,
		QCMarker:          "genome_results.txt",
		QCThreadCeiling:   8,
		DefaultAllocation: 0,
	}
}

// LoadToolProfile reads path and overlays it onto the defaults. Fields
// absent from the file keep their default values.
func LoadToolProfile(path string) (ToolProfile, error) {
	p := DefaultToolProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("tool profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("tool profile %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects profiles that would break the idempotency checks.
func (p *ToolProfile) Validate() error {
	if p.Samtools == "" || p.Dorado == "" || p.Modkit == "" || p.Qualimap == "" {
		return fmt.Errorf("tool profile: all four tool names must be non-empty")
	}
	if p.MergedMinBytes < 0 || p.AlignedMinBytes < 0 || p.BedMinBytes < 0 {
		return fmt.Errorf("tool profile: artifact size thresholds must not be negative")
	}
	if p.QCMarker == "" {
		return fmt.Errorf("tool profile: qc_marker must be non-empty")
	}
	if p.QCThreadCeiling < 1 {
		return fmt.Errorf("tool profile: qc_thread_ceiling must be at least 1")
	}
	if p.DefaultAllocation < 0 {
		return fmt.Errorf("tool profile: default_allocation must not be negative")
	}
	return nil
}
