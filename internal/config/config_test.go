package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Threads != 16 {
		t.Errorf("Threads default: got %d, want 16", cfg.Threads)
	}
	if cfg.DryRun || cfg.Verbose || cfg.CheckOnly {
		t.Error("behavior flags should default to false")
	}
	if cfg.Tools.Samtools != "samtools" || cfg.Tools.Qualimap != "qualimap" {
		t.Errorf("tool defaults: %+v", cfg.Tools)
	}
}

func TestValidate_ThreadCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputRoot, cfg.OutputRoot, cfg.Reference = "/in", "/out", "/ref.fa"
	cfg.Threads = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero threads")
	}
	cfg.Threads = -4
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative threads")
	}
	cfg.Threads = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_MissingPositionals(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when paths are unset")
	}
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("check-only should not require paths: %v", err)
	}
}

func TestValidateInputs(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.fa")
	if err := os.WriteFile(ref, []byte(">chr1\nACGT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.InputRoot = dir
	cfg.Reference = ref
	if err := cfg.ValidateInputs(); err != nil {
		t.Errorf("ValidateInputs: %v", err)
	}

	cfg.Reference = filepath.Join(dir, "missing.fa")
	if err := cfg.ValidateInputs(); err == nil {
		t.Error("expected error for missing reference")
	}

	cfg.Reference = ref
	cfg.InputRoot = ref // a file, not a directory
	if err := cfg.ValidateInputs(); err == nil {
		t.Error("expected error for non-directory input root")
	}
}

func TestValidatePaths_OutputInsideInput(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidatePaths("/data/runs", "/data/runs/out"); err == nil {
		t.Error("expected error for nested output")
	}
	if err := cfg.ValidatePaths("/data/runs", "/data/runs"); err == nil {
		t.Error("expected error for identical paths")
	}
	if err := cfg.ValidatePaths("/data/runs", "/data/runs-out"); err != nil {
		t.Errorf("sibling with shared prefix should be fine: %v", err)
	}
}

func TestNormalizeDirArg(t *testing.T) {
	if got := NormalizeDirArg("/data/runs///"); got != "/data/runs" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeDirArg("/"); got != "/" {
		t.Errorf("root: got %q", got)
	}
}

func TestLoadToolProfile_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yaml")
	content := strings.Join([]string{
		"samtools: /opt/samtools/bin/samtools",
		"merged_min_bytes: 1024",
		"qc_thread_ceiling: 4",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadToolProfile(path)
	if err != nil {
		t.Fatalf("LoadToolProfile: %v", err)
	}
	if p.Samtools != "/opt/samtools/bin/samtools" {
		t.Errorf("Samtools: got %q", p.Samtools)
	}
	if p.MergedMinBytes != 1024 {
		t.Errorf("MergedMinBytes: got %d", p.MergedMinBytes)
	}
	if p.QCThreadCeiling != 4 {
		t.Errorf("QCThreadCeiling: got %d", p.QCThreadCeiling)
	}
	// Fields absent from the file keep defaults.
	if p.Dorado != "dorado" || p.QCMarker != "genome_results.txt" {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadToolProfile_MissingFile(t *testing.T) {
	if _, err := LoadToolProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToolProfile_Validate(t *testing.T) {
	p := DefaultToolProfile()
	if err := p.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	p.Modkit = ""
	if err := p.Validate(); err == nil {
		t.Error("expected error for empty tool name")
	}
	p = DefaultToolProfile()
	p.QCThreadCeiling = 0
	if err := p.Validate(); err == nil {
		t.Error("expected error for zero qc ceiling")
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{"--bogus", "in", "out", "ref.fa"})
	if err == nil {
		t.Error("expected usage error for unknown flag")
	}
}

func TestParseFlags_Positionals(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{"-t", "8", "--dry-run", "in/", "out", "ref.fa"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.InputRoot != "in" || cfg.OutputRoot != "out" || cfg.Reference != "ref.fa" {
		t.Errorf("positionals: %+v", cfg)
	}
	if cfg.Threads != 8 || !cfg.DryRun {
		t.Errorf("flags: threads=%d dryRun=%v", cfg.Threads, cfg.DryRun)
	}
}

func TestParseFlags_WrongArity(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"in", "out"}); err == nil {
		t.Error("expected error for two positionals")
	}
}
