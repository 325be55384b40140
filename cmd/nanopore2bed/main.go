// Command nanopore2bed is the CLI entrypoint for the NanoporeToBED batch
// pipeline. It parses flags, validates configuration and paths, and either
// runs tool diagnostics (--check) or the merge/align/modcall/QC pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/check"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/config"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/discovery"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/display"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/logging"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/pipeline"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/toolexec"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: %v\n", err)
		return 1
	}

	if cfg.CheckOnly {
		log, err := logging.NewLogger(cfg.ColorMode, cfg.Verbose, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "nanopore2bed: %v\n", err)
			return 1
		}
		defer log.Close()
		display.PrintBanner()
		check.RunCheck(&cfg, log)
		return 0
	}

	// Phase 2: Resolve and validate paths. Input and reference must exist,
	// the output root is created if needed, and output must not be inside
	// input (prevents discovering our own artifacts on re-runs).
	if err := cfg.ValidateInputs(); err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: %v\n", err)
		return 1
	}
	inputAbs, err := absPath(cfg.InputRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: input not found: %s\n", cfg.InputRoot)
		return 1
	}
	if err := os.MkdirAll(cfg.OutputRoot, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: cannot create output directory: %s\n", cfg.OutputRoot)
		return 1
	}
	outputAbs, err := absPath(cfg.OutputRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: cannot resolve output path: %s\n", cfg.OutputRoot)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: %v\n", err)
		return 1
	}

	// Phase 3: Master log and run header.
	masterPath := logging.MasterLogPath(cfg.OutputRoot, time.Now())
	log, err := logging.NewLogger(cfg.ColorMode, cfg.Verbose, masterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanopore2bed: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()
	runID := uuid.NewString()
	log.Info("=== nanopore2bed v%s (%s) ===", version, commit)
	log.Info("Run ID:    %s", runID)
	log.Info("In:        %s", cfg.InputRoot)
	log.Info("Out:       %s", cfg.OutputRoot)
	log.Info("Reference: %s", cfg.Reference)
	log.Info("Master log: %s", masterPath)
	if cfg.DryRun {
		log.Warn("DRY RUN -- no artifacts will be written")
	}
	log.Info("")

	// Fail fast if any of the four external tools is unavailable.
	// Dry-run skips this so a config can be rehearsed on a bare machine.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 4: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline stops between units (and kills the in-flight tool).
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping...")
		cancel()
	}()

	// Phase 5: Run the pipeline. Unit failures are not fatal; only a
	// discovery failure (zero units) yields a non-zero exit.
	summary, err := pipeline.Run(ctx, &cfg, log, toolexec.Executor{})
	if err != nil {
		if errors.Is(err, discovery.ErrNoUnitsFound) {
			log.Error("%v", err)
		} else {
			log.Error("Pipeline failed: %v", err)
		}
		return 1
	}

	if _, _, failedUnits := summary.Totals(); failedUnits > 0 {
		log.Warn("Run %s finished with %d failed units; re-run to retry their incomplete stages", runID, failedUnits)
	} else {
		log.Success("Run %s finished", runID)
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
