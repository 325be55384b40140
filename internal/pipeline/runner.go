// Package pipeline orchestrates unit discovery, the four-stage per-unit
// state machine, and the grouped run summary. A single control thread
// drives units one at a time in scan order; parallelism lives inside the
// external tools, which receive the clamped thread budget.
package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/config"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/discovery"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/display"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/logging"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/planner"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/probe"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/toolexec"
)

// Run is the top-level batch entry point. It discovers units, resolves the
// thread budget, processes each unit sequentially with continue-on-failure,
// and returns the accumulated summary. The only fatal condition after
// startup is discovery yielding zero units, which is returned as an error
// before any unit output is created.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, tool toolexec.Tool) (*RunSummary, error) {
	units, err := discovery.Scan(cfg.InputRoot)
	if err != nil {
		return nil, err
	}

	allocation, source := DetectAllocation(cfg.Tools)
	threads, clamped := ClampThreads(cfg.Threads, allocation)
	if clamped {
		log.Warn("Requested %d threads exceeds allocation of %d (%s); clamping to %d",
			cfg.Threads, allocation, source, threads)
	}

	log.Info("Found %d units, processing with %d threads", len(units), threads)
	if cfg.DryRun {
		log.Warn("DRY RUN -- no external tools will be invoked")
	}

	summary := &RunSummary{}
	for i, unit := range units {
		if ctx.Err() != nil {
			log.Warn("Interrupted, stopping after %d of %d units", i, len(units))
			break
		}
		summary.Add(processUnit(ctx, cfg, log, tool, unit, i+1, len(units), threads))
	}

	logSummary(log, summary)
	return summary, nil
}

// processUnit drives one unit through merge, align, call-modifications and
// quality-report in order. Any stage failure is terminal for the unit and
// recorded with the failing stage; the batch moves on.
func processUnit(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	tool toolexec.Tool,
	unit discovery.WorkUnit,
	current, total, threads int,
) UnitOutcome {
	start := time.Now()
	log.Info("[%d/%d] %s", current, total, unit)

	plan := planner.New(unit, cfg.OutputRoot, cfg.Reference, cfg.Tools, threads)
	if err := os.MkdirAll(plan.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return failed(unit, -1, "setup", err.Error(), time.Since(start))
	}

	ulog, err := logging.OpenUnitLog(cfg.OutputRoot, unit.LibraryCode, unit.BatchCode, unit.SampleName)
	if err != nil {
		log.Error("Cannot open unit log: %v", err)
		return failed(unit, -1, "setup", err.Error(), time.Since(start))
	}
	defer ulog.Close()
	ulog.Printf("=== unit %s (input %s)", unit, unit.InputPath)

	raw, err := discovery.ListRawFiles(unit)
	if err != nil {
		log.Error("Cannot list raw files: %v", err)
		return failed(unit, -1, "setup", err.Error(), time.Since(start))
	}
	if len(raw) == 0 {
		log.Warn("  No raw files found, skipping unit")
		ulog.Printf("no raw files found, unit skipped")
		return skippedNoInput(unit)
	}
	log.Debug("  %d raw files under %s", len(raw), unit.InputPath)

	runner := &StageRunner{Tool: tool, Log: log, DryRun: cfg.DryRun}

	merge, abort := planMerge(ctx, cfg, log, tool, plan, raw, ulog)
	if abort != "" {
		return failed(unit, planner.StageMerge, planner.StageNames[planner.StageMerge], abort, time.Since(start))
	}

	stages := []planner.Stage{merge, plan.Align(), plan.CallModifications(), plan.QualityControl()}
	for _, st := range stages {
		if err := runner.Run(ctx, st, ulog); err != nil {
			return failed(unit, st.Index, st.Name, err.Error(), time.Since(start))
		}
	}

	elapsed := time.Since(start)
	if !cfg.DryRun {
		log.Success("  Unit complete in %s", display.FormatDuration(elapsed))
		ulog.Printf("unit complete in %s", display.FormatDuration(elapsed))
	}
	return completed(unit, elapsed)
}

// planMerge builds the merge stage. When the merged artifact is not already
// complete, every contributing raw file is probed first: a corrupt first
// file aborts the unit (it carries the authoritative header), later corrupt
// files are logged and excluded. Returns a non-empty abort reason on unit
// abort.
func planMerge(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	tool toolexec.Tool,
	plan *planner.UnitPlan,
	raw []string,
	ulog *logging.UnitLog,
) (planner.Stage, string) {
	merge := plan.Merge(raw)
	if cfg.DryRun {
		return merge, ""
	}
	if done, _ := ArtifactComplete(merge); done {
		return merge, ""
	}

	results := probe.ValidateRawFiles(ctx, tool, cfg.Tools.Samtools, raw)
	if !results[0].OK {
		log.Error("  First raw file failed validation: %s (%s)", results[0].Path, results[0].Detail)
		ulog.Printf("first raw file failed validation: %s (%s)", results[0].Path, results[0].Detail)
		return merge, "first raw file failed validation: " + results[0].Path
	}
	for _, r := range results[1:] {
		if !r.OK {
			log.Warn("  Excluding corrupt raw file: %s (%s)", r.Path, r.Detail)
			ulog.Printf("corrupt raw file excluded from merge: %s (%s)", r.Path, r.Detail)
		}
	}
	return plan.Merge(probe.Valid(results)), ""
}

func logSummary(log *logging.Logger, summary *RunSummary) {
	completed, skipped, failedUnits := summary.Totals()
	log.Info("==============================")
	log.Info("Done: %d completed, %d skipped, %d failed", completed, skipped, failedUnits)
	for _, line := range summary.Lines() {
		log.Info("  %s", line)
	}
	if failedUnits > 0 {
		log.Warn("Re-running against the same output root retries only incomplete stages")
	}
}
