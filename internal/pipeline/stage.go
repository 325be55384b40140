package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/display"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/logging"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/planner"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/toolexec"
)

// StageRunner executes one planned stage for one unit: idempotency check,
// then (outside dry-run) the external-tool invocation with diagnostics
// routed to the unit log.
type StageRunner struct {
	Tool   toolexec.Tool
	Log    *logging.Logger
	DryRun bool
}

// Run drives the stage to completion. A nil return means the stage's
// artifact is valid, whether freshly produced, pre-existing, or (in
// dry-run) pretend.
func (r *StageRunner) Run(ctx context.Context, st planner.Stage, ulog *logging.UnitLog) error {
	label := fmt.Sprintf("[%d/%d] %s", st.Index+1, planner.StageCount, st.Name)

	if r.DryRun {
		r.Log.Info("  [DRY] would run %s: %s", st.Name, strings.Join(st.Command, " "))
		return nil
	}

	if done, why := ArtifactComplete(st); done {
		r.Log.Info("  %s: already complete (%s), skipping", label, why)
		ulog.Printf("%s skipped: %s", st.Name, why)
		return nil
	}

	ulog.Printf("--- %s: %s", st.Name, strings.Join(st.Command, " "))
	res := r.Tool.Invoke(ctx, toolexec.Spec{
		Command:    st.Command,
		StdoutPath: st.StdoutPath,
		Stderr:     ulog.Writer(),
	})

	if res.Err != nil {
		r.Log.Error("  %s failed (exit %d) after %s, see %s",
			label, res.ExitCode, display.FormatDuration(res.Duration), ulog.Path)
		for _, line := range toolexec.Tail(res.Stderr, 10) {
			r.Log.Error("    %s", line)
		}
		ulog.Printf("%s failed: exit %d", st.Name, res.ExitCode)
		return fmt.Errorf("%s exit %d", st.Command[0], res.ExitCode)
	}

	r.Log.Info("  %s done in %s", label, display.FormatDuration(res.Duration))
	ulog.Printf("%s done in %s", st.Name, display.FormatDuration(res.Duration))
	return nil
}

// ArtifactComplete is the idempotency check: whether the stage's output
// already satisfies completion, allowing the stage to be skipped on a
// re-run. Directory artifacts are judged by their marker file; file
// artifacts by a minimum size that rules out truncated leftovers.
func ArtifactComplete(st planner.Stage) (bool, string) {
	if st.Marker != "" {
		if _, err := os.Stat(st.Marker); err != nil {
			return false, ""
		}
		return true, "report marker present"
	}
	fi, err := os.Stat(st.Artifact)
	if err != nil || fi.IsDir() {
		return false, ""
	}
	if fi.Size() < st.MinBytes {
		return false, ""
	}
	return true, fmt.Sprintf("artifact is %s", display.FormatBytes(fi.Size()))
}
