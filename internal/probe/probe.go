// Package probe validates raw basecaller files before they are admitted to
// the merge stage. Validity is judged by samtools quickcheck: a structural
// pass over the header and EOF block, cheap enough to run on every
// contributing file of every unit.
package probe

import (
	"context"
	"fmt"

	"github.com/exascience/pargo/parallel"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/toolexec"
)

// Result is the verdict for one raw file.
type Result struct {
	Path   string
	OK     bool
	Detail string // Tool diagnostic summary when not OK.
}

// ValidateRawFiles quickchecks every file and returns verdicts in input
// order. Probes run in parallel (each writes only its own slot); the merge
// stage afterwards consumes the verdicts sequentially.
func ValidateRawFiles(ctx context.Context, tool toolexec.Tool, samtools string, files []string) []Result {
	results := make([]Result, len(files))
	parallel.Range(0, len(files), 0, func(low, high int) {
		for i := low; i < high; i++ {
			results[i] = validateOne(ctx, tool, samtools, files[i])
		}
	})
	return results
}

func validateOne(ctx context.Context, tool toolexec.Tool, samtools, path string) Result {
	res := tool.Invoke(ctx, toolexec.Spec{
		Command: []string{samtools, "quickcheck", path},
	})
	if res.Err == nil && res.ExitCode == 0 {
		return Result{Path: path, OK: true}
	}
	detail := fmt.Sprintf("quickcheck exit %d", res.ExitCode)
	if tail := toolexec.Tail(res.Stderr, 1); len(tail) > 0 {
		detail += ": " + tail[0]
	}
	return Result{Path: path, OK: false, Detail: detail}
}

// Valid filters results down to the paths that passed.
func Valid(results []Result) []string {
	var out []string
	for _, r := range results {
		if r.OK {
			out = append(out, r.Path)
		}
	}
	return out
}
