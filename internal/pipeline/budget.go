package pipeline

import (
	"os"
	"runtime"
	"strconv"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/config"
)

// Scheduler environment variables carrying the externally allocated CPU
// budget, in detection order.
var allocationVars = []string{
	"LSB_DJOB_NUMPROC",    // LSF
	"SLURM_CPUS_PER_TASK", // Slurm
	"NSLOTS",              // SGE
}

// DetectAllocation returns the thread ceiling granted by the surrounding
// resource manager and a label describing where it came from. Outside any
// scheduler it falls back to the profile default, or the machine CPU count.
func DetectAllocation(profile config.ToolProfile) (int, string) {
	for _, v := range allocationVars {
		if raw := os.Getenv(v); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
				return n, v
			}
		}
	}
	if profile.DefaultAllocation >= 1 {
		return profile.DefaultAllocation, "tool profile default"
	}
	return runtime.NumCPU(), "machine CPU count"
}

// ClampThreads applies the allocation ceiling to the requested thread
// count. The second return reports whether clamping occurred, so the
// caller can log the resource warning exactly once per run.
func ClampThreads(requested, allocation int) (int, bool) {
	if requested > allocation {
		return allocation, true
	}
	return requested, false
}
