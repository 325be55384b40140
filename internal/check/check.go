// Package check provides tool diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for samtools, dorado, modkit and
// qualimap. A missing tool is caught here before a multi-hour run commits.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrSamtoolsNotFound = errors.New("samtools not found on PATH")
	ErrDoradoNotFound   = errors.New("dorado not found on PATH")
	ErrModkitNotFound   = errors.New("modkit not found on PATH")
	ErrQualimapNotFound = errors.New("qualimap not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: it prints availability and
// version of each external tool. Informational only; it does not stop on
// failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== Tool Check ===")
	checkTool(log, "samtools", cfg.Tools.Samtools, "--version")
	checkTool(log, "dorado", cfg.Tools.Dorado, "--version")
	checkTool(log, "modkit", cfg.Tools.Modkit, "--version")
	checkTool(log, "qualimap", cfg.Tools.Qualimap, "--version")
}

// checkTool verifies the binary is on PATH and logs its version line.
func checkTool(log Logger, label, bin, versionFlag string) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found (%s)", label, bin)
		return
	}
	out, err := exec.Command(bin, versionFlag).CombinedOutput()
	if err != nil {
		log.Warn("%s found but %s failed: %v", label, versionFlag, err)
		return
	}
	log.Success("%s: %s", label, firstLine(string(out)))
}

// CheckDeps is the pre-pipeline validation: all four external tools must be
// resolvable before any unit is processed. Returns a sentinel error for the
// first missing tool.
func CheckDeps(cfg *config.Config) error {
	deps := []struct {
		bin string
		err error
	}{
		{cfg.Tools.Samtools, ErrSamtoolsNotFound},
		{cfg.Tools.Dorado, ErrDoradoNotFound},
		{cfg.Tools.Modkit, ErrModkitNotFound},
		{cfg.Tools.Qualimap, ErrQualimapNotFound},
	}
	for _, d := range deps {
		if _, err := exec.LookPath(d.bin); err != nil {
			return d.err
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
