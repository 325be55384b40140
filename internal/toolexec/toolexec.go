// Package toolexec is the command-execution boundary to the external
// bioinformatics tools. The pipeline never shells out directly; it goes
// through the [Tool] capability interface so tests can substitute a fake.
package toolexec

import (
	"context"
	"io"
	"time"
)

// Spec describes one external-tool invocation.
type Spec struct {
	// Command is the argv; Command[0] is the binary name or path.
	Command []string

	// StdoutPath, when non-empty, streams the tool's stdout into this
	// file (used by aligners that emit the artifact on stdout). When
	// empty, stdout is captured into Result.Stdout.
	StdoutPath string

	// Stderr, when non-nil, receives the tool's diagnostic output in
	// real time (the unit log). Stderr is additionally captured into
	// Result.Stderr for error reporting.
	Stderr io.Writer
}

// Result is the outcome of one invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error // Non-nil on spawn failure or non-zero exit.
}

// Tool runs external commands. The production implementation is
// [Executor]; tests inject fakes.
type Tool interface {
	Invoke(ctx context.Context, spec Spec) Result
}
