package toolexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Executor is the production [Tool]: it runs the command with
// exec.CommandContext, streams stdout to the artifact file when requested,
// and captures stderr for diagnostics.
type Executor struct{}

// Invoke runs one external command to completion. The call blocks for the
// full duration of the process; cancellation of ctx kills it.
func (Executor) Invoke(ctx context.Context, spec Spec) Result {
	if len(spec.Command) == 0 {
		return Result{ExitCode: -1, Err: fmt.Errorf("empty command")}
	}
	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)

	var stdoutBuf, stderrBuf bytes.Buffer
	if spec.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, spec.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	var outFile *os.File
	if spec.StdoutPath != "" {
		f, err := os.Create(spec.StdoutPath)
		if err != nil {
			return Result{ExitCode: -1, Err: fmt.Errorf("create %s: %w", spec.StdoutPath, err)}
		}
		outFile = f
		cmd.Stdout = f
	} else {
		cmd.Stdout = &stdoutBuf
	}

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if outFile != nil {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	res := Result{
		ExitCode: exitCode(cmd, err),
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: duration,
		Err:      err,
	}
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", spec.Command[0], err)
	}
	return res
}

// exitCode extracts the process exit status: 0 on success, the tool's
// status on a clean failure, -1 when the process never ran or was killed.
func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

// Tail returns the last n lines of s, for compact error reporting of a
// tool's diagnostic output.
func Tail(s string, n int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
