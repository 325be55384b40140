// Package logging implements the run logger: a leveled, optionally colored
// master log (stdout plus an append-only file) and one dedicated log per
// work unit for external-tool diagnostics. Every line is written
// immediately so an interrupted run loses nothing.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/term"
)

// Logger provides leveled logging to stdout/stderr and an optional
// append-only master log file.
type Logger struct {
	mu       sync.Mutex
	verbose  bool
	file     *os.File
	filePath string
}

// MasterLogPath returns the conventional master log location under
// outputRoot for a run started at t.
func MasterLogPath(outputRoot string, t time.Time) string {
	name := fmt.Sprintf("pipeline_master_log_%s.txt", t.Format("20060102_150405"))
	return filepath.Join(outputRoot, "logs", name)
}

// NewLogger configures colors for mode and, when masterPath is non-empty,
// opens (appending) the master log file. Call Close when done.
func NewLogger(mode term.ColorMode, verbose bool, masterPath string) (*Logger, error) {
	term.Configure(mode)
	l := &Logger{verbose: verbose}

	if masterPath != "" {
		if err := os.MkdirAll(filepath.Dir(masterPath), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(masterPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = masterPath
	}
	return l, nil
}

// FilePath returns the master log path, or empty when logging to stdout only.
func (l *Logger) FilePath() string { return l.filePath }

// Close closes the master log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// line writes one timestamped log line to the console and the master file.
// Writes are unbuffered; os.File writes go straight to the kernel, so an
// abrupt termination cannot lose already-logged lines.
func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
