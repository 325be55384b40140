package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// UnitLog is the dedicated, append-only log for one work unit. External
// tools write their stderr directly into it via Writer; the pipeline adds
// timestamped progress lines via Printf.
type UnitLog struct {
	mu   sync.Mutex
	f    *os.File
	Path string
}

// OpenUnitLog opens (appending) the per-unit log under
// <outputRoot>/logs/<libraryCode>/<batchCode>/<sampleName>.log, creating
// parent directories as needed. An empty batchCode collapses to the
// library directory.
func OpenUnitLog(outputRoot, libraryCode, batchCode, sampleName string) (*UnitLog, error) {
	dir := filepath.Join(outputRoot, "logs", libraryCode, batchCode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, sampleName+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &UnitLog{f: f, Path: path}, nil
}

// Printf appends one timestamped line. Each call is a single unbuffered
// write, so interrupted runs keep every completed line.
func (u *UnitLog) Printf(format string, args ...interface{}) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.f, ts+" "+format+"\n", args...)
}

// Writer returns the raw sink for external-tool diagnostic output.
func (u *UnitLog) Writer() io.Writer {
	return &lockedWriter{u: u}
}

// Close closes the underlying file.
func (u *UnitLog) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.f.Close()
}

// lockedWriter serializes raw writes with Printf lines.
type lockedWriter struct{ u *UnitLog }

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.u.mu.Lock()
	defer w.u.mu.Unlock()
	return w.u.f.Write(p)
}
