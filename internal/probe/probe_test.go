package probe

import (
	"context"
	"sync"
	"testing"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/toolexec"
)

// fakeTool fails quickcheck for paths in bad, succeeds otherwise.
type fakeTool struct {
	mu    sync.Mutex
	bad   map[string]bool
	calls []string
}

func (f *fakeTool) Invoke(_ context.Context, spec toolexec.Spec) toolexec.Result {
	path := spec.Command[len(spec.Command)-1]
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if f.bad[path] {
		return toolexec.Result{ExitCode: 1, Stderr: path + " had no targets in header", Err: errExit}
	}
	return toolexec.Result{ExitCode: 0}
}

var errExit = exitErr("exit status 1")

type exitErr string

func (e exitErr) Error() string { return string(e) }

func TestValidateRawFiles_AllValid(t *testing.T) {
	ft := &fakeTool{}
	files := []string{"/u/a.bam", "/u/b.bam", "/u/c.bam"}
	results := ValidateRawFiles(context.Background(), ft, "samtools", files)

	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Path != files[i] {
			t.Errorf("result %d out of order: %s", i, r.Path)
		}
		if !r.OK {
			t.Errorf("%s: unexpectedly invalid", r.Path)
		}
	}
	if len(ft.calls) != 3 {
		t.Errorf("quickcheck calls: %d", len(ft.calls))
	}
}

func TestValidateRawFiles_ReportsCorrupt(t *testing.T) {
	ft := &fakeTool{bad: map[string]bool{"/u/b.bam": true}}
	results := ValidateRawFiles(context.Background(), ft, "samtools",
		[]string{"/u/a.bam", "/u/b.bam"})

	if !results[0].OK {
		t.Error("a.bam should pass")
	}
	if results[1].OK {
		t.Error("b.bam should fail")
	}
	if results[1].Detail == "" {
		t.Error("failure detail missing")
	}
}

func TestValid_FiltersFailures(t *testing.T) {
	results := []Result{
		{Path: "a", OK: true},
		{Path: "b", OK: false},
		{Path: "c", OK: true},
	}
	got := Valid(results)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Valid: %v", got)
	}
}
