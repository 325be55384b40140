package pipeline

import (
	"fmt"
	"sort"
)

// RunSummary accumulates per-unit outcomes over a run. It replaces ambient
// counters: the driver owns one instance, passes it explicitly, and returns
// it at run end.
type RunSummary struct {
	outcomes []UnitOutcome
}

// Add records one unit's terminal outcome.
func (s *RunSummary) Add(o UnitOutcome) {
	s.outcomes = append(s.outcomes, o)
}

// Outcomes returns the recorded outcomes in processing order.
func (s *RunSummary) Outcomes() []UnitOutcome { return s.outcomes }

// Totals returns run-wide counts by outcome.
func (s *RunSummary) Totals() (completed, skipped, failed int) {
	for _, o := range s.outcomes {
		switch o.Kind {
		case OutcomeCompleted:
			completed++
		case OutcomeSkippedNoInput:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return
}

// LibraryTally is the per-library grouping used in the final summary.
type LibraryTally struct {
	Library   string
	Units     int
	Completed int
	Skipped   int
	Failed    int
}

// ByLibrary groups outcomes by library code, sorted by library for a
// stable report.
func (s *RunSummary) ByLibrary() []LibraryTally {
	byLib := make(map[string]*LibraryTally)
	for _, o := range s.outcomes {
		t := byLib[o.Unit.LibraryCode]
		if t == nil {
			t = &LibraryTally{Library: o.Unit.LibraryCode}
			byLib[o.Unit.LibraryCode] = t
		}
		t.Units++
		switch o.Kind {
		case OutcomeCompleted:
			t.Completed++
		case OutcomeSkippedNoInput:
			t.Skipped++
		case OutcomeFailed:
			t.Failed++
		}
	}
	tallies := make([]LibraryTally, 0, len(byLib))
	for _, t := range byLib {
		tallies = append(tallies, *t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		return tallies[i].Library < tallies[j].Library
	})
	return tallies
}

// Lines renders the grouped summary: one line per library, then every
// non-completed unit by name and reason so a user knows what a re-run
// against the same output root will retry.
func (s *RunSummary) Lines() []string {
	var lines []string
	for _, t := range s.ByLibrary() {
		lines = append(lines, fmt.Sprintf("%s: %d units (%d completed, %d skipped, %d failed)",
			t.Library, t.Units, t.Completed, t.Skipped, t.Failed))
	}
	for _, o := range s.outcomes {
		switch o.Kind {
		case OutcomeSkippedNoInput:
			lines = append(lines, fmt.Sprintf("  skipped %s: %s", o.Unit, o.Reason))
		case OutcomeFailed:
			lines = append(lines, fmt.Sprintf("  failed %s at %s: %s", o.Unit, o.StageName, o.Reason))
		}
	}
	return lines
}
