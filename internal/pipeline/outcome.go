package pipeline

import (
	"time"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/discovery"
)

// OutcomeKind is a unit's terminal state.
type OutcomeKind int

const (
	OutcomeCompleted OutcomeKind = iota
	OutcomeSkippedNoInput
	OutcomeFailed
)

// String returns the summary label for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkippedNoInput:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// UnitOutcome records how one work unit ended. It is appended to the run
// summary and never mutated afterwards.
type UnitOutcome struct {
	Unit discovery.WorkUnit
	Kind OutcomeKind

	// Failing stage, meaningful only when Kind is OutcomeFailed.
	// StageIndex is -1 when the failure happened before any stage ran.
	StageIndex int
	StageName  string
	Reason     string

	Elapsed time.Duration
}

func completed(u discovery.WorkUnit, elapsed time.Duration) UnitOutcome {
	return UnitOutcome{Unit: u, Kind: OutcomeCompleted, StageIndex: -1, Elapsed: elapsed}
}

func skippedNoInput(u discovery.WorkUnit) UnitOutcome {
	return UnitOutcome{Unit: u, Kind: OutcomeSkippedNoInput, StageIndex: -1, Reason: "no raw files"}
}

func failed(u discovery.WorkUnit, stageIndex int, stageName, reason string, elapsed time.Duration) UnitOutcome {
	return UnitOutcome{
		Unit:       u,
		Kind:       OutcomeFailed,
		StageIndex: stageIndex,
		StageName:  stageName,
		Reason:     reason,
		Elapsed:    elapsed,
	}
}
