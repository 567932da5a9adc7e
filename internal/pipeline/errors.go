package pipeline

import "fmt"

// AlgorithmFailure reports that a phase's Execute returned an error
// for a given sub-step.
type AlgorithmFailure struct {
	PhaseID   string
	StepIndex int
	Message   string
}

func (e *AlgorithmFailure) Error() string {
	return fmt.Sprintf("phase %q step %d: %s", e.PhaseID, e.StepIndex, e.Message)
}

// OutOfRangeTarget reports a StepForward/Backward/ReplayToFlat target
// outside [0, TotalSubSteps()].
type OutOfRangeTarget struct {
	Target int
	Total  int
}

func (e *OutOfRangeTarget) Error() string {
	return fmt.Sprintf("target %d out of range [0,%d]", e.Target, e.Total)
}

// AlreadyComplete reports an attempt to step forward when the
// pipeline has already executed every sub-step.
type AlreadyComplete struct{}

func (e *AlreadyComplete) Error() string { return "pipeline already complete" }

// SnapshotVersionTooNew reports a snapshot whose version exceeds
// CurrentVersion.
type SnapshotVersionTooNew struct {
	Found   int
	Current int
}

func (e *SnapshotVersionTooNew) Error() string {
	return fmt.Sprintf("snapshot version %d is newer than supported version %d", e.Found, e.Current)
}

// SnapshotMalformed reports a snapshot file that failed to parse or
// was missing a required field.
type SnapshotMalformed struct {
	Reason string
}

func (e *SnapshotMalformed) Error() string { return fmt.Sprintf("malformed snapshot: %s", e.Reason) }
