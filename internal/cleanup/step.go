package cleanup

import (
	"context"
	"fmt"
)

// StepName identifies a cleanup step.
type StepName string

// Supported cleanup steps in default execution order.
const (
	StepRemoveUnneeded StepName = StepName("remove-unneeded")
	StepPurgeResidual  StepName = StepName("purge-residual")
	StepClearCache     StepName = StepName("clear-cache")
	StepTruncateLogs   StepName = StepName("truncate-logs")
	StepPurgeLocales   StepName = StepName("purge-locales")
	StepRemoveOrphans  StepName = StepName("remove-orphans")
)

// DefaultStepNames lists the full pipeline in execution order.
func DefaultStepNames() []StepName {
	return []StepName{
		StepRemoveUnneeded,
		StepPurgeResidual,
		StepClearCache,
		StepTruncateLogs,
		StepPurgeLocales,
		StepRemoveOrphans,
	}
}

// StepState tracks a step through a pipeline run.
type StepState int

// Step lifecycle states.
const (
	StepStatePending StepState = iota
	StepStateRunning
	StepStateSucceeded
	StepStateFailed
)

var stepStateLabels = map[StepState]string{
	StepStatePending:   "pending",
	StepStateRunning:   "running",
	StepStateSucceeded: "succeeded",
	StepStateFailed:    "failed",
}

// String renders the state label.
func (state StepState) String() string {
	if label, exists := stepStateLabels[state]; exists {
		return label
	}
	return fmt.Sprintf("StepState(%d)", int(state))
}

// Step is one unit of the cleanup pipeline.
type Step interface {
	Name() StepName
	Describe(environment *Environment) []string
	Execute(executionContext context.Context, environment *Environment) error
}

// StepRecord captures the final state of a step after a pipeline run.
type StepRecord struct {
	Name  StepName
	State StepState
	Cause error
}
