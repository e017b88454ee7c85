package cleanup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	stepStartedMessageConstant   = "cleanup step started"
	stepSucceededMessageConstant = "cleanup step succeeded"
	stepFailedMessageConstant    = "cleanup step failed"
	stepReportTemplateConstant   = "[%d/%d] %s\n"
	planStepTemplateConstant     = "%d. %s\n"
	planCommandTemplateConstant  = "   %s\n"
	logFieldStepIndexConstant    = "step_index"
	logFieldStepCountConstant    = "step_count"
)

// Pipeline executes cleanup steps in order and stops at the first failure.
type Pipeline struct {
	steps []Step
}

// NewPipeline constructs a Pipeline from ordered steps.
func NewPipeline(steps []Step) *Pipeline {
	return &Pipeline{steps: append([]Step{}, steps...)}
}

// Records returns one Pending record per step.
func (pipeline *Pipeline) Records() []StepRecord {
	records := make([]StepRecord, 0, len(pipeline.steps))
	for _, step := range pipeline.steps {
		records = append(records, StepRecord{Name: step.Name(), State: StepStatePending})
	}
	return records
}

// Plan writes the commands each step would run without executing anything.
func (pipeline *Pipeline) Plan(environment *Environment) {
	output := environment.output()
	for stepIndex, step := range pipeline.steps {
		fmt.Fprintf(output, planStepTemplateConstant, stepIndex+1, step.Name())
		for _, description := range step.Describe(environment) {
			fmt.Fprintf(output, planCommandTemplateConstant, description)
		}
	}
}

// Run executes every step in order. When step K fails, steps after K are never started and remain
// Pending, step K is Failed and the returned error wraps toolerrors.ErrStepFailure naming step K.
func (pipeline *Pipeline) Run(executionContext context.Context, environment *Environment) ([]StepRecord, error) {
	records := pipeline.Records()
	logger := environment.logger()
	output := environment.output()

	for stepIndex, step := range pipeline.steps {
		records[stepIndex].State = StepStateRunning
		stepFields := []zap.Field{
			zap.String(logFieldStepConstant, string(step.Name())),
			zap.Int(logFieldStepIndexConstant, stepIndex+1),
			zap.Int(logFieldStepCountConstant, len(pipeline.steps)),
		}
		logger.Info(stepStartedMessageConstant, stepFields...)
		fmt.Fprintf(output, stepReportTemplateConstant, stepIndex+1, len(pipeline.steps), step.Name())

		if executionError := step.Execute(executionContext, environment); executionError != nil {
			records[stepIndex].State = StepStateFailed
			records[stepIndex].Cause = executionError
			logger.Error(stepFailedMessageConstant, append(stepFields, zap.Error(executionError))...)
			return records, toolerrors.StepFailure(string(step.Name()), executionError)
		}

		records[stepIndex].State = StepStateSucceeded
		logger.Info(stepSucceededMessageConstant, stepFields...)
	}

	return records, nil
}
