package cleanup_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shellkit/internal/cleanup"
	"github.com/temirov/shellkit/internal/toolerrors"
)

func TestBuildStepsPreservesRequestedOrder(testInstance *testing.T) {
	steps, buildError := cleanup.BuildSteps([]string{" Clear-Cache ", "remove-unneeded"}, cleanup.BuildOptions{})
	require.NoError(testInstance, buildError)
	require.Len(testInstance, steps, 2)
	require.Equal(testInstance, cleanup.StepClearCache, steps[0].Name())
	require.Equal(testInstance, cleanup.StepRemoveUnneeded, steps[1].Name())
}

func TestBuildStepsDefaultsToFullPipeline(testInstance *testing.T) {
	steps, buildError := cleanup.BuildSteps(nil, cleanup.BuildOptions{})
	require.NoError(testInstance, buildError)

	stepNames := make([]cleanup.StepName, 0, len(steps))
	for _, step := range steps {
		stepNames = append(stepNames, step.Name())
	}
	require.Equal(testInstance, cleanup.DefaultStepNames(), stepNames)
}

func TestBuildStepsRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name      string
		stepNames []string
		retention string
	}{
		{name: "unknown_step", stepNames: []string{"defragment"}},
		{name: "duplicate_step", stepNames: []string{"clear-cache", "clear-cache"}},
		{name: "only_blank_entries", stepNames: []string{" ", ""}},
		{name: "retention_without_unit", retention: "7"},
		{name: "retention_without_number", retention: "days"},
		{name: "retention_with_symbols", retention: "7d;reboot"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			_, buildError := cleanup.BuildSteps(testCase.stepNames, cleanup.BuildOptions{JournalRetention: testCase.retention})
			require.Error(subtest, buildError)
			require.ErrorIs(subtest, buildError, toolerrors.ErrInvalidArgument)
		})
	}
}

func TestStepStateLabels(testInstance *testing.T) {
	require.Equal(testInstance, "pending", cleanup.StepStatePending.String())
	require.Equal(testInstance, "running", cleanup.StepStateRunning.String())
	require.Equal(testInstance, "succeeded", cleanup.StepStateSucceeded.String())
	require.Equal(testInstance, "failed", cleanup.StepStateFailed.String())
	require.Equal(testInstance, "StepState(9)", cleanup.StepState(9).String())
}
