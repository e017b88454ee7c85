package branches_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/shellkit/internal/branches"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	subtestNameTemplateConstant = "%02d_%s"
	mainBranchNameConstant      = "main"
	staleBranchNameConstant     = "feature/stale"
	liveBranchNameConstant      = "feature/live"
	goneBranchNameConstant      = "bugfix/gone"
)

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingLoggerError := branches.NewService(nil, newFakeRepository("", nil, nil))
	require.ErrorIs(testInstance, missingLoggerError, branches.ErrLoggerNotConfigured)

	_, missingExecutorError := branches.NewService(zap.NewNop(), nil)
	require.ErrorIs(testInstance, missingExecutorError, branches.ErrGitExecutorNotConfigured)
}

func TestPruneDeletesExactlyBranchesWithoutRemoteReference(testInstance *testing.T) {
	testCases := []struct {
		name              string
		currentBranch     string
		localBranches     []string
		remoteBranches    []string
		includeCurrent    bool
		expectedRemaining []string
		expectedDeleted   []string
		expectedProtected []string
	}{
		{
			name:              "stale_branches_removed",
			currentBranch:     mainBranchNameConstant,
			localBranches:     []string{mainBranchNameConstant, staleBranchNameConstant, liveBranchNameConstant, goneBranchNameConstant},
			remoteBranches:    []string{mainBranchNameConstant, liveBranchNameConstant},
			expectedRemaining: []string{liveBranchNameConstant, mainBranchNameConstant},
			expectedDeleted:   []string{goneBranchNameConstant, staleBranchNameConstant},
		},
		{
			name:              "current_branch_protected_by_default",
			currentBranch:     staleBranchNameConstant,
			localBranches:     []string{mainBranchNameConstant, staleBranchNameConstant},
			remoteBranches:    []string{mainBranchNameConstant},
			expectedRemaining: []string{staleBranchNameConstant, mainBranchNameConstant},
			expectedProtected: []string{staleBranchNameConstant},
		},
		{
			name:              "include_current_deletes_checked_out_branch",
			currentBranch:     staleBranchNameConstant,
			localBranches:     []string{mainBranchNameConstant, staleBranchNameConstant},
			remoteBranches:    []string{mainBranchNameConstant},
			includeCurrent:    true,
			expectedRemaining: []string{mainBranchNameConstant},
			expectedDeleted:   []string{staleBranchNameConstant},
		},
		{
			name:              "nothing_to_delete",
			currentBranch:     mainBranchNameConstant,
			localBranches:     []string{mainBranchNameConstant},
			remoteBranches:    []string{mainBranchNameConstant},
			expectedRemaining: []string{mainBranchNameConstant},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			repository := newFakeRepository(testCase.currentBranch, testCase.localBranches, testCase.remoteBranches)
			service, serviceError := branches.NewService(zap.NewNop(), repository)
			require.NoError(testInstance, serviceError)

			result, pruneError := service.Prune(context.Background(), branches.Options{
				RemoteName:       testRemoteNameConstant,
				WorkingDirectory: testRepositoryPathConstant,
				IncludeCurrent:   testCase.includeCurrent,
			})
			require.NoError(testInstance, pruneError)

			require.ElementsMatch(testInstance, testCase.expectedRemaining, repository.sortedLocalBranches())
			require.ElementsMatch(testInstance, testCase.expectedDeleted, result.DeletedBranches)
			require.ElementsMatch(testInstance, testCase.expectedProtected, result.ProtectedBranches)
			for _, workingDirectory := range repository.executedDirectories {
				require.Equal(testInstance, testRepositoryPathConstant, workingDirectory)
			}
			require.Equal(testInstance, []string{"fetch", "--prune", testRemoteNameConstant}, repository.executedCommands[0])
			require.Equal(testInstance, "0", repository.fetchEnvironmentSeen["GIT_TERMINAL_PROMPT"])
		})
	}
}

func TestPruneFetchFailureAbortsWithNetworkError(testInstance *testing.T) {
	repository := newFakeRepository(mainBranchNameConstant, []string{mainBranchNameConstant, staleBranchNameConstant}, nil)
	repository.fetchError = errors.New(fetchFailureMessageConstant)

	service, serviceError := branches.NewService(zap.NewNop(), repository)
	require.NoError(testInstance, serviceError)

	_, pruneError := service.Prune(context.Background(), branches.Options{RemoteName: testRemoteNameConstant})
	require.ErrorIs(testInstance, pruneError, toolerrors.ErrNetwork)
	require.Equal(testInstance, []string{"fetch"}, repository.executedSubcommands())
	require.Len(testInstance, repository.sortedLocalBranches(), 2)
}

func TestPruneContinuesAfterDeletionFailure(testInstance *testing.T) {
	repository := newFakeRepository(mainBranchNameConstant, []string{mainBranchNameConstant, goneBranchNameConstant, staleBranchNameConstant}, []string{mainBranchNameConstant})
	repository.failingDeletions[goneBranchNameConstant] = struct{}{}

	logCore, observedLogs := observer.New(zap.DebugLevel)
	service, serviceError := branches.NewService(zap.New(logCore), repository)
	require.NoError(testInstance, serviceError)

	result, pruneError := service.Prune(context.Background(), branches.Options{RemoteName: testRemoteNameConstant})
	require.Error(testInstance, pruneError)
	require.Equal(testInstance, toolerrors.ExitGeneral, toolerrors.MapExitCode(pruneError))

	require.Equal(testInstance, []string{staleBranchNameConstant}, result.DeletedBranches)
	require.Len(testInstance, result.Failures, 1)
	require.Equal(testInstance, goneBranchNameConstant, result.Failures[0].BranchName)
	require.ElementsMatch(testInstance, []string{mainBranchNameConstant, goneBranchNameConstant}, repository.sortedLocalBranches())

	warnings := observedLogs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(testInstance, warnings, 1)
	require.Equal(testInstance, goneBranchNameConstant, warnings[0].ContextMap()["branch"])
}

func TestPruneDryRunLeavesBranchesInPlace(testInstance *testing.T) {
	repository := newFakeRepository(mainBranchNameConstant, []string{mainBranchNameConstant, staleBranchNameConstant}, []string{mainBranchNameConstant})

	service, serviceError := branches.NewService(zap.NewNop(), repository)
	require.NoError(testInstance, serviceError)

	result, pruneError := service.Prune(context.Background(), branches.Options{RemoteName: testRemoteNameConstant, DryRun: true})
	require.NoError(testInstance, pruneError)
	require.Equal(testInstance, []string{staleBranchNameConstant}, result.PlannedBranches)
	require.Empty(testInstance, result.DeletedBranches)
	require.NotContains(testInstance, repository.executedSubcommands(), "branch")
	require.Len(testInstance, repository.sortedLocalBranches(), 2)
}

func TestPruneRequiresRemoteName(testInstance *testing.T) {
	service, serviceError := branches.NewService(zap.NewNop(), newFakeRepository("", nil, nil))
	require.NoError(testInstance, serviceError)

	_, pruneError := service.Prune(context.Background(), branches.Options{RemoteName: "  "})
	require.ErrorIs(testInstance, pruneError, branches.ErrRemoteNameRequired)
}
