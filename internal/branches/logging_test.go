package branches_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/shellkit/internal/branches"
	"github.com/temirov/shellkit/internal/execshell"
)

// scriptedGitRunner answers git invocations at the process level so the real ShellExecutor logs them.
type scriptedGitRunner struct {
	localBranches []string
}

func (runner *scriptedGitRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	switch command.Details.Arguments[0] {
	case "for-each-ref":
		output := ""
		for _, branchName := range runner.localBranches {
			output += branchName + "\n"
		}
		return execshell.ExecutionResult{StandardOutput: output}, nil
	case "rev-parse":
		return execshell.ExecutionResult{StandardOutput: mainBranchNameConstant + "\n"}, nil
	case "show-ref":
		if command.Details.Arguments[len(command.Details.Arguments)-1] == "refs/remotes/origin/"+mainBranchNameConstant {
			return execshell.ExecutionResult{}, nil
		}
		return execshell.ExecutionResult{ExitCode: 1}, nil
	default:
		return execshell.ExecutionResult{}, nil
	}
}

func TestPruneLogsNoWarningsForMissingRemoteReferences(testInstance *testing.T) {
	executorCore, executorLogs := observer.New(zap.WarnLevel)
	shellExecutor, executorError := execshell.NewShellExecutor(
		zap.New(executorCore),
		&scriptedGitRunner{localBranches: []string{mainBranchNameConstant, staleBranchNameConstant}},
	)
	require.NoError(testInstance, executorError)

	serviceCore, serviceLogs := observer.New(zap.WarnLevel)
	service, serviceError := branches.NewService(zap.New(serviceCore), shellExecutor)
	require.NoError(testInstance, serviceError)

	result, pruneError := service.Prune(context.Background(), branches.Options{RemoteName: testRemoteNameConstant, WorkingDirectory: testRepositoryPathConstant})
	require.NoError(testInstance, pruneError)
	require.Equal(testInstance, []string{staleBranchNameConstant}, result.DeletedBranches)
	require.Zero(testInstance, executorLogs.Len())
	require.Zero(testInstance, serviceLogs.Len())
}
