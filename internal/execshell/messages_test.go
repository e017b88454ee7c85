package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchMessagesNameTheRemote(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "upstream"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Fetching from upstream in /workspace/repo", formatter.BuildStartedMessage(command))
	require.Equal(t, "Failed to fetch from upstream in /workspace/repo (exit code 128: fatal: unable to access)",
		formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "fatal: unable to access\n"}))
}

func TestNonDeletingBranchCommandUsesGenericMessage(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch", "--list"}}}

	require.Equal(t, "Running git branch --list", formatter.BuildStartedMessage(command))
}
func TestCommandMessageFormatterScenarios(t *testing.T) {
	testCases := []struct {
		name     string
		command  ShellCommand
		result   ExecutionResult
		failure  error
		build    func(CommandMessageFormatter, ShellCommand, ExecutionResult, error) string
		expected string
	}{
		{
			name:     "force_branch_deletion_start",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch", "-D", "feature/old"}, WorkingDirectory: "/repo"}},
			build:    buildStarted,
			expected: "Force removing local branch feature/old in /repo",
		},
		{
			name:     "branch_deletion_failure",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch", "-D", "main"}, WorkingDirectory: "/repo"}},
			result:   ExecutionResult{ExitCode: 1, StandardError: "error: cannot delete branch 'main'\n"},
			build:    buildFailure,
			expected: "Failed to remove local branch main in /repo (exit code 1: error: cannot delete branch 'main')",
		},
		{
			name:     "reference_check_without_directory",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"show-ref", "--verify", "--quiet", "refs/remotes/origin/topic"}}},
			build:    buildStarted,
			expected: "Checking reference refs/remotes/origin/topic in current directory",
		},
		{
			name:     "submodule_listing_success",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"submodule", "status", "--recursive"}, WorkingDirectory: "/repo"}},
			build:    buildSuccess,
			expected: "Listed submodules in /repo",
		},
		{
			name:     "apt_get_purge_lists_packages",
			command:  ShellCommand{Name: CommandAptGet, Details: CommandDetails{Arguments: []string{"-y", "purge", "libfoo", "libbar"}}},
			build:    buildStarted,
			expected: "Purging packages libfoo libbar",
		},
		{
			name:     "sudo_wrapped_autoremove",
			command:  ShellCommand{Name: CommandSudo, Details: CommandDetails{Arguments: []string{"--non-interactive", "apt-get", "-y", "autoremove"}}},
			build:    buildStarted,
			expected: "Removing unneeded packages",
		},
		{
			name:     "gio_trash_execution_failure",
			command:  ShellCommand{Name: CommandGio, Details: CommandDetails{Arguments: []string{"trash", "/tmp/a.log"}}},
			failure:  errors.New("executable file not found"),
			build:    buildExecutionFailure,
			expected: "Unable to move /tmp/a.log to trash: executable file not found",
		},
		{
			name:     "generic_failure_includes_label",
			command:  ShellCommand{Name: CommandLocalePurge, Details: CommandDetails{WorkingDirectory: "/"}},
			result:   ExecutionResult{ExitCode: 3},
			build:    buildFailure,
			expected: "localepurge (in /) failed with exit code 3",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			message := testCase.build(CommandMessageFormatter{}, testCase.command, testCase.result, testCase.failure)
			require.Equal(t, testCase.expected, message)
		})
	}
}

func buildStarted(formatter CommandMessageFormatter, command ShellCommand, _ ExecutionResult, _ error) string {
	return formatter.BuildStartedMessage(command)
}

func buildSuccess(formatter CommandMessageFormatter, command ShellCommand, _ ExecutionResult, _ error) string {
	return formatter.BuildSuccessMessage(command)
}

func buildFailure(formatter CommandMessageFormatter, command ShellCommand, result ExecutionResult, _ error) string {
	return formatter.BuildFailureMessage(command, result)
}

func buildExecutionFailure(formatter CommandMessageFormatter, command ShellCommand, _ ExecutionResult, failure error) string {
	return formatter.BuildExecutionFailureMessage(command, failure)
}
