package branches_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	testRemoteNameConstant            = "origin"
	testRepositoryPathConstant        = "/tmp/repository"
	remoteReferencesNamespaceConstant = "refs/remotes/"
	fetchFailureMessageConstant       = "could not resolve host"
)

// fakeRepository emulates the git plumbing used by the pruning service.
type fakeRepository struct {
	localBranches        map[string]struct{}
	remoteBranches       map[string]struct{}
	currentBranch        string
	fetchError           error
	failingDeletions     map[string]struct{}
	executedCommands     [][]string
	executedDirectories  []string
	fetchEnvironmentSeen map[string]string
}

func newFakeRepository(currentBranch string, localBranches []string, remoteBranches []string) *fakeRepository {
	repository := &fakeRepository{
		localBranches:    map[string]struct{}{},
		remoteBranches:   map[string]struct{}{},
		currentBranch:    currentBranch,
		failingDeletions: map[string]struct{}{},
	}
	for _, branchName := range localBranches {
		repository.localBranches[branchName] = struct{}{}
	}
	for _, branchName := range remoteBranches {
		repository.remoteBranches[branchName] = struct{}{}
	}
	return repository
}

func (repository *fakeRepository) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	repository.executedCommands = append(repository.executedCommands, append([]string{}, details.Arguments...))
	repository.executedDirectories = append(repository.executedDirectories, details.WorkingDirectory)
	command := execshell.ShellCommand{Name: execshell.CommandGit, Details: details}

	switch details.Arguments[0] {
	case "fetch":
		repository.fetchEnvironmentSeen = details.EnvironmentVariables
		if repository.fetchError != nil {
			return execshell.ExecutionResult{}, repository.fetchError
		}
		return execshell.ExecutionResult{}, nil
	case "for-each-ref":
		return execshell.ExecutionResult{StandardOutput: strings.Join(repository.sortedLocalBranches(), "\n") + "\n"}, nil
	case "rev-parse":
		return execshell.ExecutionResult{StandardOutput: repository.currentBranch + "\n"}, nil
	case "show-ref":
		reference := details.Arguments[len(details.Arguments)-1]
		remoteAndBranch := strings.SplitN(strings.TrimPrefix(reference, remoteReferencesNamespaceConstant), "/", 2)
		if _, exists := repository.remoteBranches[remoteAndBranch[len(remoteAndBranch)-1]]; exists {
			return execshell.ExecutionResult{}, nil
		}
		return execshell.ExecutionResult{}, execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 1}}
	case "branch":
		branchName := details.Arguments[len(details.Arguments)-1]
		if _, failing := repository.failingDeletions[branchName]; failing {
			return execshell.ExecutionResult{}, execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 1, StandardError: "error: cannot delete branch"}}
		}
		delete(repository.localBranches, branchName)
		return execshell.ExecutionResult{}, nil
	default:
		return execshell.ExecutionResult{}, errors.New("unexpected git invocation")
	}
}

func (repository *fakeRepository) sortedLocalBranches() []string {
	branchNames := make([]string, 0, len(repository.localBranches))
	for branchName := range repository.localBranches {
		branchNames = append(branchNames, branchName)
	}
	sort.Strings(branchNames)
	return branchNames
}

func (repository *fakeRepository) executedSubcommands() []string {
	subcommands := make([]string, 0, len(repository.executedCommands))
	for _, arguments := range repository.executedCommands {
		subcommands = append(subcommands, arguments[0])
	}
	return subcommands
}
