package branches

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	loggerMissingMessageConstant                = "branch pruning logger not configured"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	remoteNameRequiredMessageConstant           = "remote name must be provided"
	listBranchesFailureTemplateConstant         = "failed to list local branches: %w"
	currentBranchFailureTemplateConstant        = "failed to identify current branch: %w"
	referenceCheckFailureTemplateConstant       = "failed to check remote reference for %s: %w"
	branchDeletionFailureTemplateConstant       = "failed to delete branch %s: %w"
	deletionSummaryFailureTemplateConstant      = "%d branch operation(s) failed: %w"
	gitFetchSubcommandConstant                  = "fetch"
	gitFetchPruneFlagConstant                   = "--prune"
	gitForEachRefSubcommandConstant             = "for-each-ref"
	gitShortRefNameFormatConstant               = "--format=%(refname:short)"
	gitLocalHeadsNamespaceConstant              = "refs/heads"
	gitShowRefSubcommandConstant                = "show-ref"
	gitVerifyFlagConstant                       = "--verify"
	gitQuietFlagConstant                        = "--quiet"
	gitRemoteReferenceTemplateConstant          = "refs/remotes/%s/%s"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitAbbrevRefFlagConstant                    = "--abbrev-ref"
	gitHeadReferenceConstant                    = "HEAD"
	gitBranchSubcommandConstant                 = "branch"
	gitForceDeleteFlagConstant                  = "-D"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	referenceMissingExitCodeConstant            = 1
	pruneStartedMessageConstant                 = "pruning local branches"
	branchesEnumeratedMessageConstant           = "enumerated local branches"
	branchKeptMessageConstant                   = "remote branch present, keeping local branch"
	branchProtectedMessageConstant              = "skipping checked-out branch"
	branchPlannedMessageConstant                = "would delete local branch"
	branchDeletedMessageConstant                = "deleted local branch"
	branchFailureMessageConstant                = "branch operation failed"
	logFieldRemoteConstant                      = "remote"
	logFieldBranchConstant                      = "branch"
	logFieldRepositoryConstant                  = "repository"
	logFieldBranchCountConstant                 = "branch_count"
)

// ErrLoggerNotConfigured indicates the service was created without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRemoteNameRequired indicates the remote option was empty.
var ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the pruning service.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Options configures a pruning run.
type Options struct {
	RemoteName       string
	WorkingDirectory string
	IncludeCurrent   bool
	DryRun           bool
}

// BranchFailure records a branch whose inspection or deletion failed.
type BranchFailure struct {
	BranchName string
	Cause      error
}

// Result captures the observable outcomes of a pruning run.
type Result struct {
	DeletedBranches   []string
	PlannedBranches   []string
	ProtectedBranches []string
	KeptBranches      []string
	Failures          []BranchFailure
}

// Service prunes local branches through git.
type Service struct {
	logger   *zap.Logger
	executor GitExecutor
}

// NewService constructs a Service from the provided dependencies.
func NewService(logger *zap.Logger, executor GitExecutor) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &Service{logger: logger, executor: executor}, nil
}

// Prune deletes every local branch whose remote-tracking reference is absent after fetching with --prune.
// A fetch failure aborts with a network error. Per-branch failures are collected and processing continues;
// the returned error is non-nil when any branch failed.
func (service *Service) Prune(executionContext context.Context, options Options) (Result, error) {
	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		return Result{}, ErrRemoteNameRequired
	}
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)

	service.logger.Info(pruneStartedMessageConstant, zap.String(logFieldRemoteConstant, remoteName), zap.String(logFieldRepositoryConstant, workingDirectory))

	fetchDetails := execshell.CommandDetails{
		Arguments:            []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant, remoteName},
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	}
	if _, fetchError := service.executor.ExecuteGit(executionContext, fetchDetails); fetchError != nil {
		return Result{}, toolerrors.Network(remoteName, fetchError)
	}

	localBranches, listError := service.listLocalBranches(executionContext, workingDirectory)
	if listError != nil {
		return Result{}, fmt.Errorf(listBranchesFailureTemplateConstant, listError)
	}
	service.logger.Debug(branchesEnumeratedMessageConstant, zap.Int(logFieldBranchCountConstant, len(localBranches)))

	currentBranch := ""
	if !options.IncludeCurrent && len(localBranches) > 0 {
		resolvedBranch, currentError := service.currentBranch(executionContext, workingDirectory)
		if currentError != nil {
			return Result{}, fmt.Errorf(currentBranchFailureTemplateConstant, currentError)
		}
		currentBranch = resolvedBranch
	}

	result := Result{}
	for _, branchName := range localBranches {
		remotePresent, checkError := service.remoteBranchExists(executionContext, workingDirectory, remoteName, branchName)
		if checkError != nil {
			service.recordFailure(&result, branchName, fmt.Errorf(referenceCheckFailureTemplateConstant, branchName, checkError))
			continue
		}
		if remotePresent {
			service.logger.Debug(branchKeptMessageConstant, zap.String(logFieldBranchConstant, branchName))
			result.KeptBranches = append(result.KeptBranches, branchName)
			continue
		}

		if branchName == currentBranch {
			service.logger.Info(branchProtectedMessageConstant, zap.String(logFieldBranchConstant, branchName))
			result.ProtectedBranches = append(result.ProtectedBranches, branchName)
			continue
		}

		if options.DryRun {
			service.logger.Info(branchPlannedMessageConstant, zap.String(logFieldBranchConstant, branchName))
			result.PlannedBranches = append(result.PlannedBranches, branchName)
			continue
		}

		_, deletionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitBranchSubcommandConstant, gitForceDeleteFlagConstant, branchName},
			WorkingDirectory: workingDirectory,
		})
		if deletionError != nil {
			service.recordFailure(&result, branchName, fmt.Errorf(branchDeletionFailureTemplateConstant, branchName, deletionError))
			continue
		}

		service.logger.Info(branchDeletedMessageConstant, zap.String(logFieldBranchConstant, branchName))
		result.DeletedBranches = append(result.DeletedBranches, branchName)
	}

	if len(result.Failures) > 0 {
		failureCauses := make([]error, 0, len(result.Failures))
		for _, failure := range result.Failures {
			failureCauses = append(failureCauses, failure.Cause)
		}
		return result, fmt.Errorf(deletionSummaryFailureTemplateConstant, len(result.Failures), errors.Join(failureCauses...))
	}

	return result, nil
}

func (service *Service) listLocalBranches(executionContext context.Context, workingDirectory string) ([]string, error) {
	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitForEachRefSubcommandConstant, gitShortRefNameFormatConstant, gitLocalHeadsNamespaceConstant},
		WorkingDirectory: workingDirectory,
	})
	if executionError != nil {
		return nil, executionError
	}

	branchNames := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(executionResult.StandardOutput))
	for scanner.Scan() {
		branchName := strings.TrimSpace(scanner.Text())
		if len(branchName) == 0 {
			continue
		}
		branchNames = append(branchNames, branchName)
	}
	return branchNames, scanner.Err()
}

func (service *Service) currentBranch(executionContext context.Context, workingDirectory string) (string, error) {
	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: workingDirectory,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func (service *Service) remoteBranchExists(executionContext context.Context, workingDirectory string, remoteName string, branchName string) (bool, error) {
	_, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitShowRefSubcommandConstant,
			gitVerifyFlagConstant,
			gitQuietFlagConstant,
			fmt.Sprintf(gitRemoteReferenceTemplateConstant, remoteName, branchName),
		},
		WorkingDirectory:  workingDirectory,
		AcceptedExitCodes: []int{referenceMissingExitCodeConstant},
	})
	if executionError == nil {
		return true, nil
	}
	if exitCode, failed := execshell.ExitCodeOf(executionError); failed && exitCode == referenceMissingExitCodeConstant {
		return false, nil
	}
	return false, executionError
}

func (service *Service) recordFailure(result *Result, branchName string, cause error) {
	service.logger.Warn(branchFailureMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.Error(cause))
	result.Failures = append(result.Failures, BranchFailure{BranchName: branchName, Cause: cause})
}
