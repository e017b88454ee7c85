package submodules

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	loggerMissingMessageConstant          = "submodule runner logger not configured"
	executorMissingMessageConstant        = "command executor not configured"
	commandRequiredMessageConstant        = "a command to run in each submodule must be provided"
	repositoryRootRequiredMessageConstant = "repository root must be provided"
	listSubmodulesFailureTemplateConstant = "failed to list submodules: %w"
	submoduleFailureTemplateConstant      = "submodule %s: %w"
	aggregateFailureTemplateConstant      = "%d of %d submodule(s) failed: %w"
	malformedStatusLineTemplateConstant   = "malformed submodule status line %q"
	gitSubmoduleSubcommandConstant        = "submodule"
	gitStatusSubcommandConstant           = "status"
	gitRecursiveFlagConstant              = "--recursive"
	uninitializedStatusPrefixConstant     = '-'
	outOfSyncStatusPrefixConstant         = '+'
	conflictStatusPrefixConstant          = 'U'
	cleanStatusPrefixConstant             = ' '
	describeSuffixStartConstant           = " ("
	describeSuffixEndConstant             = ")"
	enteringTemplateConstant              = "Entering '%s'\n"
	skippedTemplateConstant               = "Skipping uninitialized submodule '%s'\n"
	failureReportTemplateConstant         = "FAILED: %s: %v\n"
	submoduleRunMessageConstant           = "running command in submodule"
	submoduleSkipMessageConstant          = "skipping uninitialized submodule"
	submoduleFailureMessageConstant       = "submodule command failed"
	logFieldSubmoduleConstant             = "submodule"
	logFieldCommandConstant               = "command"
)

// ErrLoggerNotConfigured indicates the service was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// ErrExecutorNotConfigured indicates the command executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrCommandRequired indicates an empty argument vector.
var ErrCommandRequired = errors.New(commandRequiredMessageConstant)

// ErrRepositoryRootRequired indicates the repository root option was empty.
var ErrRepositoryRootRequired = errors.New(repositoryRootRequiredMessageConstant)

// CommandExecutor runs typed commands and git invocations.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Submodule describes one entry reported by git submodule status.
type Submodule struct {
	Path         string
	AbsolutePath string
	Commit       string
	Initialized  bool
}

// Options configures a submodule fan-out.
type Options struct {
	RepositoryRoot string
	Command        []string
	Recursive      bool
}

// SubmoduleFailure records a submodule whose command failed.
type SubmoduleFailure struct {
	Path  string
	Cause error
}

// Result summarizes a fan-out.
type Result struct {
	Succeeded []string
	Skipped   []string
	Failures  []SubmoduleFailure
}

// Service runs commands across submodules.
type Service struct {
	logger       *zap.Logger
	executor     CommandExecutor
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service. Nil writers discard output.
func NewService(logger *zap.Logger, executor CommandExecutor, outputWriter io.Writer, errorWriter io.Writer) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{logger: logger, executor: executor, outputWriter: outputWriter, errorWriter: errorWriter}, nil
}

// List enumerates the submodules of the repository at repositoryRoot.
func (service *Service) List(executionContext context.Context, repositoryRoot string, recursive bool) ([]Submodule, error) {
	arguments := []string{gitSubmoduleSubcommandConstant, gitStatusSubcommandConstant}
	if recursive {
		arguments = append(arguments, gitRecursiveFlagConstant)
	}

	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryRoot,
	})
	if executionError != nil {
		return nil, executionError
	}

	return ParseStatus(repositoryRoot, executionResult.StandardOutput)
}

// Run executes options.Command in every initialized submodule. Failures are collected and
// traversal continues; the returned error is non-nil when any submodule failed.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	if len(options.Command) == 0 || len(strings.TrimSpace(options.Command[0])) == 0 {
		return Result{}, ErrCommandRequired
	}
	repositoryRoot := strings.TrimSpace(options.RepositoryRoot)
	if len(repositoryRoot) == 0 {
		return Result{}, ErrRepositoryRootRequired
	}

	submodules, listError := service.List(executionContext, repositoryRoot, options.Recursive)
	if listError != nil {
		return Result{}, fmt.Errorf(listSubmodulesFailureTemplateConstant, listError)
	}

	result := Result{}
	for _, submodule := range submodules {
		if !submodule.Initialized {
			service.logger.Info(submoduleSkipMessageConstant, zap.String(logFieldSubmoduleConstant, submodule.Path))
			fmt.Fprintf(service.outputWriter, skippedTemplateConstant, submodule.Path)
			result.Skipped = append(result.Skipped, submodule.Path)
			continue
		}

		fmt.Fprintf(service.outputWriter, enteringTemplateConstant, submodule.Path)
		service.logger.Debug(submoduleRunMessageConstant, zap.String(logFieldSubmoduleConstant, submodule.Path), zap.Strings(logFieldCommandConstant, options.Command))

		executionResult, executionError := service.executor.Execute(executionContext, execshell.ShellCommand{
			Name: execshell.CommandName(options.Command[0]),
			Details: execshell.CommandDetails{
				Arguments:        append([]string{}, options.Command[1:]...),
				WorkingDirectory: submodule.AbsolutePath,
			},
		})
		if executionError != nil {
			var failedCommand execshell.CommandFailedError
			if errors.As(executionError, &failedCommand) {
				io.WriteString(service.outputWriter, failedCommand.Result.StandardOutput)
			}
			service.logger.Warn(submoduleFailureMessageConstant, zap.String(logFieldSubmoduleConstant, submodule.Path), zap.Error(executionError))
			fmt.Fprintf(service.errorWriter, failureReportTemplateConstant, submodule.Path, executionError)
			result.Failures = append(result.Failures, SubmoduleFailure{Path: submodule.Path, Cause: executionError})
			if contextError := executionContext.Err(); contextError != nil {
				return result, contextError
			}
			continue
		}

		io.WriteString(service.outputWriter, executionResult.StandardOutput)
		io.WriteString(service.errorWriter, executionResult.StandardError)
		result.Succeeded = append(result.Succeeded, submodule.Path)
	}

	if len(result.Failures) > 0 {
		failureCauses := make([]error, 0, len(result.Failures))
		for _, failure := range result.Failures {
			failureCauses = append(failureCauses, fmt.Errorf(submoduleFailureTemplateConstant, failure.Path, failure.Cause))
		}
		return result, fmt.Errorf(aggregateFailureTemplateConstant, len(result.Failures), len(submodules)-len(result.Skipped), errors.Join(failureCauses...))
	}

	return result, nil
}

// ParseStatus interprets git submodule status output. Each line carries a one-character state
// prefix, the recorded commit, the path relative to the repository root and an optional describe suffix.
func ParseStatus(repositoryRoot string, statusOutput string) ([]Submodule, error) {
	submodules := make([]Submodule, 0)
	scanner := bufio.NewScanner(strings.NewReader(statusOutput))
	for scanner.Scan() {
		statusLine := strings.TrimRight(scanner.Text(), "\r")
		if len(strings.TrimSpace(statusLine)) == 0 {
			continue
		}

		statusPrefix := statusLine[0]
		switch statusPrefix {
		case uninitializedStatusPrefixConstant, outOfSyncStatusPrefixConstant, conflictStatusPrefixConstant, cleanStatusPrefixConstant:
			statusLine = statusLine[1:]
		default:
			statusPrefix = cleanStatusPrefixConstant
		}

		commitHash, remainder, found := strings.Cut(strings.TrimSpace(statusLine), " ")
		if !found || len(strings.TrimSpace(remainder)) == 0 {
			return nil, fmt.Errorf(malformedStatusLineTemplateConstant, scanner.Text())
		}

		relativePath := strings.TrimSpace(remainder)
		if strings.HasSuffix(relativePath, describeSuffixEndConstant) {
			if describeStart := strings.LastIndex(relativePath, describeSuffixStartConstant); describeStart > 0 {
				relativePath = relativePath[:describeStart]
			}
		}

		submodules = append(submodules, Submodule{
			Path:         relativePath,
			AbsolutePath: filepath.Join(repositoryRoot, filepath.FromSlash(relativePath)),
			Commit:       commitHash,
			Initialized:  statusPrefix != uninitializedStatusPrefixConstant,
		})
	}
	return submodules, scanner.Err()
}
