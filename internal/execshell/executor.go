package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandNameRequiredMessageConstant        = "command name must be provided"
	commandFailedErrorTemplateConstant        = "%s exited with code %d"
	commandFailedWithOutputTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant     = "%s could not be executed: %v"
	logFieldCommandNameConstant               = "command"
	logFieldArgumentsConstant                 = "arguments"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldStandardErrorConstant             = "stderr"
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// ErrCommandNameRequired indicates a ShellCommand without an executable name.
var ErrCommandNameRequired = errors.New(commandNameRequiredMessageConstant)

// CommandName identifies an executable on PATH.
type CommandName string

// Known executables.
const (
	CommandGit         CommandName = "git"
	CommandAptGet      CommandName = "apt-get"
	CommandDpkg        CommandName = "dpkg"
	CommandJournalctl  CommandName = "journalctl"
	CommandLocalePurge CommandName = "localepurge"
	CommandDeborphan   CommandName = "deborphan"
	CommandSudo        CommandName = "sudo"
	CommandGio         CommandName = "gio"
)

// CommandDetails describes the argv, working directory and environment of an invocation.
// AcceptedExitCodes lists non-zero codes the caller interprets itself; they still yield
// CommandFailedError but are logged at debug level.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	AcceptedExitCodes    []int
}

func (details CommandDetails) acceptsExitCode(exitCode int) bool {
	for _, acceptedExitCode := range details.AcceptedExitCodes {
		if acceptedExitCode == exitCode {
			return true
		}
	}
	return false
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner spawns processes.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a process that ran and exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Name, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, failure.Command.Name, failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a process that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.Name, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ExecutorOption customizes a ShellExecutor.
type ExecutorOption func(*ShellExecutor)

// WithHumanReadableLogging switches lifecycle log entries to formatted sentences.
func WithHumanReadableLogging(enabled bool) ExecutorOption {
	return func(executor *ShellExecutor) {
		executor.humanReadableLogging = enabled
	}
}

// WithCommandEventObserver registers an observer notified about every command.
func WithCommandEventObserver(observer CommandEventObserver) ExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// ShellExecutor runs commands through a CommandRunner and logs their lifecycle.
type ShellExecutor struct {
	logger               *zap.Logger
	runner               CommandRunner
	formatter            CommandMessageFormatter
	observer             CommandEventObserver
	humanReadableLogging bool
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:    logger,
		runner:    runner,
		formatter: CommandMessageFormatter{},
		observer:  noopCommandEventObserver{},
	}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}

	return executor, nil
}

// Execute runs the command. A non-zero exit yields CommandFailedError and an empty result.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if len(strings.TrimSpace(string(command.Name))) == 0 {
		return ExecutionResult{}, ErrCommandNameRequired
	}

	executor.observer.CommandStarted(command)
	executor.logStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		executor.logExecutionFailure(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		if command.Details.acceptsExitCode(executionResult.ExitCode) {
			executor.logger.Debug(executor.formatter.BuildFailureMessage(command, executionResult), append(executor.commandFields(command), zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
			return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
		}
		executor.logFailure(command, executionResult)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logSuccess(command)
	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (executor *ShellExecutor) logStarted(command ShellCommand) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.formatter.BuildStartedMessage(command))
		return
	}
	executor.logger.Debug(executor.formatter.BuildStartedMessage(command), executor.commandFields(command)...)
}

func (executor *ShellExecutor) logSuccess(command ShellCommand) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.formatter.BuildSuccessMessage(command))
		return
	}
	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command), executor.commandFields(command)...)
}

func (executor *ShellExecutor) logFailure(command ShellCommand, result ExecutionResult) {
	message := executor.formatter.BuildFailureMessage(command, result)
	if executor.humanReadableLogging {
		executor.logger.Warn(message)
		return
	}
	fields := append(executor.commandFields(command),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)),
	)
	executor.logger.Warn(message, fields...)
}

func (executor *ShellExecutor) logExecutionFailure(command ShellCommand, failure error) {
	message := executor.formatter.BuildExecutionFailureMessage(command, failure)
	if executor.humanReadableLogging {
		executor.logger.Error(message)
		return
	}
	executor.logger.Error(message, append(executor.commandFields(command), zap.Error(failure))...)
}

func (executor *ShellExecutor) commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}
}

// ExitCodeOf extracts the exit code carried by a CommandFailedError.
func ExitCodeOf(executionError error) (int, bool) {
	var failedError CommandFailedError
	if errors.As(executionError, &failedError) {
		return failedError.Result.ExitCode, true
	}
	return 0, false
}
