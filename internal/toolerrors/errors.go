// Package toolerrors defines the failure taxonomy shared by shellkit commands
// and maps it onto process exit codes.
package toolerrors

import (
	"errors"
	"fmt"
)

const (
	unknownCommandMessageConstant         = "unknown command"
	networkMessageConstant                = "remote unreachable"
	moveMessageConstant                   = "move to trash failed"
	stepFailureMessageConstant            = "cleanup step failed"
	invalidArgumentMessageConstant        = "invalid argument"
	operationErrorTemplateConstant        = "%s: %s"
	operationErrorWrappedTemplateConstant = "%s: %s: %v"
)

// Sentinel failures. OperationError values wrap exactly one of them.
var (
	ErrUnknownCommand  = errors.New(unknownCommandMessageConstant)
	ErrNetwork         = errors.New(networkMessageConstant)
	ErrMove            = errors.New(moveMessageConstant)
	ErrStepFailure     = errors.New(stepFailureMessageConstant)
	ErrInvalidArgument = errors.New(invalidArgumentMessageConstant)
)

// ExitCode is the process status reported for an error.
type ExitCode int

// Exit codes.
const (
	ExitSuccess         ExitCode = 0
	ExitGeneral         ExitCode = 1
	ExitInvalidArgument ExitCode = 2
)

// OperationError attaches a subject (branch, path, step) and an optional cause to a sentinel.
type OperationError struct {
	Kind    error
	Subject string
	Cause   error
}

// Error renders "<kind>: <subject>[: cause]".
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorTemplateConstant, operationError.Kind, operationError.Subject)
	}
	return fmt.Sprintf(operationErrorWrappedTemplateConstant, operationError.Kind, operationError.Subject, operationError.Cause)
}

// Is matches the sentinel kind.
func (operationError OperationError) Is(target error) bool {
	return operationError.Kind == target
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// UnknownCommand reports an unrecognized subcommand name.
func UnknownCommand(commandName string) error {
	return OperationError{Kind: ErrUnknownCommand, Subject: commandName}
}

// Network reports a remote that could not be reached.
func Network(remoteName string, cause error) error {
	return OperationError{Kind: ErrNetwork, Subject: remoteName, Cause: cause}
}

// Move reports a file the trash facility refused.
func Move(path string, cause error) error {
	return OperationError{Kind: ErrMove, Subject: path, Cause: cause}
}

// StepFailure reports the cleanup step that halted a pipeline.
func StepFailure(stepName string, cause error) error {
	return OperationError{Kind: ErrStepFailure, Subject: stepName, Cause: cause}
}

// InvalidArgument reports a malformed or out-of-range argument.
func InvalidArgument(description string, cause error) error {
	return OperationError{Kind: ErrInvalidArgument, Subject: description, Cause: cause}
}

// MapExitCode selects the process exit status for an error.
func MapExitCode(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrUnknownCommand):
		return ExitInvalidArgument
	default:
		return ExitGeneral
	}
}
