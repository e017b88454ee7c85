package trash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	loggerMissingMessageConstant   = "trash service logger not configured"
	executorMissingMessageConstant = "command executor not configured"
	trashCommandMissingMessage     = "trash command must be provided"
	movedReportTemplateConstant    = "TRASHED: %s\n"
	failedReportTemplateConstant   = "FAILED: %v\n"
	walkFailedReportTemplate       = "SKIPPED: %s: %v\n"
	matchesFoundMessageConstant    = "matched files for trash"
	movedMessageConstant           = "moved file to trash"
	moveFailedMessageConstant      = "failed to move file to trash"
	walkFailedMessageConstant      = "unable to read path during trash walk"
	logFieldRootConstant           = "root"
	logFieldExtensionConstant      = "extension"
	logFieldPathConstant           = "path"
	logFieldMatchCountConstant     = "match_count"
	optionPrefixConstant           = "-"
	currentDirectoryPrefixConstant = "." + string(filepath.Separator)
)

// ErrLoggerNotConfigured indicates the service was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// ErrExecutorNotConfigured indicates the command executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrTrashCommandRequired indicates an empty trash command name.
var ErrTrashCommandRequired = errors.New(trashCommandMissingMessage)

// CommandExecutor runs the external trash facility.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Options configures one trash run.
type Options struct {
	Root             string
	Extension        string
	TrashCommand     string
	TrashArguments   []string
	WorkingDirectory string
}

// Result lists the moved paths and the per-file failures, each wrapping toolerrors.ErrMove.
type Result struct {
	Moved    []string
	Failures []error
	Skipped  []string
}

// Service moves matching files to the trash.
type Service struct {
	logger       *zap.Logger
	executor     CommandExecutor
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service. Nil writers discard reports.
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

// Trash walks options.Root and moves every file ending in .<extension>. Only argument validation
// and cancellation produce an error; unreadable paths and per-file failures are reported in the result.
func (service *Service) Trash(executionContext context.Context, options Options) (Result, error) {
	extension, extensionError := NormalizeExtension(options.Extension)
	if extensionError != nil {
		return Result{}, extensionError
	}
	if len(options.TrashCommand) == 0 {
		return Result{}, ErrTrashCommandRequired
	}
	root := options.Root
	if len(root) == 0 {
		root = defaultRootConstant
	}

	result := Result{}
	matches, walkError := FindMatches(root, extension, func(path string, entryError error) error {
		service.logger.Warn(walkFailedMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(entryError))
		fmt.Fprintf(service.errorWriter, walkFailedReportTemplate, path, entryError)
		result.Skipped = append(result.Skipped, path)
		return nil
	})
	if walkError != nil {
		service.logger.Warn(walkFailedMessageConstant, zap.String(logFieldPathConstant, root), zap.Error(walkError))
		fmt.Fprintf(service.errorWriter, walkFailedReportTemplate, root, walkError)
		result.Skipped = append(result.Skipped, root)
		return result, nil
	}

	service.logger.Debug(matchesFoundMessageConstant, zap.String(logFieldRootConstant, root), zap.String(logFieldExtensionConstant, extension), zap.Int(logFieldMatchCountConstant, len(matches)))

	for _, matchedPath := range matches {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		arguments := append(append([]string{}, options.TrashArguments...), TrashArgument(matchedPath))
		_, moveError := service.executor.Execute(executionContext, execshell.ShellCommand{
			Name:    execshell.CommandName(options.TrashCommand),
			Details: execshell.CommandDetails{Arguments: arguments, WorkingDirectory: options.WorkingDirectory},
		})
		if moveError != nil {
			reportedError := toolerrors.Move(matchedPath, moveError)
			service.logger.Warn(moveFailedMessageConstant, zap.String(logFieldPathConstant, matchedPath), zap.Error(moveError))
			fmt.Fprintf(service.errorWriter, failedReportTemplateConstant, reportedError)
			result.Failures = append(result.Failures, reportedError)
			continue
		}

		service.logger.Info(movedMessageConstant, zap.String(logFieldPathConstant, matchedPath))
		fmt.Fprintf(service.outputWriter, movedReportTemplateConstant, matchedPath)
		result.Moved = append(result.Moved, matchedPath)
	}

	return result, nil
}

// TrashArgument renders a matched path as an argv element the trash tool cannot mistake for an option.
// Relative paths starting with a dash gain a "./" prefix; everything else passes through unchanged.
func TrashArgument(matchedPath string) string {
	if filepath.IsAbs(matchedPath) || !strings.HasPrefix(matchedPath, optionPrefixConstant) {
		return matchedPath
	}
	return currentDirectoryPrefixConstant + matchedPath
}
