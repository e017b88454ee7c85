package navigation

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandUseConstant              = "up [levels]"
	commandShortDescriptionConstant = "Print the directory N levels above the current one"
	commandLongDescriptionConstant  = "up resolves the ancestor of the working directory and prints it. Source the shell-init snippet so that the printed path becomes a cd."
	resolvedMessageConstant         = "resolved ancestor directory"
	logFieldLevelsConstant          = "levels"
	logFieldAncestorConstant        = "ancestor"
	pathOutputTemplateConstant      = "%s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// WorkingDirectoryProvider resolves the directory the command ascends from.
type WorkingDirectoryProvider func() (string, error)

// CommandBuilder assembles the up command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	WorkingDirectoryProvider WorkingDirectoryProvider
	ConfigurationProvider    func() CommandConfiguration
}

// Build constructs the up command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	levels := configuration.DefaultLevels
	if len(arguments) > 0 {
		parsedLevels, parseError := ParseLevels(arguments[0])
		if parseError != nil {
			return parseError
		}
		levels = parsedLevels
	}

	workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	ancestorDirectory, resolveError := ResolveAncestor(workingDirectory, levels)
	if resolveError != nil {
		return resolveError
	}

	builder.resolveLogger().Debug(resolvedMessageConstant, zap.Int(logFieldLevelsConstant, levels), zap.String(logFieldAncestorConstant, ancestorDirectory))
	fmt.Fprintf(command.OutOrStdout(), pathOutputTemplateConstant, ancestorDirectory)
	return nil
}

func (builder *CommandBuilder) resolveWorkingDirectory() (string, error) {
	if builder.WorkingDirectoryProvider == nil {
		return os.Getwd()
	}
	return builder.WorkingDirectoryProvider()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
