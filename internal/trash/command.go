package trash

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	commandUseConstant              = "trash [extension]"
	commandShortDescriptionConstant = "Move files with the given extension to the trash"
	commandLongDescriptionConstant  = "trash walks the directory tree and moves every regular file whose name ends with .<extension> to the desktop trash. A leading dot in the extension is accepted. Files that cannot be moved are reported and skipped; the command always succeeds."
	rootFlagNameConstant            = "root"
	rootFlagDescriptionConstant     = "Directory to search (defaults to the current directory)"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the trash command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CommandExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the trash command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}
	command.Flags().String(rootFlagNameConstant, "", rootFlagDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	extension := configuration.Extension
	if len(arguments) > 0 {
		extension = arguments[0]
	}

	root := configuration.Root
	if command.Flags().Changed(rootFlagNameConstant) {
		rootValue, rootError := command.Flags().GetString(rootFlagNameConstant)
		if rootError != nil {
			return rootError
		}
		if expandedRoot := trashRootExpander.Expand(rootValue); len(expandedRoot) > 0 {
			root = expandedRoot
		}
	}

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor, command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}

	_, trashError := service.Trash(command.Context(), Options{
		Root:           root,
		Extension:      extension,
		TrashCommand:   configuration.Command,
		TrashArguments: configuration.Arguments,
	})
	return trashError
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

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), execshell.WithHumanReadableLogging(humanReadableLogging))
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
