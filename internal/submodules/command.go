package submodules

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	commandUseConstant                    = "submodule-run <command> [arguments...]"
	commandShortDescriptionConstant       = "Run a command inside every Git submodule"
	commandLongDescriptionConstant        = "submodule-run executes the given command and arguments in the working directory of each initialized submodule, nested submodules included. Failures are reported per submodule and do not stop the remaining submodules."
	commandExampleConstant                = "  shellkit submodule-run git status --short\n  shellkit submodule-run -- make -j4"
	commandExecutionErrorTemplateConstant = "submodule run failed: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the submodule-run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CommandExecutor
	WorkingDirectory             string
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the submodule-run command. Flags following the command name belong to the command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.MinimumNArgs(1),
		RunE:    builder.run,
	}
	command.Flags().SetInterspersed(false)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor, command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}

	repositoryRoot := builder.WorkingDirectory
	if len(strings.TrimSpace(repositoryRoot)) == 0 {
		currentDirectory, currentDirectoryError := os.Getwd()
		if currentDirectoryError != nil {
			return currentDirectoryError
		}
		repositoryRoot = currentDirectory
	}

	_, runError := service.Run(command.Context(), Options{
		RepositoryRoot: repositoryRoot,
		Command:        arguments,
		Recursive:      configuration.Recursive,
	})
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
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
