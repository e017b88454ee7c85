package cleanup

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
	"github.com/temirov/shellkit/internal/ui"
	flagutils "github.com/temirov/shellkit/internal/utils/flags"
)

const (
	commandUseConstant                    = "clean-system"
	commandShortDescriptionConstant       = "Run the package manager cleanup pipeline"
	commandLongDescriptionConstant        = "clean-system removes unneeded and residual packages, clears the package cache, vacuums the journal, purges unused locales and removes orphaned libraries. Steps run in order and the pipeline stops at the first failure. Mutating commands are prefixed with the elevation tool unless the process already runs as root."
	commandExecutionErrorTemplateConstant = "system cleanup failed: %w"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Print the cleanup plan without running it"
	stepSummaryTemplateConstant           = "%s: %s\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the clean-system command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CommandExecutor
	FreeSpaceProbe               FreeSpaceProbe
	EffectiveUserIDProvider      EffectiveUserIDProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the clean-system command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	flagutils.AddToggleFlag(command.Flags(), nil, flagDryRunNameConstant, "", DefaultCommandConfiguration().DryRun, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	dryRun := configuration.DryRun
	if dryRunFlag := command.Flags().Lookup(flagDryRunNameConstant); dryRunFlag != nil && dryRunFlag.Changed {
		parsedDryRun, parseError := flagutils.ParseToggleValue(dryRunFlag.Value.String())
		if parseError != nil {
			return parseError
		}
		dryRun = parsedDryRun
	}

	steps, stepsError := BuildSteps(configuration.Steps, BuildOptions{JournalRetention: configuration.JournalRetention})
	if stepsError != nil {
		return stepsError
	}

	elevation, elevationError := ResolveElevation(builder.resolveEffectiveUserID(), configuration.Elevate, configuration.ElevationCommand)
	if elevationError != nil {
		return elevationError
	}

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger, ui.NewProgressReporter(command.ErrOrStderr()))
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor, builder.resolveProbe(), command.OutOrStdout())
	if serviceError != nil {
		return serviceError
	}

	result, cleanError := service.Clean(command.Context(), Options{
		Steps:     steps,
		Elevation: elevation,
		DiskPath:  configuration.DiskPath,
		DryRun:    dryRun,
	})
	if !result.Planned {
		for _, record := range result.Records {
			fmt.Fprintf(command.OutOrStdout(), stepSummaryTemplateConstant, record.Name, record.State)
		}
	}
	if cleanError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, cleanError)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveEffectiveUserID() int {
	if builder.EffectiveUserIDProvider == nil {
		return CurrentEffectiveUserID()
	}
	return builder.EffectiveUserIDProvider()
}

func (builder *CommandBuilder) resolveProbe() FreeSpaceProbe {
	if builder.FreeSpaceProbe == nil {
		return DiskUsageProbe{}
	}
	return builder.FreeSpaceProbe
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

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger, observer execshell.CommandEventObserver) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(
		logger,
		execshell.NewOSCommandRunner(),
		execshell.WithHumanReadableLogging(humanReadableLogging),
		execshell.WithCommandEventObserver(observer),
	)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}
