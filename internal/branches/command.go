package branches

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
	flagutils "github.com/temirov/shellkit/internal/utils/flags"
)

const (
	commandUseConstant                    = "prune-branches"
	commandShortDescriptionConstant       = "Delete local branches that no longer exist on the remote"
	commandLongDescriptionConstant        = "prune-branches fetches the remote with --prune and force deletes every local branch without a matching remote-tracking reference. The checked-out branch is kept unless --include-current is given."
	commandExecutionErrorTemplateConstant = "branch pruning failed: %w"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Name of the remote to compare local branches against"
	flagIncludeCurrentNameConstant        = "include-current"
	flagIncludeCurrentDescriptionConstant = "Also delete the checked-out branch when its remote counterpart is gone"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Preview deletions without making changes"
	deletedReportTemplateConstant         = "DELETED: %s\n"
	plannedReportTemplateConstant         = "WOULD DELETE: %s\n"
	protectedReportTemplateConstant       = "SKIPPED (checked out): %s\n"
	failedReportTemplateConstant          = "FAILED: %s: %v\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for branch pruning.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     GitExecutor
	WorkingDirectory             string
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the prune-branches command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagRemoteNameConstant, defaults.RemoteName, flagRemoteDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, flagIncludeCurrentNameConstant, "", defaults.IncludeCurrent, flagIncludeCurrentDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, flagDryRunNameConstant, "", defaults.DryRun, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor)
	if serviceError != nil {
		return serviceError
	}

	result, pruneError := service.Prune(command.Context(), options)
	writeReport(command, result)
	if pruneError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, pruneError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (Options, error) {
	configuration := builder.resolveConfiguration()

	remoteName := configuration.RemoteName
	if command.Flags().Changed(flagRemoteNameConstant) {
		remoteValue, remoteError := command.Flags().GetString(flagRemoteNameConstant)
		if remoteError != nil {
			return Options{}, remoteError
		}
		if trimmedRemote := strings.TrimSpace(remoteValue); len(trimmedRemote) > 0 {
			remoteName = trimmedRemote
		}
	}

	includeCurrent, includeCurrentError := resolveToggle(command, flagIncludeCurrentNameConstant, configuration.IncludeCurrent)
	if includeCurrentError != nil {
		return Options{}, includeCurrentError
	}

	dryRun, dryRunError := resolveToggle(command, flagDryRunNameConstant, configuration.DryRun)
	if dryRunError != nil {
		return Options{}, dryRunError
	}

	workingDirectory := builder.WorkingDirectory
	if len(strings.TrimSpace(workingDirectory)) == 0 {
		if currentDirectory, currentDirectoryError := os.Getwd(); currentDirectoryError == nil {
			workingDirectory = currentDirectory
		}
	}

	return Options{
		RemoteName:       remoteName,
		WorkingDirectory: workingDirectory,
		IncludeCurrent:   includeCurrent,
		DryRun:           dryRun,
	}, nil
}

func resolveToggle(command *cobra.Command, flagName string, configuredValue bool) (bool, error) {
	flag := command.Flags().Lookup(flagName)
	if flag == nil || !flag.Changed {
		return configuredValue, nil
	}
	return flagutils.ParseToggleValue(flag.Value.String())
}

func writeReport(command *cobra.Command, result Result) {
	output := command.OutOrStdout()
	for _, branchName := range result.ProtectedBranches {
		fmt.Fprintf(output, protectedReportTemplateConstant, branchName)
	}
	for _, branchName := range result.PlannedBranches {
		fmt.Fprintf(output, plannedReportTemplateConstant, branchName)
	}
	for _, branchName := range result.DeletedBranches {
		fmt.Fprintf(output, deletedReportTemplateConstant, branchName)
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(command.ErrOrStderr(), failedReportTemplateConstant, failure.BranchName, failure.Cause)
	}
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

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (GitExecutor, error) {
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
