package cleanup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	aptGetAssumeYesFlagConstant       = "-y"
	aptGetAutoremoveSubcommand        = "autoremove"
	aptGetAutocleanSubcommand         = "autoclean"
	aptGetCleanSubcommand             = "clean"
	aptGetPurgeSubcommand             = "purge"
	aptGetRemoveSubcommand            = "remove"
	aptGetPurgeFlagConstant           = "--purge"
	dpkgListFlagConstant              = "--list"
	journalVacuumTimeTemplateConstant = "--vacuum-time=%s"
	packagePlaceholderConstant        = "<packages>"
	noPackagesMessageConstant         = "no packages to remove"
	logFieldStepConstant              = "step"
	logFieldPackageCountConstant      = "package_count"
)

// commandStep runs a fixed sequence of privileged commands.
type commandStep struct {
	name     StepName
	commands []stepCommand
}

type stepCommand struct {
	name      execshell.CommandName
	arguments []string
}

func (step *commandStep) Name() StepName {
	return step.name
}

func (step *commandStep) Describe(environment *Environment) []string {
	descriptions := make([]string, 0, len(step.commands))
	for _, command := range step.commands {
		descriptions = append(descriptions, environment.DescribePrivileged(command.name, command.arguments...))
	}
	return descriptions
}

func (step *commandStep) Execute(executionContext context.Context, environment *Environment) error {
	for _, command := range step.commands {
		if _, executionError := environment.RunPrivileged(executionContext, command.name, command.arguments...); executionError != nil {
			return executionError
		}
	}
	return nil
}

// packageRemovalStep lists packages with a read-only command and removes them when the list is non-empty.
type packageRemovalStep struct {
	name             StepName
	listCommand      stepCommand
	parsePackages    func(string) []string
	removalArguments []string
}

func (step *packageRemovalStep) Name() StepName {
	return step.name
}

func (step *packageRemovalStep) Describe(environment *Environment) []string {
	removalArguments := append(append([]string{}, step.removalArguments...), packagePlaceholderConstant)
	return []string{
		environment.Describe(step.listCommand.name, step.listCommand.arguments...),
		environment.DescribePrivileged(execshell.CommandAptGet, removalArguments...),
	}
}

func (step *packageRemovalStep) Execute(executionContext context.Context, environment *Environment) error {
	listResult, listError := environment.Run(executionContext, step.listCommand.name, step.listCommand.arguments...)
	if listError != nil {
		return listError
	}

	packageNames := step.parsePackages(listResult.StandardOutput)
	environment.logger().Debug(string(step.name), zap.Int(logFieldPackageCountConstant, len(packageNames)))
	if len(packageNames) == 0 {
		environment.logger().Info(noPackagesMessageConstant, zap.String(logFieldStepConstant, string(step.name)))
		return nil
	}

	removalArguments := append(append([]string{}, step.removalArguments...), packageNames...)
	_, removalError := environment.RunPrivileged(executionContext, execshell.CommandAptGet, removalArguments...)
	return removalError
}

func newRemoveUnneededStep() Step {
	return &commandStep{
		name: StepRemoveUnneeded,
		commands: []stepCommand{
			{name: execshell.CommandAptGet, arguments: []string{aptGetAssumeYesFlagConstant, aptGetAutoremoveSubcommand}},
		},
	}
}

func newPurgeResidualStep() Step {
	return &packageRemovalStep{
		name:             StepPurgeResidual,
		listCommand:      stepCommand{name: execshell.CommandDpkg, arguments: []string{dpkgListFlagConstant}},
		parsePackages:    ParseResidualPackages,
		removalArguments: []string{aptGetAssumeYesFlagConstant, aptGetPurgeSubcommand},
	}
}

func newClearCacheStep() Step {
	return &commandStep{
		name: StepClearCache,
		commands: []stepCommand{
			{name: execshell.CommandAptGet, arguments: []string{aptGetAssumeYesFlagConstant, aptGetAutocleanSubcommand}},
			{name: execshell.CommandAptGet, arguments: []string{aptGetAssumeYesFlagConstant, aptGetCleanSubcommand}},
		},
	}
}

func newTruncateLogsStep(retention string) Step {
	return &commandStep{
		name: StepTruncateLogs,
		commands: []stepCommand{
			{name: execshell.CommandJournalctl, arguments: []string{fmt.Sprintf(journalVacuumTimeTemplateConstant, retention)}},
		},
	}
}

func newPurgeLocalesStep() Step {
	return &commandStep{
		name:     StepPurgeLocales,
		commands: []stepCommand{{name: execshell.CommandLocalePurge}},
	}
}

func newRemoveOrphansStep() Step {
	return &packageRemovalStep{
		name:             StepRemoveOrphans,
		listCommand:      stepCommand{name: execshell.CommandDeborphan},
		parsePackages:    ParseOrphanPackages,
		removalArguments: []string{aptGetAssumeYesFlagConstant, aptGetRemoveSubcommand, aptGetPurgeFlagConstant},
	}
}
