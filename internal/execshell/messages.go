package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitFetchSubcommandNameConstant      = "fetch"
	gitBranchSubcommandNameConstant     = "branch"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitShowRefSubcommandNameConstant    = "show-ref"
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitSubmoduleSubcommandNameConstant  = "submodule"
	gitForceDeleteShortFlagConstant     = "-D"
	gitAbbrevRefFlagConstant            = "--abbrev-ref"
	aptGetAutoremoveSubcommandConstant  = "autoremove"
	aptGetAutocleanSubcommandConstant   = "autoclean"
	aptGetCleanSubcommandConstant       = "clean"
	aptGetPurgeSubcommandConstant       = "purge"
	aptGetRemoveSubcommandConstant      = "remove"
	gioTrashSubcommandConstant          = "trash"
)

const (
	gitFetchStartTemplateConstant                     = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                   = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                   = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant          = "Unable to fetch from %s in %s: %s"
	gitBranchForceDeletionStartTemplateConstant       = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant          = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant          = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant = "Unable to remove local branch %s in %s: %s"
	gitBranchListStartTemplateConstant                = "Listing local branches in %s"
	gitBranchListSuccessTemplateConstant              = "Listed local branches in %s"
	gitBranchListFailureTemplateConstant              = "Failed to list local branches in %s (exit code %d%s)"
	gitBranchListExecutionFailureTemplateConstant     = "Unable to list local branches in %s: %s"
	gitReferenceCheckStartTemplateConstant            = "Checking reference %s in %s"
	gitReferenceCheckSuccessTemplateConstant          = "Reference %s exists in %s"
	gitReferenceCheckFailureTemplateConstant          = "Reference %s is missing in %s (exit code %d%s)"
	gitReferenceCheckExecutionFailureTemplateConstant = "Unable to check reference %s in %s: %s"
	gitCurrentBranchStartTemplateConstant             = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant           = "Identified current branch in %s"
	gitCurrentBranchFailureTemplateConstant           = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant  = "Unable to identify current branch in %s: %s"
	gitSubmoduleStartTemplateConstant                 = "Listing submodules in %s"
	gitSubmoduleSuccessTemplateConstant               = "Listed submodules in %s"
	gitSubmoduleFailureTemplateConstant               = "Failed to list submodules in %s (exit code %d%s)"
	gitSubmoduleExecutionFailureTemplateConstant      = "Unable to list submodules in %s: %s"
)

const (
	aptGetStartTemplateConstant            = "%s %s"
	aptGetSuccessTemplateConstant          = "%s finished"
	aptGetFailureTemplateConstant          = "%s failed (exit code %d%s)"
	aptGetExecutionFailureTemplateConstant = "Unable to run %s: %s"
	aptGetAutoremoveLabelConstant          = "Removing unneeded packages"
	aptGetAutocleanLabelConstant           = "Removing obsolete package archives"
	aptGetCleanLabelConstant               = "Clearing the package cache"
	aptGetPurgeLabelConstant               = "Purging packages"
	aptGetRemoveLabelConstant              = "Removing packages"
	trashStartTemplateConstant             = "Moving %s to trash"
	trashSuccessTemplateConstant           = "Moved %s to trash"
	trashFailureTemplateConstant           = "Failed to move %s to trash (exit code %d%s)"
	trashExecutionFailureTemplateConstant  = "Unable to move %s to trash: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandAptGet:
		return formatter.describeAptGetMessage(command, result, failure, stage)
	case CommandGio:
		return formatter.describeGioMessage(command, result, failure, stage)
	case CommandSudo:
		return formatter.describeElevatedMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitForEachRefSubcommandNameConstant:
		return formatter.selectStageMessage(stage, result, failure,
			[]any{formatter.describeWorkingDirectory(command)},
			gitBranchListStartTemplateConstant,
			gitBranchListSuccessTemplateConstant,
			gitBranchListFailureTemplateConstant,
			gitBranchListExecutionFailureTemplateConstant)
	case gitShowRefSubcommandNameConstant:
		reference := formatter.ensureValue(formatter.lastNonFlagArgument(command.Details.Arguments[1:]))
		return formatter.selectStageMessage(stage, result, failure,
			[]any{reference, formatter.describeWorkingDirectory(command)},
			gitReferenceCheckStartTemplateConstant,
			gitReferenceCheckSuccessTemplateConstant,
			gitReferenceCheckFailureTemplateConstant,
			gitReferenceCheckExecutionFailureTemplateConstant)
	case gitRevParseSubcommandNameConstant:
		if !containsArgument(command.Details.Arguments, gitAbbrevRefFlagConstant) {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		return formatter.selectStageMessage(stage, result, failure,
			[]any{formatter.describeWorkingDirectory(command)},
			gitCurrentBranchStartTemplateConstant,
			gitCurrentBranchSuccessTemplateConstant,
			gitCurrentBranchFailureTemplateConstant,
			gitCurrentBranchExecutionFailureTemplateConstant)
	case gitSubmoduleSubcommandNameConstant:
		return formatter.selectStageMessage(stage, result, failure,
			[]any{formatter.describeWorkingDirectory(command)},
			gitSubmoduleStartTemplateConstant,
			gitSubmoduleSuccessTemplateConstant,
			gitSubmoduleFailureTemplateConstant,
			gitSubmoduleExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

// describeGitFetchMessage names the remote of "git fetch [flags] <remote>".
func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	remoteName := formatter.ensureValue(formatter.firstNonFlagArgument(command.Details.Arguments[1:]))
	return formatter.selectStageMessage(stage, result, failure,
		[]any{remoteName, formatter.describeWorkingDirectory(command)},
		gitFetchStartTemplateConstant,
		gitFetchSuccessTemplateConstant,
		gitFetchFailureTemplateConstant,
		gitFetchExecutionFailureTemplateConstant)
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitForceDeleteShortFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	branchName := formatter.ensureValue(formatter.lastNonFlagArgument(arguments[1:]))
	return formatter.selectStageMessage(stage, result, failure,
		[]any{branchName, formatter.describeWorkingDirectory(command)},
		gitBranchForceDeletionStartTemplateConstant,
		gitBranchDeletionSuccessTemplateConstant,
		gitBranchDeletionFailureTemplateConstant,
		gitBranchDeletionExecutionFailureTemplateConstant)
}

func (formatter CommandMessageFormatter) describeAptGetMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subcommand := formatter.firstNonFlagArgument(command.Details.Arguments)
	label := emptyStringConstant
	switch subcommand {
	case aptGetAutoremoveSubcommandConstant:
		label = aptGetAutoremoveLabelConstant
	case aptGetAutocleanSubcommandConstant:
		label = aptGetAutocleanLabelConstant
	case aptGetCleanSubcommandConstant:
		label = aptGetCleanLabelConstant
	case aptGetPurgeSubcommandConstant:
		label = aptGetPurgeLabelConstant
	case aptGetRemoveSubcommandConstant:
		label = aptGetRemoveLabelConstant
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	packageNames := formatter.nonFlagArgumentsAfter(command.Details.Arguments, subcommand)
	switch stage {
	case messageStageStart:
		if len(packageNames) == 0 {
			return label
		}
		return fmt.Sprintf(aptGetStartTemplateConstant, label, strings.Join(packageNames, commandArgumentsJoinSeparatorConstant))
	case messageStageSuccess:
		return fmt.Sprintf(aptGetSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(aptGetFailureTemplateConstant, label, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(aptGetExecutionFailureTemplateConstant, CommandAptGet, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeGioMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if formatter.firstNonFlagArgument(command.Details.Arguments) != gioTrashSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	targetPath := formatter.ensureValue(formatter.lastNonFlagArgument(command.Details.Arguments[1:]))
	return formatter.selectStageMessage(stage, result, failure,
		[]any{targetPath},
		trashStartTemplateConstant,
		trashSuccessTemplateConstant,
		trashFailureTemplateConstant,
		trashExecutionFailureTemplateConstant)
}

// describeElevatedMessage renders the wrapped command so sudo-prefixed steps read like their unprivileged form.
func (formatter CommandMessageFormatter) describeElevatedMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	wrappedIndex := 0
	for wrappedIndex < len(arguments) && strings.HasPrefix(arguments[wrappedIndex], flagPrefixConstant) {
		wrappedIndex++
	}
	if wrappedIndex >= len(arguments) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	wrappedCommand := ShellCommand{
		Name: CommandName(arguments[wrappedIndex]),
		Details: CommandDetails{
			Arguments:        arguments[wrappedIndex+1:],
			WorkingDirectory: command.Details.WorkingDirectory,
		},
	}
	return formatter.buildMessage(wrappedCommand, result, failure, stage)
}

func (formatter CommandMessageFormatter) selectStageMessage(stage messageStage, result ExecutionResult, failure error, subjects []any, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, subjects...)
	case messageStageFailure:
		failureArguments := append(append([]any{}, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(failureTemplate, failureArguments...)
	case messageStageExecutionFailure:
		executionFailureArguments := append(append([]any{}, subjects...), formatter.describeFailure(failure))
		return fmt.Sprintf(executionFailureTemplate, executionFailureArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = strings.Join(append([]string{commandLabel}, command.Details.Arguments...), commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

func (formatter CommandMessageFormatter) firstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) > 0 && !strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			return trimmedArgument
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) lastNonFlagArgument(arguments []string) string {
	for argumentIndex := len(arguments) - 1; argumentIndex >= 0; argumentIndex-- {
		trimmedArgument := strings.TrimSpace(arguments[argumentIndex])
		if len(trimmedArgument) > 0 && !strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			return trimmedArgument
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) nonFlagArgumentsAfter(arguments []string, marker string) []string {
	var collected []string
	markerSeen := false
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if !markerSeen {
			markerSeen = trimmedArgument == marker
			continue
		}
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		collected = append(collected, trimmedArgument)
	}
	return collected
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
