package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	startedLineTemplateConstant = "==> %s\n"
	failedLineTemplateConstant  = "!!! %s\n"
)

// ProgressReporter writes one line per command start and one per failure.
// It implements execshell.CommandEventObserver.
type ProgressReporter struct {
	output    io.Writer
	formatter execshell.CommandMessageFormatter
	guard     sync.Mutex
}

// NewProgressReporter constructs a reporter writing to output. A nil output discards progress.
func NewProgressReporter(output io.Writer) *ProgressReporter {
	if output == nil {
		output = io.Discard
	}
	return &ProgressReporter{output: output}
}

// CommandStarted announces the command.
func (reporter *ProgressReporter) CommandStarted(command execshell.ShellCommand) {
	if reporter == nil {
		return
	}
	reporter.writeLine(startedLineTemplateConstant, reporter.formatter.BuildStartedMessage(command))
}

// CommandCompleted reports non-zero exits; successful commands produce no output.
func (reporter *ProgressReporter) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if reporter == nil || result.ExitCode == 0 {
		return
	}
	reporter.writeLine(failedLineTemplateConstant, reporter.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed reports commands that could not be started.
func (reporter *ProgressReporter) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if reporter == nil {
		return
	}
	reporter.writeLine(failedLineTemplateConstant, reporter.formatter.BuildExecutionFailureMessage(command, failure))
}

func (reporter *ProgressReporter) writeLine(template string, message string) {
	reporter.guard.Lock()
	defer reporter.guard.Unlock()
	fmt.Fprintf(reporter.output, template, message)
}
