package cleanup_test

import (
	"context"
	"strings"

	"github.com/temirov/shellkit/internal/execshell"
)

// recordingExecutor captures command lines and fails those whose rendered form matches failingCommandLine.
type recordingExecutor struct {
	standardOutputs    map[execshell.CommandName]string
	failingCommandLine string
	commandLines       []string
}

func (executor *recordingExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	commandLine := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), " ")
	executor.commandLines = append(executor.commandLines, commandLine)
	if len(executor.failingCommandLine) > 0 && commandLine == executor.failingCommandLine {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 100, StandardError: "E: could not lock"}}
	}
	return execshell.ExecutionResult{StandardOutput: executor.standardOutputs[command.Name]}, nil
}

// sequenceProbe returns the configured free space values in order.
type sequenceProbe struct {
	values []uint64
	paths  []string
}

func (probe *sequenceProbe) FreeBytes(_ context.Context, path string) (uint64, error) {
	probe.paths = append(probe.paths, path)
	if len(probe.values) == 0 {
		return 0, context.DeadlineExceeded
	}
	value := probe.values[0]
	probe.values = probe.values[1:]
	return value, nil
}
