package cleanup

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/execshell"
)

const (
	commandDescriptionSeparatorConstant = " "
)

// CommandExecutor runs typed commands.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Environment exposes shared collaborators for cleanup steps.
type Environment struct {
	Executor  CommandExecutor
	Elevation Elevation
	Logger    *zap.Logger
	Output    io.Writer
}

// Run executes a read-only command without elevation.
func (environment *Environment) Run(executionContext context.Context, commandName execshell.CommandName, arguments ...string) (execshell.ExecutionResult, error) {
	return environment.Executor.Execute(executionContext, execshell.ShellCommand{
		Name:    commandName,
		Details: execshell.CommandDetails{Arguments: arguments},
	})
}

// RunPrivileged executes a mutating command, prefixed with the elevation tool when required.
func (environment *Environment) RunPrivileged(executionContext context.Context, commandName execshell.CommandName, arguments ...string) (execshell.ExecutionResult, error) {
	return environment.Executor.Execute(executionContext, environment.Elevation.Wrap(execshell.ShellCommand{
		Name:    commandName,
		Details: execshell.CommandDetails{Arguments: arguments},
	}))
}

// DescribePrivileged renders the command line RunPrivileged would execute.
func (environment *Environment) DescribePrivileged(commandName execshell.CommandName, arguments ...string) string {
	wrapped := environment.Elevation.Wrap(execshell.ShellCommand{
		Name:    commandName,
		Details: execshell.CommandDetails{Arguments: arguments},
	})
	return describeCommand(wrapped)
}

// Describe renders an unelevated command line.
func (environment *Environment) Describe(commandName execshell.CommandName, arguments ...string) string {
	return describeCommand(execshell.ShellCommand{Name: commandName, Details: execshell.CommandDetails{Arguments: arguments}})
}

func describeCommand(command execshell.ShellCommand) string {
	parts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(parts, commandDescriptionSeparatorConstant)
}

func (environment *Environment) logger() *zap.Logger {
	if environment == nil || environment.Logger == nil {
		return zap.NewNop()
	}
	return environment.Logger
}

func (environment *Environment) output() io.Writer {
	if environment == nil || environment.Output == nil {
		return io.Discard
	}
	return environment.Output
}
