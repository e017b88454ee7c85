package trash_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/shellkit/internal/execshell"
	"github.com/temirov/shellkit/internal/toolerrors"
	"github.com/temirov/shellkit/internal/trash"
)

// removingExecutor deletes the last argument to emulate a trash facility.
type removingExecutor struct {
	refusedPaths map[string]struct{}
	commands     []execshell.ShellCommand
}

func (executor *removingExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.commands = append(executor.commands, command)
	targetPath := command.Details.Arguments[len(command.Details.Arguments)-1]
	if _, refused := executor.refusedPaths[targetPath]; refused {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 1, StandardError: "permission denied"}}
	}
	return execshell.ExecutionResult{}, os.Remove(targetPath)
}

func writeFixtureFiles(testInstance *testing.T, root string, relativePaths ...string) {
	testInstance.Helper()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(root, relativePath)
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte("fixture"), 0o600))
	}
}

func TestTrashMovesExactlyMatchingFiles(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "a.log", "b.txt", "c.log")

	executor := &removingExecutor{}
	outputBuffer := &bytes.Buffer{}
	service, serviceError := trash.NewService(zap.NewNop(), executor, outputBuffer, nil)
	require.NoError(testInstance, serviceError)

	result, trashError := service.Trash(context.Background(), trash.Options{
		Root:           root,
		Extension:      "log",
		TrashCommand:   "gio",
		TrashArguments: []string{"trash"},
	})
	require.NoError(testInstance, trashError)
	require.Equal(testInstance, []string{filepath.Join(root, "a.log"), filepath.Join(root, "c.log")}, result.Moved)
	require.Empty(testInstance, result.Failures)

	require.NoFileExists(testInstance, filepath.Join(root, "a.log"))
	require.NoFileExists(testInstance, filepath.Join(root, "c.log"))
	require.FileExists(testInstance, filepath.Join(root, "b.txt"))

	require.Len(testInstance, executor.commands, 2)
	require.Equal(testInstance, execshell.CommandGio, executor.commands[0].Name)
	require.Equal(testInstance, []string{"trash", filepath.Join(root, "a.log")}, executor.commands[0].Details.Arguments)
	require.Contains(testInstance, outputBuffer.String(), "TRASHED: "+filepath.Join(root, "c.log"))
}

func TestTrashContinuesAfterMoveFailure(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "keep.tmp", "one.tmp", "sub/two.tmp")

	refusedPath := filepath.Join(root, "one.tmp")
	executor := &removingExecutor{refusedPaths: map[string]struct{}{refusedPath: {}}}
	errorBuffer := &bytes.Buffer{}
	logCore, observedLogs := observer.New(zap.DebugLevel)
	service, serviceError := trash.NewService(zap.New(logCore), executor, nil, errorBuffer)
	require.NoError(testInstance, serviceError)

	result, trashError := service.Trash(context.Background(), trash.Options{Root: root, Extension: ".tmp", TrashCommand: "gio", TrashArguments: []string{"trash"}})
	require.NoError(testInstance, trashError)

	require.Len(testInstance, result.Failures, 1)
	require.ErrorIs(testInstance, result.Failures[0], toolerrors.ErrMove)
	require.Contains(testInstance, result.Failures[0].Error(), refusedPath)
	require.ElementsMatch(testInstance, []string{filepath.Join(root, "keep.tmp"), filepath.Join(root, "sub", "two.tmp")}, result.Moved)
	require.FileExists(testInstance, refusedPath)
	require.Contains(testInstance, errorBuffer.String(), "FAILED: move to trash failed")
	require.Len(testInstance, observedLogs.FilterLevelExact(zap.WarnLevel).All(), 1)
}

func TestTrashReportsUnreadableRootWithoutFailing(testInstance *testing.T) {
	errorBuffer := &bytes.Buffer{}
	service, serviceError := trash.NewService(zap.NewNop(), &removingExecutor{}, nil, errorBuffer)
	require.NoError(testInstance, serviceError)

	missingRoot := filepath.Join(testInstance.TempDir(), "missing")
	result, trashError := service.Trash(context.Background(), trash.Options{Root: missingRoot, Extension: "txt", TrashCommand: "gio"})
	require.NoError(testInstance, trashError)
	require.Equal(testInstance, []string{missingRoot}, result.Skipped)
	require.Contains(testInstance, errorBuffer.String(), "SKIPPED: "+missingRoot)
}

func TestTrashPassesDashPrefixedNamesAsPaths(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "-x.log", "--help.log", "a.log", "keep.txt")
	changeWorkingDirectory(testInstance, root)

	executor := &removingExecutor{}
	outputBuffer := &bytes.Buffer{}
	service, serviceError := trash.NewService(zap.NewNop(), executor, outputBuffer, nil)
	require.NoError(testInstance, serviceError)

	result, trashError := service.Trash(context.Background(), trash.Options{Root: ".", Extension: "log", TrashCommand: "gio", TrashArguments: []string{"trash"}})
	require.NoError(testInstance, trashError)
	require.Empty(testInstance, result.Failures)
	require.ElementsMatch(testInstance, []string{"--help.log", "-x.log", "a.log"}, result.Moved)

	trashedArguments := make([]string, 0, len(executor.commands))
	for _, command := range executor.commands {
		trashedArguments = append(trashedArguments, command.Details.Arguments[len(command.Details.Arguments)-1])
	}
	require.ElementsMatch(testInstance, []string{"./--help.log", "./-x.log", "a.log"}, trashedArguments)

	require.NoFileExists(testInstance, filepath.Join(root, "-x.log"))
	require.NoFileExists(testInstance, filepath.Join(root, "--help.log"))
	require.FileExists(testInstance, filepath.Join(root, "keep.txt"))
	require.Contains(testInstance, outputBuffer.String(), "TRASHED: -x.log")
}

func TestTrashArgument(testInstance *testing.T) {
	require.Equal(testInstance, "./-f.log", trash.TrashArgument("-f.log"))
	require.Equal(testInstance, "sub/-f.log", trash.TrashArgument("sub/-f.log"))
	require.Equal(testInstance, "/tmp/-f.log", trash.TrashArgument("/tmp/-f.log"))
	require.Equal(testInstance, "notes.log", trash.TrashArgument("notes.log"))
}

func TestTrashRejectsInvalidOptions(testInstance *testing.T) {
	service, serviceError := trash.NewService(zap.NewNop(), &removingExecutor{}, nil, nil)
	require.NoError(testInstance, serviceError)

	_, extensionError := service.Trash(context.Background(), trash.Options{Extension: "a/b", TrashCommand: "gio"})
	require.ErrorIs(testInstance, extensionError, toolerrors.ErrInvalidArgument)

	_, commandError := service.Trash(context.Background(), trash.Options{Extension: "txt"})
	require.ErrorIs(testInstance, commandError, trash.ErrTrashCommandRequired)
}

func TestCommandUsesConfiguredToolAndDefaults(testInstance *testing.T) {
	root := testInstance.TempDir()
	writeFixtureFiles(testInstance, root, "notes.txt", "image.png")

	executor := &removingExecutor{}
	builder := trash.CommandBuilder{
		Executor: executor,
		ConfigurationProvider: func() trash.CommandConfiguration {
			return trash.CommandConfiguration{Root: root, Command: "trash-put"}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, executor.commands, 1)
	require.Equal(testInstance, execshell.CommandName("trash-put"), executor.commands[0].Name)
	require.Equal(testInstance, []string{filepath.Join(root, "notes.txt")}, executor.commands[0].Details.Arguments)
	require.FileExists(testInstance, filepath.Join(root, "image.png"))
}

func TestCommandRootFlagAndExtensionArgument(testInstance *testing.T) {
	configuredRoot := testInstance.TempDir()
	flagRoot := testInstance.TempDir()
	writeFixtureFiles(testInstance, configuredRoot, "x.md")
	writeFixtureFiles(testInstance, flagRoot, "y.md", "z.txt")

	executor := &removingExecutor{}
	builder := trash.CommandBuilder{
		Executor: executor,
		ConfigurationProvider: func() trash.CommandConfiguration {
			return trash.CommandConfiguration{Root: configuredRoot}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"--root", flagRoot, ".md"})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, executor.commands, 1)
	require.Equal(testInstance, []string{"trash", filepath.Join(flagRoot, "y.md")}, executor.commands[0].Details.Arguments)
	require.FileExists(testInstance, filepath.Join(configuredRoot, "x.md"))
}

// changeWorkingDirectory switches into directory for the duration of the test, mirroring testing.T.Chdir.
func changeWorkingDirectory(testInstance *testing.T, directory string) {
	testInstance.Helper()
	previousDirectory, getwdError := os.Getwd()
	require.NoError(testInstance, getwdError)
	require.NoError(testInstance, os.Chdir(directory))
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Chdir(previousDirectory))
	})
}
