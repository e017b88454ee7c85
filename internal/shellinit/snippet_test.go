package shellinit_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shellkit/internal/shellinit"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const subtestNameTemplateConstant = "%02d_%s"

func TestParseShell(testInstance *testing.T) {
	testCases := []struct {
		rawShell      string
		expectedShell shellinit.Shell
		expectError   bool
	}{
		{rawShell: "bash", expectedShell: shellinit.ShellBash},
		{rawShell: "/usr/bin/zsh", expectedShell: shellinit.ShellZsh},
		{rawShell: " FISH ", expectedShell: shellinit.ShellFish},
		{rawShell: "/bin/tcsh", expectError: true},
		{rawShell: "", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.rawShell), func(subtest *testing.T) {
			shell, parseError := shellinit.ParseShell(testCase.rawShell)
			if testCase.expectError {
				require.ErrorIs(subtest, parseError, toolerrors.ErrInvalidArgument)
				return
			}
			require.NoError(subtest, parseError)
			require.Equal(subtest, testCase.expectedShell, shell)
		})
	}
}

func TestSnippetWrapsUpInCd(testInstance *testing.T) {
	bashSnippet, bashError := shellinit.Snippet(shellinit.ShellBash, "", true)
	require.NoError(testInstance, bashError)
	require.Contains(testInstance, bashSnippet, "# shellkit shell integration (bash)\n")
	require.Contains(testInstance, bashSnippet, `shellkit_target="$(command shellkit up "$@")" || return`)
	require.Contains(testInstance, bashSnippet, `builtin cd -- "$shellkit_target"`)
	require.Contains(testInstance, bashSnippet, "alias ..='up 1'\n")

	fishSnippet, fishError := shellinit.Snippet(shellinit.ShellFish, "/opt/bin/shellkit", false)
	require.NoError(testInstance, fishError)
	require.Contains(testInstance, fishSnippet, "set -l shellkit_target (command /opt/bin/shellkit up $argv); or return")
	require.NotContains(testInstance, fishSnippet, "alias")

	_, unsupportedError := shellinit.Snippet(shellinit.Shell("csh"), "", true)
	require.ErrorIs(testInstance, unsupportedError, toolerrors.ErrInvalidArgument)
}

func TestCommandDetectsShellFromEnvironment(testInstance *testing.T) {
	testCases := []struct {
		name            string
		shellVariable   string
		arguments       []string
		expectedHeader  string
		expectedAliases bool
		expectError     bool
	}{
		{name: "environment_zsh", shellVariable: "/bin/zsh", expectedHeader: "(zsh)", expectedAliases: true},
		{name: "argument_overrides_environment", shellVariable: "/bin/zsh", arguments: []string{"fish"}, expectedHeader: "(fish)", expectedAliases: true},
		{name: "aliases_disabled", shellVariable: "/bin/bash", arguments: []string{"--aliases=no"}, expectedHeader: "(bash)"},
		{name: "unsupported_environment", shellVariable: "/bin/ksh", expectError: true},
		{name: "unsupported_argument", arguments: []string{"powershell"}, expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			builder := &shellinit.CommandBuilder{
				EnvironmentLookup: func(string) string { return testCase.shellVariable },
			}
			command, buildError := builder.Build()
			require.NoError(subtest, buildError)

			outputBuffer := &bytes.Buffer{}
			command.SetOut(outputBuffer)
			command.SetErr(&bytes.Buffer{})
			command.SetArgs(testCase.arguments)

			executionError := command.Execute()
			if testCase.expectError {
				require.ErrorIs(subtest, executionError, toolerrors.ErrInvalidArgument)
				return
			}
			require.NoError(subtest, executionError)
			require.Contains(subtest, outputBuffer.String(), testCase.expectedHeader)
			require.Equal(subtest, testCase.expectedAliases, bytes.Contains(outputBuffer.Bytes(), []byte("alias ..")))
		})
	}
}
