package navigation_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shellkit/internal/navigation"
	"github.com/temirov/shellkit/internal/toolerrors"
)

func TestCommandPrintsAncestor(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		configuration  navigation.CommandConfiguration
		expectedOutput string
		expectError    error
	}{
		{name: "DefaultOneLevel", arguments: []string{}, expectedOutput: "/home/user/projects\n"},
		{name: "ExplicitLevels", arguments: []string{"3"}, expectedOutput: "/home\n"},
		{name: "ConfiguredDefault", arguments: []string{}, configuration: navigation.CommandConfiguration{DefaultLevels: 2}, expectedOutput: "/home/user\n"},
		{name: "TooManyLevels", arguments: []string{"9"}, expectError: toolerrors.ErrInvalidArgument},
		{name: "NotNumeric", arguments: []string{"up"}, expectError: toolerrors.ErrInvalidArgument},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configuration := testCase.configuration
			builder := navigation.CommandBuilder{
				WorkingDirectoryProvider: func() (string, error) { return nestedDirectoryConstant, nil },
				ConfigurationProvider:    func() navigation.CommandConfiguration { return configuration },
			}
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			outputBuffer := &bytes.Buffer{}
			command.SetOut(outputBuffer)

			runError := command.RunE(command, testCase.arguments)
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, runError, testCase.expectError)
				require.Empty(testInstance, outputBuffer.String())
				return
			}
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}
