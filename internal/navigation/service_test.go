package navigation_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shellkit/internal/navigation"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	nestedDirectoryConstant = "/home/user/projects/shellkit"
)

func TestParseLevels(testInstance *testing.T) {
	testCases := []struct {
		name           string
		rawLevels      string
		expectedLevels int
		expectError    bool
	}{
		{name: "EmptyDefaultsToOne", rawLevels: "", expectedLevels: 1},
		{name: "Numeric", rawLevels: "3", expectedLevels: 3},
		{name: "Whitespace", rawLevels: " 2 ", expectedLevels: 2},
		{name: "Zero", rawLevels: "0", expectError: true},
		{name: "Negative", rawLevels: "-1", expectError: true},
		{name: "NotNumeric", rawLevels: "abc", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			levels, parseError := navigation.ParseLevels(testCase.rawLevels)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				require.ErrorIs(testInstance, parseError, toolerrors.ErrInvalidArgument)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedLevels, levels)
		})
	}
}

func TestResolveAncestorMovesExactlyRequestedLevels(testInstance *testing.T) {
	depth := navigation.Depth(nestedDirectoryConstant)
	require.Equal(testInstance, 4, depth)

	for levels := 1; levels <= depth; levels++ {
		ancestor, resolveError := navigation.ResolveAncestor(nestedDirectoryConstant, levels)
		require.NoError(testInstance, resolveError)

		relativePath, relativeError := filepath.Rel(ancestor, nestedDirectoryConstant)
		require.NoError(testInstance, relativeError)
		require.Len(testInstance, strings.Split(filepath.ToSlash(relativePath), "/"), levels)
		require.Equal(testInstance, depth-levels, navigation.Depth(ancestor))
	}
}

func TestResolveAncestorRejectsInvalidRequests(testInstance *testing.T) {
	testCases := []struct {
		name             string
		workingDirectory string
		levels           int
	}{
		{name: "ExceedsDepth", workingDirectory: nestedDirectoryConstant, levels: 5},
		{name: "AtRoot", workingDirectory: "/", levels: 1},
		{name: "ZeroLevels", workingDirectory: nestedDirectoryConstant, levels: 0},
		{name: "RelativeDirectory", workingDirectory: "relative/path", levels: 1},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, resolveError := navigation.ResolveAncestor(testCase.workingDirectory, testCase.levels)
			require.ErrorIs(testInstance, resolveError, toolerrors.ErrInvalidArgument)
			require.Equal(testInstance, toolerrors.ExitInvalidArgument, toolerrors.MapExitCode(resolveError))
		})
	}
}

func TestResolveAncestorReachesRoot(testInstance *testing.T) {
	ancestor, resolveError := navigation.ResolveAncestor(nestedDirectoryConstant, 4)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, "/", ancestor)
}
