package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/shellkit/internal/utils/path"
)

const (
	testHomeDirectoryConstant   = "/home/tester"
	subtestNameTemplateConstant = "%02d_%s"
)

func TestExpanderExpand(testInstance *testing.T) {
	environment := map[string]string{"DOWNLOADS": "/data/downloads", "PROJECT": "shellkit"}
	expander := pathutils.NewExpanderWithProviders(
		func() (string, error) { return testHomeDirectoryConstant, nil },
		func(name string) (string, bool) {
			value, exists := environment[name]
			return value, exists
		},
	)

	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "empty", candidate: "  ", expectedPath: ""},
		{name: "bare_tilde", candidate: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", candidate: "~/projects", expectedPath: filepath.Join(testHomeDirectoryConstant, "projects")},
		{name: "other_user", candidate: "~root/bin", expectedPath: "~root/bin"},
		{name: "environment_variable", candidate: "$DOWNLOADS/archive", expectedPath: "/data/downloads/archive"},
		{name: "braced_variable", candidate: "~/src/${PROJECT}", expectedPath: filepath.Join(testHomeDirectoryConstant, "src", "shellkit")},
		{name: "unknown_variable", candidate: "/tmp/$MISSING", expectedPath: "/tmp/"},
		{name: "absolute", candidate: " /var/log ", expectedPath: "/var/log"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedPath, expander.Expand(testCase.candidate))
		})
	}
}

func TestExpanderKeepsTildeWhenHomeUnavailable(testInstance *testing.T) {
	expander := pathutils.NewExpanderWithProviders(func() (string, error) { return "", errors.New("no home") }, nil)
	require.Equal(testInstance, "~/projects", expander.Expand("~/projects"))
}
