package main

import (
	"fmt"
	"os"

	"github.com/temirov/shellkit/cmd/cli"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the shellkit command-line application.
func main() {
	executionError := cli.Execute()
	if executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(int(toolerrors.MapExitCode(executionError)))
}
