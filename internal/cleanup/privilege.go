package cleanup

import (
	"errors"
	"strings"

	"github.com/temirov/shellkit/internal/execshell"
	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	rootUserIDConstant               = 0
	elevationSubjectConstant         = "elevation"
	elevationRequiredMessageConstant = "clean-system requires root; run as root or enable elevation"
	elevationCommandMissingMessage   = "elevation is enabled but no elevation command is configured"
)

var (
	errElevationRequired       = errors.New(elevationRequiredMessageConstant)
	errElevationCommandMissing = errors.New(elevationCommandMissingMessage)
)

// EffectiveUserIDProvider reports the effective user id of the process.
type EffectiveUserIDProvider func() int

// Elevation describes how mutating commands acquire root.
type Elevation struct {
	Command string
	Enabled bool
}

// Wrap prefixes the command with the elevation tool when elevation is enabled.
func (elevation Elevation) Wrap(command execshell.ShellCommand) execshell.ShellCommand {
	if !elevation.Enabled {
		return command
	}
	arguments := append([]string{string(command.Name)}, command.Details.Arguments...)
	wrapped := command
	wrapped.Name = execshell.CommandName(elevation.Command)
	wrapped.Details.Arguments = arguments
	return wrapped
}

// ResolveElevation decides whether commands must be elevated. Root never elevates. A non-root user
// with elevation disabled is rejected with an invalid argument error.
func ResolveElevation(effectiveUserID int, elevationAllowed bool, elevationCommand string) (Elevation, error) {
	if effectiveUserID == rootUserIDConstant {
		return Elevation{}, nil
	}
	if !elevationAllowed {
		return Elevation{}, toolerrors.InvalidArgument(elevationSubjectConstant, errElevationRequired)
	}
	trimmedCommand := strings.TrimSpace(elevationCommand)
	if len(trimmedCommand) == 0 {
		return Elevation{}, toolerrors.InvalidArgument(elevationSubjectConstant, errElevationCommandMissing)
	}
	return Elevation{Command: trimmedCommand, Enabled: true}, nil
}
