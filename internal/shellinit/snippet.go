package shellinit

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	shellSubjectConstant             = "shell"
	unsupportedShellTemplateConstant = "unsupported shell %q; expected one of %s"
	undetectedShellMessageConstant   = "cannot detect the shell from $SHELL; pass bash, zsh or fish"
	supportedShellSeparatorConstant  = ", "
	defaultExecutableNameConstant    = "shellkit"

	posixFunctionTemplateConstant = `# shellkit shell integration (%[1]s)
up() {
  local shellkit_target
  shellkit_target="$(command %[2]s up "$@")" || return
  builtin cd -- "$shellkit_target"
}
`
	posixAliasesTemplateConstant = `alias ..='up 1'
alias ...='up 2'
alias ....='up 3'
`
	fishFunctionTemplateConstant = `# shellkit shell integration (fish)
function up --description 'Change to an ancestor directory'
    set -l shellkit_target (command %[1]s up $argv); or return
    builtin cd $shellkit_target
end
`
	fishAliasesTemplateConstant = `alias .. 'up 1'
alias ... 'up 2'
alias .... 'up 3'
`
)

var errShellUndetected = errors.New(undetectedShellMessageConstant)

// Shell identifies a supported interactive shell.
type Shell string

// Supported shells.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// SupportedShells lists shells with an integration snippet.
func SupportedShells() []Shell {
	return []Shell{ShellBash, ShellZsh, ShellFish}
}

// ParseShell normalizes a shell name or path such as /usr/bin/zsh.
func ParseShell(rawShell string) (Shell, error) {
	trimmedShell := strings.TrimSpace(rawShell)
	if len(trimmedShell) == 0 {
		return "", toolerrors.InvalidArgument(shellSubjectConstant, errShellUndetected)
	}

	candidate := Shell(strings.ToLower(filepath.Base(trimmedShell)))
	for _, supportedShell := range SupportedShells() {
		if candidate == supportedShell {
			return supportedShell, nil
		}
	}

	supportedNames := make([]string, 0, len(SupportedShells()))
	for _, supportedShell := range SupportedShells() {
		supportedNames = append(supportedNames, string(supportedShell))
	}
	return "", toolerrors.InvalidArgument(shellSubjectConstant, fmt.Errorf(unsupportedShellTemplateConstant, rawShell, strings.Join(supportedNames, supportedShellSeparatorConstant)))
}

// Snippet renders the integration code for the shell. The executable name defaults to shellkit.
func Snippet(shell Shell, executableName string, includeAliases bool) (string, error) {
	trimmedExecutable := strings.TrimSpace(executableName)
	if len(trimmedExecutable) == 0 {
		trimmedExecutable = defaultExecutableNameConstant
	}

	var builder strings.Builder
	switch shell {
	case ShellBash, ShellZsh:
		fmt.Fprintf(&builder, posixFunctionTemplateConstant, shell, trimmedExecutable)
		if includeAliases {
			builder.WriteString(posixAliasesTemplateConstant)
		}
	case ShellFish:
		fmt.Fprintf(&builder, fishFunctionTemplateConstant, trimmedExecutable)
		if includeAliases {
			builder.WriteString(fishAliasesTemplateConstant)
		}
	default:
		_, parseError := ParseShell(string(shell))
		return "", parseError
	}
	return builder.String(), nil
}
