package shellinit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	flagutils "github.com/temirov/shellkit/internal/utils/flags"
)

const (
	commandUseConstant               = "shell-init [shell]"
	commandShortDescriptionConstant  = "Print the shell functions that integrate shellkit"
	commandLongDescriptionConstant   = "shell-init prints an up function that changes directory to the path reported by shellkit up, plus short aliases. Add eval \"$(shellkit shell-init bash)\" to .bashrc, the zsh equivalent to .zshrc, or shellkit shell-init fish | source to config.fish. Without an argument the shell is detected from $SHELL."
	shellEnvironmentVariableConstant = "SHELL"
	aliasesFlagNameConstant          = "aliases"
	aliasesFlagDescriptionConstant   = "Include the .. and ... navigation aliases"
)

// EnvironmentLookup reads an environment variable.
type EnvironmentLookup func(name string) string

// CommandBuilder assembles the shell-init command.
type CommandBuilder struct {
	EnvironmentLookup     EnvironmentLookup
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the shell-init command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:       commandUseConstant,
		Short:     commandShortDescriptionConstant,
		Long:      commandLongDescriptionConstant,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		RunE:      builder.run,
	}
	flagutils.AddToggleFlag(command.Flags(), nil, aliasesFlagNameConstant, "", DefaultCommandConfiguration().Aliases, aliasesFlagDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	rawShell := builder.lookupEnvironment(shellEnvironmentVariableConstant)
	if len(arguments) > 0 {
		rawShell = arguments[0]
	}
	shell, parseError := ParseShell(rawShell)
	if parseError != nil {
		return parseError
	}

	includeAliases := configuration.Aliases
	if aliasesFlag := command.Flags().Lookup(aliasesFlagNameConstant); aliasesFlag != nil && aliasesFlag.Changed {
		parsedAliases, toggleError := flagutils.ParseToggleValue(aliasesFlag.Value.String())
		if toggleError != nil {
			return toggleError
		}
		includeAliases = parsedAliases
	}

	snippet, snippetError := Snippet(shell, configuration.Executable, includeAliases)
	if snippetError != nil {
		return snippetError
	}

	_, writeError := fmt.Fprint(command.OutOrStdout(), snippet)
	return writeError
}

func (builder *CommandBuilder) lookupEnvironment(name string) string {
	if builder.EnvironmentLookup == nil {
		return os.Getenv(name)
	}
	return builder.EnvironmentLookup(name)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
