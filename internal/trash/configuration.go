package trash

import (
	"strings"

	pathutils "github.com/temirov/shellkit/internal/utils/path"
)

const (
	defaultExtensionConstant     = "txt"
	defaultTrashCommandConstant  = "gio"
	defaultTrashArgumentConstant = "trash"
	defaultRootConstant          = "."
)

var trashRootExpander = pathutils.NewExpander()

// CommandConfiguration captures persisted settings for the trash command.
type CommandConfiguration struct {
	Extension string   `mapstructure:"extension" yaml:"extension"`
	Root      string   `mapstructure:"root" yaml:"root"`
	Command   string   `mapstructure:"command" yaml:"command"`
	Arguments []string `mapstructure:"arguments" yaml:"arguments"`
}

// DefaultCommandConfiguration trashes .txt files below the working directory with gio.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Extension: defaultExtensionConstant,
		Root:      defaultRootConstant,
		Command:   defaultTrashCommandConstant,
		Arguments: []string{defaultTrashArgumentConstant},
	}
}

// Sanitize trims values and restores defaults for empty fields.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Extension = strings.TrimSpace(configuration.Extension)
	if len(sanitized.Extension) == 0 {
		sanitized.Extension = defaults.Extension
	}
	sanitized.Root = trashRootExpander.Expand(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaults.Root
	}
	sanitized.Command = strings.TrimSpace(configuration.Command)
	if len(sanitized.Command) == 0 {
		sanitized.Command = defaults.Command
		sanitized.Arguments = defaults.Arguments
	}

	arguments := make([]string, 0, len(sanitized.Arguments))
	for _, argument := range sanitized.Arguments {
		if trimmedArgument := strings.TrimSpace(argument); len(trimmedArgument) > 0 {
			arguments = append(arguments, trimmedArgument)
		}
	}
	sanitized.Arguments = arguments

	return sanitized
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + ".extension": defaults.Extension,
		prefix + ".root":      defaults.Root,
		prefix + ".command":   defaults.Command,
		prefix + ".arguments": defaults.Arguments,
	}
}
