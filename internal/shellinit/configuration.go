package shellinit

import "strings"

const (
	executableConfigurationKeyConstant = "executable"
	aliasesConfigurationKeyConstant    = "aliases"
	configurationKeySeparatorConstant  = "."
)

// CommandConfiguration captures configuration values for the shell-init command.
type CommandConfiguration struct {
	Executable string `mapstructure:"executable" yaml:"executable"`
	Aliases    bool   `mapstructure:"aliases" yaml:"aliases"`
}

// DefaultCommandConfiguration provides baseline configuration values for shell integration.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Executable: defaultExecutableNameConstant,
		Aliases:    true,
	}
}

// Sanitize trims configuration values and restores the default executable when empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Executable = strings.TrimSpace(configuration.Executable)
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = defaultExecutableNameConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + executableConfigurationKeyConstant: defaults.Executable,
		prefix + configurationKeySeparatorConstant + aliasesConfigurationKeyConstant:    defaults.Aliases,
	}
}
