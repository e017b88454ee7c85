package branches

import "strings"

const (
	defaultRemoteNameConstant      = "origin"
	remoteConfigurationKeyConstant = "remote"
	includeCurrentKeyConstant      = "include_current"
	dryRunConfigurationKeyConstant = "dry_run"
	configurationKeySeparator      = "."
)

// CommandConfiguration captures configuration values for the prune-branches command.
type CommandConfiguration struct {
	RemoteName     string `mapstructure:"remote" yaml:"remote"`
	IncludeCurrent bool   `mapstructure:"include_current" yaml:"include_current"`
	DryRun         bool   `mapstructure:"dry_run" yaml:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for branch pruning.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteName:     defaultRemoteNameConstant,
		IncludeCurrent: false,
		DryRun:         false,
	}
}

// Sanitize trims configuration values and restores the default remote when empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaultRemoteNameConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparator + remoteConfigurationKeyConstant: defaults.RemoteName,
		prefix + configurationKeySeparator + includeCurrentKeyConstant:      defaults.IncludeCurrent,
		prefix + configurationKeySeparator + dryRunConfigurationKeyConstant: defaults.DryRun,
	}
}
