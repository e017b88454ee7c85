package navigation

// CommandConfiguration captures persisted settings for the up command.
type CommandConfiguration struct {
	DefaultLevels int `mapstructure:"default_levels" yaml:"default_levels"`
}

// DefaultCommandConfiguration ascends a single level.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{DefaultLevels: defaultLevelCountConstant}
}

// Sanitize replaces non-positive level counts with the default.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	if sanitized.DefaultLevels < 1 {
		sanitized.DefaultLevels = defaultLevelCountConstant
	}
	return sanitized
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + ".default_levels": defaultLevelCountConstant,
	}
}
