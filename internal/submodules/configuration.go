package submodules

// CommandConfiguration captures persisted settings for submodule-run.
type CommandConfiguration struct {
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}

// DefaultCommandConfiguration descends into nested submodules.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Recursive: true}
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + ".recursive": DefaultCommandConfiguration().Recursive,
	}
}
