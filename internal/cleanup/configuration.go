package cleanup

import (
	"strings"

	pathutils "github.com/temirov/shellkit/internal/utils/path"
)

const (
	defaultElevationCommandConstant   = "sudo"
	defaultDiskPathConstant           = "/"
	stepsConfigurationKeyConstant     = "steps"
	retentionConfigurationKeyConstant = "journal_retention"
	elevateConfigurationKeyConstant   = "elevate"
	elevationCommandKeyConstant       = "elevation_command"
	diskPathConfigurationKeyConstant  = "disk_path"
	dryRunConfigurationKeyConstant    = "dry_run"
	configurationKeySeparatorConstant = "."
)

var diskPathExpander = pathutils.NewExpander()

// CommandConfiguration captures configuration values for the clean-system command.
type CommandConfiguration struct {
	Steps            []string `mapstructure:"steps" yaml:"steps"`
	JournalRetention string   `mapstructure:"journal_retention" yaml:"journal_retention"`
	Elevate          bool     `mapstructure:"elevate" yaml:"elevate"`
	ElevationCommand string   `mapstructure:"elevation_command" yaml:"elevation_command"`
	DiskPath         string   `mapstructure:"disk_path" yaml:"disk_path"`
	DryRun           bool     `mapstructure:"dry_run" yaml:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for system cleanup.
func DefaultCommandConfiguration() CommandConfiguration {
	defaultStepNames := DefaultStepNames()
	steps := make([]string, 0, len(defaultStepNames))
	for _, stepName := range defaultStepNames {
		steps = append(steps, string(stepName))
	}
	return CommandConfiguration{
		Steps:            steps,
		JournalRetention: defaultJournalRetentionConstant,
		Elevate:          true,
		ElevationCommand: defaultElevationCommandConstant,
		DiskPath:         defaultDiskPathConstant,
		DryRun:           false,
	}
}

// Sanitize trims configuration values and restores defaults for blank fields.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Steps = make([]string, 0, len(configuration.Steps))
	for _, stepName := range configuration.Steps {
		if trimmedStepName := strings.TrimSpace(stepName); len(trimmedStepName) > 0 {
			sanitized.Steps = append(sanitized.Steps, trimmedStepName)
		}
	}
	if len(sanitized.Steps) == 0 {
		sanitized.Steps = defaults.Steps
	}

	sanitized.JournalRetention = strings.TrimSpace(configuration.JournalRetention)
	if len(sanitized.JournalRetention) == 0 {
		sanitized.JournalRetention = defaults.JournalRetention
	}

	sanitized.ElevationCommand = strings.TrimSpace(configuration.ElevationCommand)
	if len(sanitized.ElevationCommand) == 0 {
		sanitized.ElevationCommand = defaults.ElevationCommand
	}

	sanitized.DiskPath = diskPathExpander.Expand(configuration.DiskPath)
	if len(sanitized.DiskPath) == 0 {
		sanitized.DiskPath = defaults.DiskPath
	}

	return sanitized
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + stepsConfigurationKeyConstant:     defaults.Steps,
		prefix + configurationKeySeparatorConstant + retentionConfigurationKeyConstant: defaults.JournalRetention,
		prefix + configurationKeySeparatorConstant + elevateConfigurationKeyConstant:   defaults.Elevate,
		prefix + configurationKeySeparatorConstant + elevationCommandKeyConstant:       defaults.ElevationCommand,
		prefix + configurationKeySeparatorConstant + diskPathConfigurationKeyConstant:  defaults.DiskPath,
		prefix + configurationKeySeparatorConstant + dryRunConfigurationKeyConstant:    defaults.DryRun,
	}
}
