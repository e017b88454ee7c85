package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	configurationCommandUseConstant              = "config"
	configurationCommandShortDescriptionConstant = "Print the effective configuration as YAML"
	configurationCommandLongDescriptionConstant  = "config prints the configuration after merging the embedded defaults, config.yaml, the --config file and SHELLKIT_* environment variables."
	configurationEncodeErrorTemplateConstant     = "unable to render configuration: %w"
	configurationIndentationConstant             = 2
)

// configurationCommandBuilder assembles the config command.
type configurationCommandBuilder struct {
	ConfigurationProvider func() ApplicationConfiguration
}

func (builder *configurationCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
		Long:  configurationCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.render(command)
		},
	}, nil
}

func (builder *configurationCommandBuilder) render(command *cobra.Command) error {
	configuration := ApplicationConfiguration{}
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	encoder := yaml.NewEncoder(command.OutOrStdout())
	encoder.SetIndent(configurationIndentationConstant)
	if encodeError := encoder.Encode(configuration); encodeError != nil {
		return fmt.Errorf(configurationEncodeErrorTemplateConstant, encodeError)
	}
	return encoder.Close()
}
