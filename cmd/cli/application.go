package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/shellkit/internal/branches"
	"github.com/temirov/shellkit/internal/cleanup"
	"github.com/temirov/shellkit/internal/navigation"
	"github.com/temirov/shellkit/internal/shellinit"
	"github.com/temirov/shellkit/internal/submodules"
	"github.com/temirov/shellkit/internal/toolerrors"
	"github.com/temirov/shellkit/internal/trash"
	"github.com/temirov/shellkit/internal/utils"
	flagutils "github.com/temirov/shellkit/internal/utils/flags"
	pathutils "github.com/temirov/shellkit/internal/utils/path"
)

const (
	applicationNameConstant                 = "shellkit"
	applicationShortDescriptionConstant     = "Command-line toolbox for everyday shell chores"
	applicationLongDescriptionConstant      = "shellkit bundles directory navigation, git branch pruning, submodule fan-out, trash-by-extension and package cleanup behind one command. Every subcommand delegates to an external tool and reports its outcome."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	verbatimArgumentsCommandNameConstant    = "submodule-run"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "SHELLKIT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationDirectoryNameConstant      = applicationNameConstant
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	argumentsSubjectTemplateConstant        = "%s arguments"
	flagsSubjectTemplateConstant            = "%s flags"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	pruneBranchesConfigurationKeyConstant   = toolsConfigurationKeyConstant + ".prune_branches"
	submoduleRunConfigurationKeyConstant    = toolsConfigurationKeyConstant + ".submodule_run"
	trashConfigurationKeyConstant           = toolsConfigurationKeyConstant + ".trash"
	cleanSystemConfigurationKeyConstant     = toolsConfigurationKeyConstant + ".clean_system"
	upConfigurationKeyConstant              = toolsConfigurationKeyConstant + ".up"
	shellInitConfigurationKeyConstant       = toolsConfigurationKeyConstant + ".shell_init"
)

var (
	supportedLogLevels  = []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
	supportedLogFormats = []string{string(utils.LogFormatAuto), string(utils.LogFormatStructured), string(utils.LogFormatConsole)}
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common" yaml:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools" yaml:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for each subcommand.
type ApplicationToolsConfiguration struct {
	PruneBranches branches.CommandConfiguration   `mapstructure:"prune_branches" yaml:"prune_branches"`
	SubmoduleRun  submodules.CommandConfiguration `mapstructure:"submodule_run" yaml:"submodule_run"`
	Trash         trash.CommandConfiguration      `mapstructure:"trash" yaml:"trash"`
	CleanSystem   cleanup.CommandConfiguration    `mapstructure:"clean_system" yaml:"clean_system"`
	Up            navigation.CommandConfiguration `mapstructure:"up" yaml:"up"`
	ShellInit     shellinit.CommandConfiguration  `mapstructure:"shell_init" yaml:"shell_init"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	pathExpander          *pathutils.Expander
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		pathExpander:        pathutils.NewExpander(),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: application.runRootCommand,
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetFlagErrorFunc(func(command *cobra.Command, flagError error) error {
		return toolerrors.InvalidArgument(fmt.Sprintf(flagsSubjectTemplateConstant, command.Name()), flagError)
	})
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flagutils.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.logLevelFlagValue, logLevelFlagNameConstant, string(utils.LogLevelWarn), supportedLogLevels, logLevelFlagUsageConstant)
	flagutils.AddChoiceFlag(cobraCommand.PersistentFlags(), &application.logFormatFlagValue, logFormatFlagNameConstant, string(utils.LogFormatAuto), supportedLogFormats, logFormatFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	builders := []commandBuilder{
		&navigation.CommandBuilder{
			LoggerProvider: loggerProvider,
			ConfigurationProvider: func() navigation.CommandConfiguration {
				return application.configuration.Tools.Up
			},
		},
		&branches.CommandBuilder{
			LoggerProvider:               loggerProvider,
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			ConfigurationProvider: func() branches.CommandConfiguration {
				return application.configuration.Tools.PruneBranches
			},
		},
		&submodules.CommandBuilder{
			LoggerProvider:               loggerProvider,
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			ConfigurationProvider: func() submodules.CommandConfiguration {
				return application.configuration.Tools.SubmoduleRun
			},
		},
		&trash.CommandBuilder{
			LoggerProvider:               loggerProvider,
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			ConfigurationProvider: func() trash.CommandConfiguration {
				return application.configuration.Tools.Trash
			},
		},
		&cleanup.CommandBuilder{
			LoggerProvider:               loggerProvider,
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			ConfigurationProvider: func() cleanup.CommandConfiguration {
				return application.configuration.Tools.CleanSystem
			},
		},
		&shellinit.CommandBuilder{
			ConfigurationProvider: func() shellinit.CommandConfiguration {
				return application.configuration.Tools.ShellInit
			},
		},
		&configurationCommandBuilder{
			ConfigurationProvider: func() ApplicationConfiguration {
				return application.configuration
			},
		},
	}

	for _, builder := range builders {
		subcommand, buildError := builder.Build()
		if buildError == nil {
			wrapArgumentValidation(subcommand)
			cobraCommand.AddCommand(subcommand)
		}
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the command hierarchy under a context cancelled by SIGINT or SIGTERM and flushes the logger.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy with explicit arguments.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	signalContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	application.rootCommand.SetArgs(application.normalizeArguments(arguments))
	executionError := application.rootCommand.ExecuteContext(signalContext)
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// normalizeArguments accepts "--toggle value" for toggle flags. The argv forwarded by submodule-run is left as typed.
func (application *Application) normalizeArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return []string{}
	}

	targetCommand, _, findError := application.rootCommand.Find(arguments)
	if findError != nil || targetCommand == nil || targetCommand.Name() != verbatimArgumentsCommandNameConstant {
		return flagutils.NormalizeToggleArguments(arguments)
	}

	for argumentIndex, argument := range arguments {
		if argument == verbatimArgumentsCommandNameConstant {
			return append(flagutils.NormalizeToggleArguments(arguments[:argumentIndex+1]), arguments[argumentIndex+1:]...)
		}
	}
	return arguments
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, configurationDirectoryNameConstant))
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatAuto),
	}
	defaultValueSets := []map[string]any{
		branches.DefaultConfigurationValues(pruneBranchesConfigurationKeyConstant),
		submodules.DefaultConfigurationValues(submoduleRunConfigurationKeyConstant),
		trash.DefaultConfigurationValues(trashConfigurationKeyConstant),
		cleanup.DefaultConfigurationValues(cleanSystemConfigurationKeyConstant),
		navigation.DefaultConfigurationValues(upConfigurationKeyConstant),
		shellinit.DefaultConfigurationValues(shellInitConfigurationKeyConstant),
	}
	for _, defaultValueSet := range defaultValueSets {
		for configurationKey, configurationValue := range defaultValueSet {
			defaultValues[configurationKey] = configurationValue
		}
	}

	configurationFilePath := application.pathExpander.Expand(application.configurationFilePath)
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogLevel))),
		utils.LogFormat(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogFormat))),
	)
	if loggerCreationError != nil {
		return toolerrors.InvalidArgument(commonConfigurationKeyConstant, fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError))
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	requestedFormat := utils.LogFormat(strings.ToLower(strings.TrimSpace(application.configuration.Common.LogFormat)))
	return application.loggerFactory.ResolveLogFormat(requestedFormat) == utils.LogFormatConsole
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return command.Help()
	}
	return toolerrors.UnknownCommand(arguments[0])
}

// wrapArgumentValidation reports positional argument count errors as invalid arguments.
func wrapArgumentValidation(command *cobra.Command) {
	if command.Args == nil {
		return
	}
	validateArguments := command.Args
	command.Args = func(validatedCommand *cobra.Command, arguments []string) error {
		if validationError := validateArguments(validatedCommand, arguments); validationError != nil {
			return toolerrors.InvalidArgument(fmt.Sprintf(argumentsSubjectTemplateConstant, validatedCommand.Name()), validationError)
		}
		return nil
	}
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
