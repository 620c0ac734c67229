package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	listValueSeparatorConstant                      = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoaderOptions describe where configuration is read from.
type ConfigurationLoaderOptions struct {
	ConfigurationName string
	ConfigurationType string
	// EnvironmentPrefix namespaces environment overrides: section.key becomes PREFIX_SECTION_KEY.
	EnvironmentPrefix string
	SearchPaths       []string
	// EmbeddedConfiguration is merged first; files and environment variables override it.
	EmbeddedConfiguration []byte
}

// ConfigurationLoader layers embedded defaults, an optional configuration file,
// and environment variables into a typed configuration value.
type ConfigurationLoader struct {
	options                ConfigurationLoaderOptions
	environmentKeyReplacer *strings.Replacer
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader for the supplied options.
func NewConfigurationLoader(options ConfigurationLoaderOptions) *ConfigurationLoader {
	duplicatedOptions := options
	duplicatedOptions.SearchPaths = append([]string{}, options.SearchPaths...)
	duplicatedOptions.EmbeddedConfiguration = append([]byte{}, options.EmbeddedConfiguration...)

	return &ConfigurationLoader{
		options:                duplicatedOptions,
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// LoadConfiguration populates targetConfiguration. Duration values accept
// strings such as "90s" and list values accept comma-separated strings.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.options.ConfigurationName)
	viperInstance.SetConfigType(loader.options.ConfigurationType)

	if len(loader.options.EmbeddedConfiguration) > 0 {
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.options.EmbeddedConfiguration)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}
	}

	for _, searchPath := range loader.options.SearchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.options.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	viperInstance.AutomaticEnv()

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(listValueSeparatorConstant),
	))
	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, decodeHook); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}
