package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reposync/internal/utils"
)

const (
	testEnvironmentPrefixConstant     = "TESTREPOSYNC"
	testConfigFileNameConstant        = "config.yaml"
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testEmbeddedConfigurationConstant = "common:\n  log_level: info\nsync:\n  storage_root: /var/lib/reposync\n  command_timeout: 5m\n  branches: master\n"
	testFileConfigurationTemplate     = "common:\n  log_level: %s\nsync:\n  command_timeout: 90s\n"
	testLogLevelEnvironmentName       = testEnvironmentPrefixConstant + "_COMMON_LOG_LEVEL"
	testBranchesEnvironmentName       = testEnvironmentPrefixConstant + "_SYNC_BRANCHES"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
	Sync   configurationSyncFixture   `mapstructure:"sync"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationSyncFixture struct {
	StorageRoot    string        `mapstructure:"storage_root"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Branches       []string      `mapstructure:"branches"`
}

func newTestLoader(searchPaths ...string) *utils.ConfigurationLoader {
	return utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
		ConfigurationName:     testConfigurationNameConstant,
		ConfigurationType:     testConfigurationTypeConstant,
		EnvironmentPrefix:     testEnvironmentPrefixConstant,
		SearchPaths:           searchPaths,
		EmbeddedConfiguration: []byte(testEmbeddedConfigurationConstant),
	})
}

func TestConfigurationLoaderLayering(testInstance *testing.T) {
	testCases := []struct {
		name                string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
		expectedTimeout     time.Duration
	}{
		{name: "embedded_defaults", expectedLogLevel: "info", expectedTimeout: 5 * time.Minute},
		{name: "file_overrides_embedded", fileLogLevel: "debug", expectedLogLevel: "debug", expectedTimeout: 90 * time.Second},
		{name: "environment_overrides_file", fileLogLevel: "warn", environmentLogLevel: "error", expectedLogLevel: "error", expectedTimeout: 90 * time.Second},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testFileConfigurationTemplate, testCase.fileLogLevel)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}
			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testLogLevelEnvironmentName, testCase.environmentLogLevel)
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := newTestLoader().LoadConfiguration(configurationFilePath, &loadedConfiguration)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedTimeout, loadedConfiguration.Sync.CommandTimeout)
			require.Equal(testInstance, "/var/lib/reposync", loadedConfiguration.Sync.StorageRoot)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderDecodesListsFromEnvironment(testInstance *testing.T) {
	testInstance.Setenv(testBranchesEnvironmentName, "master,develop")

	loadedConfiguration := configurationFixture{}
	_, loadError := newTestLoader().LoadConfiguration("", &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"master", "develop"}, loadedConfiguration.Sync.Branches)
}

func TestConfigurationLoaderSearchesPaths(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(searchDirectory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testFileConfigurationTemplate, "debug")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	loadedConfiguration := configurationFixture{}
	metadata, loadError := newTestLoader(testInstance.TempDir(), searchDirectory).LoadConfiguration("", &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", loadedConfiguration.Common.LogLevel)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderRejectsMissingExplicitFile(testInstance *testing.T) {
	loadedConfiguration := configurationFixture{}
	_, loadError := newTestLoader().LoadConfiguration(filepath.Join(testInstance.TempDir(), "absent.yaml"), &loadedConfiguration)
	require.Error(testInstance, loadError)
}
