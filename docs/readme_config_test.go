package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/reposync/cmd/cli"
	"github.com/temirov/reposync/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

func TestReadmeConfigurationParses(testInstance *testing.T) {
	snippetContent := extractReadmeConfiguration(testInstance)

	var rawDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &rawDocument))
	require.ElementsMatch(testInstance, []string{"common", "sync", "diff"}, mapKeys(rawDocument))

	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(snippetContent), 0o600))

	embeddedConfiguration, embeddedConfigurationType := cli.EmbeddedDefaultConfiguration()
	loader := utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
		ConfigurationName:     "config",
		ConfigurationType:     embeddedConfigurationType,
		EnvironmentPrefix:     "REPOSYNC_README",
		EmbeddedConfiguration: embeddedConfiguration,
	})

	var configuration cli.ApplicationConfiguration
	_, loadError := loader.LoadConfiguration(snippetPath, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, "~/.reposync/versions", configuration.Sync.StorageRoot)
	require.Equal(testInstance, "master", configuration.Sync.DefaultBranch)
	require.Equal(testInstance, 10*time.Minute, configuration.Sync.CommandTimeout)
	require.Equal(testInstance, "yaml", configuration.Diff.OutputFormat)
}

func extractReadmeConfiguration(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])
}

func mapKeys(document map[string]any) []string {
	keys := make([]string, 0, len(document))
	for key := range document {
		keys = append(keys, key)
	}
	return keys
}
