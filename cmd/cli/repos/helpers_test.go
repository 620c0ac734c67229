package repos_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/reposync/cmd/cli/repos"
	"github.com/temirov/reposync/internal/execshell"
)

const (
	testRemoteAddressConstant = "https://gitlab.com/owner/name.git"
	testOwnerConstant         = "owner"
	testNameConstant          = "name"
)

type scriptedGitResponse struct {
	result execshell.ExecutionResult
	err    error
}

// scriptedGitExecutor answers git invocations by subcommand and creates the
// clone target directory when a clone succeeds.
type scriptedGitExecutor struct {
	responses map[string]scriptedGitResponse
	recorded  []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, nil
	}

	subcommand := details.Arguments[0]
	response := executor.responses[subcommand]
	if response.err != nil {
		return execshell.ExecutionResult{}, response.err
	}
	if response.result.ExitCode != 0 {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
			Result:  response.result,
		}
	}
	if subcommand == "clone" && len(details.Arguments) > 2 {
		if mkdirError := os.MkdirAll(details.Arguments[2], 0o755); mkdirError != nil {
			return execshell.ExecutionResult{}, mkdirError
		}
	}
	return response.result, nil
}

func (executor *scriptedGitExecutor) subcommands() []string {
	subcommands := make([]string, 0, len(executor.recorded))
	for _, details := range executor.recorded {
		subcommands = append(subcommands, details.Arguments[0])
	}
	return subcommands
}

type commandFixture struct {
	storageRoot string
	localPath   string
	executor    *scriptedGitExecutor
	providers   repos.ServiceProviders
}

func newCommandFixture(testInstance *testing.T, responses map[string]scriptedGitResponse) commandFixture {
	testInstance.Helper()

	storageRoot := testInstance.TempDir()
	executor := &scriptedGitExecutor{responses: responses}
	configuration := repos.DefaultSyncConfiguration()
	configuration.StorageRoot = storageRoot

	return commandFixture{
		storageRoot: storageRoot,
		localPath:   filepath.Join(storageRoot, testOwnerConstant, testNameConstant),
		executor:    executor,
		providers: repos.ServiceProviders{
			LoggerProvider: func() *zap.Logger { return zap.NewNop() },
			GitExecutor:    executor,
			ConfigurationProvider: func() repos.SyncConfiguration {
				return configuration
			},
		},
	}
}

func (fixture commandFixture) createLocalCopy(testInstance *testing.T) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(fixture.localPath, 0o755))
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments ...string) (string, error) {
	testInstance.Helper()

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	if arguments == nil {
		arguments = []string{}
	}
	command.SetArgs(arguments)
	command.SetContext(context.Background())

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}
