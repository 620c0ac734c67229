package reposync_test

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/reposync/internal/execshell"
	"github.com/temirov/reposync/internal/gitrepo"
	"github.com/temirov/reposync/internal/reposync"
)

const (
	testStorageRootConstant   = "/storage/versions"
	testRemoteAddressConstant = "https://gitlab.com/owner/name.git"
	testLocalPathConstant     = "/storage/versions/owner/name"
)

type stubGitResponse struct {
	result execshell.ExecutionResult
	err    error
	// createsDirectory simulates git clone creating the local copy.
	createsDirectory string
}

type stubGitExecutor struct {
	fileSystem *stubFileSystem
	recorded   []execshell.CommandDetails
	responses  []stubGitResponse
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	if len(executor.responses) == 0 {
		return execshell.ExecutionResult{}, nil
	}

	next := executor.responses[0]
	executor.responses = executor.responses[1:]
	if len(next.createsDirectory) > 0 && executor.fileSystem != nil {
		executor.fileSystem.directories[next.createsDirectory] = struct{}{}
	}
	if next.err != nil {
		return execshell.ExecutionResult{}, next.err
	}
	if next.result.ExitCode != 0 {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
			Result:  next.result,
		}
	}
	return next.result, nil
}

type stubFileInfo struct {
	name string
}

func (info stubFileInfo) Name() string       { return info.name }
func (info stubFileInfo) Size() int64        { return 0 }
func (info stubFileInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o755 }
func (info stubFileInfo) ModTime() time.Time { return time.Time{} }
func (info stubFileInfo) IsDir() bool        { return true }
func (info stubFileInfo) Sys() any           { return nil }

type stubFileSystem struct {
	directories map[string]struct{}
}

func newStubFileSystem(existingDirectories ...string) *stubFileSystem {
	fileSystem := &stubFileSystem{directories: map[string]struct{}{}}
	for _, existingDirectory := range existingDirectories {
		fileSystem.directories[existingDirectory] = struct{}{}
	}
	return fileSystem
}

func (fileSystem *stubFileSystem) Stat(path string) (fs.FileInfo, error) {
	if _, exists := fileSystem.directories[path]; exists {
		return stubFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

func (fileSystem *stubFileSystem) MkdirAll(path string, _ fs.FileMode) error {
	fileSystem.directories[path] = struct{}{}
	return nil
}

type serviceFixture struct {
	service    *reposync.Service
	executor   *stubGitExecutor
	fileSystem *stubFileSystem
	logs       *observer.ObservedLogs
}

func newServiceFixture(testInstance *testing.T, responses []stubGitResponse, existingDirectories ...string) serviceFixture {
	testInstance.Helper()

	fileSystem := newStubFileSystem(existingDirectories...)
	executor := &stubGitExecutor{fileSystem: fileSystem, responses: responses}
	resolver, resolverError := gitrepo.NewLocationResolver(testStorageRootConstant, fileSystem)
	require.NoError(testInstance, resolverError)

	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	service, serviceError := reposync.NewService(reposync.ServiceDependencies{
		GitExecutor:      executor,
		FileSystem:       fileSystem,
		LocationResolver: resolver,
		Logger:           zap.New(observedCore),
	}, reposync.ServiceSettings{})
	require.NoError(testInstance, serviceError)

	return serviceFixture{service: service, executor: executor, fileSystem: fileSystem, logs: observedLogs}
}

func (fixture serviceFixture) open(testInstance *testing.T, options reposync.HandleOptions) *reposync.Repository {
	testInstance.Helper()

	if len(options.RemoteAddress) == 0 {
		options.RemoteAddress = testRemoteAddressConstant
	}
	repository, openError := fixture.service.Open(options)
	require.NoError(testInstance, openError)
	return repository
}
