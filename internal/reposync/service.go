package reposync

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/reposync/internal/execshell"
	"github.com/temirov/reposync/internal/gitrepo"
)

const (
	remoteAddressLogFieldConstant = "remote"
	localPathLogFieldConstant     = "local_path"
	branchLogFieldConstant        = "branch"
	operationLogFieldConstant     = "operation"
	outcomeLogFieldConstant       = "outcome"
	messageLogFieldConstant       = "message"
)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// LocationResolver maps remote addresses onto local copy locations.
type LocationResolver interface {
	Resolve(remoteAddress string) (gitrepo.RepositoryLocation, error)
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor      GitExecutor
	FileSystem       gitrepo.FileSystem
	LocationResolver LocationResolver
	Logger           *zap.Logger
}

// ServiceSettings tune the service behavior.
type ServiceSettings struct {
	// DefaultBranch is used for handles that do not name a branch.
	DefaultBranch string
}

// Service opens repository handles and answers authorship queries.
type Service struct {
	executor      GitExecutor
	fileSystem    gitrepo.FileSystem
	resolver      LocationResolver
	logger        *zap.Logger
	defaultBranch string
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies, settings ServiceSettings) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.LocationResolver == nil {
		return nil, ErrLocationResolverNotConfigured
	}
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}

	defaultBranch := strings.TrimSpace(settings.DefaultBranch)
	if len(defaultBranch) == 0 {
		defaultBranch = DefaultBranchName
	}

	return &Service{
		executor:      dependencies.GitExecutor,
		fileSystem:    dependencies.FileSystem,
		resolver:      dependencies.LocationResolver,
		logger:        dependencies.Logger,
		defaultBranch: defaultBranch,
	}, nil
}

// NewHandle resolves the remote address into a RepositoryHandle.
func (service *Service) NewHandle(options HandleOptions) (RepositoryHandle, error) {
	location, resolveError := service.resolver.Resolve(options.RemoteAddress)
	if resolveError != nil {
		return RepositoryHandle{}, resolveError
	}

	branch := strings.TrimSpace(options.Branch)
	if len(branch) == 0 {
		branch = service.defaultBranch
	}

	return RepositoryHandle{
		RemoteAddress: location.RemoteAddress,
		Location:      location,
		Branch:        branch,
		Credentials:   options.Credentials,
	}, nil
}

// Open resolves the remote address and returns a Repository bound to it.
func (service *Service) Open(options HandleOptions) (*Repository, error) {
	handle, handleError := service.NewHandle(options)
	if handleError != nil {
		return nil, handleError
	}
	return service.Repository(handle), nil
}

// Repository binds an existing handle to the service.
func (service *Service) Repository(handle RepositoryHandle) *Repository {
	return &Repository{
		service:  service,
		handle:   handle,
		scrubber: gitrepo.NewCredentialScrubber(handle.Credentials),
		logger: service.logger.With(
			zap.String(remoteAddressLogFieldConstant, handle.RemoteAddress),
			zap.String(localPathLogFieldConstant, handle.Location.LocalPath),
		),
	}
}

// Repository performs git operations against one local copy.
type Repository struct {
	service  *Service
	handle   RepositoryHandle
	scrubber gitrepo.CredentialScrubber
	logger   *zap.Logger
}

// Handle returns the handle the repository was opened with.
func (repository *Repository) Handle() RepositoryHandle {
	return repository.handle
}

// LocalCopyExists reports whether the local copy directory is present.
func (repository *Repository) LocalCopyExists() bool {
	return directoryExists(repository.service.fileSystem, repository.handle.Location.LocalPath)
}

func (repository *Repository) runGit(executionContext context.Context, arguments []string) (execshell.ExecutionResult, error) {
	return runGitCapturingFailures(executionContext, repository.service.executor, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repository.handle.Location.LocalPath,
		SensitiveValues:  repository.scrubber.SensitiveValues(),
	})
}

// runGitCapturingFailures returns the output of commands that exited non-zero
// instead of an error so their diagnostics can be classified. Only failures to
// run git at all are reported as errors.
func runGitCapturingFailures(executionContext context.Context, executor GitExecutor, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executionResult, executionError := executor.ExecuteGit(executionContext, details)
	if executionError == nil {
		return executionResult, nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		return failedError.Result, nil
	}
	return execshell.ExecutionResult{}, executionError
}

func directoryExists(fileSystem gitrepo.FileSystem, path string) bool {
	if len(path) == 0 {
		return false
	}
	fileInfo, statError := fileSystem.Stat(path)
	if statError != nil {
		return false
	}
	return fileInfo.IsDir()
}
