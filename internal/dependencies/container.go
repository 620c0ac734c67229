package dependencies

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/temirov/reposync/internal/gitrepo"
	"github.com/temirov/reposync/internal/reposync"
)

const serviceAssemblyErrorTemplateConstant = "unable to assemble repository service: %w"

// ServiceInputs carry the settings and optional overrides used to build a Service.
type ServiceInputs struct {
	Logger               *zap.Logger
	HumanReadableLogging bool
	StorageRoot          string
	DefaultBranch        string
	GitExecutor          reposync.GitExecutor
	FileSystem           gitrepo.FileSystem
}

// RegisterProviders registers the service graph with the container, bottom-up
// from logger and filesystem to the repository service.
func RegisterProviders(container *dig.Container, inputs ServiceInputs) error {
	if err := container.Provide(func() *zap.Logger {
		return ResolveLogger(inputs.Logger)
	}); err != nil {
		return err
	}

	if err := container.Provide(func() gitrepo.FileSystem {
		return ResolveFileSystem(inputs.FileSystem)
	}); err != nil {
		return err
	}

	if err := container.Provide(func(logger *zap.Logger) (reposync.GitExecutor, error) {
		return ResolveGitExecutor(inputs.GitExecutor, logger, inputs.HumanReadableLogging)
	}); err != nil {
		return err
	}

	if err := container.Provide(func(fileSystem gitrepo.FileSystem) (reposync.LocationResolver, error) {
		return gitrepo.NewLocationResolver(inputs.StorageRoot, fileSystem)
	}); err != nil {
		return err
	}

	return container.Provide(func(executor reposync.GitExecutor, fileSystem gitrepo.FileSystem, resolver reposync.LocationResolver, logger *zap.Logger) (*reposync.Service, error) {
		return reposync.NewService(
			reposync.ServiceDependencies{
				GitExecutor:      executor,
				FileSystem:       fileSystem,
				LocationResolver: resolver,
				Logger:           logger,
			},
			reposync.ServiceSettings{DefaultBranch: inputs.DefaultBranch},
		)
	})
}

// BuildService assembles a Service from the inputs.
func BuildService(inputs ServiceInputs) (*reposync.Service, error) {
	container := dig.New()
	if registrationError := RegisterProviders(container, inputs); registrationError != nil {
		return nil, fmt.Errorf(serviceAssemblyErrorTemplateConstant, registrationError)
	}

	var service *reposync.Service
	if invokeError := container.Invoke(func(resolvedService *reposync.Service) {
		service = resolvedService
	}); invokeError != nil {
		return nil, fmt.Errorf(serviceAssemblyErrorTemplateConstant, dig.RootCause(invokeError))
	}
	return service, nil
}
