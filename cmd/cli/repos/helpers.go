package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/reposync/internal/dependencies"
	"github.com/temirov/reposync/internal/gitrepo"
	"github.com/temirov/reposync/internal/reposync"
	pathutils "github.com/temirov/reposync/internal/utils/path"
)

const (
	branchFlagNameConstant           = "branch"
	branchFlagUsageConstant          = "Branch to clone and check out (defaults to sync.default_branch)."
	usernameFlagNameConstant         = "username"
	usernameFlagUsageConstant        = "Username for private remotes (overrides sync.username)."
	secretFlagNameConstant           = "secret"
	secretFlagUsageConstant          = "Password or token for private remotes (overrides sync.secret)."
	operationFailedTemplateConstant  = "%s failed for %s: %s"
	storageRootErrorTemplateConstant = "unable to resolve storage root %s: %w"
)

var storageRootExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ServiceProviders carry the collaborators shared by repository commands.
// Unset collaborators fall back to operating-system implementations.
type ServiceProviders struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  reposync.GitExecutor
	FileSystem                   gitrepo.FileSystem
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() SyncConfiguration
}

func (providers ServiceProviders) resolveConfiguration() SyncConfiguration {
	if providers.ConfigurationProvider == nil {
		return DefaultSyncConfiguration()
	}
	return providers.ConfigurationProvider().sanitize()
}

func (providers ServiceProviders) humanReadableLogging() bool {
	if providers.HumanReadableLoggingProvider == nil {
		return false
	}
	return providers.HumanReadableLoggingProvider()
}

func (providers ServiceProviders) buildService(configuration SyncConfiguration) (*reposync.Service, error) {
	storageRoot, storageRootError := storageRootExpander.ResolveDirectory(configuration.StorageRoot)
	if storageRootError != nil {
		return nil, fmt.Errorf(storageRootErrorTemplateConstant, configuration.StorageRoot, storageRootError)
	}

	return dependencies.BuildService(dependencies.ServiceInputs{
		Logger:               resolveLogger(providers.LoggerProvider),
		HumanReadableLogging: providers.humanReadableLogging(),
		StorageRoot:          storageRoot,
		DefaultBranch:        configuration.DefaultBranch,
		GitExecutor:          providers.GitExecutor,
		FileSystem:           providers.FileSystem,
	})
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// commandContext bounds a git operation by the configured timeout. A zero
// timeout leaves the command context unbounded.
func commandContext(command *cobra.Command, configuration SyncConfiguration) (context.Context, context.CancelFunc) {
	parentContext := command.Context()
	if parentContext == nil {
		parentContext = context.Background()
	}
	if configuration.CommandTimeout <= 0 {
		return context.WithCancel(parentContext)
	}
	return context.WithTimeout(parentContext, configuration.CommandTimeout)
}

func registerCredentialFlags(command *cobra.Command) {
	command.Flags().String(usernameFlagNameConstant, "", usernameFlagUsageConstant)
	command.Flags().String(secretFlagNameConstant, "", secretFlagUsageConstant)
}

// resolveCredentials prefers flag values over configured ones. Nil means the
// remote is treated as public.
func resolveCredentials(command *cobra.Command, configuration SyncConfiguration) *gitrepo.Credentials {
	username := configuration.Username
	secret := configuration.Secret

	if command.Flags().Changed(usernameFlagNameConstant) {
		username, _ = command.Flags().GetString(usernameFlagNameConstant)
	}
	if command.Flags().Changed(secretFlagNameConstant) {
		secret, _ = command.Flags().GetString(secretFlagNameConstant)
	}

	credentials := &gitrepo.Credentials{Username: strings.TrimSpace(username), Secret: secret}
	if !credentials.Present() {
		return nil
	}
	return credentials
}

func openRepository(service *reposync.Service, command *cobra.Command, configuration SyncConfiguration, remoteAddress string, branch string) (*reposync.Repository, error) {
	return service.Open(reposync.HandleOptions{
		RemoteAddress: strings.TrimSpace(remoteAddress),
		Branch:        branch,
		Credentials:   resolveCredentials(command, configuration),
	})
}

func operationError(operationName string, remoteAddress string, result reposync.OperationResult) error {
	return fmt.Errorf(operationFailedTemplateConstant, operationName, remoteAddress, result.Message)
}
