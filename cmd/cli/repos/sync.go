package repos

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	syncUseConstant             = "sync <remote>"
	syncShortDescription        = "Clone or update the local copy of a remote repository"
	syncLongDescription         = "sync pulls the local copy when it exists and otherwise clones the remote restricted to the requested branch, then checks that branch out."
	syncOperationNameConstant   = "sync"
	syncedMessageTemplate       = "SYNCED: %s -> %s\n"
	updateUseConstant           = "update <remote>"
	updateShortDescription      = "Pull the master branch into an existing local copy"
	updateLongDescription       = "update runs a pull of origin master inside the local copy. The local copy must already exist."
	updateOperationNameConstant = "update"
	updatedMessageTemplate      = "UPDATED: %s -> %s\n"
)

// SyncCommandBuilder assembles the sync command.
type SyncCommandBuilder struct {
	ServiceProviders
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   syncUseConstant,
		Short: syncShortDescription,
		Long:  syncLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(branchFlagNameConstant, "", branchFlagUsageConstant)
	registerCredentialFlags(command)

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	branch, _ := command.Flags().GetString(branchFlagNameConstant)

	service, serviceError := builder.buildService(configuration)
	if serviceError != nil {
		return serviceError
	}

	repository, openError := openRepository(service, command, configuration, arguments[0], branch)
	if openError != nil {
		return openError
	}

	executionContext, cancel := commandContext(command, configuration)
	defer cancel()

	result, syncError := repository.EnsureSynced(executionContext)
	if syncError != nil {
		return syncError
	}
	if !result.Success {
		return operationError(syncOperationNameConstant, repository.Handle().RemoteAddress, result)
	}

	fmt.Fprintf(command.OutOrStdout(), syncedMessageTemplate, repository.Handle().RemoteAddress, repository.Handle().LocalPath())
	return nil
}

// UpdateCommandBuilder assembles the update command.
type UpdateCommandBuilder struct {
	ServiceProviders
}

// Build constructs the update command.
func (builder *UpdateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   updateUseConstant,
		Short: updateShortDescription,
		Long:  updateLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	registerCredentialFlags(command)

	return command, nil
}

func (builder *UpdateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	service, serviceError := builder.buildService(configuration)
	if serviceError != nil {
		return serviceError
	}

	repository, openError := openRepository(service, command, configuration, arguments[0], "")
	if openError != nil {
		return openError
	}

	executionContext, cancel := commandContext(command, configuration)
	defer cancel()

	result, updateError := repository.Update(executionContext)
	if updateError != nil {
		return updateError
	}
	if !result.Success {
		return operationError(updateOperationNameConstant, repository.Handle().RemoteAddress, result)
	}

	fmt.Fprintf(command.OutOrStdout(), updatedMessageTemplate, repository.Handle().RemoteAddress, repository.Handle().LocalPath())
	return nil
}
