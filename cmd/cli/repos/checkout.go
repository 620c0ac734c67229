package repos

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	checkoutUseConstant           = "checkout <remote> <branch>"
	checkoutShortDescription      = "Switch the local copy of a remote repository to a branch"
	checkoutLongDescription       = "checkout switches an existing local copy to the named branch. Branches unknown to the local copy are reported as failures."
	checkoutOperationNameConstant = "checkout"
	checkedOutMessageTemplate     = "CHECKED OUT: %s -> %s\n"
)

// CheckoutCommandBuilder assembles the checkout command.
type CheckoutCommandBuilder struct {
	ServiceProviders
}

// Build constructs the checkout command.
func (builder *CheckoutCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkoutUseConstant,
		Short: checkoutShortDescription,
		Long:  checkoutLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CheckoutCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	branch := arguments[1]

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

	result, checkoutError := repository.Checkout(executionContext, branch)
	if checkoutError != nil {
		return checkoutError
	}
	if !result.Success {
		return operationError(checkoutOperationNameConstant, repository.Handle().RemoteAddress, result)
	}

	fmt.Fprintf(command.OutOrStdout(), checkedOutMessageTemplate, repository.Handle().LocalPath(), branch)
	return nil
}
