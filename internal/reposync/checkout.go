package reposync

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	checkoutOperationNameConstant     = "checkout"
	gitCheckoutSubcommandConstant     = "checkout"
	noLocalCopyMessageConstant        = "no local copy"
	branchNameRequiredMessageConstant = "branch name must be provided"
	branchSwitchedMessageConstant     = "branch checked out"
)

// Checkout switches the local copy to branchName. A missing local copy or an
// unknown branch is reported as an unsuccessful result rather than an error.
func (repository *Repository) Checkout(executionContext context.Context, branchName string) (OperationResult, error) {
	if !repository.LocalCopyExists() {
		return OperationResult{Success: false, Message: noLocalCopyMessageConstant}, nil
	}

	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return OperationResult{Success: false, Message: branchNameRequiredMessageConstant}, nil
	}

	executionResult, executionError := repository.runGit(executionContext, []string{gitCheckoutSubcommandConstant, trimmedBranchName})
	if executionError != nil {
		return repository.executionFailure(checkoutOperationNameConstant, executionError)
	}

	diagnostic := repository.scrubber.Scrub(strings.TrimSpace(executionResult.StandardError))
	if ClassifyCheckout(executionResult.StandardError) != SyncOutcomeSucceeded {
		repository.logOutcome(checkoutOperationNameConstant, SyncOutcomeUnclassified, diagnostic)
		return OperationResult{Success: false, Message: diagnostic}, nil
	}

	repository.logger.Info(branchSwitchedMessageConstant, zap.String(branchLogFieldConstant, trimmedBranchName))
	return OperationResult{Success: true, Message: diagnostic}, nil
}
