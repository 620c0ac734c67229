package reposync

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/reposync/internal/execshell"
	"github.com/temirov/reposync/internal/gitrepo"
)

const (
	updateOperationNameConstant             = "update"
	freshCopyOperationNameConstant          = "clone"
	gitPullSubcommandConstant               = "pull"
	gitCloneSubcommandConstant              = "clone"
	gitCloneBranchFlagConstant              = "-b"
	updateRemoteNameConstant                = "origin"
	updateBranchNameConstant                = "master"
	alreadyClonedMessageConstant            = "repository has already been cloned"
	updateUnrecognizedOutputMessageConstant = "git pull reported no recognizable outcome"
	localCopyPresentMessageConstant         = "local copy present; updating"
	localCopyMissingMessageConstant         = "local copy missing; cloning"
	operationCompletedMessageConstant       = "repository operation completed"
	operationFailedMessageConstant          = "repository operation failed"
)

// EnsureSynced pulls the local copy when it exists and clones it otherwise.
// Exactly one of Update and FreshCopy runs.
func (repository *Repository) EnsureSynced(executionContext context.Context) (OperationResult, error) {
	if repository.LocalCopyExists() {
		repository.logger.Debug(localCopyPresentMessageConstant)
		return repository.Update(executionContext)
	}
	repository.logger.Debug(localCopyMissingMessageConstant)
	return repository.FreshCopy(executionContext)
}

// GetOrSync makes the same pull-or-clone decision as EnsureSynced.
func (repository *Repository) GetOrSync(executionContext context.Context) (OperationResult, error) {
	return repository.EnsureSynced(executionContext)
}

// Update pulls master from origin into the existing local copy. The handle's
// branch is not consulted; use Checkout to move between branches.
func (repository *Repository) Update(executionContext context.Context) (OperationResult, error) {
	if !repository.LocalCopyExists() {
		return OperationResult{Success: false, Message: notClonedMessageConstant}, ErrNotCloned
	}

	executionResult, executionError := repository.runGit(executionContext, []string{gitPullSubcommandConstant, updateRemoteNameConstant, updateBranchNameConstant})
	if executionError != nil {
		return repository.executionFailure(updateOperationNameConstant, executionError)
	}

	outcome := ClassifyPull(executionResult.StandardOutput, executionResult.StandardError)
	diagnostic := repository.scrubber.Scrub(strings.TrimSpace(executionResult.StandardError))
	if outcome == SyncOutcomeUnclassified && len(diagnostic) == 0 {
		diagnostic = updateUnrecognizedOutputMessageConstant
	}
	return repository.resolveOutcome(updateOperationNameConstant, outcome, diagnostic)
}

// FreshCopy clones the remote into the local copy path restricted to the
// handle's branch and then checks that branch out. An existing local copy is
// updated instead.
//
// Credentials are embedded in the clone address because git accepts them only
// in URL form. git records that address, secret included, in the local copy's
// .git/config, so local copies made with credentials retain the secret on disk.
func (repository *Repository) FreshCopy(executionContext context.Context) (OperationResult, error) {
	if repository.LocalCopyExists() {
		return repository.Update(executionContext)
	}

	cloneAddress, addressError := gitrepo.EmbedCredentials(repository.handle.RemoteAddress, repository.handle.Credentials)
	if addressError != nil {
		return OperationResult{}, addressError
	}

	executionResult, executionError := runGitCapturingFailures(executionContext, repository.service.executor, execshell.CommandDetails{
		Arguments: []string{
			gitCloneSubcommandConstant,
			cloneAddress,
			repository.handle.Location.LocalPath,
			gitCloneBranchFlagConstant,
			repository.handle.Branch,
		},
		SensitiveValues: repository.scrubber.SensitiveValues(),
	})
	if executionError != nil {
		return repository.executionFailure(freshCopyOperationNameConstant, executionError)
	}

	diagnostic := repository.scrubber.Scrub(strings.TrimSpace(executionResult.StandardError))
	outcome := ClassifyErrorStream(executionResult.StandardError)
	if outcome == SyncOutcomeUnclassified && executionResult.ExitCode == 0 {
		outcome = SyncOutcomeSucceeded
	}
	if outcome != SyncOutcomeSucceeded {
		return repository.resolveOutcome(freshCopyOperationNameConstant, outcome, diagnostic)
	}

	return repository.Checkout(executionContext, repository.handle.Branch)
}

// resolveOutcome converts a classified outcome into the result returned to callers.
// Not-found and authentication outcomes are errors; an existing clone and
// unrecognized output are reported as unsuccessful results.
func (repository *Repository) resolveOutcome(operationName string, outcome SyncOutcome, diagnostic string) (OperationResult, error) {
	switch outcome {
	case SyncOutcomeSucceeded:
		repository.logger.Info(operationCompletedMessageConstant, zap.String(operationLogFieldConstant, operationName))
		return OperationResult{Success: true}, nil
	case SyncOutcomeAlreadyExists:
		repository.logOutcome(operationName, outcome, alreadyClonedMessageConstant)
		return OperationResult{Success: false, Message: alreadyClonedMessageConstant}, nil
	case SyncOutcomeNotFound:
		repository.logOutcome(operationName, outcome, diagnostic)
		return OperationResult{Success: false, Message: diagnostic}, OperationFailedError{Operation: operationName, Message: diagnostic, Cause: ErrRepositoryNotFound}
	case SyncOutcomeAuthenticationFailed:
		repository.logOutcome(operationName, outcome, diagnostic)
		return OperationResult{Success: false, Message: diagnostic}, OperationFailedError{Operation: operationName, Message: diagnostic, Cause: ErrAuthenticationFailed}
	default:
		repository.logOutcome(operationName, outcome, diagnostic)
		return OperationResult{Success: false, Message: diagnostic}, nil
	}
}

func (repository *Repository) executionFailure(operationName string, executionError error) (OperationResult, error) {
	diagnostic := repository.scrubber.Scrub(executionError.Error())
	repository.logOutcome(operationName, SyncOutcomeUnclassified, diagnostic)
	return OperationResult{Success: false, Message: diagnostic}, OperationFailedError{Operation: operationName, Cause: executionError}
}

func (repository *Repository) logOutcome(operationName string, outcome SyncOutcome, diagnostic string) {
	repository.logger.Warn(
		operationFailedMessageConstant,
		zap.String(operationLogFieldConstant, operationName),
		zap.String(outcomeLogFieldConstant, outcome.String()),
		zap.String(messageLogFieldConstant, diagnostic),
	)
}
