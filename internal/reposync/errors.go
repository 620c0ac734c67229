package reposync

import (
	"errors"
	"fmt"
)

const (
	repositoryNotFoundMessageConstant            = "remote repository does not exist or is unreachable"
	authenticationFailedMessageConstant          = "authentication failed"
	notClonedMessageConstant                     = "no local copy exists; clone the repository first"
	blameFormatUnrecognizedMessageConstant       = "blame output format not recognized"
	gitExecutorNotConfiguredMessageConstant      = "git executor not configured"
	fileSystemNotConfiguredMessageConstant       = "file system not configured"
	locationResolverNotConfiguredMessageConstant = "location resolver not configured"
	loggerNotConfiguredMessageConstant           = "logger not configured"
	operationFailedTemplateConstant              = "%s failed: %s"
	operationFailedWithCauseTemplateConstant     = "%s failed: %s: %v"
)

// ErrRepositoryNotFound indicates git reported the remote as missing or unreachable.
var ErrRepositoryNotFound = errors.New(repositoryNotFoundMessageConstant)

// ErrAuthenticationFailed indicates the remote rejected the supplied credentials.
var ErrAuthenticationFailed = errors.New(authenticationFailedMessageConstant)

// ErrNotCloned indicates an operation required a local copy that does not exist.
var ErrNotCloned = errors.New(notClonedMessageConstant)

// ErrBlameFormatUnrecognized indicates git blame produced output in an unexpected format.
var ErrBlameFormatUnrecognized = errors.New(blameFormatUnrecognizedMessageConstant)

// ErrGitExecutorNotConfigured indicates the service was constructed without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// ErrFileSystemNotConfigured indicates the service was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// ErrLocationResolverNotConfigured indicates the service was constructed without a location resolver.
var ErrLocationResolverNotConfigured = errors.New(locationResolverNotConfiguredMessageConstant)

// ErrLoggerNotConfigured indicates the service was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// OperationFailedError describes a failed operation with a credential-free message.
// Cause carries the classified sentinel when one applies.
type OperationFailedError struct {
	Operation string
	Message   string
	Cause     error
}

// Error describes the failure.
func (failedError OperationFailedError) Error() string {
	if failedError.Cause == nil {
		return fmt.Sprintf(operationFailedTemplateConstant, failedError.Operation, failedError.Message)
	}
	if len(failedError.Message) == 0 {
		return fmt.Sprintf(operationFailedTemplateConstant, failedError.Operation, failedError.Cause.Error())
	}
	return fmt.Sprintf(operationFailedWithCauseTemplateConstant, failedError.Operation, failedError.Message, failedError.Cause)
}

// Unwrap exposes the classified cause.
func (failedError OperationFailedError) Unwrap() error {
	return failedError.Cause
}
