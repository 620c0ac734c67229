package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	commandGitStringConstant                  = "git"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandFailedErrorTemplateConstant        = "%s failed with exit code %d"
	commandFailedWithStandardErrorTemplate    = "%s failed with exit code %d: %s"
	commandExecutionErrorTemplateConstant     = "%s could not be executed: %v"
	sensitiveValueReplacementConstant         = "***"
	minimumSensitiveValueLengthConstant       = 1
	commandNameArgumentsJoinSeparatorConstant = " "
	terminalPromptEnvironmentNameConstant     = "GIT_TERMINAL_PROMPT"
	terminalPromptEnvironmentDisabledConstant = "0"
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandName identifies an executable invoked by the executor.
type CommandName string

// CommandGit identifies the git executable.
const CommandGit CommandName = CommandName(commandGitStringConstant)

// CommandDetails describes the arguments and process environment of a command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// SensitiveValues are masked wherever the command or its output is described.
	SensitiveValues []string
}

// ShellCommand couples an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command without exposing sensitive values.
func (failedError CommandFailedError) Error() string {
	commandLabel := failedError.Command.Details.mask(describeCommand(failedError.Command))
	trimmedStandardError := strings.TrimSpace(failedError.Command.Details.mask(failedError.Result.StandardError))
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, commandLabel, failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithStandardErrorTemplate, commandLabel, failedError.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure without exposing sensitive values.
func (executionError CommandExecutionError) Error() string {
	commandLabel := executionError.Command.Details.mask(describeCommand(executionError.Command))
	return executionError.Command.Details.mask(fmt.Sprintf(commandExecutionErrorTemplateConstant, commandLabel, executionError.Cause))
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs commands through a CommandRunner and reports their lifecycle.
type ShellExecutor struct {
	logger   *zap.Logger
	runner   CommandRunner
	observer CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor. When no observer is supplied the
// executor logs lifecycle events as structured entries on the provided logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	var observer CommandEventObserver = newStructuredCommandEventLogger(logger)
	for _, candidateObserver := range observers {
		if candidateObserver != nil {
			observer = candidateObserver
		}
	}

	return &ShellExecutor{logger: logger, runner: runner, observer: observer}, nil
}

// Execute runs the command and converts non-zero exit codes into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	return executionResult, nil
}

// ExecuteGit runs git with the supplied details. Interactive credential prompts are disabled.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	environment := make(map[string]string, len(details.EnvironmentVariables)+1)
	for environmentKey, environmentValue := range details.EnvironmentVariables {
		environment[environmentKey] = environmentValue
	}
	if _, configured := environment[terminalPromptEnvironmentNameConstant]; !configured {
		environment[terminalPromptEnvironmentNameConstant] = terminalPromptEnvironmentDisabledConstant
	}
	details.EnvironmentVariables = environment

	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (details CommandDetails) mask(text string) string {
	maskedText := text
	for _, sensitiveValue := range details.SensitiveValues {
		if len(sensitiveValue) < minimumSensitiveValueLengthConstant {
			continue
		}
		maskedText = strings.ReplaceAll(maskedText, sensitiveValue, sensitiveValueReplacementConstant)
	}
	return maskedText
}

func describeCommand(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	commandParts = append(commandParts, command.Details.Arguments...)
	return strings.Join(commandParts, commandNameArgumentsJoinSeparatorConstant)
}
