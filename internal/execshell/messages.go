package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitCloneSubcommandNameConstant    = "clone"
	gitPullSubcommandNameConstant     = "pull"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitDiffSubcommandNameConstant     = "diff"
	gitBlameSubcommandNameConstant    = "blame"
	gitBranchFlagConstant             = "-b"
	gitLineRangeFlagPrefixConstant    = "-L"
	gitPathSeparatorArgumentConstant  = "--"
)

const (
	gitCloneStartTemplateConstant               = "Cloning %s (branch %s) into %s"
	gitCloneSuccessTemplateConstant             = "Cloned %s (branch %s) into %s"
	gitCloneFailureTemplateConstant             = "Failed to clone %s (branch %s) into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant    = "Unable to clone %s (branch %s) into %s: %s"
	gitPullStartTemplateConstant                = "Pulling %s from %s in %s"
	gitPullSuccessTemplateConstant              = "Pulled %s from %s in %s"
	gitPullFailureTemplateConstant              = "Failed to pull %s from %s in %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant     = "Unable to pull %s from %s in %s: %s"
	gitCheckoutStartTemplateConstant            = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant          = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant          = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant = "Unable to switch %s to branch %s: %s"
	gitDiffStartTemplateConstant                = "Comparing %s..%s in %s"
	gitDiffSuccessTemplateConstant              = "Compared %s..%s in %s"
	gitDiffFailureTemplateConstant              = "Failed to compare %s..%s in %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant     = "Unable to compare %s..%s in %s: %s"
	gitBlameStartTemplateConstant               = "Reading authorship of %s lines %s in %s"
	gitBlameSuccessTemplateConstant             = "Read authorship of %s lines %s in %s"
	gitBlameFailureTemplateConstant             = "Failed to read authorship of %s lines %s in %s (exit code %d%s)"
	gitBlameExecutionFailureTemplateConstant    = "Unable to read authorship of %s lines %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
// Every message is masked with the command's sensitive values.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	var message string
	switch command.Name {
	case CommandGit:
		message = formatter.describeGitMessage(command, result, failure, stage)
	default:
		message = formatter.buildGenericMessage(command, result, failure, stage)
	}
	return command.Details.mask(message)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitPullSubcommandNameConstant:
		return formatter.describeGitPullMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitDiffSubcommandNameConstant:
		return formatter.describeGitDiffMessage(command, result, failure, stage)
	case gitBlameSubcommandNameConstant:
		return formatter.describeGitBlameMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	remoteAddress := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	destination := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	branchName := formatter.ensureValue(findFlagValue(arguments, gitBranchFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, remoteAddress, branchName, destination)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, remoteAddress, branchName, destination)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, remoteAddress, branchName, destination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, remoteAddress, branchName, destination, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPullMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	referenceName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPullStartTemplateConstant, referenceName, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPullSuccessTemplateConstant, referenceName, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPullFailureTemplateConstant, referenceName, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPullExecutionFailureTemplateConstant, referenceName, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	branchName := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 1))
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, branchName)
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, branchName)
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, branchName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitDiffMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	oldRevision := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	newRevision := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDiffStartTemplateConstant, oldRevision, newRevision, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitDiffSuccessTemplateConstant, oldRevision, newRevision, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitDiffFailureTemplateConstant, oldRevision, newRevision, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitDiffExecutionFailureTemplateConstant, oldRevision, newRevision, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBlameMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	lineRange := formatter.ensureValue(extractLineRange(arguments))
	fileName := formatter.ensureValue(extractPathAfterSeparator(arguments))
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBlameStartTemplateConstant, fileName, lineRange, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBlameSuccessTemplateConstant, fileName, lineRange, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBlameFailureTemplateConstant, fileName, lineRange, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBlameExecutionFailureTemplateConstant, fileName, lineRange, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return command.Details.mask(fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}

func extractLineRange(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmedArgument, gitLineRangeFlagPrefixConstant) {
			return strings.TrimPrefix(trimmedArgument, gitLineRangeFlagPrefixConstant)
		}
	}
	return emptyStringConstant
}

func extractPathAfterSeparator(arguments []string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == gitPathSeparatorArgumentConstant && argumentIndex+1 < len(arguments) {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}
