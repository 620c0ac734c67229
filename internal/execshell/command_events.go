package execshell

import "go.uber.org/zap"

const (
	logFieldCommandConstant          = "command"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldExitCodeConstant         = "exit_code"
	logFieldStandardErrorConstant    = "stderr"
)

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports unexpected failures prior to receiving an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// structuredCommandEventLogger records command lifecycle events as structured zap entries.
type structuredCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandMessageFormatter
}

func newStructuredCommandEventLogger(logger *zap.Logger) structuredCommandEventLogger {
	return structuredCommandEventLogger{logger: logger, formatter: CommandMessageFormatter{}}
}

func (eventLogger structuredCommandEventLogger) CommandStarted(command ShellCommand) {
	eventLogger.logger.Debug(
		eventLogger.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandConstant, eventLogger.formatter.formatCommandLabel(command)),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
}

func (eventLogger structuredCommandEventLogger) CommandCompleted(command ShellCommand, result ExecutionResult) {
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(
			eventLogger.formatter.BuildSuccessMessage(command),
			zap.String(logFieldCommandConstant, eventLogger.formatter.formatCommandLabel(command)),
			zap.Int(logFieldExitCodeConstant, result.ExitCode),
		)
		return
	}
	eventLogger.logger.Warn(
		eventLogger.formatter.BuildFailureMessage(command, result),
		zap.String(logFieldCommandConstant, eventLogger.formatter.formatCommandLabel(command)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, command.Details.mask(result.StandardError)),
	)
}

func (eventLogger structuredCommandEventLogger) CommandExecutionFailed(command ShellCommand, failure error) {
	eventLogger.logger.Error(
		eventLogger.formatter.BuildExecutionFailureMessage(command, failure),
		zap.String(logFieldCommandConstant, eventLogger.formatter.formatCommandLabel(command)),
	)
}
