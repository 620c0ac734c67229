package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	consoleTimeLayoutConstant            = "15:04:05"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// ParseLogLevel normalizes a configured level name.
func ParseLogLevel(rawLogLevel string) (LogLevel, error) {
	candidateLevel := LogLevel(strings.ToLower(strings.TrimSpace(rawLogLevel)))
	if _, levelExists := logLevelMapping[candidateLevel]; !levelExists {
		return "", fmt.Errorf(unsupportedLogLevelTemplateConstant, rawLogLevel)
	}
	return candidateLevel, nil
}

// ParseLogFormat normalizes a configured format name.
func ParseLogFormat(rawLogFormat string) (LogFormat, error) {
	candidateFormat := LogFormat(strings.ToLower(strings.TrimSpace(rawLogFormat)))
	switch candidateFormat {
	case LogFormatStructured, LogFormatConsole:
		return candidateFormat, nil
	default:
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, rawLogFormat)
	}
}

// CreateLogger produces a logger writing to standard error.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerForWriter(requestedLogLevel, requestedLogFormat, zapcore.Lock(os.Stderr))
}

// CreateLoggerForWriter produces a logger writing to the supplied sink. The
// structured format emits JSON lines; the console format emits short
// human-readable lines without caller or stack details.
func (factory *LoggerFactory) CreateLoggerForWriter(requestedLogLevel LogLevel, requestedLogFormat LogFormat, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	var encoder zapcore.Encoder
	switch requestedLogFormat {
	case LogFormatStructured:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfiguration)
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayoutConstant)
		encoderConfiguration.CallerKey = zapcore.OmitKey
		encoderConfiguration.StacktraceKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(zapLogLevel))
	return zap.New(core), nil
}
