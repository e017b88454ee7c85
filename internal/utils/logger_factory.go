package utils

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
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
	logFormatAutoStringConstant          = "auto"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
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

// Exported log format constants. LogFormatAuto picks console output for terminals.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
	LogFormatAuto       LogFormat = LogFormat(logFormatAutoStringConstant)
)

// TerminalDetector reports whether a file descriptor is attached to a terminal.
type TerminalDetector func(fileDescriptor uintptr) bool

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	terminalDetector TerminalDetector
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// NewLoggerFactory constructs a logger factory that detects terminals with go-isatty.
func NewLoggerFactory() *LoggerFactory {
	return NewLoggerFactoryWithTerminalDetector(func(fileDescriptor uintptr) bool {
		return isatty.IsTerminal(fileDescriptor) || isatty.IsCygwinTerminal(fileDescriptor)
	})
}

// NewLoggerFactoryWithTerminalDetector constructs a logger factory with a custom terminal probe.
func NewLoggerFactoryWithTerminalDetector(terminalDetector TerminalDetector) *LoggerFactory {
	return &LoggerFactory{terminalDetector: terminalDetector}
}

// ResolveLogFormat maps LogFormatAuto onto a concrete format.
func (factory *LoggerFactory) ResolveLogFormat(requestedLogFormat LogFormat) LogFormat {
	if requestedLogFormat != LogFormatAuto {
		return requestedLogFormat
	}
	if factory.terminalDetector != nil && factory.terminalDetector(os.Stderr.Fd()) {
		return LogFormatConsole
	}
	return LogFormatStructured
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	resolvedLogFormat := factory.ResolveLogFormat(requestedLogFormat)
	encoding, formatExists := logFormatEncodingMapping[resolvedLogFormat]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = encoding
	if resolvedLogFormat == LogFormatConsole {
		configuration.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		configuration.DisableCaller = true
		configuration.DisableStacktrace = true
	}

	return configuration.Build()
}
