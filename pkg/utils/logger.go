package utils

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LogLevel represents the verbosity level of logging
type LogLevel int

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// String returns a string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarningLevel:
		return "WARNING"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case ErrorLevel:
		return zerolog.ErrorLevel
	case WarningLevel:
		return zerolog.WarnLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case DebugLevel:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Logger is a leveled logger writing through zerolog
type Logger struct {
	Level  LogLevel
	Prefix string
	zl     zerolog.Logger
}

// NewLogger creates a new console logger with the specified verbosity level
func NewLogger(level LogLevel) *Logger {
	return NewWriterLogger(level, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.000"})
}

// NewFileLogger creates a new logger that writes JSON lines to a file
func NewFileLogger(level LogLevel, filename string) (*Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return NewWriterLogger(level, file), nil
}

// NewWriterLogger creates a new logger that writes JSON lines to w
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		Level: level,
		zl:    zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{Level: ErrorLevel, zl: zerolog.Nop()}
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.zl = l.zl.Output(w)
}

// SetPrefix sets a component name attached to all log messages
func (l *Logger) SetPrefix(prefix string) {
	l.Prefix = prefix
}

// With returns a child logger carrying an extra field on every message
func (l *Logger) With(key string, value interface{}) *Logger {
	child := *l
	child.zl = l.zl.With().Interface(key, value).Logger()
	return &child
}

// Zerolog exposes the underlying zerolog logger
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

// log logs a message at the specified level
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level > l.Level {
		return
	}
	event := l.zl.WithLevel(level.zerolog())
	if l.Prefix != "" {
		event = event.Str("component", l.Prefix)
	}
	event.Msgf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ErrorLevel, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(WarningLevel, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(InfoLevel, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DebugLevel, format, args...)
}

// Trace logs a trace message (highest verbosity)
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(TraceLevel, format, args...)
}

// Circuit logs information about circuit construction
func (l *Logger) Circuit(format string, args ...interface{}) {
	l.log(DebugLevel, "CIRCUIT: "+format, args...)
}

// Parse logs per-line parsing details
func (l *Logger) Parse(format string, args ...interface{}) {
	l.log(TraceLevel, "PARSE: "+format, args...)
}

// DefaultLogger is the default logger instance
var DefaultLogger = NewLogger(InfoLevel)

// SetDefaultLogLevel sets the log level of the default logger
func SetDefaultLogLevel(level LogLevel) {
	DefaultLogger.Level = level
	DefaultLogger.zl = DefaultLogger.zl.Level(level.zerolog())
}
