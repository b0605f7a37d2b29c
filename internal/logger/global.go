package logger

import (
	"os"
	"strings"
)

var globalLogger *Logger

func init() {
	globalLogger = NewDefault()
	configureFromEnv()
}

// configureFromEnv configures the global logger from LOG_LEVEL and LOG_FORMAT
func configureFromEnv() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure applies textual level and format settings to the global logger.
// Unknown or empty values leave the current setting untouched.
func Configure(level, format string) {
	if level != "" {
		if lvl, ok := ParseLevel(level); ok {
			globalLogger.SetLevel(lvl)
		}
	}
	if format != "" {
		if f, ok := ParseFormat(format); ok {
			globalLogger.SetFormat(f)
		}
	}
}

// ParseLevel parses a log level string
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat parses a log format string
func ParseFormat(format string) (LogFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	default:
		return TextFormat, false
	}
}

// Global returns the global logger instance
func Global() *Logger {
	return globalLogger
}

// SetGlobal replaces the global logger instance
func SetGlobal(l *Logger) {
	globalLogger = l
}

// Component returns a logger derived from the global one for the named component
func Component(name string) *Logger {
	return globalLogger.WithComponent(name)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	globalLogger.Info(message, fields...)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	globalLogger.Warn(message, fields...)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	globalLogger.Error(message, err, fields...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	globalLogger.Fatal(message, err, fields...)
}
