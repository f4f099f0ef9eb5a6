// Package logger provides structured logging with automatic secret redaction.
//
// This package wraps Go's standard log/slog with convenience functions for:
//   - Backend API call logging (requests, responses, errors)
//   - Job lifecycle logging (submission, progress, terminal states)
//   - Automatic API key and bearer token redaction
//   - Contextual logging with request tracing
//   - Level-based verbosity control
//
// All exported functions use the global DefaultLogger which can be configured
// for different output formats and log levels.
package logger

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

var (
	// DefaultLogger is the global structured logger instance.
	// It is safe for concurrent use and initialized with slog.LevelInfo by default.
	DefaultLogger *slog.Logger
)

func init() {
	// Check LOG_LEVEL environment variable
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		switch strings.ToLower(envLevel) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	// Initialize with text handler writing to stderr
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	DefaultLogger = slog.New(handler)
}

// SetLevel changes the logging level for all subsequent log operations.
// This is safe for concurrent use as it replaces the entire logger instance.
func SetLevel(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	DefaultLogger = slog.New(handler)
}

// SetLevelName sets the logging level from its string name (debug, info,
// warn, error). Unknown names fall back to info.
func SetLevelName(name string) {
	level := slog.LevelInfo
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	SetLevel(level)
}

// SetVerbose enables debug-level logging when verbose is true, otherwise sets info-level.
// This is a convenience wrapper around SetLevel for command-line verbose flags.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

// Info logs an informational message with structured key-value attributes.
// Args should be provided in key-value pairs: key1, value1, key2, value2, ...
func Info(msg string, args ...any) {
	DefaultLogger.Info(msg, args...)
}

// InfoContext logs an informational message with context and structured attributes.
// The context can be used for request tracing and cancellation.
func InfoContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.InfoContext(ctx, msg, args...)
}

// Debug logs a debug-level message with structured attributes.
// Debug messages are only output when the log level is set to LevelDebug or lower.
func Debug(msg string, args ...any) {
	DefaultLogger.Debug(msg, args...)
}

// DebugContext logs a debug message with context and structured attributes.
func DebugContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.DebugContext(ctx, msg, args...)
}

// Warn logs a warning message with structured attributes.
// Use for recoverable errors or unexpected but non-critical situations.
func Warn(msg string, args ...any) {
	DefaultLogger.Warn(msg, args...)
}

// WarnContext logs a warning message with context and structured attributes.
func WarnContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.WarnContext(ctx, msg, args...)
}

// Error logs an error message with structured attributes.
// Use for errors that affect operation but don't cause complete failure.
func Error(msg string, args ...any) {
	DefaultLogger.Error(msg, args...)
}

// ErrorContext logs an error message with context and structured attributes.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.ErrorContext(ctx, msg, args...)
}

// JobSubmitted logs a job creation with structured fields for observability.
// Additional attributes can be passed as key-value pairs after the required parameters.
func JobSubmitted(jobID, name string, stages, inputs int, attrs ...any) {
	allAttrs := make([]any, 0, 8+len(attrs))
	allAttrs = append(allAttrs,
		"job_id", jobID,
		"name", name,
		"stages", stages,
		"inputs", inputs,
	)
	allAttrs = append(allAttrs, attrs...)
	Info("job submitted", allAttrs...)
}

// JobTerminal logs a job reaching a terminal state.
func JobTerminal(jobID, status string, attrs ...any) {
	allAttrs := make([]any, 0, 4+len(attrs))
	allAttrs = append(allAttrs, "job_id", jobID, "status", status)
	allAttrs = append(allAttrs, attrs...)
	Info("job finished", allAttrs...)
}

// StreamFallback logs a progress-stream failure that triggered polling fallback.
func StreamFallback(jobID string, err error, attrs ...any) {
	allAttrs := make([]any, 0, 4+len(attrs))
	allAttrs = append(allAttrs, "job_id", jobID, "error", err)
	allAttrs = append(allAttrs, attrs...)
	Warn("progress stream failed, falling back to polling", allAttrs...)
}

var (
	// secretPatterns contains compiled regular expressions for detecting sensitive data.
	// Patterns match common API key formats carried in backend settings payloads.
	secretPatterns = []*regexp.Regexp{
		regexp.MustCompile(`nvapi-[a-zA-Z0-9_-]{32,}`),  // inference gateway keys
		regexp.MustCompile(`sk-[a-zA-Z0-9]{32,}`),       // OpenAI-style keys
		regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._~-]+`), // Bearer tokens
	}
)

// RedactSensitiveData removes API keys and other sensitive information from strings.
// It replaces matched patterns with a redacted form that preserves the first few
// characters for debugging while hiding the sensitive portion.
//
// This function is safe for concurrent use as it only reads from the compiled patterns.
func RedactSensitiveData(input string) string {
	result := input

	for _, pattern := range secretPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if strings.HasPrefix(match, "Bearer ") {
				return "Bearer [REDACTED]"
			}
			// Show first 4 characters for debugging context
			if len(match) > 8 {
				return match[:4] + "...[REDACTED]"
			}
			return "[REDACTED]"
		})
	}

	return result
}

// APIRequest logs a backend HTTP request at debug level with automatic redaction.
// This function is a no-op when debug logging is disabled for performance.
func APIRequest(method, url string, attrs ...any) {
	if !DefaultLogger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	allAttrs := make([]any, 0, 4+len(attrs))
	allAttrs = append(allAttrs,
		"method", method,
		"url", RedactSensitiveData(url),
	)
	allAttrs = append(allAttrs, attrs...)
	Debug("backend request", allAttrs...)
}

// APIResponse logs a backend HTTP response at debug level.
// Errors are logged at error level and take precedence over the status code.
func APIResponse(method, url string, statusCode int, err error) {
	if err != nil {
		Error("backend request failed",
			"method", method,
			"url", RedactSensitiveData(url),
			"error", err.Error(),
		)
		return
	}

	if !DefaultLogger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	Debug("backend response",
		"method", method,
		"url", RedactSensitiveData(url),
		"status_code", statusCode,
	)
}
