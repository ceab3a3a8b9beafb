package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyRun       = "run_id"
	KeyIdentity  = "identity"
	KeySource    = "source"
	KeyMeeting   = "meeting"
	KeyAttempt   = "attempt"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithRun returns a logger with the run id attribute set.
func WithRun(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With(slog.String(KeyRun, runID))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Identity returns a slog attribute for the provider identity being queried.
func Identity(id string) slog.Attr {
	return slog.String(KeyIdentity, id)
}

// Source returns a slog attribute for the transcript source name.
func Source(src string) slog.Attr {
	return slog.String(KeySource, src)
}

// Meeting returns a slog attribute for a meeting UUID.
func Meeting(uuid string) slog.Attr {
	return slog.String(KeyMeeting, uuid)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// ParseLevel maps a config-level string to a slog.Level, defaulting to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text handler at the given level as the default logger
// and returns it. Output goes to stderr so command output stays clean.
func Setup(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}
