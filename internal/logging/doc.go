// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute keys used across the codebase so log output stays
// consistent and greppable, plus small helpers for common attributes (Err,
// Operation, Identity) and for masking secrets before they reach a log line.
package logging
