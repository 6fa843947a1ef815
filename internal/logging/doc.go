// Package logging assembles structured slog loggers and formatting helpers used
// across studyflow.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code can tag log
// lines with the chapter and tmux session. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Logs are written to stderr by default; stdout belongs to prompts and
// command output.
package logging
