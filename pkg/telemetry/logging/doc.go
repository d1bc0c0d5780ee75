// Package logging configures the process-wide structured logger.
//
// Logs go through log/slog with either a JSON or a text handler, selected
// by configuration. Setup installs the configured logger as the slog
// default; every component then derives its own logger with a "component"
// attribute rather than constructing handlers of its own.
package logging
