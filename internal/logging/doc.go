// Package logging assembles structured slog loggers used across vidsentiment.
//
// It owns the console (tint) and JSON handlers, tees output into an optional
// log file, and exposes context-aware helpers so request handlers and the
// analysis pipeline automatically tag log lines with request IDs and video
// URLs. A no-op logger is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
