// Package services defines shared utilities consumed by the analysis pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request identifiers and the video URL under
//     analysis so log lines can be correlated across components.
//   - Structured error markers plus the Wrap helper that let callers decide
//     whether a failure is fatal or should degrade into a report warning.
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across the pipeline.
package services
