// Package logs reads the JSON log file written under paths.log_dir.
//
// It backs `vidsentiment logs`: Last returns the most recent lines and
// Follow streams appended lines until the context is cancelled. Both accept
// a Filter so a single analysis request can be isolated by its request_id.
package logs
