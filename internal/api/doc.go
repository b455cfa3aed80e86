// Package api exposes the analysis pipeline over HTTP.
//
// The server accepts POST /analyze requests, runs one aggregator per request
// against the shared runtime, and returns the report as JSON. GET /health is
// a liveness probe. A single process-wide token bucket limits analysis
// requests, and a flock on <state_dir>/vidsentiment.lock keeps two servers
// from sharing one state directory.
package api
