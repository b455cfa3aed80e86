// Package report defines the analysis report returned by the CLI and HTTP API.
package report
