package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidsentiment/internal/analysis"
	"vidsentiment/internal/report"
	"vidsentiment/internal/transcription"
)

const testVideoURL = "https://www.youtube.com/watch?v=abc"

func TestAnalyzeCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{"analyze", "--quiet", testVideoURL}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v\nstderr: %s", err, stderr)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, out)
	}
	if r.Video.Title != "Demo" || r.Video.Uploader != "Channel" {
		t.Fatalf("unexpected video metadata %+v", r.Video)
	}
	if r.Video.ContentSummary == nil || *r.Video.ContentSummary != transcription.PlaceholderTranscript {
		t.Fatalf("expected placeholder summary, got %v", r.Video.ContentSummary)
	}
	if len(r.Comments) != 2 || r.Comments[0].AnalyzedSentiment != "Positive" || r.Comments[1].AnalyzedSentiment != "Positive" {
		t.Fatalf("unexpected comments %+v", r.Comments)
	}
	if r.SentimentStatistics.Positive != 1 {
		t.Fatalf("unexpected statistics %+v", r.SentimentStatistics)
	}
	requireContains(t, r.Conclusion, "comments are generally positive")

	entries, err := os.ReadDir(env.cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected request artifacts removed, found %d entries", len(entries))
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.LogDir, "vidsentiment.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestAnalyzeCommandBanners(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"analyze", "--no-content-analysis", testVideoURL}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Starting analysis for URL: "+testVideoURL)
	requireContains(t, out, "Content analysis enabled: false")
	requireContains(t, out, "--- Analysis Report ---")
	requireContains(t, out, analysis.WarningContentSkipped)
	if !strings.HasSuffix(strings.TrimSpace(out), "Analysis complete.") {
		t.Fatalf("expected completion banner at the end, got %q", out)
	}
}

func TestAnalyzeCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"analyze", "-q", "--format", "table", "--no-content-analysis", testVideoURL}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"Video", "Comment sentiment", "100.0%", "Keywords", "movie", "Vietnamese", "Conclusion:", "Warnings:"} {
		requireContains(t, out, want)
	}
}

func TestAnalyzeCommandRejectsInvalidInput(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad url", []string{"analyze", "-q", "not-a-url"}, "validation error"},
		{"bad format", []string{"analyze", "--format", "xml", testVideoURL}, "unsupported --format"},
		{"missing url", []string{"analyze"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args, env.configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			requireContains(t, err.Error(), tt.want)
		})
	}
}

func TestAnalyzeCommandFetchFailureIsWarning(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Tools.YTDLPPath = filepath.Join(env.baseDir, "missing-yt-dlp")
	writeConfigFile(t, env)

	out, _, err := runCLI(t, []string{"analyze", "-q", "--no-content-analysis", testVideoURL}, env.configPath)
	if err != nil {
		t.Fatalf("analyze should degrade, got %v", err)
	}
	var r report.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !r.HasWarning(analysis.WarningFetchFailed) || !r.HasWarning(analysis.WarningNoComments) {
		t.Fatalf("unexpected warnings %v", r.Warnings)
	}
}
