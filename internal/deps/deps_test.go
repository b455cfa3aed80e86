package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidsentiment/internal/config"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %q", results[2].Detail)
	}
}

func TestResolveFFmpegPrefersConfiguredPath(t *testing.T) {
	tmp := t.TempDir()
	configured := filepath.Join(tmp, "custom", executableName("ffmpeg"))
	writeStub(t, configured)
	t.Setenv("PATH", "")

	status := ResolveFFmpeg(configured)
	if !status.Available {
		t.Fatalf("expected configured ffmpeg to be available, got detail %q", status.Detail)
	}
	if status.Command != configured {
		t.Fatalf("expected command %q, got %q", configured, status.Command)
	}
}

func TestResolveFFmpegUsesProjectLocalBinary(t *testing.T) {
	tmp := t.TempDir()
	local := filepath.Join(tmp, LocalFFmpegDir, executableName("ffmpeg"))
	writeStub(t, local)
	chdir(t, tmp)
	t.Setenv("PATH", "")

	status := ResolveFFmpeg("")
	if !status.Available {
		t.Fatalf("expected local ffmpeg to be available, got detail %q", status.Detail)
	}
	if filepath.Base(status.Command) != executableName("ffmpeg") || !strings.Contains(status.Command, LocalFFmpegDir) {
		t.Fatalf("unexpected command %q", status.Command)
	}
}

func TestResolveFFmpegPathFallback(t *testing.T) {
	binDir := t.TempDir()
	ffmpegPath := filepath.Join(binDir, executableName("ffmpeg"))
	writeStub(t, ffmpegPath)
	chdir(t, t.TempDir())
	t.Setenv("PATH", binDir)

	status := ResolveFFmpeg("missing-ffmpeg-build")
	if !status.Available {
		t.Fatalf("expected ffmpeg fallback to be available, got detail %q", status.Detail)
	}
	if status.Command != ffmpegPath {
		t.Fatalf("expected ffmpeg command %q, got %q", ffmpegPath, status.Command)
	}
}

func TestResolveFFmpegNotFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PATH", "")

	status := ResolveFFmpeg("")
	if status.Available {
		t.Fatal("expected ffmpeg resolution to fail")
	}
	if !strings.Contains(status.Detail, LocalFFmpegDir) || !strings.Contains(status.Detail, "PATH") {
		t.Fatalf("expected detail to list searched locations, got %q", status.Detail)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if status := CheckDirectoryAccess("Work", dir); !status.Available {
		t.Fatalf("expected temp dir to be accessible, got %q", status.Detail)
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if status := CheckDirectoryAccess("File", file); status.Available || status.Detail != "is not a directory" {
		t.Fatalf("expected non-directory failure, got %#v", status)
	}
	if status := CheckDirectoryAccess("Missing", filepath.Join(dir, "nope")); status.Available {
		t.Fatal("expected missing directory to fail")
	}
}

func TestCheckSystemMarksUVXOptionalForOpenAI(t *testing.T) {
	t.Setenv("PATH", "")
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Transcription.Backend = config.TranscriptionBackendOpenAI

	results := CheckSystem(&cfg)
	var sawUVX bool
	for _, status := range results {
		if status.Name == "uvx" {
			sawUVX = true
			if !status.Optional {
				t.Fatal("expected uvx to be optional when openai transcription is configured")
			}
		}
		if status.Name == "Work directory" && !status.Available {
			t.Fatalf("expected work directory to be accessible: %q", status.Detail)
		}
	}
	if !sawUVX {
		t.Fatal("expected uvx status in results")
	}
}
