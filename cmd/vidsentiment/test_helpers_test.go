package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"vidsentiment/internal/config"
	"vidsentiment/internal/testsupport"
)

const ytdlpStub = `for arg in "$@"; do
  if [ "$arg" = "--dump-single-json" ]; then
    cat <<'JSON'
{"id":"abc","title":"Demo","uploader":"Channel","view_count":10,"comments":[{"id":"c1","text":"This is a fantastic movie! I loved it."},{"id":"c2","text":"Phim này rất hay! Tôi rất thích."}]}
JSON
    exit 0
  fi
done
dest=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "-P" ]; then dest="$arg"; fi
  prev="$arg"
done
printf 'media' > "$dest/video.mp4"
echo "$dest/video.mp4"
`

const ffmpegStub = `for last in "$@"; do :; done
printf 'RIFF' > "$last"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{
		testsupport.WithStubScript("yt-dlp", ytdlpStub),
		testsupport.WithStubScript("ffmpeg", ffmpegStub),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("VIDSENTIMENT_FFMPEG", "")
	t.Setenv("VIDSENTIMENT_TRANSCRIPTION_BACKEND", "")

	configPath := filepath.Join(base, "config.toml")
	testsupport.WriteConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
