package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vidsentiment/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY",
		"VALKEY_PASSWORD",
		"VIDSENTIMENT_FFMPEG",
		"VIDSENTIMENT_TRANSCRIPTION_BACKEND",
		"VIDSENTIMENT_VI_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWork := filepath.Join(tempHome, ".local", "share", "vidsentiment", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Server.Bind != "127.0.0.1:8000" {
		t.Fatalf("unexpected server bind: %q", cfg.Server.Bind)
	}
	if cfg.Transcription.Backend != config.TranscriptionBackendWhisperX {
		t.Fatalf("unexpected transcription backend: %q", cfg.Transcription.Backend)
	}
	if cfg.Transcription.Model != "base" {
		t.Fatalf("expected whisperx default model base, got %q", cfg.Transcription.Model)
	}
	if cfg.Sentiment.PositiveThreshold != 0.05 || cfg.Sentiment.NegativeThreshold != -0.05 {
		t.Fatalf("unexpected thresholds: %v / %v", cfg.Sentiment.PositiveThreshold, cfg.Sentiment.NegativeThreshold)
	}
	if cfg.Sentiment.VietnameseBackend != config.VietnameseBackendLexicon {
		t.Fatalf("unexpected vietnamese backend: %q", cfg.Sentiment.VietnameseBackend)
	}
	if cfg.Cache.Backend != config.CacheBackendSQLite {
		t.Fatalf("unexpected cache backend: %q", cfg.Cache.Backend)
	}
	if cfg.Analysis.KeepArtifacts {
		t.Fatal("expected artifacts to be removed by default")
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	payload := struct {
		Paths struct {
			WorkDir  string `toml:"work_dir"`
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Transcription struct {
			Backend      string `toml:"backend"`
			OpenAIAPIKey string `toml:"openai_api_key"`
		} `toml:"transcription"`
		Cache struct {
			Backend string `toml:"backend"`
		} `toml:"cache"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}{}
	payload.Paths.WorkDir = "~/scratch"
	payload.Paths.StateDir = filepath.Join(tempHome, "state")
	payload.Transcription.Backend = " OpenAI "
	payload.Transcription.OpenAIAPIKey = "sk-file"
	payload.Cache.Backend = "none"
	payload.Logging.Format = "JSON"
	payload.Logging.Level = "Debug"

	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.WorkDir != filepath.Join(tempHome, "scratch") {
		t.Fatalf("unexpected work dir: %q", cfg.Paths.WorkDir)
	}
	if cfg.Transcription.Backend != config.TranscriptionBackendOpenAI {
		t.Fatalf("unexpected backend: %q", cfg.Transcription.Backend)
	}
	if cfg.Transcription.Model != "whisper-1" {
		t.Fatalf("expected openai default model, got %q", cfg.Transcription.Model)
	}
	if cfg.Transcription.OpenAIAPIKey != "sk-file" {
		t.Fatalf("unexpected api key: %q", cfg.Transcription.OpenAIAPIKey)
	}
	if cfg.Cache.Backend != config.CacheBackendNone {
		t.Fatalf("unexpected cache backend: %q", cfg.Cache.Backend)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("VIDSENTIMENT_TRANSCRIPTION_BACKEND", "openai")
	t.Setenv("VIDSENTIMENT_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[transcription]\nbackend = \"whisperx\"\nopenai_api_key = \"sk-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Transcription.Backend != config.TranscriptionBackendOpenAI {
		t.Fatalf("expected env backend override, got %q", cfg.Transcription.Backend)
	}
	if cfg.Transcription.OpenAIAPIKey != "sk-env" {
		t.Fatalf("expected env api key, got %q", cfg.Transcription.OpenAIAPIKey)
	}
	if cfg.Tools.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected env ffmpeg path, got %q", cfg.Tools.FFmpegPath)
	}
}

func TestTranscriptionLanguageIsNormalised(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[transcription]\nlanguage = \"Vietnamese\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Transcription.Language != "vi" {
		t.Fatalf("expected language folded to vi, got %q", cfg.Transcription.Language)
	}
}

func TestLoadReadsDotEnvBesideConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[cache]\nbackend = \"valkey\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("VALKEY_PASSWORD=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	// gotenv only fills unset variables, so drop the empty placeholder first.
	os.Unsetenv("VALKEY_PASSWORD")
	t.Cleanup(func() { os.Unsetenv("VALKEY_PASSWORD") })

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Cache.ValkeyPassword != "from-dotenv" {
		t.Fatalf("expected password from .env, got %q", cfg.Cache.ValkeyPassword)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "openai without key",
			mutate: func(c *config.Config) { c.Transcription.Backend = config.TranscriptionBackendOpenAI },
			want:   "openai_api_key",
		},
		{
			name:   "unknown transcription backend",
			mutate: func(c *config.Config) { c.Transcription.Backend = "vosk" },
			want:   "transcription.backend",
		},
		{
			name: "inverted thresholds",
			mutate: func(c *config.Config) {
				c.Sentiment.PositiveThreshold = -0.1
				c.Sentiment.NegativeThreshold = 0.1
			},
			want: "positive_threshold",
		},
		{
			name:   "http backend without endpoint",
			mutate: func(c *config.Config) { c.Sentiment.VietnameseBackend = config.VietnameseBackendHTTP },
			want:   "vietnamese_endpoint",
		},
		{
			name: "relative endpoint",
			mutate: func(c *config.Config) {
				c.Sentiment.VietnameseBackend = config.VietnameseBackendHTTP
				c.Sentiment.VietnameseEndpoint = "classify"
			},
			want: "absolute URL",
		},
		{
			name:   "hugot without model",
			mutate: func(c *config.Config) { c.Sentiment.VietnameseBackend = config.VietnameseBackendHugot },
			want:   "vietnamese_model_path",
		},
		{
			name:   "unknown cache",
			mutate: func(c *config.Config) { c.Cache.Backend = "redis" },
			want:   "cache.backend",
		},
		{
			name:   "zero rate",
			mutate: func(c *config.Config) { c.Server.RequestsPerMinute = 0 },
			want:   "requests_per_minute",
		},
		{
			name:   "bad log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.WorkDir = t.TempDir()
			cfg.Paths.StateDir = t.TempDir()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Source.MaxComments != 100 {
		t.Fatalf("unexpected max comments: %d", cfg.Source.MaxComments)
	}
}

func TestEnsureDirectoriesCreatesPaths(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir, cfg.Paths.StateDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}

func TestToolBinariesFallBackToCommandNames(t *testing.T) {
	cfg := config.Default()
	if cfg.YTDLPBinary() != "yt-dlp" {
		t.Fatalf("unexpected yt-dlp binary: %q", cfg.YTDLPBinary())
	}
	if cfg.UVXBinary() != "uvx" {
		t.Fatalf("unexpected uvx binary: %q", cfg.UVXBinary())
	}
	cfg.Tools.YTDLPPath = "/usr/local/bin/yt-dlp"
	if cfg.YTDLPBinary() != "/usr/local/bin/yt-dlp" {
		t.Fatalf("unexpected configured yt-dlp binary: %q", cfg.YTDLPBinary())
	}
}
