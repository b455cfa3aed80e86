package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// Server contains HTTP API settings.
type Server struct {
	Bind              string   `toml:"bind"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	AllowedOrigins    []string `toml:"allowed_origins"`
}

// Tools contains locations of external executables.
type Tools struct {
	FFmpegPath string `toml:"ffmpeg_path"`
	YTDLPPath  string `toml:"ytdlp_path"`
	UVXPath    string `toml:"uvx_path"`
}

// Source contains settings for the video/comment fetcher.
type Source struct {
	MaxComments    int `toml:"max_comments"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Transcription contains speech-to-text settings.
type Transcription struct {
	// Backend selects the engine: "whisperx", "openai", or "none".
	Backend        string `toml:"backend"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	CUDAEnabled    bool   `toml:"cuda_enabled"`
	OpenAIAPIKey   string `toml:"openai_api_key"`
	OpenAIBaseURL  string `toml:"openai_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Sentiment contains classifier thresholds and the Vietnamese backend.
type Sentiment struct {
	PositiveThreshold float64 `toml:"positive_threshold"`
	NegativeThreshold float64 `toml:"negative_threshold"`
	// VietnameseBackend selects "lexicon", "http", or "hugot".
	VietnameseBackend   string `toml:"vietnamese_backend"`
	VietnameseEndpoint  string `toml:"vietnamese_endpoint"`
	VietnameseModelPath string `toml:"vietnamese_model_path"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
}

// Cache contains transcript cache settings.
type Cache struct {
	// Backend selects "sqlite", "valkey", or "none".
	Backend        string `toml:"backend"`
	TTLHours       int    `toml:"ttl_hours"`
	ValkeyAddress  string `toml:"valkey_address"`
	ValkeyPassword string `toml:"valkey_password"`
	ValkeyTLS      bool   `toml:"valkey_tls"`
}

// Analysis contains aggregator behaviour toggles.
type Analysis struct {
	KeepArtifacts bool `toml:"keep_artifacts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vidsentiment.
//
// Configuration sections by subsystem:
//   - Paths: scratch, log, and state directories
//   - Server: HTTP bind address, rate limit, CORS origins
//   - Tools: ffmpeg, yt-dlp, and uvx locations
//   - Source: comment limits and fetch timeout
//   - Transcription: speech-to-text backend selection
//   - Sentiment: thresholds and the Vietnamese classifier backend
//   - Cache: transcript cache backend
//   - Analysis: artifact retention
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Server        Server        `toml:"server"`
	Tools         Tools         `toml:"tools"`
	Source        Source        `toml:"source"`
	Transcription Transcription `toml:"transcription"`
	Sentiment     Sentiment     `toml:"sentiment"`
	Cache         Cache         `toml:"cache"`
	Analysis      Analysis      `toml:"analysis"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	LoadEnv(envFileCandidates(resolvedPath)...)

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vidsentiment.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI and server write into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// YTDLPBinary returns the yt-dlp executable to invoke.
func (c *Config) YTDLPBinary() string {
	if bin := strings.TrimSpace(c.Tools.YTDLPPath); bin != "" {
		return bin
	}
	return "yt-dlp"
}

// UVXBinary returns the uvx executable used to launch WhisperX.
func (c *Config) UVXBinary() string {
	if bin := strings.TrimSpace(c.Tools.UVXPath); bin != "" {
		return bin
	}
	return "uvx"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
