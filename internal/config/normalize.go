package config

import (
	"fmt"
	"strings"

	"vidsentiment/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServer()
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeTranscription()
	if err := c.normalizeSentiment(); err != nil {
		return err
	}
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	origins := make([]string, 0, len(c.Server.AllowedOrigins))
	for _, origin := range c.Server.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.Server.AllowedOrigins = origins
}

func (c *Config) normalizeTools() error {
	if value, ok := lookupEnv("VIDSENTIMENT_FFMPEG"); ok {
		c.Tools.FFmpegPath = value
	}
	for _, field := range []*string{&c.Tools.FFmpegPath, &c.Tools.YTDLPPath, &c.Tools.UVXPath} {
		value := strings.TrimSpace(*field)
		// Bare command names stay unexpanded so PATH lookup still applies.
		if value != "" && (strings.ContainsRune(value, '/') || strings.HasPrefix(value, "~")) {
			expanded, err := expandPath(value)
			if err != nil {
				return fmt.Errorf("tools: %w", err)
			}
			value = expanded
		}
		*field = value
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	if value, ok := lookupEnv("VIDSENTIMENT_TRANSCRIPTION_BACKEND"); ok {
		c.Transcription.Backend = value
	}
	c.Transcription.Backend = strings.ToLower(strings.TrimSpace(c.Transcription.Backend))
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = defaultTranscriptionBackend
	}
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		switch c.Transcription.Backend {
		case TranscriptionBackendOpenAI:
			c.Transcription.Model = defaultOpenAIModel
		case TranscriptionBackendWhisperX:
			c.Transcription.Model = defaultWhisperXModel
		}
	}
	c.Transcription.Language = language.Normalize(c.Transcription.Language)
	if value, ok := lookupEnv("OPENAI_API_KEY"); ok {
		c.Transcription.OpenAIAPIKey = value
	}
	c.Transcription.OpenAIAPIKey = strings.TrimSpace(c.Transcription.OpenAIAPIKey)
	c.Transcription.OpenAIBaseURL = strings.TrimRight(strings.TrimSpace(c.Transcription.OpenAIBaseURL), "/")
}

func (c *Config) normalizeSentiment() error {
	c.Sentiment.VietnameseBackend = strings.ToLower(strings.TrimSpace(c.Sentiment.VietnameseBackend))
	if c.Sentiment.VietnameseBackend == "" {
		c.Sentiment.VietnameseBackend = defaultVietnameseBackend
	}
	if value, ok := lookupEnv("VIDSENTIMENT_VI_ENDPOINT"); ok {
		c.Sentiment.VietnameseEndpoint = value
	}
	c.Sentiment.VietnameseEndpoint = strings.TrimSpace(c.Sentiment.VietnameseEndpoint)
	if path := strings.TrimSpace(c.Sentiment.VietnameseModelPath); path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return fmt.Errorf("sentiment.vietnamese_model_path: %w", err)
		}
		c.Sentiment.VietnameseModelPath = expanded
	}
	return nil
}

func (c *Config) normalizeCache() {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	c.Cache.ValkeyAddress = strings.TrimSpace(c.Cache.ValkeyAddress)
	if c.Cache.ValkeyAddress == "" {
		c.Cache.ValkeyAddress = defaultValkeyAddress
	}
	if value, ok := lookupEnv("VALKEY_PASSWORD"); ok {
		c.Cache.ValkeyPassword = value
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
