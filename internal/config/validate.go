package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateSentiment(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.RequestsPerMinute <= 0 {
		return errors.New("server.requests_per_minute must be positive")
	}
	if c.Server.Burst <= 0 {
		return errors.New("server.burst must be positive")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.MaxComments < 0 {
		return errors.New("source.max_comments must be zero or positive")
	}
	if c.Source.TimeoutSeconds <= 0 {
		return errors.New("source.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case TranscriptionBackendWhisperX, TranscriptionBackendNone:
	case TranscriptionBackendOpenAI:
		if c.Transcription.OpenAIAPIKey == "" {
			return errors.New("transcription.openai_api_key (or OPENAI_API_KEY) is required when transcription.backend is \"openai\"")
		}
		if c.Transcription.OpenAIBaseURL != "" {
			if err := validateURL("transcription.openai_base_url", c.Transcription.OpenAIBaseURL); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("transcription.backend must be one of whisperx, openai, none (got %q)", c.Transcription.Backend)
	}
	if c.Transcription.TimeoutSeconds <= 0 {
		return errors.New("transcription.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSentiment() error {
	if c.Sentiment.PositiveThreshold <= c.Sentiment.NegativeThreshold {
		return fmt.Errorf("sentiment.positive_threshold (%v) must be greater than sentiment.negative_threshold (%v)", c.Sentiment.PositiveThreshold, c.Sentiment.NegativeThreshold)
	}
	switch c.Sentiment.VietnameseBackend {
	case VietnameseBackendLexicon:
	case VietnameseBackendHTTP:
		if c.Sentiment.VietnameseEndpoint == "" {
			return errors.New("sentiment.vietnamese_endpoint is required when sentiment.vietnamese_backend is \"http\"")
		}
		if err := validateURL("sentiment.vietnamese_endpoint", c.Sentiment.VietnameseEndpoint); err != nil {
			return err
		}
	case VietnameseBackendHugot:
		if c.Sentiment.VietnameseModelPath == "" {
			return errors.New("sentiment.vietnamese_model_path is required when sentiment.vietnamese_backend is \"hugot\"")
		}
	default:
		return fmt.Errorf("sentiment.vietnamese_backend must be one of lexicon, http, hugot (got %q)", c.Sentiment.VietnameseBackend)
	}
	if c.Sentiment.TimeoutSeconds <= 0 {
		return errors.New("sentiment.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendSQLite, CacheBackendNone:
	case CacheBackendValkey:
		if c.Cache.ValkeyAddress == "" {
			return errors.New("cache.valkey_address must be set when cache.backend is \"valkey\"")
		}
	default:
		return fmt.Errorf("cache.backend must be one of sqlite, valkey, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTLHours < 0 {
		return errors.New("cache.ttl_hours must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\" (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}

func validateURL(field, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL (got %q)", field, raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https (got %q)", field, raw)
	}
	return nil
}
