package preflight

import (
	"context"

	"vidsentiment/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable service checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Transcription.Backend == config.TranscriptionBackendOpenAI {
		results = append(results, CheckOpenAI(ctx, cfg.Transcription.OpenAIAPIKey, cfg.Transcription.OpenAIBaseURL))
	}

	if cfg.Sentiment.VietnameseBackend == config.VietnameseBackendHTTP {
		results = append(results, CheckVietnameseEndpoint(ctx, cfg.Sentiment.VietnameseEndpoint))
	}

	if cfg.Cache.Backend != config.CacheBackendNone {
		results = append(results, CheckCache(ctx, cfg))
	}

	return results
}
