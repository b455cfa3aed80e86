package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"vidsentiment/internal/config"
	"vidsentiment/internal/sentiment"
	"vidsentiment/internal/transcriptcache"
	"vidsentiment/internal/transcription"
)

const checkTimeout = 10 * time.Second

// CheckOpenAI verifies that the transcription API is reachable and the key
// is valid. It makes a single attempt.
func CheckOpenAI(ctx context.Context, apiKey, baseURL string) Result {
	const name = "OpenAI transcription"

	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "API key missing"}
	}
	client, err := transcription.NewOpenAI(transcription.OpenAIConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Timeout: checkTimeout,
	})
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckVietnameseEndpoint sends one probe sentence to the remote classifier
// and expects a recognised label back.
func CheckVietnameseEndpoint(ctx context.Context, endpoint string) Result {
	const name = "Vietnamese classifier"

	if strings.TrimSpace(endpoint) == "" {
		return Result{Name: name, Detail: "missing endpoint"}
	}
	backend := sentiment.NewHTTPBackend(endpoint, checkTimeout, nil, sentiment.WithRetry(1, 0))

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	label, err := backend.Classify(checkCtx, "Phim này rất hay")
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	if _, err := sentiment.ParseLabel(label); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unrecognised label %q", label)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckCache opens and closes the configured transcript cache.
func CheckCache(ctx context.Context, cfg *config.Config) Result {
	name := "Transcript cache (" + cfg.Cache.Backend + ")"

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	cache, err := transcriptcache.Open(checkCtx, cfg, nil)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	if err := cache.Close(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("close failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: "Ready"}
}

// summarizeError produces a human-readable summary for a failed check.
func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (service unreachable)"
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "auth failed (invalid api key)"
		}
	}
	return err.Error()
}
