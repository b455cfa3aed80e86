package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vidsentiment/internal/logging"
	"vidsentiment/internal/services"
)

const (
	httpMaxRetries     = 3
	httpInitialBackoff = 500 * time.Millisecond
)

// HTTPBackend posts text to a remote classifier that answers with
// {"label": "...", "score": 0.97}.
type HTTPBackend struct {
	endpoint       string
	client         *http.Client
	logger         *slog.Logger
	maxRetries     int
	initialBackoff time.Duration
}

// HTTPOption customises an HTTPBackend.
type HTTPOption func(*HTTPBackend)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(b *HTTPBackend) {
		if client != nil {
			b.client = client
		}
	}
}

// WithRetry overrides the attempt count and initial backoff.
func WithRetry(attempts int, backoff time.Duration) HTTPOption {
	return func(b *HTTPBackend) {
		if attempts > 0 {
			b.maxRetries = attempts
		}
		if backoff >= 0 {
			b.initialBackoff = backoff
		}
	}
}

// NewHTTPBackend builds a remote Vietnamese classifier client.
func NewHTTPBackend(endpoint string, timeout time.Duration, logger *slog.Logger, opts ...HTTPOption) *HTTPBackend {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	b := &HTTPBackend{
		endpoint:       strings.TrimSpace(endpoint),
		client:         &http.Client{Timeout: timeout},
		logger:         logging.NewComponentLogger(logger, "sentiment-http"),
		maxRetries:     httpMaxRetries,
		initialBackoff: httpInitialBackoff,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *HTTPBackend) Name() string { return "http" }

type classifyRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify sends text to the endpoint, retrying on transport errors and 5xx responses.
func (b *HTTPBackend) Classify(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(classifyRequest{Text: text, Language: LanguageVietnamese})
	if err != nil {
		return "", fmt.Errorf("marshal classify request: %w", err)
	}

	resp, err := b.doWithRetry(ctx, body)
	if err != nil {
		return "", services.Wrap(services.ErrUnavailable, "sentiment", "classify vietnamese", "remote classifier unreachable", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read classify response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrExternalTool, "sentiment", "classify vietnamese",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), errors.New(strings.TrimSpace(string(payload))))
	}

	var decoded classifyResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("decode classify response: %w", err)
	}
	if strings.TrimSpace(decoded.Label) == "" {
		return "", errors.New("classify response missing label")
	}
	return decoded.Label, nil
}

func (b *HTTPBackend) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	backoff := b.initialBackoff
	var lastErr error
	for attempt := 0; attempt < b.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := b.client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
			resp.Body.Close()
		}

		b.logger.Debug("vietnamese classifier request failed, will retry",
			logging.Int("attempt", attempt+1),
			logging.Error(lastErr),
		)

		if attempt == b.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}
