package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidsentiment/internal/config"
	"vidsentiment/internal/report"
	"vidsentiment/internal/services"
)

type recordedCall struct {
	url             string
	contentAnalysis bool
	requestID       string
}

func newTestServer(t *testing.T, opts Options, fn AnalyzeFunc) (*Server, *[]recordedCall) {
	t.Helper()
	calls := &[]recordedCall{}
	if fn == nil {
		fn = func(ctx context.Context, url string, contentAnalysis bool) (*report.Report, error) {
			rid, _ := services.RequestIDFromContext(ctx)
			*calls = append(*calls, recordedCall{url: url, contentAnalysis: contentAnalysis, requestID: rid})
			return &report.Report{
				Video:        report.Video{URL: url},
				Comments:     []report.Comment{},
				KeywordCloud: []report.KeywordCloudItem{},
				Conclusion:   "ok",
				Warnings:     []string{},
			}, nil
		}
	}
	srv, err := New(opts, fn, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, calls
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return payload.Detail
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, Options{}, nil)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAnalyzeDefaultsContentAnalysisToTrue(t *testing.T) {
	srv, calls := newTestServer(t, Options{}, nil)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", `{"url":"https://youtu.be/x"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(*calls) != 1 || !(*calls)[0].contentAnalysis {
		t.Fatalf("expected content analysis to default on, calls=%+v", *calls)
	}
	var r report.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if r.Video.URL != "https://youtu.be/x" {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestAnalyzeHonoursContentAnalysisFalse(t *testing.T) {
	srv, calls := newTestServer(t, Options{}, nil)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", `{"url":"https://youtu.be/x","content_analysis":false}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if (*calls)[0].contentAnalysis {
		t.Fatal("expected content analysis disabled")
	}
}

func TestAnalyzeRequestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"url":`},
		{"missing url", `{}`},
		{"blank url", `{"url":"   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newTestServer(t, Options{}, nil)
			rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", tt.body, nil)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			if decodeDetail(t, rec) == "" {
				t.Fatal("expected detail message")
			}
			if len(*calls) != 0 {
				t.Fatal("analysis should not run for invalid requests")
			}
		})
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantPrefix string
	}{
		{
			name:       "validation",
			err:        services.Wrap(services.ErrValidation, "videosource", "validate url", "url must be an absolute http(s) URL", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantPrefix: "validation error",
		},
		{
			name:       "fatal",
			err:        errors.New("source exploded"),
			wantStatus: http.StatusInternalServerError,
			wantPrefix: "Internal server error: source exploded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, Options{}, func(context.Context, string, bool) (*report.Report, error) {
				return nil, tt.err
			})
			rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", `{"url":"https://youtu.be/x"}`, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if detail := decodeDetail(t, rec); !strings.HasPrefix(detail, tt.wantPrefix) {
				t.Fatalf("detail %q does not start with %q", detail, tt.wantPrefix)
			}
		})
	}
}

func TestAnalyzeRejectsWrongMethod(t *testing.T) {
	srv, _ := newTestServer(t, Options{}, nil)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/analyze", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv, calls := newTestServer(t, Options{}, nil)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", `{"url":"https://youtu.be/x"}`,
		map[string]string{RequestIDHeader: "caller-123"})
	if got := rec.Header().Get(RequestIDHeader); got != "caller-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
	if (*calls)[0].requestID != "caller-123" {
		t.Fatalf("expected request id in context, got %q", (*calls)[0].requestID)
	}

	rec = doRequest(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestCORS(t *testing.T) {
	t.Run("allow all by default", func(t *testing.T) {
		srv, _ := newTestServer(t, Options{}, nil)
		rec := doRequest(t, srv.Handler(), http.MethodOptions, "/analyze", "", map[string]string{"Origin": "https://app.example"})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 preflight, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("unexpected allow origin %q", rec.Header().Get("Access-Control-Allow-Origin"))
		}
	})
	t.Run("restricted origins", func(t *testing.T) {
		srv, _ := newTestServer(t, Options{AllowedOrigins: []string{"https://app.example"}}, nil)
		rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", "", map[string]string{"Origin": "https://app.example"})
		if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
			t.Fatalf("expected origin echoed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
		}
		rec = doRequest(t, srv.Handler(), http.MethodGet, "/health", "", map[string]string{"Origin": "https://evil.example"})
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Fatal("unexpected allow origin for unlisted origin")
		}
	})
}

func TestRateLimit(t *testing.T) {
	srv, calls := newTestServer(t, Options{RequestsPerMinute: 1, Burst: 2}, nil)
	for i := 0; i < 2; i++ {
		rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", `{"url":"https://youtu.be/x"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/analyze", `{"url":"https://youtu.be/x"}`, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if len(*calls) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(*calls))
	}

	health := doRequest(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	if health.Code != http.StatusOK {
		t.Fatalf("health should bypass the limiter, got %d", health.Code)
	}
}

func TestStartHoldsLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), LockFileName)
	opts := Options{Bind: "127.0.0.1:0", LockPath: lockPath}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, _ := newTestServer(t, opts, nil)
	if err := first.Start(ctx); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer first.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", first.Addr()))
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from live server, got %d", resp.StatusCode)
	}

	second, _ := newTestServer(t, opts, nil)
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("expected second server to fail while lock is held")
	}

	first.Stop()
	third, _ := newTestServer(t, opts, nil)
	if err := third.Start(ctx); err != nil {
		t.Fatalf("expected lock to be released after Stop: %v", err)
	}
	third.Stop()
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, Options{Bind: "127.0.0.1:0"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = "/var/lib/vidsentiment"
	opts := OptionsFromConfig(&cfg)
	if opts.LockPath != "/var/lib/vidsentiment/vidsentiment.lock" {
		t.Fatalf("unexpected lock path %q", opts.LockPath)
	}
	if opts.Bind != cfg.Server.Bind || opts.RequestsPerMinute != cfg.Server.RequestsPerMinute {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestNewRequiresAnalyzeFunc(t *testing.T) {
	if _, err := New(Options{}, nil, nil); err == nil {
		t.Fatal("expected error without analyze func")
	}
}
