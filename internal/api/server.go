package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/time/rate"

	"vidsentiment/internal/analysis"
	"vidsentiment/internal/config"
	"vidsentiment/internal/logging"
	"vidsentiment/internal/report"
)

// LockFileName is the server lock created inside the state directory.
const LockFileName = "vidsentiment.lock"

// AnalyzeFunc runs one analysis request.
type AnalyzeFunc func(ctx context.Context, url string, contentAnalysis bool) (*report.Report, error)

// RuntimeAnalyzer adapts a shared runtime into an AnalyzeFunc that builds a
// fresh aggregator for every request.
func RuntimeAnalyzer(rt *analysis.Runtime) AnalyzeFunc {
	return func(ctx context.Context, url string, contentAnalysis bool) (*report.Report, error) {
		return analysis.New(rt).Analyze(ctx, url, contentAnalysis)
	}
}

// Options configures a Server.
type Options struct {
	Bind              string
	RequestsPerMinute int
	Burst             int
	AllowedOrigins    []string
	// LockPath is the flock guarding the state directory. Empty disables locking.
	LockPath string
}

// OptionsFromConfig maps the [server] and [paths] sections.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Bind:              cfg.Server.Bind,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		Burst:             cfg.Server.Burst,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		LockPath:          filepath.Join(cfg.Paths.StateDir, LockFileName),
	}
}

// Server is the HTTP front end.
type Server struct {
	opts    Options
	analyze AnalyzeFunc
	logger  *slog.Logger
	limiter *rate.Limiter
	handler http.Handler

	lock     *flock.Flock
	listener net.Listener
	server   *http.Server
}

// New builds a server. It does not listen until Start.
func New(opts Options, analyze AnalyzeFunc, logger *slog.Logger) (*Server, error) {
	if analyze == nil {
		return nil, errors.New("api: analyze function is required")
	}
	if strings.TrimSpace(opts.Bind) == "" {
		opts.Bind = config.Default().Server.Bind
	}
	s := &Server{
		opts:    opts,
		analyze: analyze,
		logger:  logging.NewComponentLogger(logger, "api-server"),
		limiter: newLimiter(opts.RequestsPerMinute, opts.Burst),
	}
	if opts.LockPath != "" {
		s.lock = flock.New(opts.LockPath)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /analyze", s.rateLimit(http.HandlerFunc(s.handleAnalyze)))
	s.handler = s.requestID(s.cors(mux))

	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func newLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60), burst)
}

// Handler returns the fully wrapped handler for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr reports the listening address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start acquires the state lock, binds the listener, and serves in the
// background until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	if s.lock != nil {
		ok, err := s.lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another vidsentiment server holds %s", s.opts.LockPath)
		}
	}

	listener, err := net.Listen("tcp", s.opts.Bind)
	if err != nil {
		s.releaseLock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.opts.LockPath),
	)
	return nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop shuts the server down and releases the lock. It is safe to call more
// than once.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("api server shutdown incomplete", logging.Error(err))
	}
	s.releaseLock()
}

func (s *Server) releaseLock() {
	if s.lock == nil || !s.lock.Locked() {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
}
