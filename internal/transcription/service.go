package transcription

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"vidsentiment/internal/config"
	"vidsentiment/internal/logging"
	"vidsentiment/internal/services"
)

// PlaceholderTranscript is returned when no transcription backend is available.
const PlaceholderTranscript = "This is a placeholder transcription of the video content."

// ErrAudioMissing indicates the audio file to transcribe does not exist.
var ErrAudioMissing = errors.New("audio file missing")

// Service is the process-wide transcription entry point.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

// NewService wraps backend. A nil backend makes every call return the placeholder.
func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logging.NewComponentLogger(logger, "transcription")}
}

// NewFromConfig builds the configured backend once. Initialisation failures are
// logged and leave the service in placeholder mode.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Service {
	svc := NewService(nil, logger)
	if cfg == nil {
		return svc
	}
	tc := cfg.Transcription
	switch tc.Backend {
	case config.TranscriptionBackendWhisperX:
		uvx := cfg.UVXBinary()
		if _, err := exec.LookPath(uvx); err != nil {
			svc.warnInit(err, "install uv or set tools.uvx_path")
			return svc
		}
		svc.backend = NewWhisperX(WhisperXConfig{
			UVXBinary:   uvx,
			Model:       tc.Model,
			Language:    tc.Language,
			CUDAEnabled: tc.CUDAEnabled,
		})
	case config.TranscriptionBackendOpenAI:
		backend, err := NewOpenAI(OpenAIConfig{
			APIKey:   tc.OpenAIAPIKey,
			BaseURL:  tc.OpenAIBaseURL,
			Model:    tc.Model,
			Language: tc.Language,
			Timeout:  time.Duration(tc.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			svc.warnInit(err, "set OPENAI_API_KEY or transcription.openai_api_key")
			return svc
		}
		svc.backend = backend
	}
	return svc
}

func (s *Service) warnInit(err error, hint string) {
	logging.WarnWithContext(s.logger, "transcription backend unavailable; using placeholder", "transcription_init_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, "content summaries will contain placeholder text"),
		logging.String(logging.FieldErrorHint, hint),
	)
}

// Available reports whether a real backend is configured.
func (s *Service) Available() bool {
	return s != nil && s.backend != nil
}

// BackendName returns the active backend name, or "placeholder".
func (s *Service) BackendName() string {
	if !s.Available() {
		return "placeholder"
	}
	return s.backend.Name()
}

// Model returns the active backend model, or "".
func (s *Service) Model() string {
	if !s.Available() {
		return ""
	}
	return s.backend.Model()
}

// Language returns the active backend language, or "".
func (s *Service) Language() string {
	if !s.Available() {
		return ""
	}
	return s.backend.Language()
}

// TranscribeFile returns the transcript for audioPath. A missing file yields
// ErrAudioMissing. Without a backend the placeholder text is returned with a nil error.
func (s *Service) TranscribeFile(ctx context.Context, audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil || info.IsDir() {
		if err == nil {
			err = errors.New("path is a directory")
		}
		return "", services.Wrap(services.ErrNotFound, "transcription", "transcribe", audioPath, errors.Join(ErrAudioMissing, err))
	}
	if !s.Available() {
		return PlaceholderTranscript, nil
	}

	start := time.Now()
	text, err := s.backend.Transcribe(ctx, audioPath)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "transcription", "transcribe", s.backend.Name()+" failed", err)
	}
	logging.WithContext(ctx, s.logger).Info("transcription complete",
		logging.String("backend", s.backend.Name()),
		logging.String("model", s.backend.Model()),
		logging.Int("characters", len(text)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// Transcribe returns the transcript, or "" when the file is missing or the
// backend fails. Errors are logged.
func (s *Service) Transcribe(ctx context.Context, audioPath string) string {
	text, err := s.TranscribeFile(ctx, audioPath)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "transcription failed", "transcription_failed",
			logging.Error(err),
			logging.String("audio_path", audioPath),
		)
		return ""
	}
	return text
}
