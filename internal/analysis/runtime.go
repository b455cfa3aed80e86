package analysis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vidsentiment/internal/config"
	"vidsentiment/internal/deps"
	"vidsentiment/internal/keywords"
	"vidsentiment/internal/logging"
	"vidsentiment/internal/sentiment"
	"vidsentiment/internal/topics"
	"vidsentiment/internal/transcription"
	"vidsentiment/internal/transcriptcache"
	"vidsentiment/internal/videosource"
)

// Transcriber converts an audio file into text.
type Transcriber interface {
	TranscribeFile(ctx context.Context, audioPath string) (string, error)
	Available() bool
	BackendName() string
	Model() string
	Language() string
}

// Classifier labels text in a given language.
type Classifier interface {
	Classify(ctx context.Context, text, lang string) sentiment.Label
}

// AudioExtractor converts downloaded media into a WAV file.
type AudioExtractor func(ctx context.Context, ffmpegBinary, source, dest string) error

// Runtime bundles the long-lived collaborators shared by every request.
type Runtime struct {
	Source        videosource.Source
	Transcriber   Transcriber
	Classifier    Classifier
	Cache         transcriptcache.Cache
	Topics        topics.Model
	Stopwords     keywords.StopwordTable
	ResolveFFmpeg func() deps.Status
	ExtractAudio  AudioExtractor
	WorkDir       string
	KeepArtifacts bool
	Logger        *slog.Logger
	NewID         func() string

	closers []func() error
}

// NewRuntime builds every collaborator from cfg. Optional pieces that fail to
// initialise (transcription backend, Vietnamese model, cache) degrade instead
// of failing.
func NewRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("analysis runtime: config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	logger = logging.NewComponentLogger(logger, "analysis")

	classifier := sentiment.NewFromConfig(cfg.Sentiment, logger)

	cache, err := transcriptcache.Open(ctx, cfg, logger)
	if err != nil {
		logging.WarnWithContext(logger, "transcript cache unavailable; continuing without cache", "cache_open_failed",
			logging.Error(err),
			logging.String("backend", cfg.Cache.Backend),
			logging.String(logging.FieldImpact, "repeat analyses re-run transcription"),
			logging.String(logging.FieldErrorHint, "check [cache] settings"),
		)
		cache = transcriptcache.Nop{}
	}
	if pruner, ok := cache.(interface {
		Prune(context.Context) (int64, error)
	}); ok {
		if removed, err := pruner.Prune(ctx); err != nil {
			logger.Debug("transcript cache prune failed", logging.Error(err))
		} else if removed > 0 {
			logger.Info("pruned expired transcripts", logging.Int("removed", int(removed)))
		}
	}

	ffmpegPath := cfg.Tools.FFmpegPath
	rt := &Runtime{
		Source: videosource.NewYTDLP(videosource.YTDLPConfig{
			Binary:      cfg.YTDLPBinary(),
			MaxComments: cfg.Source.MaxComments,
			Timeout:     time.Duration(cfg.Source.TimeoutSeconds) * time.Second,
		}),
		Transcriber:   transcription.NewFromConfig(cfg, logger),
		Classifier:    classifier,
		Cache:         cache,
		Topics:        topics.NewPlaceholder(logger),
		Stopwords:     keywords.DefaultStopwords(),
		ResolveFFmpeg: func() deps.Status { return deps.ResolveFFmpeg(ffmpegPath) },
		ExtractAudio: func(ctx context.Context, ffmpegBinary, source, dest string) error {
			return transcription.ExtractAudio(ctx, nil, ffmpegBinary, source, dest)
		},
		WorkDir:       cfg.Paths.WorkDir,
		KeepArtifacts: cfg.Analysis.KeepArtifacts,
		Logger:        logger,
		NewID:         uuid.NewString,
		closers:       []func() error{cache.Close, classifier.Close},
	}
	return rt, nil
}

// Close releases cache connections and model sessions.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}
	var errs []error
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
