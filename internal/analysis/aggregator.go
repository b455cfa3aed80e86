package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vidsentiment/internal/keywords"
	"vidsentiment/internal/logging"
	"vidsentiment/internal/report"
	"vidsentiment/internal/sentiment"
	"vidsentiment/internal/services"
	"vidsentiment/internal/topics"
	"vidsentiment/internal/transcriptcache"
	"vidsentiment/internal/videosource"
)

// KeywordLimit is the maximum number of keyword cloud entries.
const KeywordLimit = 10

// Aggregator runs one analysis request. It is not safe for concurrent use;
// create one per request with New.
type Aggregator struct {
	rt       *Runtime
	logger   *slog.Logger
	warnings []string
}

// New creates a request-scoped aggregator over the shared runtime.
func New(rt *Runtime) *Aggregator {
	logger := rt.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Aggregator{rt: rt, logger: logger}
}

func (a *Aggregator) warn(message string) {
	a.warnings = append(a.warnings, message)
}

// Analyze builds the report for videoURL. Recoverable failures are reported
// as warnings. The returned error is non-nil only for invalid input, caller
// cancellation, or an unexpected video source failure.
func (a *Aggregator) Analyze(ctx context.Context, videoURL string, contentAnalysis bool) (*report.Report, error) {
	if err := videosource.ValidateURL(videoURL); err != nil {
		return nil, err
	}
	ctx = services.WithVideoURL(ctx, videoURL)
	logger := logging.WithContext(ctx, a.logger)
	a.warnings = nil
	start := time.Now()
	logger.Info("analysis started", logging.Bool("content_analysis", contentAnalysis))

	listing, err := a.rt.Source.Fetch(ctx, videoURL)
	if err != nil {
		if !errors.Is(err, videosource.ErrFetchFailed) {
			return nil, err
		}
		logging.WarnWithContext(logger, "video fetch failed; continuing without metadata or comments", "video_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "report has no comments"),
			logging.String(logging.FieldErrorHint, "check the URL and yt-dlp version"),
		)
		a.warn(WarningFetchFailed)
		listing = videosource.Listing{}
	}

	video := report.Video{
		URL:             videoURL,
		Title:           listing.Video.Title,
		Uploader:        listing.Video.Uploader,
		ViewCount:       listing.Video.ViewCount,
		LikeCount:       listing.Video.LikeCount,
		DurationSeconds: listing.Video.DurationSeconds,
	}

	var derived string
	if contentAnalysis {
		summary, label, ok, err := a.analyzeContent(ctx, logger, videoURL)
		if err != nil {
			return nil, err
		}
		if ok {
			video.ContentSummary = &summary
			derived = label.String()
			video.DerivedSentiment = &derived
		}
	} else {
		a.warn(WarningContentSkipped)
	}

	comments, counts, counter := a.classifyComments(ctx, listing.Comments)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(listing.Comments) == 0 {
		a.warn(WarningNoComments)
	}

	stats := report.Statistics(counts[sentiment.Positive], counts[sentiment.Negative], counts[sentiment.Neutral])
	cloud := make([]report.KeywordCloudItem, 0, KeywordLimit)
	for _, entry := range counter.Top(KeywordLimit) {
		cloud = append(cloud, report.KeywordCloudItem{Text: entry.Word, Value: entry.Count})
	}

	warnings := a.warnings
	if warnings == nil {
		warnings = []string{}
	}
	result := &report.Report{
		Video:               video,
		Comments:            comments,
		SentimentStatistics: stats,
		KeywordCloud:        cloud,
		Conclusion:          Conclude(derived, stats),
		Warnings:            warnings,
		TopicSentiments:     a.topicModel().Analyze(comments),
	}

	logger.Info("analysis complete",
		logging.Int("comments", len(comments)),
		logging.Int("warnings", len(warnings)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (a *Aggregator) topicModel() topics.Model {
	if a.rt.Topics != nil {
		return a.rt.Topics
	}
	return topics.NewPlaceholder(a.logger)
}

func (a *Aggregator) classifyComments(ctx context.Context, raw []videosource.RawComment) ([]report.Comment, map[sentiment.Label]int, *keywords.Counter) {
	comments := make([]report.Comment, 0, len(raw))
	counts := make(map[sentiment.Label]int, 3)
	counter := keywords.NewCounter()
	for _, rc := range raw {
		if ctx.Err() != nil {
			break
		}
		lang := sentiment.DetectLanguage(rc.Text)
		label := a.rt.Classifier.Classify(ctx, rc.Text, lang)
		comments = append(comments, report.Comment{
			ID:                rc.ID,
			Text:              rc.Text,
			AnalyzedSentiment: label.String(),
			Language:          lang,
		})
		counts[label]++
		counter.Add(a.rt.Stopwords.Filter(keywords.Tokenize(rc.Text), lang)...)
	}
	return comments, counts, counter
}

// analyzeContent downloads, extracts, and transcribes the video. It reports
// ok=false with a warning recorded when any step fails. A non-nil error is
// returned only when the caller cancelled the request.
func (a *Aggregator) analyzeContent(ctx context.Context, logger *slog.Logger, videoURL string) (string, sentiment.Label, bool, error) {
	ffmpeg := a.rt.ResolveFFmpeg()
	if !ffmpeg.Available {
		logging.WarnWithContext(logger, "ffmpeg not found; skipping content analysis", "ffmpeg_missing",
			logging.String("detail", ffmpeg.Detail),
			logging.String(logging.FieldImpact, "video content sentiment unavailable"),
			logging.String(logging.FieldErrorHint, "install ffmpeg or set tools.ffmpeg_path"),
		)
		a.warn(WarningFFmpegMissing)
		return "", "", false, nil
	}

	transcript, ok, err := a.transcript(ctx, logger, ffmpeg.Command, videoURL)
	if err != nil || !ok {
		return "", "", false, err
	}

	label := a.rt.Classifier.Classify(ctx, transcript, sentiment.LanguageEnglish)
	return Summarize(transcript), label, true, nil
}

func (a *Aggregator) transcript(ctx context.Context, logger *slog.Logger, ffmpegBinary, videoURL string) (string, bool, error) {
	cacheable := a.rt.Transcriber.Available() && a.rt.Cache != nil
	var cacheKey string
	if cacheable {
		cacheKey = transcriptcache.Key(videoURL, a.rt.Transcriber.BackendName(), a.rt.Transcriber.Model(), a.rt.Transcriber.Language())
		text, hit, err := a.rt.Cache.Get(ctx, cacheKey)
		switch {
		case err != nil:
			logger.Debug("transcript cache read failed", logging.Error(err))
		case hit:
			logger.Info("transcript cache hit", logging.String("backend", a.rt.Transcriber.BackendName()))
			return text, true, nil
		}
	}

	workDir, cleanup, err := a.requestDir()
	if err != nil {
		logging.WarnWithContext(logger, "could not create work directory", "workdir_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "video content sentiment unavailable"),
			logging.String(logging.FieldErrorHint, "check paths.work_dir permissions"),
		)
		a.warn(WarningContentError)
		return "", false, nil
	}
	defer cleanup()

	videoPath, err := a.rt.Source.Download(ctx, videoURL, workDir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		logging.WarnWithContext(logger, "video download failed", "video_download_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "video content sentiment unavailable"),
		)
		if errors.Is(err, videosource.ErrDownloadUnavailable) {
			a.warn(WarningDownloadFailed)
		} else {
			a.warn(WarningContentError)
		}
		return "", false, nil
	}

	audioPath := filepath.Join(workDir, "audio.wav")
	logger.Info("extracting audio", logging.String("video_path", videoPath), logging.String("ffmpeg", ffmpegBinary))
	if err := a.rt.ExtractAudio(ctx, ffmpegBinary, videoPath, audioPath); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		logging.ErrorWithContext(logger, "ffmpeg failed during audio extraction", "audio_extract_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run ffmpeg manually against the downloaded file"),
		)
		a.warn(WarningExtractionFailed)
		return "", false, nil
	}

	text, err := a.rt.Transcriber.TranscribeFile(ctx, audioPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		logging.ErrorWithContext(logger, "transcription failed", "transcription_failed",
			logging.Error(err),
			logging.String("backend", a.rt.Transcriber.BackendName()),
		)
		a.warn(WarningContentError)
		return "", false, nil
	}

	if cacheable {
		if err := a.rt.Cache.Put(ctx, cacheKey, text); err != nil {
			logger.Debug("transcript cache write failed", logging.Error(err))
		}
	}
	return text, true, nil
}

// requestDir creates a per-request scratch directory. The returned cleanup
// removes it unless artifacts are kept.
func (a *Aggregator) requestDir() (string, func(), error) {
	newID := a.rt.NewID
	if newID == nil {
		newID = func() string { return fmt.Sprintf("req-%d", time.Now().UnixNano()) }
	}
	base := a.rt.WorkDir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, newID())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create request dir: %w", err)
	}
	cleanup := func() {
		if a.rt.KeepArtifacts {
			a.logger.Info("keeping analysis artifacts", logging.String("dir", dir))
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			a.logger.Warn("failed to remove analysis artifacts", logging.String("dir", dir), logging.Error(err))
		}
	}
	return dir, cleanup, nil
}
