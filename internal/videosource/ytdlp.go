package videosource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"vidsentiment/internal/services"
)

// OutputRunner executes a command and returns its stdout. Tests substitute fakes.
type OutputRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// YTDLPConfig configures the yt-dlp source.
type YTDLPConfig struct {
	Binary      string
	MaxComments int
	Timeout     time.Duration
}

// YTDLP implements Source with the yt-dlp CLI.
type YTDLP struct {
	cfg    YTDLPConfig
	runner OutputRunner
}

// NewYTDLP creates a yt-dlp backed source.
func NewYTDLP(cfg YTDLPConfig) *YTDLP {
	if cfg.Binary == "" {
		cfg.Binary = "yt-dlp"
	}
	return &YTDLP{cfg: cfg, runner: execOutput}
}

// WithRunner sets a custom command runner (for testing).
func (y *YTDLP) WithRunner(runner OutputRunner) *YTDLP {
	if runner != nil {
		y.runner = runner
	}
	return y
}

type ytdlpComment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

type ytdlpInfo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Uploader    string         `json:"uploader"`
	ViewCount   *int64         `json:"view_count"`
	LikeCount   *int64         `json:"like_count"`
	Duration    *float64       `json:"duration"`
	Comments    []ytdlpComment `json:"comments"`
}

// FetchArgs returns the yt-dlp arguments used to read metadata and comments.
func (y *YTDLP) FetchArgs(videoURL string) []string {
	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
	}
	if y.cfg.MaxComments > 0 {
		args = append(args,
			"--write-comments",
			"--extractor-args", "youtube:max_comments="+strconv.Itoa(y.cfg.MaxComments),
		)
	}
	return append(args, videoURL)
}

// Fetch returns metadata and up to MaxComments comments.
func (y *YTDLP) Fetch(ctx context.Context, videoURL string) (Listing, error) {
	if err := ValidateURL(videoURL); err != nil {
		return Listing{}, err
	}
	runCtx, cancel := y.withTimeout(ctx)
	defer cancel()

	out, err := y.runner(runCtx, y.cfg.Binary, y.FetchArgs(strings.TrimSpace(videoURL))...)
	if err != nil {
		// Caller cancellation is fatal. The fetch timeout is not.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Listing{}, ctxErr
		}
		return Listing{}, services.Wrap(ErrFetchFailed, "videosource", "fetch", "yt-dlp failed", err)
	}

	var info ytdlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return Listing{}, services.Wrap(ErrFetchFailed, "videosource", "fetch", "parse yt-dlp output", err)
	}

	listing := Listing{
		Video: VideoInfo{
			ID:              info.ID,
			Title:           info.Title,
			Description:     info.Description,
			Uploader:        info.Uploader,
			ViewCount:       info.ViewCount,
			LikeCount:       info.LikeCount,
			DurationSeconds: info.Duration,
		},
		Comments: make([]RawComment, 0, len(info.Comments)),
	}
	for _, c := range info.Comments {
		if y.cfg.MaxComments > 0 && len(listing.Comments) >= y.cfg.MaxComments {
			break
		}
		listing.Comments = append(listing.Comments, RawComment{ID: c.ID, Text: c.Text, Author: c.Author})
	}
	return listing, nil
}

// DownloadArgs returns the yt-dlp arguments used to save media into destDir.
func (y *YTDLP) DownloadArgs(videoURL, destDir string) []string {
	return []string{
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"-f", "best[ext=mp4]/best",
		"-P", destDir,
		"-o", "video.%(ext)s",
		"--print", "after_move:filepath",
		videoURL,
	}
}

// Download saves the media into destDir and returns the written file path.
func (y *YTDLP) Download(ctx context.Context, videoURL, destDir string) (string, error) {
	if err := ValidateURL(videoURL); err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure download dir: %w", err)
	}

	out, err := y.runner(ctx, y.cfg.Binary, y.DownloadArgs(strings.TrimSpace(videoURL), destDir)...)
	if err != nil {
		return "", services.Wrap(ErrDownloadUnavailable, "videosource", "download", "yt-dlp failed", err)
	}

	path := lastLine(string(out))
	if path == "" {
		return "", services.Wrap(ErrDownloadUnavailable, "videosource", "download", "yt-dlp reported no file", errors.New("empty output"))
	}
	if info, statErr := os.Stat(path); statErr != nil || info.Size() == 0 {
		if statErr == nil {
			statErr = errors.New("file is empty")
		}
		return "", services.Wrap(ErrDownloadUnavailable, "videosource", "download", "downloaded file unusable", statErr)
	}
	return path, nil
}

func (y *YTDLP) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if y.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, y.cfg.Timeout)
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
