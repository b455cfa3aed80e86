package videosource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"vidsentiment/internal/services"
)

var (
	// ErrFetchFailed marks recoverable metadata/comment fetch failures.
	ErrFetchFailed = errors.New("video fetch failed")
	// ErrDownloadUnavailable marks media that could not be downloaded.
	ErrDownloadUnavailable = errors.New("video download unavailable")
)

// VideoInfo is the metadata reported for a video. Optional fields are nil when unknown.
type VideoInfo struct {
	ID              string
	Title           string
	Description     string
	Uploader        string
	ViewCount       *int64
	LikeCount       *int64
	DurationSeconds *float64
}

// RawComment is an unclassified comment.
type RawComment struct {
	ID     string
	Text   string
	Author string
}

// Listing is everything Fetch returns for one video.
type Listing struct {
	Video    VideoInfo
	Comments []RawComment
}

// Source fetches video data.
type Source interface {
	Fetch(ctx context.Context, videoURL string) (Listing, error)
	// Download stores the media under destDir and returns the file path.
	Download(ctx context.Context, videoURL, destDir string) (string, error)
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return services.Wrap(services.ErrValidation, "videosource", "validate url", "url is required", errors.New("empty url"))
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return services.Wrap(services.ErrValidation, "videosource", "validate url", "url is malformed", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return services.Wrap(services.ErrValidation, "videosource", "validate url", "url must be an absolute http(s) URL",
			fmt.Errorf("got %q", trimmed))
	}
	return nil
}
