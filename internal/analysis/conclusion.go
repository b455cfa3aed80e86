package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"vidsentiment/internal/report"
)

// SummaryLimit is the number of transcript runes kept in content_summary.
const SummaryLimit = 200

// Report warning texts.
const (
	WarningFetchFailed      = "Video details and comments could not be fetched."
	WarningFFmpegMissing    = "ffmpeg was not found (looked in tools.ffmpeg_path, ffmpeg/bin, and PATH). Cannot analyze video content."
	WarningDownloadFailed   = "Video content could not be analyzed: Video download failed or was skipped."
	WarningExtractionFailed = "Failed to extract audio from video using ffmpeg."
	WarningContentError     = "Video content could not be analyzed due to an error."
	WarningContentSkipped   = "Video content analysis was skipped as requested."
	WarningNoComments       = "No comments found for this video."
)

// Summarize truncates a transcript to SummaryLimit runes plus "...".
func Summarize(transcript string) string {
	if utf8.RuneCountInString(transcript) <= SummaryLimit {
		return transcript
	}
	runes := []rune(transcript)
	return string(runes[:SummaryLimit]) + "..."
}

// Conclude derives the report conclusion. videoSentiment is empty when content
// analysis produced no sentiment.
func Conclude(videoSentiment string, stats report.SentimentStatistics) string {
	if videoSentiment == "" {
		return "Comment sentiment analysis complete. Video content sentiment was not available."
	}
	vs := strings.ToLower(videoSentiment)
	switch {
	case stats.Positive > stats.Negative:
		return fmt.Sprintf("The video content is %s and the comments are generally positive.", vs)
	case stats.Negative > stats.Positive:
		return fmt.Sprintf("The video content is %s but the comments lean negative.", vs)
	default:
		return fmt.Sprintf("The video content is %s and comments are mixed/neutral.", vs)
	}
}
