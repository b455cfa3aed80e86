// Package videosource fetches video metadata, comments, and media.
//
// The YTDLP implementation shells out to yt-dlp. Fetch failures caused by the
// tool or its output are wrapped with ErrFetchFailed so callers can degrade to
// an empty listing. Invalid URLs surface as services.ErrValidation.
package videosource
