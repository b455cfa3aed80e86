package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	videoURLKey  contextKey = "video_url"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithVideoURL annotates context with the video URL being analyzed.
func WithVideoURL(ctx context.Context, url string) context.Context {
	if url == "" {
		return ctx
	}
	return context.WithValue(ctx, videoURLKey, url)
}

// VideoURLFromContext returns the video URL if present.
func VideoURLFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(videoURLKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
