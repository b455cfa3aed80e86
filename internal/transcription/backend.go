package transcription

import "context"

// Backend transcribes a WAV file into plain text.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
	Name() string
	Model() string
	// Language is the configured spoken language, or "" for auto-detection.
	Language() string
}
