// Package transcription turns downloaded video into text.
//
// ExtractAudio converts media into mono 16 kHz WAV with ffmpeg. Backends
// transcribe that WAV: WhisperX launched through uvx for local inference, or
// the OpenAI Whisper API. Service wraps the configured backend, is built once
// per process, and degrades to a fixed placeholder transcript when no backend
// could be initialised.
package transcription
