package transcription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidsentiment/internal/services"
)

// ExtractAudioArgs returns the ffmpeg arguments that convert the first audio
// stream of source into a mono 16 kHz PCM WAV at dest.
func ExtractAudioArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// ExtractAudio runs ffmpeg to produce a WAV suitable for transcription.
// A nil runner executes ffmpeg directly.
func ExtractAudio(ctx context.Context, runner CommandRunner, ffmpegBinary, source, dest string) error {
	if strings.TrimSpace(ffmpegBinary) == "" {
		return services.Wrap(services.ErrConfiguration, "transcription", "extract audio", "ffmpeg binary not set", errors.New("empty ffmpeg path"))
	}
	if source == "" || dest == "" {
		return services.Wrap(services.ErrValidation, "transcription", "extract audio", "source and destination required", fmt.Errorf("source=%q dest=%q", source, dest))
	}
	if runner == nil {
		runner = execRunner
	}
	if err := runner(ctx, ffmpegBinary, ExtractAudioArgs(source, dest)...); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcription", "extract audio", "ffmpeg failed", err)
	}
	return nil
}
