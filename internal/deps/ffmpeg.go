package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// LocalFFmpegDir is the project-relative directory searched before PATH.
const LocalFFmpegDir = "ffmpeg/bin"

// ResolveFFmpeg locates the ffmpeg binary used for audio extraction.
//
// Lookup order: the configured path (absolute or bare command name), an ffmpeg
// binary under ./ffmpeg/bin, then "ffmpeg" on PATH. The returned Status.Command
// is the resolved executable when Available is true. Otherwise Detail lists
// every location that was tried.
func ResolveFFmpeg(configured string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Extracts audio for content analysis",
	}

	var tried []string
	if configured = strings.TrimSpace(configured); configured != "" {
		tried = append(tried, configured)
		if resolved, err := exec.LookPath(configured); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
	}

	local := filepath.Join(LocalFFmpegDir, executableName("ffmpeg"))
	tried = append(tried, local)
	if abs, err := filepath.Abs(local); err == nil {
		if info, statErr := os.Stat(abs); statErr == nil && isExecutable(info) {
			result.Command = abs
			result.Available = true
			return result
		}
	}

	tried = append(tried, "PATH")
	if ffmpegPath, err := exec.LookPath("ffmpeg"); err == nil {
		result.Command = ffmpegPath
		result.Available = true
		return result
	}

	result.Command = "ffmpeg"
	result.Detail = fmt.Sprintf("ffmpeg not found (looked in %s)", strings.Join(tried, ", "))
	return result
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
