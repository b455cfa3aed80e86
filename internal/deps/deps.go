package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"vidsentiment/internal/config"
)

// Requirement defines an external dependency vidsentiment relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckSystem reports every external tool and directory the configuration needs.
func CheckSystem(cfg *config.Config) []Status {
	if cfg == nil {
		return nil
	}
	requirements := []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YTDLPBinary(),
			Description: "Fetches video metadata, comments, and media",
		},
		{
			Name:        "uvx",
			Command:     cfg.UVXBinary(),
			Description: "Launches WhisperX for local transcription",
			Optional:    cfg.Transcription.Backend != config.TranscriptionBackendWhisperX,
		},
	}
	results := CheckBinaries(requirements)

	ffmpeg := ResolveFFmpeg(cfg.Tools.FFmpegPath)
	ffmpeg.Optional = true
	results = append(results, ffmpeg)

	results = append(results,
		CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	)
	return results
}

// CheckDirectoryAccess verifies path is a directory the process can read, write, and traverse.
func CheckDirectoryAccess(name, path string) Status {
	status := Status{Name: name, Command: path, Description: "Directory access"}
	if strings.TrimSpace(path) == "" {
		status.Detail = "path not configured"
		return status
	}
	info, err := os.Stat(path)
	if err != nil {
		status.Detail = fmt.Sprintf("stat: %v", err)
		return status
	}
	if !info.IsDir() {
		status.Detail = "is not a directory"
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions: %v", err)
		return status
	}
	status.Available = true
	status.Detail = "read/write ok"
	return status
}
