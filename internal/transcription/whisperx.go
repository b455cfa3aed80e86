package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WhisperX configuration constants.
const (
	DefaultWhisperXModel = "base"
	CUDAIndexURL         = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL         = "https://pypi.org/simple"
	BatchSize            = "4"
	OutputFormat         = "json"
	CPUDevice            = "cpu"
	CUDADevice           = "cuda"
	CPUComputeType       = "float32"
	VADMethodSilero      = "silero"
)

// WhisperXConfig captures runtime settings for WhisperX.
type WhisperXConfig struct {
	UVXBinary   string
	Model       string
	Language    string
	CUDAEnabled bool
}

// WhisperX runs the whisperx CLI through uvx and reads its JSON output.
type WhisperX struct {
	cfg    WhisperXConfig
	runner CommandRunner
}

// NewWhisperX creates a WhisperX backend.
func NewWhisperX(cfg WhisperXConfig) *WhisperX {
	if cfg.UVXBinary == "" {
		cfg.UVXBinary = "uvx"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultWhisperXModel
	}
	return &WhisperX{cfg: cfg, runner: execRunner}
}

// WithCommandRunner sets a custom command runner (for testing).
func (w *WhisperX) WithCommandRunner(runner CommandRunner) *WhisperX {
	if runner != nil {
		w.runner = runner
	}
	return w
}

func (w *WhisperX) Name() string { return "whisperx" }

func (w *WhisperX) Model() string { return w.cfg.Model }

func (w *WhisperX) Language() string { return strings.TrimSpace(w.cfg.Language) }

// Transcribe writes WhisperX output next to the audio file and returns the
// joined segment text.
func (w *WhisperX) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputDir := filepath.Join(filepath.Dir(audioPath), "whisperx")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("whisperx: ensure output dir: %w", err)
	}

	if err := w.runner(ctx, w.cfg.UVXBinary, w.buildArgs(audioPath, outputDir)...); err != nil {
		return "", fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	segments, err := LoadSegments(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return "", fmt.Errorf("whisperx: load output: %w", err)
	}
	return JoinSegments(segments), nil
}

func (w *WhisperX) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 24)
	if w.cfg.CUDAEnabled {
		args = append(args, "--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", w.cfg.Model,
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--vad_method", VADMethodSilero,
	)
	if lang := strings.TrimSpace(w.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if w.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

// Segment is one transcribed span from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments reads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(jsonPath), err)
	}
	return payload.Segments, nil
}

// JoinSegments concatenates segment text with single spaces.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
