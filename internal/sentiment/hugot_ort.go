//go:build ORT

package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// HugotBackend runs a local ONNX text-classification model through onnxruntime.
type HugotBackend struct {
	mu       sync.Mutex
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewHugotBackend loads the model at modelPath. The caller must Close the backend.
func NewHugotBackend(modelPath string) (*HugotBackend, error) {
	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("init onnxruntime session: %w", err)
	}
	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "vietnameseSentiment",
	})
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("load text classification model %s: %w", modelPath, err)
	}
	return &HugotBackend{session: session, pipeline: pipeline}, nil
}

func (h *HugotBackend) Name() string { return "hugot" }

// Classify returns the highest scoring label from the model.
func (h *HugotBackend) Classify(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", fmt.Errorf("run classification pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", errors.New("classification pipeline returned no labels")
	}
	best := output.ClassificationOutputs[0][0]
	for _, candidate := range output.ClassificationOutputs[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return best.Label, nil
}

// Close releases the onnxruntime session.
func (h *HugotBackend) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return nil
	}
	err := h.session.Destroy()
	h.session = nil
	return err
}
