//go:build !ORT

package sentiment

import (
	"context"
	"errors"
)

// ErrHugotUnavailable is returned when the binary was built without onnxruntime support.
var ErrHugotUnavailable = errors.New("hugot backend requires a build with -tags ORT")

// HugotBackend is unavailable in builds without the ORT tag.
type HugotBackend struct{}

// NewHugotBackend always fails without the ORT build tag.
func NewHugotBackend(string) (*HugotBackend, error) {
	return nil, ErrHugotUnavailable
}

func (h *HugotBackend) Name() string { return "hugot" }

func (h *HugotBackend) Classify(context.Context, string) (string, error) {
	return "", ErrHugotUnavailable
}

func (h *HugotBackend) Close() error { return nil }
