package sentiment

import "context"

// VietnameseBackend classifies Vietnamese text and returns the backend's raw
// label, which ParseLabel maps onto Label.
type VietnameseBackend interface {
	Classify(ctx context.Context, text string) (string, error)
	Name() string
}
