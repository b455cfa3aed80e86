package sentiment

import (
	"fmt"
	"strings"
)

// Label is a three-way sentiment classification.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// String returns the capitalised label.
func (l Label) String() string { return string(l) }

// Lower returns the label in lower case, as reported in topic summaries.
func (l Label) Lower() string { return strings.ToLower(string(l)) }

// ParseLabel maps backend-specific labels (POS, positive, LABEL_2, ...) onto
// the three-way scheme.
func ParseLabel(raw string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pos", "positive", "label_2":
		return Positive, nil
	case "neg", "negative", "label_0":
		return Negative, nil
	case "neu", "neutral", "label_1":
		return Neutral, nil
	default:
		return Neutral, fmt.Errorf("unrecognised sentiment label %q", raw)
	}
}
