package sentiment

import (
	"github.com/jonreiter/govader"
)

// DefaultPositiveThreshold and DefaultNegativeThreshold bound the VADER
// compound score.
const (
	DefaultPositiveThreshold = 0.05
	DefaultNegativeThreshold = -0.05
)

// Vader scores English text with the VADER lexicon.
type Vader struct {
	analyzer          *govader.SentimentIntensityAnalyzer
	positiveThreshold float64
	negativeThreshold float64
}

// NewVader builds the analyzer once. Thresholds that are not ordered fall back to defaults.
func NewVader(positive, negative float64) *Vader {
	if positive <= negative {
		positive, negative = DefaultPositiveThreshold, DefaultNegativeThreshold
	}
	return &Vader{
		analyzer:          govader.NewSentimentIntensityAnalyzer(),
		positiveThreshold: positive,
		negativeThreshold: negative,
	}
}

// Score returns the compound polarity of text in [-1, 1].
func (v *Vader) Score(text string) float64 {
	return v.analyzer.PolarityScores(PlainText(text)).Compound
}

// Classify maps the compound score onto a Label.
func (v *Vader) Classify(text string) Label {
	return v.LabelFor(v.Score(text))
}

// LabelFor applies the thresholds: score >= positive is Positive, score <=
// negative is Negative, anything between is Neutral.
func (v *Vader) LabelFor(score float64) Label {
	switch {
	case score >= v.positiveThreshold:
		return Positive
	case score <= v.negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
