package sentiment

import (
	"context"

	"vidsentiment/internal/keywords"
)

var (
	vietnamesePositiveTerms = []string{"hay", "tuyệt", "thích", "tốt", "đẹp", "yêu", "xuất", "sắc", "vui", "đỉnh"}
	vietnameseNegativeTerms = []string{"dở", "tệ", "ghét", "chán", "xấu", "kém", "buồn", "nhảm", "phí"}
	vietnameseNegators      = []string{"không", "chẳng", "chả", "chưa"}
)

// Lexicon is a word-list classifier for Vietnamese. Each positive term adds
// one point and each negative term subtracts one. A negator flips the polarity
// of the token that immediately follows it.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
	negators map[string]struct{}
}

// NewLexicon returns the built-in Vietnamese lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{
		positive: toSet(vietnamesePositiveTerms),
		negative: toSet(vietnameseNegativeTerms),
		negators: toSet(vietnameseNegators),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (l *Lexicon) Name() string { return "lexicon" }

// Classify returns "positive", "negative", or "neutral".
func (l *Lexicon) Classify(_ context.Context, text string) (string, error) {
	score := 0
	negate := false
	for _, token := range keywords.Tokenize(text) {
		if _, ok := l.negators[token]; ok {
			negate = true
			continue
		}
		polarity := 0
		if _, ok := l.positive[token]; ok {
			polarity = 1
		} else if _, ok := l.negative[token]; ok {
			polarity = -1
		}
		if negate {
			polarity = -polarity
			negate = false
		}
		score += polarity
	}
	switch {
	case score > 0:
		return "positive", nil
	case score < 0:
		return "negative", nil
	default:
		return "neutral", nil
	}
}
