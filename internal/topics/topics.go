package topics

import (
	"log/slog"

	"vidsentiment/internal/logging"
	"vidsentiment/internal/report"
	"vidsentiment/internal/sentiment"
)

// PlaceholderTopic is the single key emitted by Placeholder.
const PlaceholderTopic = "placeholder_topic"

// Model derives topic sentiment from classified comments.
type Model interface {
	Analyze(comments []report.Comment) map[string]report.TopicSentiment
}

// Placeholder is a fixed-shape stand-in until a real topic model exists.
type Placeholder struct {
	logger *slog.Logger
}

// NewPlaceholder returns the stub topic model.
func NewPlaceholder(logger *slog.Logger) *Placeholder {
	return &Placeholder{logger: logging.NewComponentLogger(logger, "topics")}
}

// Analyze reports every comment under one neutral topic.
func (p *Placeholder) Analyze(comments []report.Comment) map[string]report.TopicSentiment {
	if p != nil && p.logger != nil {
		logging.WarnWithContext(p.logger, "topic model not implemented; returning placeholder", "topic_placeholder",
			logging.String(logging.FieldImpact, "topic_sentiments carries placeholder data"),
			logging.String(logging.FieldErrorHint, "plug a real topics.Model into the runtime"),
		)
	}
	return map[string]report.TopicSentiment{
		PlaceholderTopic: {Sentiment: sentiment.Neutral.Lower(), Count: len(comments)},
	}
}
