package sentiment

import (
	"context"
	"io"
	"log/slog"
	"time"

	"vidsentiment/internal/config"
	"vidsentiment/internal/language"
	"vidsentiment/internal/logging"
)

// Classifier routes text to the English or Vietnamese scorer. It is safe for
// concurrent use when its Vietnamese backend is.
type Classifier struct {
	english    *Vader
	vietnamese VietnameseBackend
	logger     *slog.Logger
}

// NewClassifier assembles a classifier from explicit parts. A nil Vietnamese
// backend defaults to the built-in lexicon.
func NewClassifier(english *Vader, vietnamese VietnameseBackend, logger *slog.Logger) *Classifier {
	if english == nil {
		english = NewVader(DefaultPositiveThreshold, DefaultNegativeThreshold)
	}
	if vietnamese == nil {
		vietnamese = NewLexicon()
	}
	return &Classifier{
		english:    english,
		vietnamese: vietnamese,
		logger:     logging.NewComponentLogger(logger, "sentiment"),
	}
}

// NewFromConfig builds the process-wide classifier. A Vietnamese backend that
// fails to initialise degrades to the lexicon instead of failing startup.
func NewFromConfig(cfg config.Sentiment, logger *slog.Logger) *Classifier {
	english := NewVader(cfg.PositiveThreshold, cfg.NegativeThreshold)
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	var backend VietnameseBackend
	switch cfg.VietnameseBackend {
	case config.VietnameseBackendHTTP:
		backend = NewHTTPBackend(cfg.VietnameseEndpoint, timeout, logger)
	case config.VietnameseBackendHugot:
		hugotBackend, err := NewHugotBackend(cfg.VietnameseModelPath)
		if err != nil {
			logging.WarnWithContext(logger, "vietnamese model unavailable; using lexicon", "sentiment_backend_fallback",
				logging.Error(err),
				logging.String("model_path", cfg.VietnameseModelPath),
				logging.String(logging.FieldImpact, "vietnamese comments are scored with the built-in lexicon"),
				logging.String(logging.FieldErrorHint, "build with -tags ORT and check sentiment.vietnamese_model_path"),
			)
		} else {
			backend = hugotBackend
		}
	}
	return NewClassifier(english, backend, logger)
}

// VietnameseBackendName reports which backend handles Vietnamese text.
func (c *Classifier) VietnameseBackendName() string {
	return c.vietnamese.Name()
}

// Classify returns the sentiment of text in lang. Vietnamese backend failures
// yield Neutral. Languages other than "en" and "vi" are scored as English.
// lang may be any spelling the language package recognises ("vie", "en-US").
func (c *Classifier) Classify(ctx context.Context, text, lang string) Label {
	switch language.Normalize(lang) {
	case LanguageEnglish:
		return c.english.Classify(text)
	case LanguageVietnamese:
		return c.classifyVietnamese(ctx, text)
	default:
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "unsupported language; falling back to english", "sentiment_language_fallback",
			logging.String("language", lang),
			logging.String(logging.FieldImpact, "text scored with the english lexicon"),
			logging.String(logging.FieldErrorHint, "only en and vi are supported"),
		)
		return c.english.Classify(text)
	}
}

func (c *Classifier) classifyVietnamese(ctx context.Context, text string) Label {
	raw, err := c.vietnamese.Classify(ctx, text)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "vietnamese classification failed", "sentiment_classify_failed",
			logging.Error(err),
			logging.String("backend", c.vietnamese.Name()),
			logging.String(logging.FieldImpact, "comment counted as neutral"),
		)
		return Neutral
	}
	label, err := ParseLabel(raw)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "vietnamese classifier returned unknown label", "sentiment_label_unknown",
			logging.Error(err),
			logging.String("backend", c.vietnamese.Name()),
			logging.String(logging.FieldImpact, "comment counted as neutral"),
		)
		return Neutral
	}
	return label
}

// Close releases backend resources such as an onnxruntime session.
func (c *Classifier) Close() error {
	if closer, ok := c.vietnamese.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
