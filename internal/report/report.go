package report

import "strings"

// Video describes the analyzed video and any content-derived sentiment.
type Video struct {
	URL              string   `json:"url"`
	Title            string   `json:"title,omitempty"`
	Uploader         string   `json:"uploader,omitempty"`
	ViewCount        *int64   `json:"view_count,omitempty"`
	LikeCount        *int64   `json:"like_count,omitempty"`
	DurationSeconds  *float64 `json:"duration_seconds,omitempty"`
	ContentSummary   *string  `json:"content_summary,omitempty"`
	DerivedSentiment *string  `json:"derived_sentiment,omitempty"`
}

// Comment is a single classified comment.
type Comment struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	AnalyzedSentiment string `json:"analyzed_sentiment"`
	Language          string `json:"language,omitempty"`
}

// SentimentStatistics holds the fraction of comments in each sentiment class.
// The three values sum to 1 when there is at least one comment and are all
// zero otherwise.
type SentimentStatistics struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// KeywordCloudItem is a word and its occurrence count across comment text.
type KeywordCloudItem struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// TopicSentiment is the per-topic summary emitted by a topic model.
type TopicSentiment struct {
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

// Report is the complete analysis result for one video.
type Report struct {
	Video               Video                     `json:"video"`
	Comments            []Comment                 `json:"comments"`
	SentimentStatistics SentimentStatistics       `json:"sentiment_statistics"`
	KeywordCloud        []KeywordCloudItem        `json:"keyword_cloud"`
	Conclusion          string                    `json:"conclusion"`
	Warnings            []string                  `json:"warnings"`
	TopicSentiments     map[string]TopicSentiment `json:"topic_sentiments"`
}

// HasWarning reports whether any warning contains substr (case-insensitive).
func (r *Report) HasWarning(substr string) bool {
	if r == nil {
		return false
	}
	needle := strings.ToLower(substr)
	for _, warning := range r.Warnings {
		if strings.Contains(strings.ToLower(warning), needle) {
			return true
		}
	}
	return false
}

// Statistics computes class ratios from raw counts. It returns all zeros when
// total is zero.
func Statistics(positive, negative, neutral int) SentimentStatistics {
	total := positive + negative + neutral
	if total == 0 {
		return SentimentStatistics{}
	}
	return SentimentStatistics{
		Positive: float64(positive) / float64(total),
		Negative: float64(negative) / float64(total),
		Neutral:  float64(neutral) / float64(total),
	}
}
