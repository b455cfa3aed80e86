package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vidsentiment/internal/language"
	"vidsentiment/internal/report"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

const maxCommentWidth = 60

// renderReport formats a report as a sequence of titled tables.
func renderReport(r *report.Report) string {
	var b strings.Builder

	video := [][]string{
		{"URL", r.Video.URL},
		{"Title", r.Video.Title},
		{"Uploader", r.Video.Uploader},
		{"Views", optionalInt(r.Video.ViewCount)},
		{"Likes", optionalInt(r.Video.LikeCount)},
		{"Duration", optionalSeconds(r.Video.DurationSeconds)},
		{"Content sentiment", optionalString(r.Video.DerivedSentiment)},
		{"Content summary", optionalString(r.Video.ContentSummary)},
	}
	writeSection(&b, renderTable("Video", []string{"Field", "Value"}, video, nil))

	stats := [][]string{
		{"Positive", formatPercent(r.SentimentStatistics.Positive)},
		{"Negative", formatPercent(r.SentimentStatistics.Negative)},
		{"Neutral", formatPercent(r.SentimentStatistics.Neutral)},
	}
	writeSection(&b, renderTable("Comment sentiment", []string{"Sentiment", "Share"}, stats, []columnAlignment{alignLeft, alignRight}))

	if len(r.Comments) > 0 {
		rows := make([][]string, 0, len(r.Comments))
		for _, c := range r.Comments {
			rows = append(rows, []string{c.ID, c.AnalyzedSentiment, language.DisplayName(c.Language), truncate(c.Text, maxCommentWidth)})
		}
		writeSection(&b, renderTable("Comments", []string{"ID", "Sentiment", "Language", "Text"}, rows, nil))
	}

	if len(r.KeywordCloud) > 0 {
		rows := make([][]string, 0, len(r.KeywordCloud))
		for _, k := range r.KeywordCloud {
			rows = append(rows, []string{k.Text, strconv.Itoa(k.Value)})
		}
		writeSection(&b, renderTable("Keywords", []string{"Keyword", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
	}

	if len(r.TopicSentiments) > 0 {
		names := make([]string, 0, len(r.TopicSentiments))
		for name := range r.TopicSentiments {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			topic := r.TopicSentiments[name]
			rows = append(rows, []string{name, topic.Sentiment, strconv.Itoa(topic.Count)})
		}
		writeSection(&b, renderTable("Topics", []string{"Topic", "Sentiment", "Comments"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	}

	fmt.Fprintf(&b, "Conclusion: %s\n", r.Conclusion)
	if len(r.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}

func writeSection(b *strings.Builder, body string) {
	b.WriteString(body)
	b.WriteString("\n\n")
}

func optionalString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func optionalInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func optionalSeconds(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 0, 64) + "s"
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
