package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	inputTagPattern     = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>]*)?/?>`)
	angleEscaper        = strings.NewReplacer("<", "&lt;", ">", "&gt;")
)

// RemoveLinks keeps markdown link text and drops bare URLs.
func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// PlainText renders markdown to HTML, strips the markup and links, and
// collapses whitespace so VADER sees only prose. Angle brackets that are not
// part of an HTML tag, such as the emoticons "<3" and ">:(", are kept.
func PlainText(input string) string {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: blackfriday.UseXHTML})
	rendered := blackfriday.Run([]byte(escapeStrayAngles(input)), blackfriday.WithNoExtensions(), blackfriday.WithRenderer(renderer))
	stripped := html.UnescapeString(htmlTagPattern.ReplaceAllString(string(rendered), " "))
	return strings.Join(strings.Fields(RemoveLinks(stripped)), " ")
}

// escapeStrayAngles entity-encodes every '<' and '>' outside a well-formed
// tag. The renderer passes valid entities through untouched, so only real
// markup survives as tags in its output.
func escapeStrayAngles(input string) string {
	if !strings.ContainsAny(input, "<>") {
		return input
	}
	var b strings.Builder
	last := 0
	for _, loc := range inputTagPattern.FindAllStringIndex(input, -1) {
		b.WriteString(angleEscaper.Replace(input[last:loc[0]]))
		b.WriteString(input[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(angleEscaper.Replace(input[last:]))
	return b.String()
}
