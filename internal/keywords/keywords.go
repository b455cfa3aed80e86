package keywords

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinTokenRunes is the shortest token (exclusive) kept in the cloud.
const MinTokenRunes = 2

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Tokenize lower-cases text and splits it into word tokens.
func Tokenize(text string) []string {
	lowered := cases.Lower(language.Und).String(norm.NFC.String(text))
	return wordPattern.FindAllString(lowered, -1)
}

// StopwordTable maps a language code to its stopword set.
type StopwordTable map[string]map[string]struct{}

// DefaultStopwords returns the built-in English and Vietnamese tables.
func DefaultStopwords() StopwordTable {
	return StopwordTable{
		"en": wordSet("the", "a", "an", "is", "it", "of", "to", "and", "in", "for", "this", "that"),
		"vi": wordSet("là", "một", "cái", "của", "và", "trong", "cho", "này", "đó"),
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Filter keeps tokens longer than MinTokenRunes runes that are not stopwords
// for lang. Unknown languages filter by length only.
func (t StopwordTable) Filter(tokens []string, lang string) []string {
	stop := t[lang]
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) <= MinTokenRunes {
			continue
		}
		if _, ok := stop[token]; ok {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}

// Counter accumulates token frequencies while remembering first-seen order.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of each token.
func (c *Counter) Add(tokens ...string) {
	for _, token := range tokens {
		if _, seen := c.counts[token]; !seen {
			c.order = append(c.order, token)
		}
		c.counts[token]++
	}
}

// Entry is a token and its count.
type Entry struct {
	Word  string
	Count int
}

// Top returns up to n entries sorted by descending count. Ties keep
// first-seen order.
func (c *Counter) Top(n int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, word := range c.order {
		entries = append(entries, Entry{Word: word, Count: c.counts[word]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Len reports the number of distinct tokens seen.
func (c *Counter) Len() int {
	return len(c.order)
}
