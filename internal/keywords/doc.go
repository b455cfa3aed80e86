// Package keywords builds the keyword cloud from comment text.
//
// Tokens are lower-cased runs of letters, marks, digits, and underscores.
// Stopword tables are plain lookups keyed by language code so callers can
// swap in richer lists without touching the aggregation code.
package keywords
