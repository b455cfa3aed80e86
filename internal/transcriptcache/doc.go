// Package transcriptcache stores finished transcripts so repeat analyses of
// the same video skip download, extraction, and transcription.
//
// Entries are keyed by video URL plus the transcription backend, model, and
// language that produced them. SQLite is the default store. Valkey can be
// used when several API instances share work.
package transcriptcache
