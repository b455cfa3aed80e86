// Package language normalises language identifiers.
//
// Comments are tagged "en" or "vi" by detection, but configuration and
// remote services may spell languages as ISO 639-2 codes or English words
// ("vie", "Vietnamese"). Everything is folded to ISO 639-1 here before it
// reaches the sentiment router or the transcription backends.
package language
