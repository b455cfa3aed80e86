// Package sentiment classifies comment and transcript text as Positive,
// Negative, or Neutral.
//
// English text is scored with VADER (govader) after markdown and links are
// stripped. Vietnamese text is delegated to a pluggable VietnameseBackend:
// a built-in lexicon, a remote HTTP classifier, or a local ONNX model loaded
// through hugot when the binary is built with the ORT tag. Language detection
// is a diacritic heuristic.
package sentiment
