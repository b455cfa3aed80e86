// Package preflight provides readiness checks for the network services that
// vidsentiment can be configured to use: the OpenAI transcription API, the
// remote Vietnamese classifier, and the transcript cache.
//
// `vidsentiment deps` renders these alongside the binary checks from the
// deps package. Each check is gated by its config selection so services that
// are not in use are skipped.
package preflight
