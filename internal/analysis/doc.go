// Package analysis assembles video sentiment reports.
//
// Runtime holds the process-wide collaborators (video source, transcription
// service, sentiment classifier, transcript cache, topic model) and is built
// once. Each request gets its own Aggregator, which runs the pipeline
// sequentially: fetch, optional content analysis, comment classification,
// statistics, keyword cloud, topics, and conclusion. Failures in optional steps
// become report warnings. Only invalid input, caller cancellation, or an
// unexpected video source error abort the request.
package analysis
