package api

// AnalyzeRequest is the POST /analyze body. ContentAnalysis defaults to true
// when omitted.
type AnalyzeRequest struct {
	URL             string `json:"url"`
	ContentAnalysis *bool  `json:"content_analysis,omitempty"`
}

// contentAnalysis resolves the optional flag.
func (r AnalyzeRequest) contentAnalysis() bool {
	if r.ContentAnalysis == nil {
		return true
	}
	return *r.ContentAnalysis
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
