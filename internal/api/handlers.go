package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"vidsentiment/internal/logging"
	"vidsentiment/internal/services"
)

const maxRequestBody = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithContext(r.Context(), s.logger)

	var req AnalyzeRequest
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "url is required")
		return
	}

	start := time.Now()
	result, err := s.analyze(r.Context(), req.URL, req.contentAnalysis())
	if err != nil {
		if services.IsClientError(err) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logging.ErrorWithContext(logger, "analysis failed", "analysis_failed",
			logging.Error(err),
			logging.String(logging.FieldVideoURL, req.URL),
		)
		s.writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}
	logger.Info("analysis request served",
		logging.String(logging.FieldVideoURL, req.URL),
		logging.Int("warnings", len(result.Warnings)),
		logging.Duration("elapsed", time.Since(start)),
	)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Detail: message})
}
