package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"mercator-hq/gambit/pkg/engine"
	"mercator-hq/gambit/pkg/tactics"
)

// analyzeRequest is the body of POST /v1/analyze.
type analyzeRequest struct {
	FEN      string `json:"fen"`
	Baseline int    `json:"baseline"`
}

// validateRequest is the body of POST /v1/validate.
type validateRequest struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tree, err := s.analyzer.Analyze(r.Context(), req.FEN, req.Baseline)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	report, err := s.validator.Validate(r.Context(), req.FEN, req.Move)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleQueueMetrics serves the queue counters snapshot consumed by
// operational tooling.
func (s *Server) handleQueueMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, s.queue.Metrics())
}

// writeAnalysisError maps domain errors onto HTTP status codes: bad input
// is the caller's fault, an unreachable engine is a service problem.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var (
		posErr   *engine.InvalidPositionError
		moveErr  *tactics.IllegalMoveError
		startErr *engine.StartError
	)
	switch {
	case errors.As(err, &posErr), errors.As(err, &moveErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &startErr):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
