// internal/server/server.go
// Package server exposes the scoring domains over HTTP. The surface is thin:
// decode, delegate to the domain handler, encode. All failures render as the
// standard error envelope.
package server

import (
	"encoding/json"
	"net/http"

	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/scoring/fraud"
	"marketplace-scoring/internal/scoring/matching"
	"marketplace-scoring/internal/scoring/pricing"
	"marketplace-scoring/pkg/registry"
)

// Server routes scoring requests to the domain handlers.
type Server struct {
	matching *matching.Handler
	pricing  *pricing.Handler
	fraud    *fraud.Handler
	registry *registry.Registry
	logger   logger.Logger
}

func New(m *matching.Handler, p *pricing.Handler, f *fraud.Handler, reg *registry.Registry, log logger.Logger) *Server {
	return &Server{
		matching: m,
		pricing:  p,
		fraud:    f,
		registry: reg,
		logger:   log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

// Routes registers the scoring endpoints on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/matching/rank", s.handleMatchingRank)
	mux.HandleFunc("POST /v1/pricing/estimate", s.handlePricingEstimate)
	mux.HandleFunc("POST /v1/fraud/score", s.handleFraudScore)
	mux.HandleFunc("GET /v1/domains/{domain}", s.handleDomainIntrospect)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleMatchingRank(w http.ResponseWriter, r *http.Request) {
	var input matching.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, errors.NewInvalidInputError("malformed request body: "+err.Error()))
		return
	}

	output, err := s.matching.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handlePricingEstimate(w http.ResponseWriter, r *http.Request) {
	var input pricing.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, errors.NewInvalidInputError("malformed request body: "+err.Error()))
		return
	}

	output, err := s.pricing.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleFraudScore(w http.ResponseWriter, r *http.Request) {
	var input fraud.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, errors.NewInvalidInputError("malformed request body: "+err.Error()))
		return
	}

	output, err := s.fraud.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleDomainIntrospect(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("domain")
	domain, ok := s.registry.Find(name)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":   "unknown domain",
			"domain":  name,
			"domains": s.registry.Names(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, domain)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	stdErr, ok := err.(*errors.StandardError)
	if !ok {
		stdErr = errors.NewInvalidInputError(err.Error())
	}

	status := http.StatusInternalServerError
	switch stdErr.Code {
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeQueryExecutionFailed, errors.ErrCodeDatabaseConnectionFailed,
		errors.ErrCodeCacheUnavailable, errors.ErrCodeSearchQueryFailed:
		status = http.StatusServiceUnavailable
	}

	s.logger.Warn("request failed", map[string]interface{}{
		"code":   string(stdErr.Code),
		"status": status,
	})
	s.writeJSON(w, status, stdErr)
}
