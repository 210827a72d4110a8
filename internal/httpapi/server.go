// Package httpapi exposes the scoring engine over HTTP: a ranking endpoint
// that accepts pre-assembled symbol bundles, plus health and Prometheus
// metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/momentum33/stock-analysis-system/internal/analyzer"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/telemetry"
)

// maxRequestBody caps rank request payloads (price history is bulky).
const maxRequestBody = 64 << 20

// Server hosts the HTTP API.
type Server struct {
	engine  *analyzer.Analyzer
	workers int
	srv     *http.Server
}

// New builds a server around a ready analyzer.
func New(engine *analyzer.Analyzer, addr string, workers int) *Server {
	s := &Server{engine: engine, workers: workers}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", telemetry.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/rank", s.handleRank).Methods(http.MethodPost)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.srv.Addr).Msg("http api listening")
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type rankRequest struct {
	Bundles []*domain.Bundle `json:"bundles"`
}

type rankResponse struct {
	Results []*domain.ScoreResult `json:"results"`
	Dropped int                   `json:"dropped"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Bundles) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no bundles provided"})
		return
	}

	results := s.engine.AnalyzeBatch(r.Context(), req.Bundles, s.workers)
	writeJSON(w, http.StatusOK, rankResponse{
		Results: results,
		Dropped: len(req.Bundles) - len(results),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("response encode failed")
	}
}
