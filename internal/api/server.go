// Package api serves the read-only metrics endpoints over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"exchange-metrics/internal/observability"
	"exchange-metrics/internal/series"
)

// Server holds the HTTP handlers for the metrics endpoints.
type Server struct {
	series *series.Service
	logger *log.Logger
}

// NewServer creates a Server backed by the given series service.
func NewServer(svc *series.Service, logger *log.Logger) *Server {
	return &Server{series: svc, logger: logger}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/balance", s.instrument("balance", s.handleBalance))
	mux.HandleFunc("/balance/latest", s.instrument("balance_latest", s.handleLatestBalance))
	mux.HandleFunc("/volume", s.instrument("volume", s.handleVolume))
	mux.HandleFunc("/volume/24hr", s.instrument("volume_24hr", s.handleVolume24h))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())

	return mux
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument restricts the endpoint to GET and records request metrics.
func (s *Server) instrument(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		observability.RecordHTTPRequest(endpoint, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// optionalExchangeID parses the exchange_id query parameter if present.
// ok is false when the parameter is present but not an integer.
func optionalExchangeID(r *http.Request) (*int64, bool) {
	raw := r.URL.Query().Get("exchange_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}
