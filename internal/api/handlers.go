package api

import (
	"net/http"
	"strconv"

	"exchange-metrics/internal/series"
)

// Query failures never leak store details to the caller; the underlying
// cause is logged with the request parameters instead.
const internalErrorMessage = "internal server error"

// handleBalance serves GET /balance?symbol=&interval=&exchange_id=.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	symbol := params.Get("symbol")
	interval := params.Get("interval")
	if symbol == "" || interval == "" {
		writeError(w, http.StatusBadRequest, "symbol and interval are required")
		return
	}
	exchangeID, ok := optionalExchangeID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "exchange_id must be an integer")
		return
	}

	rows, err := s.series.BalanceSeries(r.Context(), series.BalanceRequest{
		Symbol:     symbol,
		Interval:   interval,
		ExchangeID: exchangeID,
	})
	if err != nil {
		s.logger.Printf("balance query failed (symbol=%s interval=%s): %v", symbol, interval, err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// handleLatestBalance serves GET /balance/latest?exchange_id=.
func (s *Server) handleLatestBalance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("exchange_id")
	exchangeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "exchange_id must be an integer")
		return
	}

	rows, err := s.series.LatestBalance(r.Context(), exchangeID)
	if err != nil {
		s.logger.Printf("latest balance query failed (exchange=%d): %v", exchangeID, err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// handleVolume serves GET /volume?symbol=&interval=&unit=&exchange_id=.
func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	symbol := params.Get("symbol")
	interval := params.Get("interval")
	unit := params.Get("unit")
	if symbol == "" || interval == "" || unit == "" {
		writeError(w, http.StatusBadRequest, "symbol, interval and unit are required")
		return
	}
	exchangeID, ok := optionalExchangeID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "exchange_id must be an integer")
		return
	}

	rows, err := s.series.VolumeSeries(r.Context(), series.VolumeRequest{
		Symbol:     symbol,
		Interval:   interval,
		ExchangeID: exchangeID,
		Unit:       unit,
	})
	if err != nil {
		s.logger.Printf("volume query failed (symbol=%s interval=%s unit=%s): %v", symbol, interval, unit, err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// handleVolume24h serves GET /volume/24hr.
func (s *Server) handleVolume24h(w http.ResponseWriter, r *http.Request) {
	rows, err := s.series.Rolling24h(r.Context())
	if err != nil {
		s.logger.Printf("24hr volume query failed: %v", err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
