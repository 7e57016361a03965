// Package api implements the HTTP presentation layer over the rate service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"ratechart/internal/currency"
	"ratechart/internal/provider"
	"ratechart/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid currency code format"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// formatRate renders a rate without float noise.
func formatRate(r float64) string {
	return decimal.NewFromFloat(r).String()
}

// writeServiceError maps service and provider errors onto HTTP statuses.
// A request whose own deadline expired answers 504 whatever the underlying failure.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *provider.UnknownCurrencyError
	var netErr *provider.NetworkError
	var malErr *provider.MalformedResponseError

	switch {
	case errors.Is(r.Context().Err(), context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out: " + err.Error()})
	case errors.Is(err, currency.ErrInvalidFormat),
		errors.Is(err, currency.ErrUnsupported),
		errors.Is(err, service.ErrInvalidDays),
		errors.Is(err, service.ErrTooManyDays),
		errors.Is(err, provider.ErrFutureDate):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &netErr), errors.As(err, &malErr):
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}
