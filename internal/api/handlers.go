package api

import (
	"net/http"
	"strconv"
	"strings"

	"ratechart/internal/provider"
	"ratechart/internal/service"
)

// RateResponse represents the rate of one pair
type RateResponse struct {
	Base  string `json:"base" example:"EUR"`
	Quote string `json:"quote" example:"USD"`
	Rate  string `json:"rate" example:"1.0874"`
	Date  string `json:"date" example:"2026-10-16"`
}

// PointResponse is one day of a history
type PointResponse struct {
	Date string `json:"date" example:"2026-10-16"`
	Rate string `json:"rate" example:"1.0874"`
}

// HistoryResponse represents a trailing daily series, oldest first
type HistoryResponse struct {
	Base   string          `json:"base" example:"EUR"`
	Quote  string          `json:"quote" example:"USD"`
	Points []PointResponse `json:"points"`
}

// CurrenciesResponse lists the supported currency codes
type CurrenciesResponse struct {
	Currencies []string `json:"currencies" example:"AUD,BGN,BRL"`
}

func rateQueryFrom(r *http.Request) RateQuery {
	return RateQuery{
		Base:  strings.TrimSpace(r.URL.Query().Get("base")),
		Quote: strings.TrimSpace(r.URL.Query().Get("quote")),
	}
}

// HandleGetRate godoc
// @Summary Get today's rate for a currency pair
// @Description Fetches today's rate table for the base currency and returns the quote entry. Same-currency pairs return 1 without calling the upstream API.
// @Tags rates
// @Produce json
// @Param base query string true "Base currency code (3 letters)" minlength(3) maxlength(3)
// @Param quote query string true "Quote currency code (3 letters)" minlength(3) maxlength(3)
// @Success 200 {object} RateResponse "Rate found"
// @Failure 400 {object} ErrorResponse "Invalid or unsupported currency code"
// @Failure 404 {object} ErrorResponse "Quote currency missing from the rate table"
// @Failure 502 {object} ErrorResponse "Upstream rate API failed"
// @Failure 504 {object} ErrorResponse "Request deadline expired"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates [get]
func HandleGetRate(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := rateQueryFrom(r)
		if err := validate.Struct(q); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
			return
		}

		quote, err := svc.Rate(r.Context(), q.Base, q.Quote)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, RateResponse{
			Base:  quote.Base.String(),
			Quote: quote.Quote.String(),
			Rate:  formatRate(quote.Rate),
			Date:  quote.Date.Format(provider.DateLayout),
		})
	}
}

// HandleGetHistory godoc
// @Summary Get the trailing daily history of a currency pair
// @Description Fetches one rate table per day for the last `days` days ending today and returns the quote rate of each day, oldest first. Fails as a whole if any day fails.
// @Tags rates
// @Produce json
// @Param base query string true "Base currency code (3 letters)" minlength(3) maxlength(3)
// @Param quote query string true "Quote currency code (3 letters)" minlength(3) maxlength(3)
// @Param days query int false "Number of days (defaults to the configured window)" minimum(1)
// @Success 200 {object} HistoryResponse "Series built"
// @Failure 400 {object} ErrorResponse "Invalid pair or day count"
// @Failure 404 {object} ErrorResponse "Quote currency missing from a day's rate table"
// @Failure 502 {object} ErrorResponse "Upstream rate API failed for a day"
// @Failure 504 {object} ErrorResponse "Request deadline expired before the series was complete"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/history [get]
func HandleGetHistory(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := HistoryQuery{RateQuery: rateQueryFrom(r)}
		if raw := r.URL.Query().Get("days"); raw != "" {
			days, err := strconv.Atoi(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "days must be an integer"})
				return
			}
			q.Days = days
		}
		if err := validate.Struct(q); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
			return
		}

		series, err := svc.History(r.Context(), q.Base, q.Quote, q.Days)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		points := make([]PointResponse, 0, series.Len())
		for _, p := range series.Points {
			points = append(points, PointResponse{
				Date: p.Date.Format(provider.DateLayout),
				Rate: formatRate(p.Rate),
			})
		}
		writeJSON(w, http.StatusOK, HistoryResponse{
			Base:   series.Base.String(),
			Quote:  series.Quote.String(),
			Points: points,
		})
	}
}

// HandleGetCurrencies godoc
// @Summary List supported currencies
// @Tags rates
// @Produce json
// @Success 200 {object} CurrenciesResponse "Supported codes in alphabetical order"
// @Router /currencies [get]
func HandleGetCurrencies(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes := svc.Currencies()
		out := make([]string, len(codes))
		for i, c := range codes {
			out[i] = c.String()
		}
		writeJSON(w, http.StatusOK, CurrenciesResponse{Currencies: out})
	}
}
