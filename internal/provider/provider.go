// Package provider implements the upstream rate lookup: one HTTP call per rate table.
package provider

import (
	"context"
	"maps"
	"time"

	"ratechart/internal/currency"
)

// RatesFetcher retrieves the full rate table for a base currency.
// A zero on requests the latest published table.
type RatesFetcher interface {
	Fetch(ctx context.Context, base currency.Code, on time.Time) (*RateTable, error)
}

// RateTable holds every quote rate published for one base currency on one date.
// It is never modified after creation.
type RateTable struct {
	base  currency.Code
	date  time.Time
	rates map[string]float64
}

// NewRateTable copies rates into a new table.
func NewRateTable(base currency.Code, date time.Time, rates map[string]float64) *RateTable {
	return &RateTable{
		base:  base,
		date:  date,
		rates: maps.Clone(rates),
	}
}

// Base returns the currency all rates are relative to.
func (t *RateTable) Base() currency.Code { return t.base }

// Date returns the effective date of the table.
func (t *RateTable) Date() time.Time { return t.date }

// Len returns the number of quote entries.
func (t *RateTable) Len() int { return len(t.rates) }

// Rates returns a copy of the quote → rate mapping.
func (t *RateTable) Rates() map[string]float64 { return maps.Clone(t.rates) }

// Rate returns the rate for quote. The base itself is always 1.
func (t *RateTable) Rate(quote currency.Code) (float64, error) {
	if quote == t.base {
		return 1, nil
	}
	r, ok := t.rates[string(quote)]
	if !ok {
		return 0, &UnknownCurrencyError{Base: t.base, Quote: quote}
	}
	return r, nil
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the upstream date format.
const DateLayout = "2006-01-02"
