package service

import (
	"context"
	"sync"
	"time"

	"ratechart/internal/currency"
	"ratechart/internal/provider"
)

// stubFetcher records the dates it was asked for and delegates to fetchFunc.
type stubFetcher struct {
	mu        sync.Mutex
	calls     []time.Time
	fetchFunc func(base currency.Code, on time.Time) (*provider.RateTable, error)
}

func (s *stubFetcher) Fetch(_ context.Context, base currency.Code, on time.Time) (*provider.RateTable, error) {
	s.mu.Lock()
	s.calls = append(s.calls, on)
	s.mu.Unlock()
	return s.fetchFunc(base, on)
}

func (s *stubFetcher) Calls() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.calls...)
}

// rateFor derives a distinct, deterministic rate per day.
func rateFor(on time.Time) float64 {
	return 1 + float64(on.YearDay())/1000
}

func tableFor(base currency.Code, on time.Time, quote currency.Code) *provider.RateTable {
	return provider.NewRateTable(base, on, map[string]float64{string(quote): rateFor(on)})
}
