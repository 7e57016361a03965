package api

import (
	"context"

	"ratechart/internal/currency"
	"ratechart/internal/service"
)

// mockRateService implements service.RateServiceInterface for testing.
type mockRateService struct {
	rateFunc    func(ctx context.Context, base, quote string) (*service.Quote, error)
	historyFunc func(ctx context.Context, base, quote string, days int) (*service.RateSeries, error)
}

func (m *mockRateService) Rate(ctx context.Context, base, quote string) (*service.Quote, error) {
	return m.rateFunc(ctx, base, quote)
}

func (m *mockRateService) History(ctx context.Context, base, quote string, days int) (*service.RateSeries, error) {
	return m.historyFunc(ctx, base, quote, days)
}

func (m *mockRateService) Currencies() []currency.Code {
	return currency.Supported()
}
