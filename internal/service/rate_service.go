// Package service implements rate lookup and historical series assembly.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ratechart/internal/config"
	"ratechart/internal/currency"
	"ratechart/internal/provider"
)

// RateServiceInterface defines the operations available to presentation layers.
type RateServiceInterface interface {
	Rate(ctx context.Context, base, quote string) (*Quote, error)
	History(ctx context.Context, base, quote string, days int) (*RateSeries, error)
	Currencies() []currency.Code
}

// Quote is a single pair rate with the effective date of the table it came from.
type Quote struct {
	Base  currency.Code
	Quote currency.Code
	Rate  float64
	Date  time.Time
}

// RateService answers scalar and historical rate queries.
type RateService struct {
	fetcher     provider.RatesFetcher
	series      *SeriesBuilder
	log         *zap.SugaredLogger
	defaultDays int
	maxDays     int
}

// NewRateService creates a new RateService
func NewRateService(fetcher provider.RatesFetcher, series *SeriesBuilder, logger *zap.SugaredLogger, seriesCfg config.SeriesConfig) *RateService {
	return &RateService{
		fetcher:     fetcher,
		series:      series,
		log:         logger,
		defaultDays: seriesCfg.DefaultDays,
		maxDays:     seriesCfg.MaxDays,
	}
}

// Rate returns today's rate of quote in units of base.
func (s *RateService) Rate(ctx context.Context, base, quote string) (*Quote, error) {
	b, q, err := currency.ParsePair(base, quote)
	if err != nil {
		return nil, err
	}

	today := s.series.today()
	if b == q {
		return &Quote{Base: b, Quote: q, Rate: 1, Date: today}, nil
	}

	table, err := s.fetcher.Fetch(ctx, b, today)
	if err != nil {
		s.log.Errorw("Rate table fetch failed", "base", b, "error", err)
		return nil, err
	}
	rate, err := table.Rate(q)
	if err != nil {
		s.log.Warnw("Quote missing from rate table", "base", b, "quote", q)
		return nil, err
	}

	s.log.Infow("Rate fetched", "base", b, "quote", q, "rate", rate, "date", table.Date().Format(provider.DateLayout))
	return &Quote{Base: b, Quote: q, Rate: rate, Date: table.Date()}, nil
}

// History returns the trailing series for the pair. Zero days selects the configured default.
func (s *RateService) History(ctx context.Context, base, quote string, days int) (*RateSeries, error) {
	b, q, err := currency.ParsePair(base, quote)
	if err != nil {
		return nil, err
	}

	if days == 0 {
		days = s.defaultDays
	}
	if s.maxDays > 0 && days > s.maxDays {
		return nil, ErrTooManyDays
	}

	return s.series.Build(ctx, b, q, days)
}

// Currencies lists the supported currency codes.
func (s *RateService) Currencies() []currency.Code {
	return currency.Supported()
}

var _ RateServiceInterface = (*RateService)(nil)
