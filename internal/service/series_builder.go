package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ratechart/internal/currency"
	"ratechart/internal/provider"
)

// RatePoint is the rate of a fixed pair on one day.
type RatePoint struct {
	Date time.Time
	Rate float64
}

// RateSeries is a gap-free run of daily rates for one pair, oldest first.
type RateSeries struct {
	Base   currency.Code
	Quote  currency.Code
	Points []RatePoint
}

// Len returns the number of points.
func (s *RateSeries) Len() int { return len(s.Points) }

// SeriesBuilder assembles trailing daily series from per-day rate tables.
type SeriesBuilder struct {
	fetcher provider.RatesFetcher
	log     *zap.SugaredLogger
	workers int
	now     func() time.Time
}

// SeriesOption configures a SeriesBuilder.
type SeriesOption func(*SeriesBuilder)

// WithWorkers bounds the number of concurrent day fetches. One keeps the build sequential.
func WithWorkers(n int) SeriesOption {
	return func(b *SeriesBuilder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) SeriesOption {
	return func(b *SeriesBuilder) { b.now = now }
}

// NewSeriesBuilder creates a sequential SeriesBuilder unless WithWorkers says otherwise.
func NewSeriesBuilder(fetcher provider.RatesFetcher, logger *zap.SugaredLogger, opts ...SeriesOption) *SeriesBuilder {
	b := &SeriesBuilder{
		fetcher: fetcher,
		log:     logger,
		workers: 1,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *SeriesBuilder) today() time.Time {
	return provider.Day(b.now())
}

// Build returns the quote rate for each of the last days calendar days ending today.
// Every day is fetched through its explicit date, today included. The first failing
// day aborts the build with a SeriesIncompleteError.
func (b *SeriesBuilder) Build(ctx context.Context, base, quote currency.Code, days int) (*RateSeries, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	today := b.today()
	if base == quote {
		b.log.Debugw("Same currency pair, constant series", "currency", base, "days", days)
		return constantSeries(base, quote, today, days), nil
	}

	points := make([]RatePoint, days)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	// Requests go out most recent first; slots are filled oldest first.
	for offset := range days {
		date := today.AddDate(0, 0, -offset)
		slot := days - 1 - offset
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &SeriesIncompleteError{Date: date, Err: err}
			}
			rate, err := b.fetchDay(gctx, base, quote, date)
			if err != nil {
				return &SeriesIncompleteError{Date: date, Err: err}
			}
			points[slot] = RatePoint{Date: date, Rate: rate}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.log.Errorw("Series build failed", "base", base, "quote", quote, "days", days, "error", err)
		return nil, err
	}

	b.log.Debugw("Series built", "base", base, "quote", quote, "days", days)
	return &RateSeries{Base: base, Quote: quote, Points: points}, nil
}

func (b *SeriesBuilder) fetchDay(ctx context.Context, base, quote currency.Code, date time.Time) (float64, error) {
	b.log.Debugw("Fetching rate table", "base", base, "date", date.Format(provider.DateLayout))
	table, err := b.fetcher.Fetch(ctx, base, date)
	if err != nil {
		return 0, err
	}
	return table.Rate(quote)
}

func constantSeries(base, quote currency.Code, today time.Time, days int) *RateSeries {
	points := make([]RatePoint, days)
	for i := range points {
		points[i] = RatePoint{Date: today.AddDate(0, 0, i-days+1), Rate: 1}
	}
	return &RateSeries{Base: base, Quote: quote, Points: points}
}
