package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ratechart/internal/currency"
)

// Fetch outcomes recorded by InstrumentedFetcher.
const (
	OutcomeOK        = "ok"
	OutcomeNetwork   = "network_error"
	OutcomeMalformed = "malformed"
	OutcomeInvalid   = "invalid"
)

// InstrumentedFetcher wraps a RatesFetcher with prometheus metrics.
type InstrumentedFetcher struct {
	fetcher  RatesFetcher
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewInstrumentedFetcher registers the fetch metrics on reg and returns the decorator.
func NewInstrumentedFetcher(fetcher RatesFetcher, reg prometheus.Registerer, providerName string) (*InstrumentedFetcher, error) {
	labels := prometheus.Labels{"provider": providerName}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "ratechart",
		Subsystem:   "upstream",
		Name:        "fetches_total",
		Help:        "Rate table fetches by outcome.",
		ConstLabels: labels,
	}, []string{"outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "ratechart",
		Subsystem:   "upstream",
		Name:        "fetch_duration_seconds",
		Help:        "Rate table fetch latency.",
		ConstLabels: labels,
		Buckets:     prometheus.DefBuckets,
	})

	for _, c := range []prometheus.Collector{requests, latency} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register %s fetch metrics: %w", providerName, err)
		}
	}

	return &InstrumentedFetcher{
		fetcher:  fetcher,
		requests: requests,
		latency:  latency,
	}, nil
}

// Fetch delegates to the wrapped fetcher and records the outcome and latency.
func (p *InstrumentedFetcher) Fetch(ctx context.Context, base currency.Code, on time.Time) (*RateTable, error) {
	start := time.Now()
	table, err := p.fetcher.Fetch(ctx, base, on)
	p.latency.Observe(time.Since(start).Seconds())
	p.requests.WithLabelValues(Outcome(err)).Inc()
	return table, err
}

// Outcome classifies a fetch error into one of the Outcome* labels.
func Outcome(err error) string {
	var netErr *NetworkError
	var malErr *MalformedResponseError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &netErr):
		return OutcomeNetwork
	case errors.As(err, &malErr):
		return OutcomeMalformed
	default:
		return OutcomeInvalid
	}
}

var _ RatesFetcher = (*InstrumentedFetcher)(nil)
