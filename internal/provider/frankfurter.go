package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ratechart/internal/currency"
)

var _ RatesFetcher = (*FrankfurterFetcher)(nil)

// DefaultFrankfurterURL is the public Frankfurter API root.
const DefaultFrankfurterURL = "https://api.frankfurter.dev/v1"

// FrankfurterFetcher fetches rate tables from the Frankfurter API.
type FrankfurterFetcher struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewFrankfurterFetcher creates a new FrankfurterFetcher.
func NewFrankfurterFetcher(baseURL string, timeoutSec int) *FrankfurterFetcher {
	if baseURL == "" {
		baseURL = DefaultFrankfurterURL
	}
	return &FrankfurterFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		now:     time.Now,
	}
}

type frankfurterResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// tableURL builds /latest?base=XXX or /YYYY-MM-DD?base=XXX.
func (p *FrankfurterFetcher) tableURL(base currency.Code, on time.Time) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse frankfurter base URL: %w", err)
	}
	segment := "latest"
	if !on.IsZero() {
		segment = Day(on).Format(DateLayout)
	}
	u = u.JoinPath(segment)
	q := u.Query()
	q.Set("base", string(base))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch retrieves the table for base on the given date, or the latest table when on is zero.
func (p *FrankfurterFetcher) Fetch(ctx context.Context, base currency.Code, on time.Time) (*RateTable, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if !on.IsZero() && Day(on).After(Day(p.now())) {
		return nil, fmt.Errorf("%s: %w", Day(on).Format(DateLayout), ErrFutureDate)
	}

	reqURL, err := p.tableURL(base, on)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("frankfurter API request creation failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := errors.New(string(body))
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &NetworkError{URL: reqURL, StatusCode: resp.StatusCode, Err: statusErr}
		}
		return nil, &MalformedResponseError{URL: reqURL, Reason: fmt.Sprintf("status %d", resp.StatusCode), Err: statusErr}
	}

	var result frankfurterResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &MalformedResponseError{URL: reqURL, Reason: "decode body", Err: err}
	}
	if result.Rates == nil {
		return nil, &MalformedResponseError{URL: reqURL, Reason: "missing rates field"}
	}
	for code, r := range result.Rates {
		if r <= 0 {
			return nil, &MalformedResponseError{URL: reqURL, Reason: fmt.Sprintf("non-positive rate %v for %s", r, code)}
		}
	}

	// Upstream may answer a weekend or holiday with the previous business day.
	date := Day(on)
	if d, err := time.Parse(DateLayout, result.Date); err == nil {
		date = d.UTC()
	} else if on.IsZero() {
		date = Day(p.now())
	}

	return NewRateTable(base, date, result.Rates), nil
}
