package provider

import (
	"errors"
	"fmt"

	"ratechart/internal/currency"
)

// ErrFutureDate is returned when a table is requested for a date after today.
var ErrFutureDate = errors.New("date is in the future")

// NetworkError reports a request that could not be completed.
type NetworkError struct {
	URL        string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rate API %s returned status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("rate API request %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response that is not a usable rate table.
type MalformedResponseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed rate API response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed rate API response from %s: %s", e.URL, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UnknownCurrencyError reports a quote currency missing from a rate table.
type UnknownCurrencyError struct {
	Base  currency.Code
	Quote currency.Code
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no %s rate in %s table", e.Quote, e.Base)
}
