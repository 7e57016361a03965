// Package currency defines the closed set of currency codes the application can quote.
package currency

import (
	"errors"
	"slices"
	"strings"
)

// Code is an ISO 4217 currency code from the supported set.
type Code string

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }

// ErrInvalidFormat indicates the input is not a three-letter alphabetic code.
var ErrInvalidFormat = errors.New("invalid currency code format")

// ErrUnsupported is returned when a well-formed code is not in the supported set.
var ErrUnsupported = errors.New("unsupported currency")

var supported = map[Code]struct{}{
	"AUD": {}, "BGN": {}, "BRL": {}, "CAD": {}, "CHF": {}, "CNY": {}, "CZK": {},
	"DKK": {}, "EUR": {}, "GBP": {}, "HKD": {}, "HRK": {}, "HUF": {}, "IDR": {}, "ILS": {},
	"INR": {}, "JPY": {}, "KRW": {}, "MXN": {}, "MYR": {}, "NOK": {}, "NZD": {},
	"PHP": {}, "PLN": {}, "RON": {}, "RUB": {}, "SEK": {}, "SGD": {}, "THB": {},
	"TRY": {}, "USD": {}, "ZAR": {},
}

// Supported returns the supported codes in alphabetical order.
func Supported() []Code {
	codes := make([]Code, 0, len(supported))
	for c := range supported {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// IsValidFormat checks whether a string looks like a 3-letter currency code (any case).
func IsValidFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// IsSupported reports whether c belongs to the supported set.
func IsSupported(c Code) bool {
	_, ok := supported[c]
	return ok
}

// Validate returns ErrUnsupported for codes outside the supported set.
func (c Code) Validate() error {
	if !IsSupported(c) {
		return ErrUnsupported
	}
	return nil
}

// Parse normalizes s (case-insensitive, surrounding spaces ignored) into a supported Code.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if !IsValidFormat(s) {
		return "", ErrInvalidFormat
	}
	c := Code(strings.ToUpper(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// ParsePair parses base and quote codes, returning the first error encountered.
func ParsePair(base, quote string) (b, q Code, err error) {
	if b, err = Parse(base); err != nil {
		return "", "", err
	}
	if q, err = Parse(quote); err != nil {
		return "", "", err
	}
	return b, q, nil
}
