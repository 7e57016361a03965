package service

import (
	"errors"
	"fmt"
	"time"

	"ratechart/internal/provider"
)

// ErrInvalidDays indicates a non-positive series length.
var ErrInvalidDays = errors.New("days must be at least 1")

// ErrTooManyDays indicates a series length above the configured maximum.
var ErrTooManyDays = errors.New("days exceeds the allowed maximum")

// SeriesIncompleteError reports the day whose lookup aborted a series build.
type SeriesIncompleteError struct {
	Date time.Time
	Err  error
}

func (e *SeriesIncompleteError) Error() string {
	return fmt.Sprintf("rate series incomplete at %s: %v", e.Date.Format(provider.DateLayout), e.Err)
}

func (e *SeriesIncompleteError) Unwrap() error { return e.Err }
