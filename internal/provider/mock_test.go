package provider

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ratechart/internal/currency"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, base currency.Code, on time.Time) (*RateTable, error) {
	args := m.Called(ctx, base, on)
	table, _ := args.Get(0).(*RateTable)
	return table, args.Error(1)
}
