package drip

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/drip/date"
)

// Default query bounds.
var (
	DefaultStart = date.New(2015, 1, 1)
	DefaultEnd   = date.New(2024, 1, 1)
)

// Query is a request for a single ticker over a date range.
type Query struct {
	Ticker string
	Range  date.Range
}

// NewQuery returns a normalized query.
func NewQuery(ticker string, from, to date.Date) Query {
	return Query{Ticker: strings.ToUpper(strings.TrimSpace(ticker)), Range: date.Between(from, to)}
}

// Validate checks the query can be sent to a provider.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Ticker) == "" {
		return ErrEmptyTicker
	}
	return q.Range.Validate()
}

func (q Query) String() string { return fmt.Sprintf("%s %s", q.Ticker, q.Range) }

// Provider fetches daily series from a market-data source.
//
// Implementations return observations sorted by date, within r (boundaries
// included), with a zero dividend on days without payment. An unknown ticker
// is either reported as ErrNotFound or as an empty series.
type Provider interface {
	FetchDailySeries(ctx context.Context, ticker string, r date.Range) (*PriceSeries, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ticker string, r date.Range) (*PriceSeries, error)

func (f ProviderFunc) FetchDailySeries(ctx context.Context, ticker string, r date.Range) (*PriceSeries, error) {
	return f(ctx, ticker, r)
}
