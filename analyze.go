package drip

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// Status tells the presentation layer what kind of result an Analysis holds.
type Status int

const (
	// StatusOK is a simulation with at least one reinvested dividend.
	StatusOK Status = iota
	// StatusNoDividends is a simulation over a series that pays no dividend: the share count is flat.
	StatusNoDividends
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoDividends:
		return "no dividends"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Err returns ErrNoDividends for StatusNoDividends and nil otherwise.
func (s Status) Err() error {
	if s == StatusNoDividends {
		return ErrNoDividends
	}
	return nil
}

// Options tune Analyze.
type Options struct {
	InitialShares decimal.Decimal // zero means one share
	Sanitize      SanitizePolicy
}

// Analysis is the outcome of a successful query.
type Analysis struct {
	Query      Query
	Series     *PriceSeries
	Simulation *Simulation
	Status     Status
	Sanitized  int // observations dropped or filled before simulating
}

// Analyze fetches the query from p, sanitizes the series and simulates the reinvestment.
//
// An empty result from the provider, or a ticker the provider does not know, is
// reported as ErrNoData: it is terminal for this query and must not be retried.
// A series without dividends is not an error, the returned Analysis has
// StatusNoDividends.
func Analyze(ctx context.Context, p Provider, q Query, opts Options) (*Analysis, error) {
	q = NewQuery(q.Ticker, q.Range.From, q.Range.To)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	initial := opts.InitialShares
	if initial.IsZero() {
		initial = decimal.NewFromInt(1)
	}

	series, err := p.FetchDailySeries(ctx, q.Ticker, q.Range)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w for %s: %v", ErrNoData, q, err)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", q, err)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, q)
	}

	series, fixed, err := Sanitize(series, opts.Sanitize)
	if err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w for %s: no valid close", ErrNoData, q)
	}

	sim, err := Simulate(series, initial)
	if err != nil {
		return nil, fmt.Errorf("cannot simulate %s: %w", q, err)
	}

	status := StatusOK
	if !series.HasDividends() {
		status = StatusNoDividends
		log.Printf("warning %s has no dividend in %s", q.Ticker, q.Range)
	}
	return &Analysis{
		Query:      q,
		Series:     series,
		Simulation: sim,
		Status:     status,
		Sanitized:  fixed,
	}, nil
}
