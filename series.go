package drip

import (
	"fmt"
	"iter"
	"strings"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Observation is a single trading day: the closing price and the dividend per
// share paid that day (zero on non-payment days).
type Observation struct {
	Date     date.Date
	Close    decimal.Decimal
	Dividend decimal.Decimal
}

// PaysDividend reports whether a dividend is paid on that day.
func (o Observation) PaysDividend() bool { return o.Dividend.IsPositive() }

// PriceSeries is an immutable, strictly chronological series of daily observations
// of a single ticker.
type PriceSeries struct {
	ticker   string
	currency string
	obs      []Observation
}

// NewPriceSeries returns a PriceSeries over a copy of obs.
//
// Dates must be strictly increasing: the series is neither sorted nor deduplicated here,
// that is the provider's job.
func NewPriceSeries(ticker, currency string, obs []Observation) (*PriceSeries, error) {
	for i := 1; i < len(obs); i++ {
		if !obs[i].Date.After(obs[i-1].Date) {
			return nil, fmt.Errorf("%w: %s follows %s", ErrUnsortedSeries, obs[i].Date, obs[i-1].Date)
		}
	}
	s := &PriceSeries{
		ticker:   strings.ToUpper(ticker),
		currency: currency,
		obs:      make([]Observation, len(obs)),
	}
	copy(s.obs, obs)
	return s, nil
}

// Ticker returns the ticker this series is about.
func (s *PriceSeries) Ticker() string { return s.ticker }

// Currency returns the quote currency as reported by the provider, it can be empty.
func (s *PriceSeries) Currency() string { return s.currency }

// Len returns the number of observations. A nil series is empty.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.obs)
}

// At returns the i-th observation.
func (s *PriceSeries) At(i int) Observation { return s.obs[i] }

// Observations returns a copy of all observations.
func (s *PriceSeries) Observations() []Observation {
	res := make([]Observation, s.Len())
	if s != nil {
		copy(res, s.obs)
	}
	return res
}

// All iterates over observations in chronological order.
func (s *PriceSeries) All() iter.Seq2[int, Observation] {
	return func(yield func(int, Observation) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(i, s.obs[i]) {
				return
			}
		}
	}
}

// Range returns the range from the first to the last observation.
func (s *PriceSeries) Range() date.Range {
	if s.Len() == 0 {
		return date.Range{}
	}
	return date.Between(s.obs[0].Date, s.obs[len(s.obs)-1].Date)
}

// Dividends returns the observations that pay a dividend.
func (s *PriceSeries) Dividends() []Observation {
	var res []Observation
	for _, o := range s.All() {
		if o.PaysDividend() {
			res = append(res, o)
		}
	}
	return res
}

// HasDividends reports whether at least one observation pays a dividend.
func (s *PriceSeries) HasDividends() bool {
	for _, o := range s.All() {
		if o.PaysDividend() {
			return true
		}
	}
	return false
}
