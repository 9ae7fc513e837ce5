package drip

import (
	"testing"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// d is a helper for test to create decimals from literals.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newSeries builds a series of consecutive days starting on 2024-01-01 from closes and dividends.
func newSeries(t *testing.T, closes, dividends []string) *PriceSeries {
	t.Helper()
	if len(closes) != len(dividends) {
		t.Fatalf("newSeries: %d closes for %d dividends", len(closes), len(dividends))
	}
	start := date.New(2024, 1, 1)
	obs := make([]Observation, len(closes))
	for i := range closes {
		obs[i] = Observation{Date: start.Add(i), Close: d(closes[i]), Dividend: d(dividends[i])}
	}
	s, err := NewPriceSeries("TEST", "USD", obs)
	if err != nil {
		t.Fatalf("NewPriceSeries() unexpected error = %v", err)
	}
	return s
}

func equalDecimals(a, b []decimal.Decimal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func decimals(ss ...string) []decimal.Decimal {
	res := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		res[i] = d(s)
	}
	return res
}
