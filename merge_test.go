package drip

import (
	"testing"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

func TestMerge(t *testing.T) {
	fri, mon, tue := date.New(2024, 3, 1), date.New(2024, 3, 4), date.New(2024, 3, 5)
	closes := map[date.Date]decimal.Decimal{
		tue: d("12"),
		fri: d("10"),
		mon: d("11"),
	}
	dividends := []Dividend{
		{Date: mon, Amount: d("0.5")},
		{Date: date.New(2024, 3, 3), Amount: d("0.25")}, // sunday, moved to monday
		{Date: date.New(2024, 3, 6), Amount: d("1")},    // after the last day
	}

	s, err := Merge("abc", "EUR", closes, dividends)
	if err != nil {
		t.Fatalf("Merge() unexpected error = %v", err)
	}
	want := []Observation{
		{Date: fri, Close: d("10"), Dividend: d("0")},
		{Date: mon, Close: d("11"), Dividend: d("0.75")},
		{Date: tue, Close: d("12"), Dividend: d("0")},
	}
	if s.Len() != len(want) {
		t.Fatalf("Merge() len = %d, want %d", s.Len(), len(want))
	}
	for i, o := range s.All() {
		w := want[i]
		if o.Date != w.Date || !o.Close.Equal(w.Close) || !o.Dividend.Equal(w.Dividend) {
			t.Errorf("Merge()[%d] = %v %v %v, want %v %v %v", i, o.Date, o.Close, o.Dividend, w.Date, w.Close, w.Dividend)
		}
	}
	if s.Ticker() != "ABC" || s.Currency() != "EUR" {
		t.Errorf("Merge() ticker, currency = %q, %q", s.Ticker(), s.Currency())
	}
}

func TestMerge_Empty(t *testing.T) {
	s, err := Merge("abc", "", nil, []Dividend{{Date: date.New(2024, 1, 1), Amount: d("1")}})
	if err != nil {
		t.Fatalf("Merge() unexpected error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Merge() len = %d, want 0", s.Len())
	}
}
