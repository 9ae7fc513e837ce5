package drip

import (
	"errors"
	"testing"

	"github.com/etnz/drip/date"
)

func TestNewPriceSeries_Order(t *testing.T) {
	day := date.New(2024, 3, 1)
	testCases := []struct {
		name    string
		dates   []date.Date
		wantErr bool
	}{
		{"empty", nil, false},
		{"single", []date.Date{day}, false},
		{"increasing with gaps", []date.Date{day, day.Add(1), day.Add(4)}, false},
		{"duplicate", []date.Date{day, day}, true},
		{"decreasing", []date.Date{day.Add(1), day}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			obs := make([]Observation, len(tc.dates))
			for i, on := range tc.dates {
				obs[i] = Observation{Date: on, Close: d("1")}
			}
			_, err := NewPriceSeries("x", "", obs)
			if tc.wantErr != errors.Is(err, ErrUnsortedSeries) {
				t.Errorf("NewPriceSeries() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestPriceSeries_Immutable(t *testing.T) {
	obs := []Observation{{Date: date.New(2024, 1, 2), Close: d("10")}}
	s, err := NewPriceSeries("aapl", "USD", obs)
	if err != nil {
		t.Fatalf("NewPriceSeries() unexpected error = %v", err)
	}
	obs[0].Close = d("99")
	if !s.At(0).Close.Equal(d("10")) {
		t.Errorf("series changed with its input slice: %v", s.At(0).Close)
	}
	out := s.Observations()
	out[0].Close = d("98")
	if !s.At(0).Close.Equal(d("10")) {
		t.Errorf("series changed with its output slice: %v", s.At(0).Close)
	}
	if s.Ticker() != "AAPL" {
		t.Errorf("Ticker() = %q, want AAPL", s.Ticker())
	}
}

func TestPriceSeries_Dividends(t *testing.T) {
	s := newSeries(t, []string{"10", "11", "12", "13"}, []string{"0", "0.5", "0", "0.25"})
	divs := s.Dividends()
	if len(divs) != 2 {
		t.Fatalf("Dividends() len = %d, want 2", len(divs))
	}
	if divs[0].Date != date.New(2024, 1, 2) || divs[1].Date != date.New(2024, 1, 4) {
		t.Errorf("Dividends() dates = %v, %v", divs[0].Date, divs[1].Date)
	}
	if !s.HasDividends() {
		t.Error("HasDividends() = false, want true")
	}
	if newSeries(t, []string{"1"}, []string{"0"}).HasDividends() {
		t.Error("HasDividends() = true, want false")
	}
	if got, want := s.Range(), date.Between(date.New(2024, 1, 1), date.New(2024, 1, 4)); got != want {
		t.Errorf("Range() = %v, want %v", got, want)
	}
}
