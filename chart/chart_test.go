package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

func analysis(t *testing.T, closes, dividends []string) *drip.Analysis {
	t.Helper()
	obs := make([]drip.Observation, len(closes))
	for i := range closes {
		obs[i] = drip.Observation{
			Date:     date.New(2024, 1, 1).Add(i),
			Close:    decimal.RequireFromString(closes[i]),
			Dividend: decimal.RequireFromString(dividends[i]),
		}
	}
	s, err := drip.NewPriceSeries("TEST", "USD", obs)
	if err != nil {
		t.Fatalf("NewPriceSeries() unexpected error = %v", err)
	}
	sim, err := drip.Simulate(s, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Simulate() unexpected error = %v", err)
	}
	return &drip.Analysis{Series: s, Simulation: sim}
}

func TestRender(t *testing.T) {
	a := analysis(t, []string{"100", "100", "110"}, []string{"0", "2", "0"})
	var buf bytes.Buffer
	if err := Render(&buf, a); err != nil {
		t.Fatalf("Render() unexpected error = %v", err)
	}
	html := buf.String()
	for _, want := range []string{"TEST dividend reinvestment", CloseSeries, ValueSeries, DividendSeries, GainSeries, "2024-01-03", "112.2"} {
		if !strings.Contains(html, want) {
			t.Errorf("Render() output does not contain %q", want)
		}
	}
}

func TestNew_Axes(t *testing.T) {
	line := New(analysis(t, []string{"100", "100", "110"}, []string{"0", "2", "0"}))
	if got := len(line.YAxisList); got != 2 {
		t.Fatalf("YAxisList len = %d, want 2", got)
	}
	// 1.5 * max(110, 112.2) = 168.3, ceiled
	if got := line.YAxisList[0].Max; got != float64(169) {
		t.Errorf("price axis max = %v, want 169", got)
	}
	// max(3, 1.2*2)
	if got := line.YAxisList[1].Max; got != float64(3) {
		t.Errorf("dividend axis max = %v, want 3", got)
	}
}

func TestNew_NoDividends(t *testing.T) {
	line := New(analysis(t, []string{"10", "11"}, []string{"0", "0"}))
	if got := len(line.YAxisList); got != 1 {
		t.Errorf("YAxisList len = %d, want 1", got)
	}
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		t.Fatalf("Render() unexpected error = %v", err)
	}
	if strings.Contains(buf.String(), `"name":"`+DividendSeries+`"`) {
		t.Error("Render() without dividends should not draw dividend bars")
	}
}
