package drip

import (
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Summary holds the headline figures of an Analysis.
type Summary struct {
	Ticker   string
	Currency string
	Status   Status
	Range    date.Range // first to last trading day
	Days     int        // number of trading days

	StartClose, EndClose     Money
	InitialShares            decimal.Decimal
	FinalShares              decimal.Decimal
	InitialValue, FinalValue Money
	BuyAndHold               Money // value of the initial shares at the last close, without reinvestment
	Uplift                   Money // FinalValue - BuyAndHold
	UpliftPercent            Percent
	PriceReturn              Percent // price change over the range
	TotalReturn              Percent // value change with dividends reinvested

	DividendCount     int
	DividendsPerShare Money // sum of all dividends per share
	Years             []AnnualDividends
	Events            []Point // days paying a dividend
}

// AnnualDividends aggregates the dividends paid in a calendar year.
type AnnualDividends struct {
	Year      int
	Payments  int
	Amount    Money   // per share
	Change    Percent // amount change compared to the year before
	HasChange bool    // false for the first year of the range
}

// Summarize computes the Summary of a.
func Summarize(a *Analysis) Summary {
	sim, cur := a.Simulation, a.Series.Currency()
	first, last := sim.At(0), sim.Last()

	buyAndHold := sim.InitialShares().Mul(last.Close)
	s := Summary{
		Ticker:        a.Series.Ticker(),
		Currency:      cur,
		Status:        a.Status,
		Range:         a.Series.Range(),
		Days:          sim.Len(),
		StartClose:    M(first.Close, cur),
		EndClose:      M(last.Close, cur),
		InitialShares: sim.InitialShares(),
		FinalShares:   last.Shares,
		InitialValue:  M(first.Value, cur),
		FinalValue:    M(last.Value, cur),
		BuyAndHold:    M(buyAndHold, cur),
		Uplift:        M(last.Value.Sub(buyAndHold), cur),
		UpliftPercent: ratio(last.Value, buyAndHold),
		PriceReturn:   ratio(last.Close, first.Close),
		TotalReturn:   ratio(last.Value, first.Value),
	}

	total := decimal.Zero
	for _, p := range sim.points {
		if !p.Dividend.IsPositive() {
			continue
		}
		s.DividendCount++
		total = total.Add(p.Dividend)
		s.Events = append(s.Events, p)
	}
	s.DividendsPerShare = M(total, cur)
	s.Years = annualDividends(s.Events, cur)
	return s
}

// annualDividends groups dividend events by calendar year.
func annualDividends(events []Point, cur string) []AnnualDividends {
	var years []AnnualDividends
	for _, p := range events {
		y := p.Date.Year()
		if len(years) == 0 || years[len(years)-1].Year != y {
			years = append(years, AnnualDividends{Year: y, Amount: M(0, cur)})
		}
		last := &years[len(years)-1]
		last.Payments++
		last.Amount = last.Amount.Add(M(p.Dividend, cur))
	}
	for i := 1; i < len(years); i++ {
		if years[i-1].Year != years[i].Year-1 {
			continue // a year without payment breaks the comparison
		}
		years[i].Change = ratio(years[i].Amount.Decimal(), years[i-1].Amount.Decimal())
		years[i].HasChange = true
	}
	return years
}
