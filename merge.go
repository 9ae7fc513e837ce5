package drip

import (
	"log"
	"slices"
	"sort"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Dividend is a cash dividend per share, dated on its ex-date.
type Dividend struct {
	Date   date.Date
	Amount decimal.Decimal
}

// Merge builds a PriceSeries out of daily closes and dividends as providers report them.
//
// Closes can come in any order. Each dividend is attached to the first trading day
// on or after its ex-date. A dividend after the last trading day is dropped.
// Dividends landing on the same trading day add up.
func Merge(ticker, currency string, closes map[date.Date]decimal.Decimal, dividends []Dividend) (*PriceSeries, error) {
	days := make([]date.Date, 0, len(closes))
	for day := range closes {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b date.Date) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	})

	obs := make([]Observation, len(days))
	for i, day := range days {
		obs[i] = Observation{Date: day, Close: closes[day], Dividend: decimal.Zero}
	}

	for _, div := range dividends {
		i := sort.Search(len(obs), func(i int) bool { return !obs[i].Date.Before(div.Date) })
		if i == len(obs) {
			log.Printf("%s: dividend %s on %s is after the last trading day, dropped", ticker, div.Amount, div.Date)
			continue
		}
		if obs[i].Date != div.Date {
			log.Printf("%s: dividend %s on %s moved to next trading day %s", ticker, div.Amount, div.Date, obs[i].Date)
		}
		obs[i].Dividend = obs[i].Dividend.Add(div.Amount)
	}
	return NewPriceSeries(ticker, currency, obs)
}
