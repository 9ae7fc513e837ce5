// Package alpaca fetches daily bars and cash dividends from the Alpaca market-data API.
package alpaca

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// marketData is the part of *marketdata.Client in use.
type marketData interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
	GetCorporateActions(req marketdata.GetCorporateActionsRequest) (marketdata.CorporateActions, error)
}

// Provider implements drip.Provider for US equities.
type Provider struct {
	client marketData
	feed   marketdata.Feed
	loc    *time.Location
}

// New returns a Provider authenticated with key and secret.
// dataURL overrides the default data endpoint when not empty, feed is "iex" (free) or "sip".
func New(key, secret, dataURL, feed string) (*Provider, error) {
	if key == "" || secret == "" {
		return nil, errors.New("alpaca: missing api key or secret")
	}
	opts := marketdata.ClientOpts{
		APIKey:    key,
		APISecret: secret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return newProvider(marketdata.NewClient(opts), feed)
}

func newProvider(client marketData, feed string) (*Provider, error) {
	switch feed = strings.ToLower(feed); feed {
	case "":
		feed = "iex"
	case "iex", "sip":
	default:
		return nil, fmt.Errorf("alpaca: unknown feed %q, want iex or sip", feed)
	}
	// Daily bars are stamped at midnight, New York time.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Printf("warning cannot load New York time zone, using UTC: %v", err)
		loc = time.UTC
	}
	return &Provider{client: client, feed: marketdata.Feed(feed), loc: loc}, nil
}

// FetchDailySeries implements drip.Provider with raw (unadjusted) closes.
// The marketdata client does not take a context, requests cannot be cancelled.
func (p *Provider) FetchDailySeries(_ context.Context, ticker string, r date.Range) (*drip.PriceSeries, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	var (
		bars    []marketdata.Bar
		actions marketdata.CorporateActions
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		bars, err = p.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Adjustment: marketdata.Raw,
			Start:      r.From.Time(p.loc),
			End:        r.To.Add(1).Time(p.loc).Add(-time.Second),
			Feed:       p.feed,
		})
		return
	})
	g.Go(func() (err error) {
		actions, err = p.client.GetCorporateActions(marketdata.GetCorporateActionsRequest{
			Symbols: []string{symbol},
			Types:   []string{"cash_dividend"},
			Start:   toCivil(r.From),
			End:     toCivil(r.To),
		})
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("alpaca %s: %w", symbol, err)
	}

	closes := make(map[date.Date]decimal.Decimal, len(bars))
	for _, b := range bars {
		day := date.Of(b.Timestamp.In(p.loc))
		if r.Contains(day) {
			closes[day] = decimal.NewFromFloat(b.Close)
		}
	}
	dividends := make([]drip.Dividend, 0, len(actions.CashDividends))
	for _, cd := range actions.CashDividends {
		if !strings.EqualFold(cd.Symbol, symbol) {
			continue
		}
		dividends = append(dividends, drip.Dividend{Date: fromCivil(cd.ExDate), Amount: decimal.NewFromFloat(cd.Rate)})
	}
	return drip.Merge(symbol, "USD", closes, dividends)
}

func toCivil(d date.Date) civil.Date { return civil.Date{Year: d.Year(), Month: d.Month(), Day: d.Day()} }

func fromCivil(d civil.Date) date.Date { return date.New(d.Year, d.Month, d.Day) }
