// Package eodhd fetches daily closes and dividends from the EOD Historical Data API (https://eodhd.com).
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/httpcache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com"

// Provider implements drip.Provider on top of EODHD end-of-day and dividend APIs.
type Provider struct {
	Key     string       // api token
	BaseURL string       // "" is DefaultBaseURL
	Client  *http.Client // nil is a daily caching client in the temp dir
}

// New returns a Provider using key, caching responses in cacheDir for the day.
func New(key, cacheDir string) *Provider {
	return &Provider{Key: key, Client: httpcache.NewClient(cacheDir, date.Daily)}
}

// Ticker returns the EODHD ticker for symbol: a symbol without exchange suffix is
// assumed to be a US one.
func Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !strings.Contains(symbol, ".") {
		return symbol + ".US"
	}
	return symbol
}

// FetchDailySeries implements drip.Provider.
//
// Prices and dividends are fetched concurrently, dividends are attached to the
// first trading day on or after their ex-date.
func (p *Provider) FetchDailySeries(ctx context.Context, ticker string, r date.Range) (*drip.PriceSeries, error) {
	if p.Key == "" {
		return nil, errors.New("eodhd: missing api key")
	}
	code := Ticker(ticker)

	var (
		closes    map[date.Date]decimal.Decimal
		dividends []dividend
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		closes, err = p.fetchPrices(ctx, code, r.From, r.To)
		return
	})
	g.Go(func() (err error) {
		dividends, err = p.fetchDividends(ctx, code, r.From, r.To)
		return
	})
	if err := g.Wait(); err != nil {
		var serr *httpcache.StatusError
		if errors.As(err, &serr) && serr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s on eodhd", drip.ErrNotFound, code)
		}
		return nil, fmt.Errorf("eodhd %s: %w", code, err)
	}

	divs := make([]drip.Dividend, 0, len(dividends))
	currency := ""
	for _, d := range dividends {
		divs = append(divs, drip.Dividend{Date: d.Date, Amount: d.Value})
		if currency == "" {
			currency = d.Currency
		}
	}
	return drip.Merge(ticker, currency, closes, divs)
}

func (p *Provider) baseURL() string {
	if p.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(p.BaseURL, "/")
}

func (p *Provider) client() *http.Client {
	if p.Client == nil {
		return httpcache.NewClient("", date.Daily)
	}
	return p.Client
}
