// Package yahoo fetches daily closes and dividends from the Yahoo Finance chart API.
//
// No key is required, which makes it the default provider.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/httpcache"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Yahoo Finance API root.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// userAgent is required, Yahoo rejects requests from the default go client.
const userAgent = "Mozilla/5.0 (compatible; drip/1.0)"

// Provider implements drip.Provider on the chart API.
type Provider struct {
	BaseURL  string       // "" is DefaultBaseURL
	Client   *http.Client // nil is a daily caching client in the temp dir
	Adjusted bool         // use closes adjusted for splits and dividends
}

// New returns a Provider caching responses in cacheDir for the day.
func New(cacheDir string, adjusted bool) *Provider {
	return &Provider{Client: httpcache.NewClient(cacheDir, date.Daily), Adjusted: adjusted}
}

// FetchDailySeries implements drip.Provider.
func (p *Provider) FetchDailySeries(ctx context.Context, ticker string, r date.Range) (*drip.PriceSeries, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	// period2 is exclusive.
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div",
		p.baseURL(), url.PathEscape(ticker), r.From.Time(time.UTC).Unix(), r.To.Add(1).Time(time.UTC).Unix())

	body, err := httpcache.Get(ctx, p.client(), addr, http.Header{"User-Agent": {userAgent}})
	var serr *httpcache.StatusError
	if errors.As(err, &serr) && serr.Code == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s on yahoo", drip.ErrNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	s, err := p.parse(ticker, body, r)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	return s, nil
}

// parse reads a chart response into a series restricted to r.
func (p *Provider) parse(ticker string, body []byte, r date.Range) (*drip.PriceSeries, error) {
	// {"chart": {"result": [{
	//     "meta": {"currency": "USD", "exchangeTimezoneName": "America/New_York", ...},
	//     "timestamp": [1704205800, ...],
	//     "events": {"dividends": {"1707489000": {"amount": 0.24, "date": 1707489000}}},
	//     "indicators": {"quote": [{"close": [185.64, ...]}], "adjclose": [{"adjclose": [...]}]}
	// }], "error": null}}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode chart: %w", err)
	}
	if msg, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && msg != nil {
		return nil, fmt.Errorf("%w: %v", drip.ErrNotFound, msg)
	}

	currency, _ := get[string]("$.chart.result[0].meta.currency", jobj)
	loc := time.UTC
	if tz, err := get[string]("$.chart.result[0].meta.exchangeTimezoneName", jobj); err == nil {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		} else {
			log.Printf("warning unknown exchange timezone %q for %s, using UTC", tz, ticker)
		}
	}

	// A result without timestamp is an empty range.
	timestamps, _ := get[[]any]("$.chart.result[0].timestamp", jobj)
	closePath := "$.chart.result[0].indicators.quote[0].close"
	if p.Adjusted {
		closePath = "$.chart.result[0].indicators.adjclose[0].adjclose"
	}
	closes, err := get[[]any](closePath, jobj)
	if err != nil && len(timestamps) > 0 {
		return nil, err
	}
	if len(closes) != len(timestamps) {
		return nil, fmt.Errorf("%d closes for %d timestamps", len(closes), len(timestamps))
	}

	prices := make(map[date.Date]decimal.Decimal, len(timestamps))
	for i, ts := range timestamps {
		sec, err := toDecimal(ts)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %v: %w", ts, err)
		}
		day := date.Of(time.Unix(sec.IntPart(), 0).In(loc))
		if !r.Contains(day) || closes[i] == nil {
			continue // null closes are days without trading
		}
		c, err := toDecimal(closes[i])
		if err != nil {
			return nil, fmt.Errorf("invalid close on %s: %w", day, err)
		}
		prices[day] = c
	}

	var dividends []drip.Dividend
	events, _ := get[map[string]any]("$.chart.result[0].events.dividends", jobj)
	for key, ev := range events {
		amount, err1 := jsonpath.Get("$.amount", ev)
		when, err2 := jsonpath.Get("$.date", ev)
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("invalid dividend %s: %w", key, err)
		}
		a, err := toDecimal(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid dividend amount %v: %w", amount, err)
		}
		sec, err := toDecimal(when)
		if err != nil {
			return nil, fmt.Errorf("invalid dividend date %v: %w", when, err)
		}
		day := date.Of(time.Unix(sec.IntPart(), 0).In(loc))
		if !r.Contains(day) {
			continue
		}
		dividends = append(dividends, drip.Dividend{Date: day, Amount: a})
	}
	return drip.Merge(ticker, currency, prices, dividends)
}

// get evaluates path on jobj and casts the result.
func get[T any](path string, jobj any) (T, error) {
	var zero T
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(T)
	if !ok {
		return zero, fmt.Errorf("error parsing %q: unexpected %T", path, jval)
	}
	return val, nil
}

// toDecimal converts a decoded JSON number.
func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
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
