package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/etnz/drip/httpcache"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string   `json:"Code"`
	Exchange          string   `json:"Exchange"`
	Name              string   `json:"Name"`
	Type              string   `json:"Type"`
	Country           string   `json:"Country"`
	Currency          string   `json:"Currency"`
	ISIN              string   `json:"ISIN"`
	PreviousClose     float64  `json:"previousClose"`
	PreviousCloseDate string   `json:"previousCloseDate"`
	MICs              []string `json:"-"` // Populated by Search, not from API directly.
}

// Ticker returns the EODHD ticker of the result, ready to be used with FetchDailySeries.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search searches for securities via EOD Historical Data API.
func (p *Provider) Search(ctx context.Context, term string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/api/search/%s?api_token=%s&fmt=json", p.baseURL(), url.PathEscape(term), url.QueryEscape(p.Key))

	var results []SearchResult
	if err := httpcache.GetJSON(ctx, p.client(), addr, nil, &results); err != nil {
		return nil, err
	}
	// Search results reference an exchange code that could match multiple MIC (only for the US apparently).
	mic2Exchange, err := p.fetchMicToExchangeCode(ctx)
	if err != nil {
		return nil, err
	}
	exchange2mic := make(map[string][]string)
	for mic, exchange := range mic2Exchange {
		exchange2mic[exchange] = append(exchange2mic[exchange], mic)
	}
	for i := range results {
		mics := exchange2mic[results[i].Exchange]
		sort.Strings(mics)
		results[i].MICs = mics
	}
	return results, nil
}
