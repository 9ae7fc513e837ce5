package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/etnz/drip/date"
	"github.com/etnz/drip/httpcache"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// fetchPrices returns the daily close prices for a given EODHD ticker.
// The EODHD ticker format is typically "SYMBOL.EXCHANGECODE".
func (p *Provider) fetchPrices(ctx context.Context, ticker string, from, to date.Date) (map[date.Date]decimal.Decimal, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// bounds are included in the response.
	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", p.baseURL(), url.PathEscape(ticker), url.QueryEscape(p.Key), from, to)
	type Info struct {
		Date  date.Date        `json:"date"`
		Close *decimal.Decimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := httpcache.GetJSON(ctx, p.client(), addr, nil, &content); err != nil {
		return nil, err
	}

	closes := make(map[date.Date]decimal.Decimal, len(content))
	for _, info := range content {
		if info.Close == nil {
			continue
		}
		closes[info.Date] = *info.Close
	}
	return closes, nil
}

// dividend is an entry of the dividend API.
type dividend struct {
	Date     date.Date       `json:"date"` // ex-dividend date, see https://eodhd.com/financial-apis/api-splits-dividends
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// fetchDividends returns the dividend history for a given EODHD ticker.
func (p *Provider) fetchDividends(ctx context.Context, ticker string, from, to date.Date) ([]dividend, error) {
	addr := fmt.Sprintf("%s/api/div/%s?fmt=json&api_token=%s&from=%s&to=%s", p.baseURL(), url.PathEscape(ticker), url.QueryEscape(p.Key), from, to)

	content := make([]dividend, 0)
	if err := httpcache.GetJSON(ctx, p.client(), addr, nil, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// fetchMicToExchangeCode returns a map of MIC to EODHD's internal exchange code.
//
// This is required since EODHD use its own id for exchange places.
func (p *Provider) fetchMicToExchangeCode(ctx context.Context) (map[string]string, error) {
	// https://eodhd.com/api/exchanges-list/?api_token=demo&fmt=json
	// [
	// {
	// 	"Name": "Frankfurt Exchange",
	// 	"Code": "F",
	// 	"OperatingMIC": "XFRA",
	// 	"Country": "Germany",
	// 	"Currency": "EUR",
	//   },
	addr := fmt.Sprintf("%s/api/exchanges-list/?fmt=json&api_token=%s", p.baseURL(), url.QueryEscape(p.Key))

	type Info struct {
		Code         string
		OperatingMIC string // could be a comma separated list of MICs
	}

	content := make([]Info, 0)
	if err := httpcache.GetJSON(ctx, p.client(), addr, nil, &content); err != nil {
		return nil, err
	}
	result := make(map[string]string)
	for _, info := range content {
		for _, mic := range strings.Split(info.OperatingMIC, ",") {
			if mic = strings.TrimSpace(mic); mic != "" {
				result[mic] = info.Code
			}
		}
	}
	return result, nil
}
