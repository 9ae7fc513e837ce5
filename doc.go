// Package drip simulates a dividend reinvestment plan on a single security.
//
// Given the daily closing prices and dividends of a ticker over a date range,
// it starts from an initial number of shares and, on every dividend day,
// buys the fractional shares the dividend pays for at that day's close.
//
// The main entry points are:
//   - PriceSeries: an immutable, strictly chronological series of daily
//     observations (close and dividend per share).
//   - Simulate: the pure reinvestment recurrence over a PriceSeries.
//   - Provider: the market-data source a PriceSeries is fetched from.
//   - Analyze: fetches, sanitizes and simulates a Query in one call, and
//     reports whether the result has dividends at all.
//   - Summarize: derives the headline figures of an Analysis for reports.
//
// All arithmetic is decimal, so that a value is always exactly the product of
// the shares held and the closing price.
package drip
