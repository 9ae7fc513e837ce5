// Package chart renders an Analysis as an interactive HTML chart.
//
// The chart overlays the closing price (left axis), the reinvested value (left
// axis) and the dividends paid (bars, right axis) on the same dates.
package chart

import (
	"fmt"
	"io"

	"github.com/etnz/drip"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"
)

// Series names, as they appear in the legend and tooltip.
const (
	CloseSeries    = "Close"
	ValueSeries    = "Reinvested value"
	DividendSeries = "Dividend"
	GainSeries     = "Gain"
)

const (
	closeColor    = "#1f77b4"
	valueColor    = "#2ca02c"
	dividendColor = "#ff7f0e"
	gainColor     = "#7f7f7f"
)

// minDividendAxis is the minimum upper bound of the dividend axis, so that small dividends
// do not look like big ones.
var minDividendAxis = decimal.NewFromInt(3)

// New builds the chart of a.
//
// Without dividend, the bars and the right axis are skipped.
func New(a *drip.Analysis) *charts.Line {
	sim := a.Simulation
	points := sim.Points()

	dates := make([]string, len(points))
	closes := make([]opts.LineData, len(points))
	values := make([]opts.LineData, len(points))
	gains := make([]opts.LineData, len(points))
	dividends := make([]opts.BarData, len(points))
	top, maxDividend := decimal.Zero, decimal.Zero
	for i, p := range points {
		dates[i] = p.Date.String()
		closes[i] = opts.LineData{Value: float(p.Close)}
		values[i] = opts.LineData{Value: float(p.Value)}
		gains[i] = opts.LineData{Value: float(p.Gain)}
		top = decimal.Max(top, p.Close, p.Value)
		if p.Dividend.IsPositive() {
			dividends[i] = opts.BarData{Value: float(p.Dividend)}
			maxDividend = decimal.Max(maxDividend, p.Dividend)
		} else {
			dividends[i] = opts.BarData{Value: nil}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s dividend reinvestment", a.Series.Ticker()),
			Width:     "1200px",
			Height:    "640px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s dividend reinvestment", a.Series.Ticker()),
			Subtitle: fmt.Sprintf("%s, starting with %s share(s)", a.Series.Range(), sim.InitialShares()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: axisName("Price", a.Series.Currency()),
			Min:  0,
			Max:  float(top.Mul(decimal.NewFromFloat(1.5)).Ceil()),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	line.SetXAxis(dates).
		AddSeries(CloseSeries, closes,
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: "rgba(31, 119, 180, 0.2)"}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: closeColor}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: closeColor}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		).
		AddSeries(ValueSeries, values,
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: "rgba(44, 160, 44, 0.2)"}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: valueColor}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: valueColor}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		).
		// The gain is not drawn, it is only there for the axis tooltip.
		AddSeries(GainSeries, gains,
			charts.WithLineStyleOpts(opts.LineStyle{Color: "transparent"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: gainColor}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)

	if !maxDividend.IsPositive() {
		return line
	}

	line.ExtendYAxis(opts.YAxis{
		Name: axisName("Dividend", a.Series.Currency()),
		Min:  0,
		Max:  float(decimal.Max(minDividendAxis, maxDividend.Mul(decimal.NewFromFloat(1.2)))),
	})
	bar := charts.NewBar()
	bar.SetXAxis(dates).AddSeries(DividendSeries, dividends,
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: dividendColor}),
	)
	line.Overlap(bar)
	return line
}

// Render writes the HTML page of the chart of a to w.
func Render(w io.Writer, a *drip.Analysis) error {
	return New(a).Render(w)
}

func axisName(name, currency string) string {
	if currency == "" {
		return name
	}
	return name + " (" + currency + ")"
}

// float rounds v for display.
func float(v decimal.Decimal) float64 { return v.Round(4).InexactFloat64() }
