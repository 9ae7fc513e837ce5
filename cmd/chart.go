package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/drip"
	"github.com/etnz/drip/chart"
	"github.com/google/subcommands"
)

type chartCmd struct {
	queryFlags
	output string
	force  bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the reinvestment of dividends as an interactive chart" }
func (*chartCmd) Usage() string {
	return `drip chart [-ticker] <ticker> [-start <date>] [-end <date>] [-o <file.html>] [-force]

  Simulates the reinvestment of the dividends of the ticker and writes an HTML
  page with the closing price, the dividends and the value of the position.

  See 'drip topic chart' to read the chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output HTML file. Defaults to <ticker>.html.")
	f.BoolVar(&c.force, "force", false, "Draw the chart even when no dividend was paid.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := c.analyze(ctx, f)
	if a == nil {
		return status
	}
	if a.Status == drip.StatusNoDividends && !c.force {
		fmt.Fprintf(os.Stderr, "Warning: %s paid no dividend between %s and %s, there is nothing to reinvest. Use -force to draw the chart anyway.\n",
			a.Query.Ticker, a.Series.Range().From, a.Series.Range().To)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = strings.ToLower(a.Query.Ticker) + ".html"
	}
	w, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating chart file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	if err := chart.Render(w, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart file: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Chart written to %s\n", output)
	return subcommands.ExitSuccess
}
