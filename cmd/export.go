package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/drip/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	queryFlags
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the simulated series to a parquet or csv file" }
func (*exportCmd) Usage() string {
	return `drip export [-ticker] <ticker> [-start <date>] [-end <date>] -o <file.parquet|file.csv>

  Writes one row per trading day: ticker, date, close, dividend, bought, shares,
  value and gain.
  Without -o the csv is printed on the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file, its extension selects the format: .parquet or .csv.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := c.analyze(ctx, f)
	if a == nil {
		return status
	}
	if c.output == "" {
		if err := export.WriteCSV(os.Stdout, a); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing csv: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if err := export.WriteFile(c.output, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", a.Query.Ticker, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d day(s) written to %s\n", a.Series.Len(), c.output)
	return subcommands.ExitSuccess
}
