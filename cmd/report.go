package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/drip"
	"github.com/etnz/drip/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	queryFlags
	raw  bool
	rows bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the outcome of reinvesting the dividends" }
func (*reportCmd) Usage() string {
	return `drip report [-ticker] <ticker> [-start <date>] [-end <date>] [-rows] [-raw]

  Displays the final shares and value of the reinvested position, compared to
  simply holding the initial shares, and the dividends paid each year.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.queryFlags.SetFlags(f)
	f.BoolVar(&c.rows, "rows", false, "Also list every dividend reinvested.")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := c.analyze(ctx, f)
	if a == nil {
		return status
	}
	s := drip.Summarize(a)
	md := renderer.RenderSummary(&s, renderer.SummaryRenderOptions{Rows: c.rows})
	if c.raw {
		fmt.Println(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
