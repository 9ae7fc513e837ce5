package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/drip/config"
	"github.com/etnz/drip/eodhd"
	"github.com/google/subcommands"
)

// eodhdSearchCmd implements the "eodhd search" command.
type eodhdSearchCmd struct {
	eodhdApiFlag string
}

func (*eodhdSearchCmd) Name() string     { return "search" }
func (*eodhdSearchCmd) Synopsis() string { return "searches for securities on EODHD" }
func (*eodhdSearchCmd) Usage() string {
	return `drip eodhd search <search term>

  Searches for securities via EOD Historical Data API and prints
  ready-to-use 'drip' commands for the results.

  Requires the EODHD_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *eodhdSearchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.eodhdApiFlag, "eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the configuration. You can get one at https://eodhd.com/")
}

func (c *eodhdSearchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	cfg, err := config.Load(globals.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	key := c.eodhdApiFlag
	if key == "" {
		key = cfg.EODHDKey
	}
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable\n")
		return subcommands.ExitFailure
	}
	cacheDir := cfg.CacheDir
	if globals.cacheDir != "" {
		cacheDir = globals.cacheDir
	}

	results, err := eodhd.New(key, cacheDir).Search(ctx, searchTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), searchTerm)

	for _, item := range results {
		fmt.Printf("➡️   Name       : %s (%s)\n", item.Name, item.Code)
		fmt.Printf("    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		fmt.Printf("    ISIN        : %s, MIC: %s\n", item.ISIN, strings.Join(item.MICs, ", "))
		fmt.Printf("    Prev. Close : %.2f on %s\n", item.PreviousClose, item.PreviousCloseDate)
		fmt.Printf("    $ drip -provider eodhd report %s\n\n", item.Ticker())
	}

	return subcommands.ExitSuccess
}
