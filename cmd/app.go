// Package cmd implements the drip command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/drip"
	"github.com/etnz/drip/alpaca"
	"github.com/etnz/drip/config"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/eodhd"
	"github.com/etnz/drip/yahoo"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&chartCmd{}, "simulation")
	c.Register(&reportCmd{}, "simulation")
	c.Register(&exportCmd{}, "simulation")

	c.Register(&eodhdCmd{}, "providers")

	c.Register(&assistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var globals = newGlobalFlags(flag.CommandLine)

// Verbose reports whether logs should be printed.
func Verbose() bool { return globals.verbose }

// globalFlags are the flags shared by all commands, they override the configuration.
type globalFlags struct {
	f             *flag.FlagSet
	config        string
	provider      string
	cacheDir      string
	initialShares string
	sanitize      string
	adjusted      bool
	verbose       bool
}

func newGlobalFlags(f *flag.FlagSet) *globalFlags {
	g := &globalFlags{f: f}
	f.StringVar(&g.config, "config", "", "Path to a yaml or toml configuration file.")
	f.StringVar(&g.provider, "provider", "", "Market data provider: yahoo, eodhd or alpaca. Defaults to yahoo.")
	f.StringVar(&g.cacheDir, "cache-dir", "", "Directory of the HTTP cache. Defaults to the temporary directory.")
	f.StringVar(&g.initialShares, "initial-shares", "", "Number of shares bought on the first day. Defaults to 1.")
	f.StringVar(&g.sanitize, "sanitize", "", "What to do with days without a valid close: none, drop or ffill. Defaults to drop.")
	f.BoolVar(&g.adjusted, "adjusted", false, "Use split and dividend adjusted closes (yahoo only).")
	f.BoolVar(&g.verbose, "v", false, "Print logs.")
	return g
}

// Load loads the configuration file and environment, then applies the flags that were set.
func (g *globalFlags) Load() (*config.Config, error) {
	cfg, err := config.Load(g.config)
	if err != nil {
		return nil, err
	}
	var errs []error
	g.f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "provider":
			cfg.Provider = g.provider
		case "cache-dir":
			cfg.CacheDir = g.cacheDir
		case "initial-shares":
			v, err := decimal.NewFromString(g.initialShares)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid -initial-shares %q: %w", g.initialShares, err))
			}
			cfg.InitialShares = v
		case "sanitize":
			if err := cfg.Sanitize.Set(g.sanitize); err != nil {
				errs = append(errs, err)
			}
		case "adjusted":
			cfg.Adjusted = g.adjusted
		}
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// newProvider returns the provider selected by cfg.
func newProvider(cfg *config.Config) (drip.Provider, error) {
	switch cfg.Provider {
	case config.EODHD:
		return eodhd.New(cfg.EODHDKey, cfg.CacheDir), nil
	case config.Alpaca:
		return alpaca.New(cfg.AlpacaKey, cfg.AlpacaSecret, cfg.AlpacaDataURL, cfg.AlpacaFeed)
	case config.Yahoo:
		return yahoo.New(cfg.CacheDir, cfg.Adjusted), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// loadConfig loads the configuration and reports errors to the user.
func loadConfig() (*config.Config, subcommands.ExitStatus) {
	cfg, err := globals.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return cfg, subcommands.ExitSuccess
}

// queryFlags are the flags of the commands that run a simulation.
type queryFlags struct {
	ticker     string
	start, end date.Date
}

func (q *queryFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&q.ticker, "ticker", "", "Ticker of the security, it can also be passed as the first argument.")
	f.Var(&q.start, "start", "First day of the simulation. Defaults to "+drip.DefaultStart.String()+". See 'drip topic dates' for the format.")
	f.Var(&q.end, "end", "Last day of the simulation. Defaults to "+drip.DefaultEnd.String()+".")
}

// query returns the query defined by the flags, cfg provides the default range.
func (q *queryFlags) query(f *flag.FlagSet, cfg *config.Config) drip.Query {
	ticker := q.ticker
	if ticker == "" {
		ticker = f.Arg(0)
	}
	if !q.start.IsZero() {
		cfg.Start = q.start
	}
	if !q.end.IsZero() {
		cfg.End = q.end
	}
	return cfg.Query(ticker)
}

// analyze runs the analysis requested by the flags and reports errors to the user.
func (q *queryFlags) analyze(ctx context.Context, f *flag.FlagSet) (*drip.Analysis, subcommands.ExitStatus) {
	cfg, status := loadConfig()
	if cfg == nil {
		return nil, status
	}
	query := q.query(f, cfg)
	if err := query.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}

	p, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	log.Printf("analyzing %s with %s", query, cfg.Provider)

	a, err := drip.Analyze(ctx, p, query, cfg.Options())
	switch {
	case errors.Is(err, drip.ErrNoData):
		fmt.Fprintf(os.Stderr, "Error: no data for %s, check the ticker and the dates.\n", query)
		return nil, subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	if a.Sanitized > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d day(s) without a valid close were %s.\n", a.Sanitized, sanitizedVerb(cfg.Sanitize))
	}
	return a, subcommands.ExitSuccess
}

func sanitizedVerb(p drip.SanitizePolicy) string {
	if p == drip.ForwardFill {
		return "filled with the previous close"
	}
	return "dropped"
}

// printMarkdown prints md rendered for the terminal.
func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

// renderMarkdown renders md for the terminal, it falls back to the raw markdown.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		log.Println("warning cannot create markdown renderer:", err)
		return md + "\n"
	}
	out, err := r.Render(md)
	if err != nil {
		log.Println("warning cannot render markdown:", err)
		return md + "\n"
	}
	return out
}
