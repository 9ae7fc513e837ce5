package cmd

import (
	"flag"
	"io"

	"github.com/etnz/drip/config"
	"github.com/etnz/drip/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commands registered in c.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		root.Sub[cmd.Name()] = commandCompletion(cmd)
	})
	return root
}

func commandCompletion(cmd subcommands.Command) *complete.Command {
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	cmd.SetFlags(f)
	cc := &complete.Command{Flags: predictFlags(f)}
	switch cmd.(type) {
	case *topicCmd:
		topics, _ := docs.All()
		cc.Args = predict.Set(append(topics, docs.Readme))
	case *eodhdCmd:
		cc.Sub = map[string]*complete.Command{"search": commandCompletion(&eodhdSearchCmd{})}
	}
	return cc
}

// predictFlags predicts the values of the flags in f.
func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		switch fl.Name {
		case "config":
			flags[fl.Name] = predict.Or(predict.Files("*.yaml"), predict.Files("*.yml"), predict.Files("*.toml"))
		case "cache-dir":
			flags[fl.Name] = predict.Dirs("*")
		case "provider":
			flags[fl.Name] = predict.Set{config.Yahoo, config.EODHD, config.Alpaca}
		case "sanitize":
			flags[fl.Name] = predict.Set{"none", "drop", "ffill"}
		case "o":
			flags[fl.Name] = predict.Files("*")
		default:
			if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[fl.Name] = predict.Nothing
			} else {
				flags[fl.Name] = predict.Something
			}
		}
	})
	return flags
}
