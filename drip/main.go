// Command drip simulates the reinvestment of dividends.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/drip/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"

	_ "time/tzdata"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Answers the shell completion requests, or installs it with COMP_INSTALL=1.
	complete.Complete("drip", cmd.Completion(commander))

	flag.Parse()
	if !cmd.Verbose() {
		log.SetOutput(io.Discard)
	}
	os.Exit(int(commander.Execute(context.Background())))
}
