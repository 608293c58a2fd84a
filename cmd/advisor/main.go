package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&runCmd{}, "briefing")

	subcommands.Register(&addCmd{}, "holdings")
	subcommands.Register(&removeCmd{}, "holdings")
	subcommands.Register(&portfolioCmd{}, "holdings")

	subcommands.Register(&suggestionsCmd{}, "suggestions")
	subcommands.Register(&scorecardCmd{}, "suggestions")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
