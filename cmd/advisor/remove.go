package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"portfolioAdvisor/internal/config"
)

type removeCmd struct {
	ticker string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a ticker from the portfolio" }
func (*removeCmd) Usage() string {
	return `remove -ticker <ticker>

  Deletes the position entirely.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
}

func (c *removeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker := strings.ToUpper(strings.TrimSpace(c.ticker))
	if ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required.")
		return subcommands.ExitUsageError
	}

	store, closeStore, err := openStore(config.DBPath())
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	removed, err := store.RemoveHolding(ticker)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "No holding found for %s\n", ticker)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %s\n", ticker)
	return subcommands.ExitSuccess
}
