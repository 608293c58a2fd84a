package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"portfolioAdvisor/internal/config"
	"portfolioAdvisor/internal/quotes"
)

type addCmd struct {
	ticker string
	shares float64
	cost   float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add shares of a ticker to the portfolio" }
func (*addCmd) Usage() string {
	return `add -ticker <ticker> -shares <n> [-cost <price>]

  Adds a position. Adding to an existing ticker accumulates the shares and
  recomputes the cost basis as the weighted average of the lots. Without
  -cost, the current market price is used as the cost basis.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares (required, > 0)")
	f.Float64Var(&c.cost, "cost", 0, "Cost basis per share (default: current price)")
}

func (c *addCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker := strings.ToUpper(strings.TrimSpace(c.ticker))
	if ticker == "" || c.shares <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticker and a positive -shares are required.")
		return subcommands.ExitUsageError
	}
	if c.cost < 0 {
		fmt.Fprintln(os.Stderr, "Error: -cost cannot be negative.")
		return subcommands.ExitUsageError
	}

	cost := c.cost
	if cost == 0 {
		price, ok := quotes.NewClient().Current(ticker)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no price available for %s; pass -cost explicitly.\n", ticker)
			return subcommands.ExitFailure
		}
		cost = price
	}

	store, closeStore, err := openStore(config.DBPath())
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := store.AddHolding(ticker, c.shares, cost, time.Now()); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %g shares of %s at $%.2f\n", c.shares, ticker, cost)
	return subcommands.ExitSuccess
}
