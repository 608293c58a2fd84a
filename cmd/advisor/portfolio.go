package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"portfolioAdvisor/internal/config"
	"portfolioAdvisor/internal/portfolio"
	"portfolioAdvisor/internal/quotes"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show current holdings with live P/L" }
func (*portfolioCmd) Usage() string {
	return `portfolio

  Prints each holding with its current price, value, day move and
  profit/loss against the cost basis.
`
}
func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (c *portfolioCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(config.DBPath())
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	holdings, err := store.Holdings()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if len(holdings) == 0 {
		fmt.Println("Portfolio is empty. Add a position: advisor add -ticker AAPL -shares 10")
		return subcommands.ExitSuccess
	}

	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		tickers = append(tickers, h.Ticker)
	}
	quoteMap := quotes.NewClient().Fetch(tickers)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tSHARES\tPRICE\tVALUE\tDAY\tP/L\tP/L %")

	total, totalCost := 0.0, 0.0
	for _, p := range portfolio.Positions(holdings, quoteMap) {
		fmt.Fprintf(w, "%s\t%g\t$%.2f\t$%.2f\t%+.2f%%\t$%+.2f\t%+.1f%%\n",
			p.Holding.Ticker, p.Holding.Shares, p.Quote.CurrentPrice,
			p.Value, p.Quote.DayChangePct, p.PnL, p.PnLPct)
		total += p.Value
		totalCost += p.Cost
	}
	for _, h := range holdings {
		if _, ok := quoteMap[h.Ticker]; !ok {
			fmt.Fprintf(w, "%s\t%g\t-\t-\t-\t-\t-\n", h.Ticker, h.Shares)
		}
	}
	w.Flush()

	fmt.Printf("\nTotal: $%.2f", total)
	if totalCost > 0 {
		fmt.Printf(" (P/L $%+.2f / %+.1f%%)", total-totalCost, (total-totalCost)/totalCost*100)
	}
	fmt.Println()
	return subcommands.ExitSuccess
}
