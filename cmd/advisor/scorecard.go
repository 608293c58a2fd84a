package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"portfolioAdvisor/internal/config"
	"portfolioAdvisor/internal/models"
	"portfolioAdvisor/internal/suggest"
)

type scorecardCmd struct{}

func (*scorecardCmd) Name() string     { return "scorecard" }
func (*scorecardCmd) Synopsis() string { return "show the suggestion track record" }
func (*scorecardCmd) Usage() string {
	return `scorecard

  Aggregates the full suggestion history: hit rate, average P/L per
  share, best and worst calls, and a per-confidence breakdown.
`
}
func (*scorecardCmd) SetFlags(*flag.FlagSet) {}

func (c *scorecardCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(config.DBPath())
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	all, err := store.AllSuggestions()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	sc := suggest.ComputeScorecard(all)

	fmt.Printf("Suggestions: %d total, %d open, %d resolved\n", sc.Total, sc.Open, sc.Resolved)
	if sc.Resolved == 0 {
		fmt.Println("Nothing resolved yet.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Hit rate: %.1f%%   Avg P/L: $%+.2f per share\n", sc.HitRate, sc.AvgPnL)
	if sc.Best != nil {
		fmt.Printf("Best call:  %s %s  $%+.2f (%s)\n", sc.Best.Action, sc.Best.Ticker, sc.Best.PnL, sc.Best.Status)
	}
	if sc.Worst != nil {
		fmt.Printf("Worst call: %s %s  $%+.2f (%s)\n", sc.Worst.Action, sc.Worst.Ticker, sc.Worst.PnL, sc.Worst.Status)
	}

	fmt.Println("\nBy confidence:")
	for _, conf := range models.Confidences {
		ts, ok := sc.ByConfidence[conf]
		if !ok {
			continue
		}
		fmt.Printf("  %-6s %d resolved, %.1f%% hit, avg $%+.2f\n", conf, ts.Count, ts.HitRate, ts.AvgPnL)
	}
	return subcommands.ExitSuccess
}
