package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"portfolioAdvisor/internal/config"
	"portfolioAdvisor/internal/models"
)

type suggestionsCmd struct {
	all bool
}

func (*suggestionsCmd) Name() string     { return "suggestions" }
func (*suggestionsCmd) Synopsis() string { return "list open trade suggestions" }
func (*suggestionsCmd) Usage() string {
	return `suggestions [-all]

  Lists open suggestions with their target, confidence and deadline.
  With -all, resolved suggestions are included.
`
}

func (c *suggestionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include resolved suggestions")
}

func (c *suggestionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(config.DBPath())
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	var list []models.Suggestion
	if c.all {
		list, err = store.AllSuggestions()
	} else {
		list, err = store.OpenSuggestions()
	}
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if len(list) == 0 {
		fmt.Println("No suggestions. Generate some: advisor run")
		return subcommands.ExitSuccess
	}

	for _, s := range list {
		fmt.Printf("[%s] %s %s @ $%.2f (%s, entry $%.2f)\n",
			s.Status, s.Action, s.Ticker, s.TargetPrice, s.Confidence, s.EntryPrice)
		if s.Status.Terminal() && s.ResolvedPrice != nil && s.ResolvedAt != nil {
			fmt.Printf("    resolved at $%.2f on %s\n", *s.ResolvedPrice, s.ResolvedAt.Format("2006-01-02"))
		} else {
			fmt.Printf("    expires %s\n", s.Deadline().Format("2006-01-02"))
		}
		fmt.Printf("    %s\n", s.Reasoning)
	}
	return subcommands.ExitSuccess
}
