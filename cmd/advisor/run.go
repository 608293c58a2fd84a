package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"portfolioAdvisor/internal/analyzer"
	"portfolioAdvisor/internal/config"
	"portfolioAdvisor/internal/notify"
	"portfolioAdvisor/internal/pipeline"
	"portfolioAdvisor/internal/portfolio"
	"portfolioAdvisor/internal/quotes"
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "execute one daily briefing cycle" }
func (*runCmd) Usage() string {
	return `run

  Values the portfolio, resolves open suggestions against fresh quotes,
  generates the AI briefing and delivers it over the configured channels.
  Requires OPENAI_API_KEY; email and telegram credentials are optional.
`
}
func (*runCmd) SetFlags(*flag.FlagSet) {}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config.Load()

	store, closeStore, err := openStore(cfg.DBPath)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	deps := pipeline.Deps{
		Quotes:   quotes.NewClient(),
		Analyzer: analyzer.New(cfg.OpenAIKey, cfg.OpenAIModel),
		Notifier: &notify.Notifier{
			ResendKey:      cfg.ResendKey,
			From:           cfg.EmailFrom,
			To:             cfg.EmailTo,
			TelegramToken:  cfg.TelegramToken,
			TelegramChatID: cfg.TelegramChatID,
		},
	}

	b, err := pipeline.Run(ctx, store, deps, cfg.PrivacyMode)
	if errors.Is(err, portfolio.ErrNoHoldings) {
		fmt.Fprintln(os.Stderr, "Portfolio is empty. Add a position first: advisor add -ticker AAPL -shares 10")
		return subcommands.ExitFailure
	}
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Briefing for %s — portfolio $%.2f", b.Date, b.PortfolioValue)
	if b.DailyChangePct != nil {
		fmt.Printf(" (%+.2f%%)", *b.DailyChangePct)
	}
	fmt.Printf(", %d suggestion(s)\n\n%s\n", b.SuggestionCount, b.Content)
	return subcommands.ExitSuccess
}
