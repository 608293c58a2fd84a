package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"portfolioAdvisor/internal/portfolio"
)

const systemPrompt = `You are a portfolio analyst writing a brief daily morning email. This is an automated daily job — search the web for news from the LAST 24 HOURS only. Be concise: the reader will scan this over coffee in under 2 minutes.

Format — use short bullet points, not paragraphs:

- **Market Snapshot** — 2-3 bullets on indices, macro headlines
- **Your Holdings** — 1-2 bullets per ticker: what happened today, what to watch
- **Ideas Outside Your Portfolio** — 1-2 BUY/SELL ideas for tickers the user does NOT already hold, based on today's news (earnings surprises, sector momentum, etc.)
- **Suggestions** — combine all actionable calls (holdings + new ideas) here

PRIVACY: NEVER mention share counts, portfolio dollar values, cost basis, or P/L amounts. Percentages, price levels, and directional guidance only.

STYLE: No preamble, no sign-off, no "here's your briefing" intro. Jump straight into the first section header. Keep the whole briefing under 400 words.

After the prose, output a fenced ` + "```json" + ` block with a suggestion array. Each object:
  {"ticker", "action": "BUY"|"SELL", "confidence": "HIGH"|"MEDIUM"|"LOW", "target_price": number, "reasoning": string, "timeframe_days": int}
Suggestions may include tickers NOT in the user's portfolio. Empty array if no suggestions: ` + "```json\n[]\n```" + `
JSON block must be the very last thing — not inside the prose.`

// Analyzer produces the daily narrative plus suggestion candidates using a
// web-search-enabled chat model.
type Analyzer struct {
	cli   oa.Client
	model string
}

func New(apiKey, model string) *Analyzer {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return &Analyzer{cli: client, model: model}
}

// Analyze sends the portfolio summary and returns the raw model output.
func (a *Analyzer) Analyze(ctx context.Context, summary string) (string, error) {
	resp, err := a.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: a.model,
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(summary),
		},
		WebSearchOptions: oa.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildSummary renders the holdings valuation the model analyzes. In
// privacy mode, share counts, dollar values and cost bases stay out of the
// request; the model sees tickers, prices and percentages only.
func BuildSummary(positions []portfolio.Position, totalValue float64, dailyChangePct *float64, privacy bool, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02"))
	if !privacy {
		fmt.Fprintf(&b, "Portfolio Value: $%.2f\n", totalValue)
	}
	if dailyChangePct != nil {
		fmt.Fprintf(&b, "Daily Change: %+.2f%%\n", *dailyChangePct)
	}

	b.WriteString("\nHoldings:\n")
	for _, p := range positions {
		if privacy {
			fmt.Fprintf(&b, "  %s: price $%.2f (day: %+.2f%%, P/L: %+.1f%%)\n",
				p.Holding.Ticker, p.Quote.CurrentPrice, p.Quote.DayChangePct, p.PnLPct)
			continue
		}
		fmt.Fprintf(&b, "  %s: %g shares @ $%.2f (day: %+.2f%%, P/L: $%+.2f / %+.1f%%, cost basis: $%.2f)\n",
			p.Holding.Ticker, p.Holding.Shares, p.Quote.CurrentPrice,
			p.Quote.DayChangePct, p.PnL, p.PnLPct, p.Holding.CostBasis)
	}
	return b.String()
}
