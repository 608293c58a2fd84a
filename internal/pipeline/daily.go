package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"portfolioAdvisor/internal/analyzer"
	"portfolioAdvisor/internal/models"
	"portfolioAdvisor/internal/portfolio"
	"portfolioAdvisor/internal/storage"
	"portfolioAdvisor/internal/suggest"
)

// QuoteFetcher is the quote source boundary. A partial result map is
// normal; only a fully empty map aborts the run.
type QuoteFetcher interface {
	Fetch(tickers []string) map[string]models.PriceQuote
}

// Analyzer is the narrative generator boundary.
type Analyzer interface {
	Analyze(ctx context.Context, summary string) (string, error)
}

// Notifier delivers the briefing; failure is non-fatal.
type Notifier interface {
	Deliver(b models.Briefing, chart []byte) bool
}

// Deps are the external collaborators of a daily run. All I/O happens
// through them at the boundary; the valuation, lifecycle and scorecard
// computations in between are pure.
type Deps struct {
	Quotes   QuoteFetcher
	Analyzer Analyzer
	Notifier Notifier
}

// Run executes one daily cycle: value the portfolio, advance open
// suggestions, generate the narrative, persist the briefing, deliver it.
// Open-suggestion resolution is recorded durably before any later write so
// an interrupted run never loses a transition.
func Run(ctx context.Context, store *storage.Store, deps Deps, privacy bool) (*models.Briefing, error) {
	now := time.Now()

	holdings, err := store.Holdings()
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}
	if len(holdings) == 0 {
		return nil, portfolio.ErrNoHoldings
	}

	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		tickers = append(tickers, h.Ticker)
	}
	log.Printf("pipeline: portfolio %v", tickers)

	quotes := deps.Quotes.Fetch(tickers)
	if len(quotes) == 0 {
		return nil, portfolio.ErrNoQuotes
	}
	log.Printf("pipeline: prices fetched for %d/%d tickers", len(quotes), len(tickers))

	prev, err := store.LatestPortfolioValue()
	if err != nil {
		return nil, fmt.Errorf("load previous value: %w", err)
	}

	val, err := portfolio.Valuate(holdings, quotes, prev)
	if err != nil {
		return nil, err
	}
	log.Printf("pipeline: portfolio value $%.2f", val.TotalValue)
	if val.DailyChangePct != nil {
		log.Printf("pipeline: daily change %+.2f%%", *val.DailyChangePct)
	}

	open, err := store.OpenSuggestions()
	if err != nil {
		return nil, fmt.Errorf("load open suggestions: %w", err)
	}
	resolved, err := suggest.ResolveOpen(store, open, quotes, now)
	if err != nil {
		return nil, fmt.Errorf("resolve suggestions: %w", err)
	}
	if resolved > 0 {
		log.Printf("pipeline: resolved %d suggestion(s)", resolved)
	}

	summary := analyzer.BuildSummary(portfolio.Positions(holdings, quotes), val.TotalValue, val.DailyChangePct, privacy, now)
	raw, err := deps.Analyzer.Analyze(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("analyze portfolio: %w", err)
	}
	text, suggestions := analyzer.ParseResponse(raw, quotes, now)
	log.Printf("pipeline: analysis complete, %d suggestion(s)", len(suggestions))

	for i := range suggestions {
		if _, err := store.SaveSuggestion(&suggestions[i]); err != nil {
			return nil, fmt.Errorf("save suggestion: %w", err)
		}
	}

	briefing := models.Briefing{
		Date:            now.Format("2006-01-02"),
		Content:         text,
		PortfolioValue:  val.TotalValue,
		DailyChangePct:  val.DailyChangePct,
		SuggestionCount: len(suggestions),
		CreatedAt:       now,
	}
	id, err := store.SaveBriefing(&briefing)
	if err != nil {
		return nil, fmt.Errorf("save briefing: %w", err)
	}
	if err := store.SaveSnapshots(id, val.Snapshots); err != nil {
		return nil, fmt.Errorf("save snapshots: %w", err)
	}

	var chart []byte
	if hist, err := store.BriefingHistory(30); err == nil {
		if img, err := portfolio.ValueHistoryChart(hist); err == nil {
			chart = img
		}
	}

	if deps.Notifier.Deliver(briefing, chart) {
		log.Println("pipeline: briefing delivered")
	} else {
		log.Println("pipeline: briefing not delivered (check notifier config or logs)")
	}

	return &briefing, nil
}
