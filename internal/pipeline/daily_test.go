package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"portfolioAdvisor/internal/models"
	"portfolioAdvisor/internal/portfolio"
	"portfolioAdvisor/internal/storage"
)

type fakeQuotes struct {
	quotes map[string]models.PriceQuote
}

func (f *fakeQuotes) Fetch(tickers []string) map[string]models.PriceQuote { return f.quotes }

type fakeAnalyzer struct {
	reply string
	err   error
	seen  string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, summary string) (string, error) {
	f.seen = summary
	return f.reply, f.err
}

type fakeNotifier struct {
	delivered []models.Briefing
}

func (f *fakeNotifier) Deliver(b models.Briefing, chart []byte) bool {
	f.delivered = append(f.delivered, b)
	return true
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return storage.NewStore(db)
}

const analyzerReply = "- **Market Snapshot** — flat day\n\n```json\n" +
	`[{"ticker": "NVDA", "action": "BUY", "confidence": "HIGH", "target_price": 1000, "reasoning": "momentum", "timeframe_days": 5}]` +
	"\n```"

func TestRunFullCycle(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddHolding("AAPL", 10, 150, time.Now()); err != nil {
		t.Fatalf("add holding: %v", err)
	}

	quotes := &fakeQuotes{quotes: map[string]models.PriceQuote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200, PreviousClose: 190, DayChangePct: 5.26},
	}}
	notifier := &fakeNotifier{}
	deps := Deps{Quotes: quotes, Analyzer: &fakeAnalyzer{reply: analyzerReply}, Notifier: notifier}

	b, err := Run(context.Background(), store, deps, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if b.PortfolioValue != 2000 {
		t.Errorf("portfolio value = %v, want 2000", b.PortfolioValue)
	}
	if b.DailyChangePct != nil {
		t.Error("first run must have no daily change")
	}
	if b.SuggestionCount != 1 {
		t.Errorf("suggestion count = %d, want 1", b.SuggestionCount)
	}
	if len(notifier.delivered) != 1 {
		t.Fatalf("delivered %d briefings, want 1", len(notifier.delivered))
	}

	open, err := store.OpenSuggestions()
	if err != nil {
		t.Fatalf("open suggestions: %v", err)
	}
	if len(open) != 1 || open[0].Ticker != "NVDA" {
		t.Fatalf("open suggestions = %+v, want one NVDA", open)
	}

	// Second run sees the first run's value as the daily-change baseline.
	b2, err := Run(context.Background(), store, deps, true)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if b2.DailyChangePct == nil || *b2.DailyChangePct != 0 {
		t.Errorf("second run daily change = %v, want 0", b2.DailyChangePct)
	}
}

func TestRunNoHoldings(t *testing.T) {
	store := newTestStore(t)
	deps := Deps{Quotes: &fakeQuotes{}, Analyzer: &fakeAnalyzer{}, Notifier: &fakeNotifier{}}

	_, err := Run(context.Background(), store, deps, true)
	if !errors.Is(err, portfolio.ErrNoHoldings) {
		t.Errorf("err = %v, want ErrNoHoldings", err)
	}
}

func TestRunNoQuotesAbortsBeforeWrites(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddHolding("AAPL", 10, 150, time.Now()); err != nil {
		t.Fatalf("add holding: %v", err)
	}
	deps := Deps{Quotes: &fakeQuotes{quotes: map[string]models.PriceQuote{}}, Analyzer: &fakeAnalyzer{}, Notifier: &fakeNotifier{}}

	_, err := Run(context.Background(), store, deps, true)
	if !errors.Is(err, portfolio.ErrNoQuotes) {
		t.Fatalf("err = %v, want ErrNoQuotes", err)
	}
	if v, _ := store.LatestPortfolioValue(); v != nil {
		t.Error("aborted run must not record a briefing")
	}
}

func TestRunAnalyzerFailureFatal(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddHolding("AAPL", 10, 150, time.Now()); err != nil {
		t.Fatalf("add holding: %v", err)
	}
	quotes := &fakeQuotes{quotes: map[string]models.PriceQuote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200, PreviousClose: 190, DayChangePct: 5.26},
	}}
	notifier := &fakeNotifier{}
	deps := Deps{Quotes: quotes, Analyzer: &fakeAnalyzer{err: errors.New("model overloaded")}, Notifier: notifier}

	_, err := Run(context.Background(), store, deps, true)
	if err == nil {
		t.Fatal("analyzer failure must abort the run")
	}
	if v, _ := store.LatestPortfolioValue(); v != nil {
		t.Error("failed run must not record a briefing")
	}
	if len(notifier.delivered) != 0 {
		t.Error("failed run must not deliver")
	}
}

func TestRunResolvesOpenSuggestionsBeforeBriefing(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddHolding("AAPL", 10, 150, time.Now()); err != nil {
		t.Fatalf("add holding: %v", err)
	}
	sg := models.Suggestion{
		Ticker: "AAPL", Action: models.ActionBuy, Confidence: models.ConfidenceHigh,
		TargetPrice: 195, Reasoning: "breakout", CreatedAt: time.Now().Add(-24 * time.Hour),
		Status: models.StatusOpen, EntryPrice: 180, TimeframeDays: 7,
	}
	if _, err := store.SaveSuggestion(&sg); err != nil {
		t.Fatalf("save suggestion: %v", err)
	}

	quotes := &fakeQuotes{quotes: map[string]models.PriceQuote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200, PreviousClose: 190, DayChangePct: 5.26},
	}}
	deps := Deps{Quotes: quotes, Analyzer: &fakeAnalyzer{reply: "quiet day\n```json\n[]\n```"}, Notifier: &fakeNotifier{}}

	if _, err := Run(context.Background(), store, deps, true); err != nil {
		t.Fatalf("Run: %v", err)
	}

	all, err := store.AllSuggestions()
	if err != nil {
		t.Fatalf("all suggestions: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(all))
	}
	got := all[0]
	if got.Status != models.StatusHit {
		t.Errorf("status = %s, want HIT", got.Status)
	}
	if got.ResolvedPrice == nil || *got.ResolvedPrice != 200 {
		t.Errorf("resolved price = %v, want the quote price 200", got.ResolvedPrice)
	}
}

func TestRunPrivacySummary(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddHolding("AAPL", 10, 150, time.Now()); err != nil {
		t.Fatalf("add holding: %v", err)
	}
	quotes := &fakeQuotes{quotes: map[string]models.PriceQuote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200, PreviousClose: 190, DayChangePct: 5.26},
	}}
	fa := &fakeAnalyzer{reply: "quiet day\n```json\n[]\n```"}
	deps := Deps{Quotes: quotes, Analyzer: fa, Notifier: &fakeNotifier{}}

	if _, err := Run(context.Background(), store, deps, true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, leak := range []string{"2000", "10 shares", "150"} {
		if strings.Contains(fa.seen, leak) {
			t.Errorf("privacy summary leaked %q:\n%s", leak, fa.seen)
		}
	}
}
