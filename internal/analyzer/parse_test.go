package analyzer

import (
	"strings"
	"testing"
	"time"

	"portfolioAdvisor/internal/models"
	"portfolioAdvisor/internal/portfolio"
)

var testQuotes = map[string]models.PriceQuote{
	"AAPL": {Ticker: "AAPL", CurrentPrice: 200.5},
}

func TestParseResponseExtractsSuggestions(t *testing.T) {
	raw := "- **Market Snapshot** — markets mixed\n- AAPL held up well\n\n" +
		"```json\n[{\"ticker\":\"aapl\",\"action\":\"buy\",\"confidence\":\"high\"," +
		"\"target_price\":210,\"reasoning\":\"momentum\",\"timeframe_days\":14}," +
		"{\"ticker\":\"XYZ\",\"action\":\"SELL\",\"confidence\":\"LOW\",\"target_price\":55,\"reasoning\":\"weak guidance\"}]\n```"

	now := time.Now()
	text, sugs := ParseResponse(raw, testQuotes, now)

	if strings.Contains(text, "```") {
		t.Errorf("briefing text still contains fenced block: %q", text)
	}
	if !strings.Contains(text, "Market Snapshot") {
		t.Errorf("briefing prose lost: %q", text)
	}
	if len(sugs) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(sugs))
	}

	s := sugs[0]
	if s.Ticker != "AAPL" || s.Action != models.ActionBuy || s.Confidence != models.ConfidenceHigh {
		t.Errorf("normalized fields wrong: %+v", s)
	}
	if s.EntryPrice != 200.5 {
		t.Errorf("entry price = %v, want quote price 200.5", s.EntryPrice)
	}
	if s.TimeframeDays != 14 || s.Status != models.StatusOpen || !s.CreatedAt.Equal(now) {
		t.Errorf("suggestion defaults wrong: %+v", s)
	}

	// XYZ has no quote: new-idea suggestion, entry price 0, default timeframe.
	x := sugs[1]
	if x.EntryPrice != 0 || x.TimeframeDays != 7 {
		t.Errorf("new-idea suggestion: entry=%v timeframe=%d", x.EntryPrice, x.TimeframeDays)
	}
}

func TestParseResponseNoBlock(t *testing.T) {
	text, sugs := ParseResponse("Just prose, nothing actionable today.", testQuotes, time.Now())
	if len(sugs) != 0 {
		t.Errorf("expected no suggestions, got %d", len(sugs))
	}
	if text != "Just prose, nothing actionable today." {
		t.Errorf("text altered: %q", text)
	}
}

func TestParseResponseMalformedJSON(t *testing.T) {
	raw := "prose\n```json\n[{\"ticker\": \"AAPL\", broken]\n```"
	_, sugs := ParseResponse(raw, testQuotes, time.Now())
	if len(sugs) != 0 {
		t.Errorf("malformed block must yield zero suggestions, got %d", len(sugs))
	}
}

func TestParseResponseDropsInvalidRecords(t *testing.T) {
	raw := "```json\n[" +
		"{\"ticker\":\"\",\"action\":\"BUY\",\"confidence\":\"HIGH\",\"target_price\":10}," +
		"{\"ticker\":\"A\",\"action\":\"HOLD\",\"confidence\":\"HIGH\",\"target_price\":10}," +
		"{\"ticker\":\"B\",\"action\":\"BUY\",\"confidence\":\"MAYBE\",\"target_price\":10}," +
		"{\"ticker\":\"C\",\"action\":\"BUY\",\"confidence\":\"HIGH\",\"target_price\":0}," +
		"{\"ticker\":\"OK\",\"action\":\"BUY\",\"confidence\":\"MEDIUM\",\"target_price\":42,\"reasoning\":\"fine\"}" +
		"]\n```"

	_, sugs := ParseResponse(raw, nil, time.Now())
	if len(sugs) != 1 {
		t.Fatalf("expected only the valid record, got %d", len(sugs))
	}
	if sugs[0].Ticker != "OK" || sugs[0].TargetPrice != 42 {
		t.Errorf("kept wrong record: %+v", sugs[0])
	}
}

func TestParseResponseEmptyArray(t *testing.T) {
	raw := "quiet day\n```json\n[]\n```"
	text, sugs := ParseResponse(raw, testQuotes, time.Now())
	if len(sugs) != 0 {
		t.Errorf("expected zero suggestions, got %d", len(sugs))
	}
	if text != "quiet day" {
		t.Errorf("text = %q", text)
	}
}

func TestBuildSummaryPrivacy(t *testing.T) {
	positions := []portfolio.Position{{
		Holding: models.Holding{Ticker: "AAPL", Shares: 12.5, CostBasis: 150},
		Quote:   models.PriceQuote{Ticker: "AAPL", CurrentPrice: 200, DayChangePct: 1.1},
		Value:   2500, Cost: 1875, PnL: 625, PnLPct: 33.3,
	}}
	change := 0.8
	now := time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)

	full := BuildSummary(positions, 2500, &change, false, now)
	for _, want := range []string{"2026-08-28", "Portfolio Value: $2500.00", "12.5 shares", "cost basis: $150.00", "+0.80%"} {
		if !strings.Contains(full, want) {
			t.Errorf("full summary missing %q:\n%s", want, full)
		}
	}

	redacted := BuildSummary(positions, 2500, &change, true, now)
	for _, banned := range []string{"shares", "2500", "cost basis", "625"} {
		if strings.Contains(redacted, banned) {
			t.Errorf("privacy summary leaks %q:\n%s", banned, redacted)
		}
	}
	for _, want := range []string{"AAPL", "$200.00", "+1.10%"} {
		if !strings.Contains(redacted, want) {
			t.Errorf("privacy summary missing %q:\n%s", want, redacted)
		}
	}
}
