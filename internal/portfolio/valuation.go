package portfolio

import (
	"errors"
	"log"

	"portfolioAdvisor/internal/models"
)

// ErrNoHoldings means the portfolio is empty; there is nothing to value.
var ErrNoHoldings = errors.New("no holdings to value")

// ErrNoQuotes means every quote fetch failed this run; the run must abort
// before any write.
var ErrNoQuotes = errors.New("no quotes available")

// Valuation is the result of valuing the holdings against one quote batch.
type Valuation struct {
	Snapshots      []models.HoldingSnapshot
	TotalValue     float64  // rounded to cents
	DailyChangePct *float64 // nil on the first run or when the prior value is <= 0
}

// Valuate builds a snapshot per holding with an available quote and totals
// the portfolio. Holdings without a quote are skipped, not errored. The
// total accumulates unrounded values and is rounded once at the end.
func Valuate(holdings []models.Holding, quotes map[string]models.PriceQuote, prevValue *float64) (Valuation, error) {
	if len(holdings) == 0 {
		return Valuation{}, ErrNoHoldings
	}
	if len(quotes) == 0 {
		return Valuation{}, ErrNoQuotes
	}

	var v Valuation
	total := 0.0
	for _, h := range holdings {
		q, ok := quotes[h.Ticker]
		if !ok {
			log.Printf("portfolio: no quote for %s, skipping", h.Ticker)
			continue
		}
		value := h.Shares * q.CurrentPrice
		total += value
		v.Snapshots = append(v.Snapshots, models.HoldingSnapshot{
			Ticker:       h.Ticker,
			Shares:       h.Shares,
			Price:        q.CurrentPrice,
			Value:        models.Round2(value),
			DayChangePct: q.DayChangePct,
		})
	}
	v.TotalValue = models.Round2(total)

	if prevValue != nil && *prevValue > 0 {
		change := models.Round2((total - *prevValue) / *prevValue * 100)
		v.DailyChangePct = &change
	}
	return v, nil
}

// Position is one holding joined with its current quote, for the portfolio
// table and the analyzer summary.
type Position struct {
	Holding models.Holding
	Quote   models.PriceQuote
	Value   float64
	Cost    float64
	PnL     float64
	PnLPct  float64
}

// Positions joins holdings with quotes and computes per-position P/L.
// Holdings without a quote are omitted.
func Positions(holdings []models.Holding, quotes map[string]models.PriceQuote) []Position {
	var out []Position
	for _, h := range holdings {
		q, ok := quotes[h.Ticker]
		if !ok {
			continue
		}
		value := h.Shares * q.CurrentPrice
		cost := h.Shares * h.CostBasis
		pnl := value - cost
		pnlPct := 0.0
		if cost != 0 {
			pnlPct = pnl / cost * 100
		}
		out = append(out, Position{
			Holding: h, Quote: q,
			Value: value, Cost: cost, PnL: pnl, PnLPct: pnlPct,
		})
	}
	return out
}
