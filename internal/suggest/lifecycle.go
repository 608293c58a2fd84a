package suggest

import (
	"log"
	"time"

	"portfolioAdvisor/internal/models"
)

// Outcome is the result of evaluating one open suggestion against one
// quote at one instant.
type Outcome int

const (
	OutcomeNone Outcome = iota // stays open
	OutcomeHit
	OutcomeExpired
)

// Evaluate applies the hit and expiry rules to a single open suggestion.
// It reads only the suggestion and the quote, so evaluation order across a
// set never changes the result. The hit rule wins over the deadline: a
// suggestion past deadline that reaches its target this run resolves HIT.
func Evaluate(s models.Suggestion, quote models.PriceQuote, now time.Time) Outcome {
	current := quote.CurrentPrice

	hit := false
	switch s.Action {
	case models.ActionBuy:
		hit = current >= s.TargetPrice
	case models.ActionSell:
		hit = current <= s.TargetPrice
	}
	if hit {
		return OutcomeHit
	}
	if !now.Before(s.Deadline()) {
		return OutcomeExpired
	}
	return OutcomeNone
}

// Resolver is the single storage mutation path for suggestions.
type Resolver interface {
	ResolveSuggestion(id int64, status models.Status, price float64, at time.Time) error
}

// ResolveOpen advances every open suggestion against the current quote
// batch. Suggestions whose ticker has no quote this run are left untouched
// and stay eligible next run. The resolved price is the quote price, not
// the target. Returns the number of suggestions resolved.
func ResolveOpen(store Resolver, open []models.Suggestion, quotes map[string]models.PriceQuote, now time.Time) (int, error) {
	resolved := 0
	for i := range open {
		s := &open[i]
		quote, ok := quotes[s.Ticker]
		if !ok {
			continue
		}

		var status models.Status
		switch Evaluate(*s, quote, now) {
		case OutcomeHit:
			status = models.StatusHit
		case OutcomeExpired:
			status = models.StatusExpired
		default:
			continue
		}

		if err := store.ResolveSuggestion(s.ID, status, quote.CurrentPrice, now); err != nil {
			return resolved, err
		}
		s.MarkResolved(status, quote.CurrentPrice, now)
		resolved++
		log.Printf("suggest: suggestion %d (%s %s) %s at %.2f", s.ID, s.Action, s.Ticker, status, quote.CurrentPrice)
	}
	return resolved, nil
}
