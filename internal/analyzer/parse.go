package analyzer

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"time"

	"portfolioAdvisor/internal/models"
)

var reSuggestionBlock = regexp.MustCompile("(?s)```json\\s*(\\[.*?\\])\\s*```")

// candidate is the schema of one record in the model's fenced suggestion
// block. Records that fail validation are dropped individually; they never
// fail the whole parse.
type candidate struct {
	Ticker        string  `json:"ticker"`
	Action        string  `json:"action"`
	Confidence    string  `json:"confidence"`
	TargetPrice   float64 `json:"target_price"`
	Reasoning     string  `json:"reasoning"`
	TimeframeDays int     `json:"timeframe_days"`
}

// ParseResponse splits the raw model output into the briefing text (with
// the fenced block stripped) and the validated suggestions. A missing
// block means zero suggestions; malformed JSON means zero suggestions with
// a warning. Tickers outside the quote map are allowed — they become
// new-idea suggestions with entry price 0.
func ParseResponse(raw string, quotes map[string]models.PriceQuote, now time.Time) (string, []models.Suggestion) {
	suggestions := parseSuggestions(raw, quotes, now)
	briefing := strings.TrimSpace(reSuggestionBlock.ReplaceAllString(raw, ""))
	return briefing, suggestions
}

func parseSuggestions(raw string, quotes map[string]models.PriceQuote, now time.Time) []models.Suggestion {
	match := reSuggestionBlock.FindStringSubmatch(raw)
	if match == nil {
		log.Println("analyzer: no json suggestion block in response")
		return nil
	}

	var items []candidate
	if err := json.Unmarshal([]byte(match[1]), &items); err != nil {
		log.Printf("analyzer: warning: unparseable suggestion block: %v", err)
		return nil
	}

	var out []models.Suggestion
	for _, item := range items {
		ticker := strings.ToUpper(strings.TrimSpace(item.Ticker))
		action := models.Action(strings.ToUpper(item.Action))
		confidence := models.Confidence(strings.ToUpper(item.Confidence))

		if ticker == "" || !action.Valid() || !confidence.Valid() || item.TargetPrice <= 0 {
			log.Printf("analyzer: dropping malformed suggestion record %+v", item)
			continue
		}

		timeframe := item.TimeframeDays
		if timeframe <= 0 {
			timeframe = 7
		}
		entry := 0.0
		if q, ok := quotes[ticker]; ok {
			entry = q.CurrentPrice
		}
		out = append(out, models.Suggestion{
			Ticker:        ticker,
			Action:        action,
			Confidence:    confidence,
			TargetPrice:   item.TargetPrice,
			Reasoning:     item.Reasoning,
			CreatedAt:     now,
			Status:        models.StatusOpen,
			EntryPrice:    entry,
			TimeframeDays: timeframe,
		})
	}
	return out
}
