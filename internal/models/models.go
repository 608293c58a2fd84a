package models

import (
	"math"
	"time"
)

// Action is the direction of a trade suggestion.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

func (a Action) Valid() bool { return a == ActionBuy || a == ActionSell }

// Confidence is the analyst's conviction tier for a suggestion.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

func (c Confidence) Valid() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

// Confidences lists the tiers in reporting order.
var Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}

// Status is the suggestion lifecycle state. OPEN transitions at most once,
// to HIT or EXPIRED; both are terminal.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusHit     Status = "HIT"
	StatusExpired Status = "EXPIRED"
)

func (s Status) Valid() bool { return s == StatusOpen || s == StatusHit || s == StatusExpired }

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool { return s == StatusHit || s == StatusExpired }

// Holding is one position in the portfolio, keyed by ticker.
// Adding shares to an existing ticker accumulates the share count and
// recomputes the cost basis as the quantity-weighted average of the lots.
type Holding struct {
	Ticker    string    `json:"ticker"`
	Shares    float64   `json:"shares"`
	CostBasis float64   `json:"cost_basis"`
	AddedAt   time.Time `json:"added_at"`
}

// PriceQuote is a point-in-time price observation, fetched fresh each run
// and never persisted on its own.
type PriceQuote struct {
	Ticker        string  `json:"ticker"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	DayChangePct  float64 `json:"day_change_pct"`
}

// HoldingSnapshot is the valuation of one holding at one run, owned by the
// briefing that produced it.
type HoldingSnapshot struct {
	BriefingID   int64   `json:"briefing_id,omitempty"`
	Ticker       string  `json:"ticker"`
	Shares       float64 `json:"shares"`
	Price        float64 `json:"price"`
	Value        float64 `json:"value"`
	DayChangePct float64 `json:"day_change_pct"`
}

// Suggestion is a trade idea tracked to resolution. ResolvedPrice and
// ResolvedAt are set together by MarkResolved and only when Status is
// terminal; nothing else mutates a suggestion after creation.
type Suggestion struct {
	ID            int64      `json:"id,omitempty"`
	Ticker        string     `json:"ticker"`
	Action        Action     `json:"action"`
	Confidence    Confidence `json:"confidence"`
	TargetPrice   float64    `json:"target_price"`
	Reasoning     string     `json:"reasoning"`
	CreatedAt     time.Time  `json:"created_at"`
	Status        Status     `json:"status"`
	EntryPrice    float64    `json:"entry_price"`
	ResolvedPrice *float64   `json:"resolved_price,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	TimeframeDays int        `json:"timeframe_days"`
}

// Deadline is the instant after which the suggestion expires.
func (s *Suggestion) Deadline() time.Time {
	return s.CreatedAt.Add(time.Duration(s.TimeframeDays) * 24 * time.Hour)
}

// MarkResolved moves an open suggestion to a terminal status, recording the
// resolution price and timestamp together.
func (s *Suggestion) MarkResolved(status Status, price float64, at time.Time) {
	s.Status = status
	s.ResolvedPrice = &price
	t := at
	s.ResolvedAt = &t
}

// Briefing is one run's output record: narrative, valuation and suggestion
// count. Immutable once written.
type Briefing struct {
	ID              int64     `json:"id,omitempty"`
	Date            string    `json:"date"`
	Content         string    `json:"content"`
	PortfolioValue  float64   `json:"portfolio_value"`
	DailyChangePct  *float64  `json:"daily_change_pct,omitempty"`
	SuggestionCount int       `json:"suggestion_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
