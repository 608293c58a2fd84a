package suggest

import (
	"sort"

	"portfolioAdvisor/internal/models"
)

// Call is one resolved suggestion in the scorecard's best/worst slots.
type Call struct {
	Ticker string        `json:"ticker"`
	Action models.Action `json:"action"`
	PnL    float64       `json:"pnl"`
	Status models.Status `json:"status"`
}

// TierStats summarizes the resolved suggestions of one confidence tier.
type TierStats struct {
	Count   int     `json:"count"`
	HitRate float64 `json:"hit_rate"`
	AvgPnL  float64 `json:"avg_pnl"`
}

// Scorecard aggregates performance over the full suggestion history.
type Scorecard struct {
	Total        int                             `json:"total"`
	Open         int                             `json:"open"`
	Resolved     int                             `json:"resolved"`
	HitRate      float64                         `json:"hit_rate"`
	AvgPnL       float64                         `json:"avg_pnl"`
	Best         *Call                           `json:"best,omitempty"`
	Worst        *Call                           `json:"worst,omitempty"`
	ByConfidence map[models.Confidence]TierStats `json:"by_confidence"`
}

// PnL computes a resolved suggestion's profit/loss. Defined only when a
// resolved price was recorded: BUY profits when price rose above entry,
// SELL when it fell below.
func PnL(s models.Suggestion) (float64, bool) {
	if s.ResolvedPrice == nil {
		return 0, false
	}
	if s.Action == models.ActionBuy {
		return *s.ResolvedPrice - s.EntryPrice, true
	}
	return s.EntryPrice - *s.ResolvedPrice, true
}

// ComputeScorecard aggregates the suggestion history. Suggestions whose
// status is outside the known set count toward Total only. Hit rate and
// average P/L are 0.0 rather than undefined when nothing has resolved.
func ComputeScorecard(all []models.Suggestion) Scorecard {
	sc := Scorecard{
		Total:        len(all),
		ByConfidence: map[models.Confidence]TierStats{},
	}

	var resolved []models.Suggestion
	for _, s := range all {
		switch {
		case s.Status == models.StatusOpen:
			sc.Open++
		case s.Status.Terminal():
			resolved = append(resolved, s)
		}
	}
	sc.Resolved = len(resolved)
	if sc.Resolved == 0 {
		return sc
	}

	type entry struct {
		s   models.Suggestion
		pnl float64
	}
	var pnls []entry
	hits := 0
	for _, s := range resolved {
		if s.Status == models.StatusHit {
			hits++
		}
		if p, ok := PnL(s); ok {
			pnls = append(pnls, entry{s, p})
		}
	}

	sc.HitRate = float64(hits) / float64(sc.Resolved) * 100

	// Descending P/L, stable: the first encountered entry wins Best on
	// ties and the last wins Worst.
	sort.SliceStable(pnls, func(i, j int) bool { return pnls[i].pnl > pnls[j].pnl })

	if len(pnls) > 0 {
		sum := 0.0
		for _, e := range pnls {
			sum += e.pnl
		}
		sc.AvgPnL = models.Round2(sum / float64(len(pnls)))
		sc.Best = asCall(pnls[0].s, pnls[0].pnl)
		sc.Worst = asCall(pnls[len(pnls)-1].s, pnls[len(pnls)-1].pnl)
	}

	for _, conf := range models.Confidences {
		count, tierHits := 0, 0
		tierSum, tierN := 0.0, 0
		for _, s := range resolved {
			if s.Confidence != conf {
				continue
			}
			count++
			if s.Status == models.StatusHit {
				tierHits++
			}
			if p, ok := PnL(s); ok {
				tierSum += p
				tierN++
			}
		}
		if count == 0 {
			continue // tiers with no resolved suggestions are omitted
		}
		ts := TierStats{Count: count, HitRate: float64(tierHits) / float64(count) * 100}
		if tierN > 0 {
			ts.AvgPnL = tierSum / float64(tierN)
		}
		sc.ByConfidence[conf] = ts
	}

	return sc
}

func asCall(s models.Suggestion, pnl float64) *Call {
	return &Call{Ticker: s.Ticker, Action: s.Action, PnL: models.Round2(pnl), Status: s.Status}
}
