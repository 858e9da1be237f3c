package waterfall

import (
	"math"

	"contact-navigator/models"
	"contact-navigator/pools"
)

// Tier thresholds on the normalized 0-100 score.
const (
	TierPriority    = "priority"
	TierRecommended = "recommended"
	TierConditional = "conditional"
	TierDeferred    = "deferred"

	tierPriorityMin    = 65.0
	tierRecommendedMin = 45.0
	tierConditionalMin = 20.0
)

// Annotate fills in derived scores and tiers without touching enablement,
// which stays a catalog decision. A catalog entry with an explicit score
// keeps it. An entry with score zero and populated 1-5 attributes gets
//
//	raw = value x alignment x readiness / (complexity x risk)
//
// boosted 20% when the diagnostic flags its lever red and up to 30% by the
// share of the operation its lever's pool can reach. Derived raws are then
// normalized so the best of them lands at the catalog's top explicit score,
// keeping hand-assigned scores authoritative in the netting order.
func Annotate(inits []models.Initiative, set *pools.Set, baseline pools.Baseline, diag *models.DiagnosticReport) []models.Initiative {
	out := make([]models.Initiative, len(inits))
	copy(out, inits)

	problems := problemLevers(diag)

	anchor := 0.0
	for _, init := range out {
		if init.Score > anchor {
			anchor = init.Score
		}
	}
	if anchor <= 0 {
		anchor = 100
	}

	raws := make([]float64, len(out))
	maxRaw := 0.0
	for i, init := range out {
		if init.Score > 0 {
			continue
		}
		raw := rawScore(init)
		if raw <= 0 {
			continue
		}
		if problems[init.Lever] {
			raw *= 1.20
		}
		raw *= 1 + 0.30*opportunityShare(init.Lever, set, baseline)
		raws[i] = raw
		if raw > maxRaw {
			maxRaw = raw
		}
	}

	for i := range out {
		if raws[i] > 0 && maxRaw > 0 {
			out[i].Score = math.Round(raws[i]/maxRaw*anchor*10) / 10
		}
		out[i].Tier = tierFor(out[i].Score)
	}
	return out
}

func rawScore(init models.Initiative) float64 {
	denom := init.ComplexityScore * init.RiskScore
	if denom <= 0 {
		return 0
	}
	return init.Value * init.Alignment * init.Readiness / math.Max(denom, 0.01)
}

func tierFor(score float64) string {
	switch {
	case score >= tierPriorityMin:
		return TierPriority
	case score >= tierRecommendedMin:
		return TierRecommended
	case score >= tierConditionalMin:
		return TierConditional
	default:
		return TierDeferred
	}
}

// problemLevers maps red diagnostic metrics onto the levers that address
// them. A high cost per contact points at both volume removal and cost
// arbitrage; CSAT has no single lever and carries no bonus.
func problemLevers(diag *models.DiagnosticReport) map[models.Lever]bool {
	problems := make(map[models.Lever]bool)
	if diag == nil {
		return problems
	}
	for _, m := range diag.Metrics {
		if m.Rating != "red" {
			continue
		}
		switch m.Metric {
		case "aht":
			problems[models.LeverAHTReduction] = true
		case "fcr":
			problems[models.LeverRepeatReduction] = true
		case "escalation":
			problems[models.LeverEscalationReduction] = true
		case "cpc":
			problems[models.LeverDeflection] = true
			problems[models.LeverCostReduction] = true
		}
	}
	return problems
}

// opportunityShare measures how much of the baseline workforce a lever's
// pool could reach, as a 0-1 share.
func opportunityShare(lever models.Lever, set *pools.Set, baseline pools.Baseline) float64 {
	if set == nil || baseline.TotalFTE <= 0 {
		return 0
	}
	pool, ok := set.Get(lever)
	if !ok {
		return 0
	}
	return math.Min(1, math.Max(0, pool.CeilingFTE/baseline.TotalFTE))
}
