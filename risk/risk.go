// Package risk assesses how likely the modeled benefits are to survive
// delivery. Unlike the diagnostic, which looks at the baseline, this looks
// at the shape of the run itself: how hard the pools are being driven, how
// much rides on shared platforms, and how much of the case stands on
// heuristic fallbacks instead of observed data.
package risk

import (
	"fmt"
	"math"
	"sort"

	"contact-navigator/models"
	"contact-navigator/pools"
	"contact-navigator/waterfall"
)

var categoryWeights = map[string]float64{
	"implementation": 0.25,
	"adoption":       0.20,
	"technology":     0.20,
	"data":           0.15,
	"sustainability": 0.20,
}

// Assess scores five weighted risk categories on a 0-100 scale, higher
// meaning riskier. Factors come back sorted worst first.
func Assess(res *waterfall.Result, inits []models.Initiative, profiles []models.EnrichedIntentProfile, base pools.Baseline) *models.RiskReport {
	enabled := make([]models.Initiative, 0, len(inits))
	for _, init := range inits {
		if init.Enabled {
			enabled = append(enabled, init)
		}
	}

	factors := []models.RiskFactor{
		implementation(enabled),
		adoption(enabled),
		technology(res, enabled),
		dataQuality(profiles),
		sustainability(res, base),
	}

	overall := 0.0
	for i := range factors {
		factors[i].Weight = categoryWeights[factors[i].Category]
		overall += factors[i].Score * factors[i].Weight
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Score > factors[j].Score
	})

	report := &models.RiskReport{
		OverallScore: math.Round(overall*10) / 10,
		Factors:      factors,
	}
	switch {
	case overall > 65:
		report.Level = "high"
	case overall > 35:
		report.Level = "medium"
	default:
		report.Level = "low"
	}
	return report
}

// implementation grows with long ramps and sheer portfolio breadth.
func implementation(enabled []models.Initiative) models.RiskFactor {
	n := len(enabled)
	long := 0
	for _, init := range enabled {
		if init.RampMonths >= 12 {
			long++
		}
	}
	longShare, breadth := 0.0, 0.0
	if n > 0 {
		longShare = float64(long) / float64(n)
		breadth = math.Min(1, float64(n)/20)
	}
	f := models.RiskFactor{
		Category: "implementation",
		Score:    clampScore((0.55*longShare + 0.45*breadth) * 100),
		Drivers: []string{
			fmt.Sprintf("%d of %d initiatives ramp 12 months or longer", long, n),
			fmt.Sprintf("portfolio spans %d concurrent initiatives", n),
		},
	}
	if f.Score >= 40 {
		f.Mitigation = "Sequence delivery in waves and gate each wave on realized benefits"
	}
	return f
}

// adoption penalizes optimistic uptake assumptions.
func adoption(enabled []models.Initiative) models.RiskFactor {
	sum := 0.0
	for _, init := range enabled {
		sum += math.Min(1, math.Max(0, 1-init.Adoption)*1.5)
	}
	score := 0.0
	avg := 0.0
	if len(enabled) > 0 {
		score = sum / float64(len(enabled)) * 100
		for _, init := range enabled {
			avg += init.Adoption
		}
		avg /= float64(len(enabled))
	}
	f := models.RiskFactor{
		Category: "adoption",
		Score:    clampScore(score),
		Drivers: []string{
			fmt.Sprintf("average assumed adoption is %.0f%%", avg*100),
		},
	}
	if f.Score >= 40 {
		f.Mitigation = "Invest in change management and frontline training before go-live"
	}
	return f
}

// technology measures how much of the net impact rides on shared platforms.
func technology(res *waterfall.Result, enabled []models.Initiative) models.RiskFactor {
	netByID := make(map[string]float64, len(res.Audit))
	for _, entry := range res.Audit {
		netByID[entry.InitiativeID] = entry.NetFTE
	}
	famNet := 0.0
	families := make(map[string]bool)
	for _, init := range enabled {
		if init.PlatformFamily == "" {
			continue
		}
		famNet += netByID[init.ID]
		families[init.PlatformFamily] = true
	}
	famShare := 0.0
	if res.TotalNetFTE > 0 {
		famShare = famNet / res.TotalNetFTE
	}
	f := models.RiskFactor{
		Category: "technology",
		Score:    clampScore((0.30 + 0.55*famShare) * 100),
		Drivers: []string{
			fmt.Sprintf("%.0f%% of the net impact depends on %d shared platform families", famShare*100, len(families)),
		},
	}
	if f.Score >= 40 {
		f.Mitigation = "Stand up integration and regression environments before the first platform wave"
	}
	return f
}

// dataQuality measures how much of the case stands on heuristic fallbacks:
// volume whose source records lack granular timings, repeat rates, or
// resolution rates.
func dataQuality(profiles []models.EnrichedIntentProfile) models.RiskFactor {
	var weighted, volume float64
	for _, p := range profiles {
		gaps := 0
		if p.Breakdown == nil {
			gaps++
		}
		if p.RepeatRate == nil {
			gaps++
		}
		if p.FCRRate == nil {
			gaps++
		}
		weighted += p.Volume * float64(gaps) / 3
		volume += p.Volume
	}
	gapShare := 0.0
	if volume > 0 {
		gapShare = weighted / volume
	}
	f := models.RiskFactor{
		Category: "data",
		Score:    clampScore(gapShare * 100),
		Drivers: []string{
			fmt.Sprintf("%.0f%% of volume lacks granular timing, repeat, or resolution data", gapShare*100),
		},
	}
	if f.Score >= 40 {
		f.Mitigation = "Instrument the gaps before locking the baseline; heuristic fallbacks widen the error band"
	}
	return f
}

// sustainability flags pools driven near their ceilings and cuts that run
// deep relative to the baseline workforce.
func sustainability(res *waterfall.Result, base pools.Baseline) models.RiskFactor {
	maxUtil := 0.0
	deepest := ""
	for _, p := range res.Pools {
		if p.Utilization > maxUtil {
			maxUtil = p.Utilization
			deepest = string(p.Lever)
		}
	}
	depth := 0.0
	if base.TotalFTE > 0 {
		depth = res.TotalNetFTE / base.TotalFTE
	}
	utilPressure := math.Max(0, (maxUtil-0.60)/0.40)
	f := models.RiskFactor{
		Category: "sustainability",
		Score:    clampScore((0.5*math.Min(1, utilPressure) + 0.5*math.Min(1, depth/0.35)) * 100),
		Drivers: []string{
			fmt.Sprintf("deepest pool (%s) runs at %.0f%% of its ceiling", deepest, maxUtil*100),
			fmt.Sprintf("net reduction is %.0f%% of the baseline workforce", depth*100),
		},
	}
	if f.Score >= 40 {
		f.Mitigation = "Tie the benefits release schedule to attrition so service levels hold"
	}
	return f
}

func clampScore(s float64) float64 {
	return math.Round(math.Max(0, math.Min(100, s))*10) / 10
}
