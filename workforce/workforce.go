// Package workforce turns the net FTE reduction into a transition plan:
// how much natural attrition absorbs, how many people move to new roles,
// and what the residual separations cost.
package workforce

import (
	"math"

	"contact-navigator/config"
	"contact-navigator/models"
	"contact-navigator/waterfall"
)

// Plan splits the total reduction across the three transition paths.
// Attrition compounds monthly and only its configured share is usable for
// absorption, since backfill freezes cannot cover every vacated seat.
// Severance prices the separated headcount at the cost of the roles the
// reduction actually lands on.
func Plan(res *waterfall.Result, roles []models.Role, cfg *config.Config) *models.WorkforcePlan {
	total := res.TotalNetFTE
	horizon := cfg.Finance.HorizonYears
	w := cfg.Workforce

	annualAttrition := 1 - math.Pow(1-w.MonthlyAttrition, 12)
	capacity := 0.0
	for _, r := range roles {
		capacity += r.FTE * annualAttrition * float64(horizon) * w.AttritionAbsorptionShare
	}
	absorbed := math.Min(total, capacity)
	remaining := total - absorbed
	redeployed := remaining * w.RedeploymentPct
	separated := remaining - redeployed

	costByRole := make(map[string]float64, len(roles))
	for _, r := range roles {
		costByRole[r.Name] = r.AnnualCostPerFTE
	}
	weightedCost, netSum := 0.0, 0.0
	for _, ri := range res.RoleImpacts {
		weightedCost += ri.NetFTE * costByRole[ri.Role]
		netSum += ri.NetFTE
	}
	if netSum > 0 {
		weightedCost /= netSum
	}

	reskill := redeployed * w.ReskillCostPerFTE
	severance := separated * weightedCost * w.SeverancePctOfSalary
	return &models.WorkforcePlan{
		TotalReduction:    total,
		AttritionAbsorbed: absorbed,
		Redeployed:        redeployed,
		Separations:       separated,
		ReskillCost:       reskill,
		SeveranceCost:     severance,
		TransitionCost:    reskill + severance,
	}
}
