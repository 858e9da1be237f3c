package workforce_test

import (
	"testing"

	"contact-navigator/config"
	"contact-navigator/models"
	"contact-navigator/waterfall"
	"contact-navigator/workforce"

	"github.com/stretchr/testify/assert"
)

func TestPlan_AttritionAbsorbsSmallReduction(t *testing.T) {
	// 3% monthly attrition compounds to 1 - 0.97^12 = 30.6% per year.
	// Over 3 years at the 60% absorption share, 100 FTE free up about 55
	// seats, so a 10 FTE reduction vanishes into natural churn.
	cfg := config.Default()
	res := &waterfall.Result{
		TotalNetFTE: 10,
		RoleImpacts: []models.RoleImpact{{Role: "Agent", NetFTE: 10}},
	}
	roles := []models.Role{{Name: "Agent", FTE: 100, AnnualCostPerFTE: 50_000}}

	plan := workforce.Plan(res, roles, cfg)

	assert.InDelta(t, 10.0, plan.TotalReduction, 1e-12)
	assert.InDelta(t, 10.0, plan.AttritionAbsorbed, 1e-12)
	assert.Zero(t, plan.Redeployed)
	assert.Zero(t, plan.Separations)
	assert.Zero(t, plan.ReskillCost)
	assert.Zero(t, plan.SeveranceCost)
	assert.Zero(t, plan.TransitionCost)
}

func TestPlan_SurplusSplitsIntoRedeploymentAndSeparation(t *testing.T) {
	// An 80 FTE reduction overruns the 55.11 FTE attrition capacity.
	// Of the 24.89 surplus, 10% redeploys and the rest separates at 25%
	// of the 50000 weighted salary.
	cfg := config.Default()
	res := &waterfall.Result{
		TotalNetFTE: 80,
		RoleImpacts: []models.RoleImpact{{Role: "Agent", NetFTE: 80}},
	}
	roles := []models.Role{{Name: "Agent", FTE: 100, AnnualCostPerFTE: 50_000}}

	plan := workforce.Plan(res, roles, cfg)

	assert.InDelta(t, 55.108, plan.AttritionAbsorbed, 0.01)
	assert.InDelta(t, 2.489, plan.Redeployed, 0.001)
	assert.InDelta(t, 22.402, plan.Separations, 0.01)
	assert.InDelta(t, 12_445.8, plan.ReskillCost, 1.0)
	assert.InDelta(t, 280_031.0, plan.SeveranceCost, 20.0)
	assert.InDelta(t, plan.ReskillCost+plan.SeveranceCost, plan.TransitionCost, 1e-9)

	// The three paths always reassemble into the total.
	assert.InDelta(t, plan.TotalReduction,
		plan.AttritionAbsorbed+plan.Redeployed+plan.Separations, 1e-9)
}

func TestPlan_SeveranceUsesImpactWeightedSalary(t *testing.T) {
	// 30 net FTE at 40000 and 10 at 80000 average to 50000, weighted by
	// where the reduction actually lands rather than by headcount.
	cfg := config.Default()
	res := &waterfall.Result{
		TotalNetFTE: 40,
		RoleImpacts: []models.RoleImpact{
			{Role: "Agent", NetFTE: 30},
			{Role: "Team Lead", NetFTE: 10},
		},
	}
	roles := []models.Role{
		{Name: "Agent", FTE: 10, AnnualCostPerFTE: 40_000},
		{Name: "Team Lead", FTE: 5, AnnualCostPerFTE: 80_000},
	}

	plan := workforce.Plan(res, roles, cfg)

	assert.Greater(t, plan.Separations, 0.0)
	assert.InDelta(t, 50_000.0, plan.SeveranceCost/plan.Separations/cfg.Workforce.SeverancePctOfSalary, 1e-6)
}

func TestPlan_ZeroReduction(t *testing.T) {
	cfg := config.Default()

	plan := workforce.Plan(&waterfall.Result{}, []models.Role{{Name: "Agent", FTE: 50}}, cfg)

	assert.Zero(t, plan.TotalReduction)
	assert.Zero(t, plan.AttritionAbsorbed)
	assert.Zero(t, plan.Separations)
	assert.Zero(t, plan.TransitionCost)
}
