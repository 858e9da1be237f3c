package risk_test

import (
	"fmt"
	"testing"

	"contact-navigator/models"
	"contact-navigator/pools"
	"contact-navigator/risk"
	"contact-navigator/waterfall"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess(t *testing.T) {
	// Two enabled initiatives; the disabled one must not count.
	// implementation: 1 of 2 ramps >= 12 months, breadth 2/20:
	//   (0.55*0.5 + 0.45*0.1) * 100 = 32.0.
	// adoption: min(1, 0.4*1.5) + min(1, 0.2*1.5) = 0.9, /2 = 45.0.
	// technology: 8 of 10 net FTE rides on a platform family:
	//   (0.30 + 0.55*0.8) * 100 = 74.0.
	// data: the single profile lacks all three observed fields = 100.
	// sustainability: deepest pool at 80% and a 10% workforce cut:
	//   (0.5*0.5 + 0.5*(0.1/0.35)) * 100 = 39.3.
	inits := []models.Initiative{
		{ID: "A", Enabled: true, RampMonths: 18, Adoption: 0.6, PlatformFamily: "conversational_ai"},
		{ID: "B", Enabled: true, RampMonths: 6, Adoption: 0.8},
		{ID: "Z", Enabled: false, RampMonths: 24, Adoption: 0.1},
	}
	res := &waterfall.Result{
		Audit: []models.AuditEntry{
			{InitiativeID: "A", NetFTE: 8},
			{InitiativeID: "B", NetFTE: 2},
		},
		TotalNetFTE: 10,
		Pools: []models.PoolReport{
			{Lever: models.LeverDeflection, Utilization: 0.80},
			{Lever: models.LeverAHTReduction, Utilization: 0.40},
		},
	}
	profiles := []models.EnrichedIntentProfile{
		{IntentRecord: models.IntentRecord{Intent: "plan change", Volume: 1000}},
	}
	base := pools.Baseline{TotalFTE: 100}

	report := risk.Assess(res, inits, profiles, base)

	// Worst first.
	require.Len(t, report.Factors, 5)
	order := make([]string, 0, 5)
	for _, f := range report.Factors {
		order = append(order, f.Category)
	}
	assert.Equal(t, []string{"data", "technology", "adoption", "sustainability", "implementation"}, order)

	byCat := map[string]models.RiskFactor{}
	for _, f := range report.Factors {
		byCat[f.Category] = f
	}
	assert.InDelta(t, 32.0, byCat["implementation"].Score, 1e-9)
	assert.InDelta(t, 45.0, byCat["adoption"].Score, 1e-9)
	assert.InDelta(t, 74.0, byCat["technology"].Score, 1e-9)
	assert.InDelta(t, 100.0, byCat["data"].Score, 1e-9)
	assert.InDelta(t, 39.3, byCat["sustainability"].Score, 1e-9)

	// Mitigations appear only at score 40 and above.
	assert.NotEmpty(t, byCat["data"].Mitigation)
	assert.NotEmpty(t, byCat["technology"].Mitigation)
	assert.NotEmpty(t, byCat["adoption"].Mitigation)
	assert.Empty(t, byCat["sustainability"].Mitigation)
	assert.Empty(t, byCat["implementation"].Mitigation)

	assert.Contains(t, byCat["data"].Drivers[0], "100% of volume")
	assert.Contains(t, byCat["adoption"].Drivers[0], "70%")

	// 32*0.25 + 45*0.20 + 74*0.20 + 100*0.15 + 39.3*0.20 = 54.7.
	assert.InDelta(t, 54.7, report.OverallScore, 1e-9)
	assert.Equal(t, "medium", report.Level)
}

func TestAssess_EmptyRun(t *testing.T) {
	report := risk.Assess(&waterfall.Result{}, nil, nil, pools.Baseline{})

	byCat := map[string]models.RiskFactor{}
	for _, f := range report.Factors {
		byCat[f.Category] = f
	}

	// With nothing to deliver only the structural platform floor remains.
	assert.InDelta(t, 30.0, byCat["technology"].Score, 1e-9)
	assert.Zero(t, byCat["implementation"].Score)
	assert.Zero(t, byCat["adoption"].Score)
	assert.Zero(t, byCat["data"].Score)
	assert.Zero(t, byCat["sustainability"].Score)

	assert.InDelta(t, 6.0, report.OverallScore, 1e-9)
	assert.Equal(t, "low", report.Level)
}

func TestAssess_HighRiskPortfolio(t *testing.T) {
	// Twenty slow-ramping, low-adoption initiatives all riding one
	// platform, sparse data, a saturated pool, and a cut deeper than 35%
	// of the workforce push every category toward its ceiling.
	var inits []models.Initiative
	var audit []models.AuditEntry
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("I%02d", i)
		inits = append(inits, models.Initiative{
			ID: id, Enabled: true, RampMonths: 12, Adoption: 0.2, PlatformFamily: "conversational_ai",
		})
		audit = append(audit, models.AuditEntry{InitiativeID: id, NetFTE: 2})
	}
	res := &waterfall.Result{
		Audit:       audit,
		TotalNetFTE: 40,
		Pools:       []models.PoolReport{{Lever: models.LeverDeflection, Utilization: 1.0}},
	}
	profiles := []models.EnrichedIntentProfile{
		{IntentRecord: models.IntentRecord{Intent: "plan change", Volume: 500}},
	}

	report := risk.Assess(res, inits, profiles, pools.Baseline{TotalFTE: 100})

	byCat := map[string]models.RiskFactor{}
	for _, f := range report.Factors {
		byCat[f.Category] = f
	}
	assert.InDelta(t, 100.0, byCat["implementation"].Score, 1e-9)
	assert.InDelta(t, 100.0, byCat["adoption"].Score, 1e-9)
	assert.InDelta(t, 85.0, byCat["technology"].Score, 1e-9)
	assert.InDelta(t, 100.0, byCat["data"].Score, 1e-9)
	assert.InDelta(t, 100.0, byCat["sustainability"].Score, 1e-9)

	assert.InDelta(t, 97.0, report.OverallScore, 1e-9)
	assert.Equal(t, "high", report.Level)
}
