package formatter_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"contact-navigator/formatter"
	"contact-navigator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureResult() *models.RunResult {
	irr := 0.42
	payback := 14.0
	return &models.RunResult{
		RunID:       "run-0001",
		GeneratedAt: time.Date(2025, 11, 4, 9, 30, 0, 0, time.UTC),
		Scenario:    "base",

		AnnualizationFactor: 12,
		AnnualVolume:        120_000,
		TotalBaselineFTE:    500,

		Pools: []models.PoolReport{
			{Lever: models.LeverDeflection, Unit: "contacts", Ceiling: 4800, CeilingFTE: 33.0, ConsumedFTE: 30.4, RemainingFTE: 2.6, Utilization: 0.92},
			{Lever: models.LeverAHTReduction, Unit: "seconds", Ceiling: 1_260_000, CeilingFTE: 28.8, ConsumedFTE: 4.1, RemainingFTE: 24.7, Utilization: 0.14},
		},
		Audit: []models.AuditEntry{
			{
				InitiativeID: "AI01", Initiative: "Virtual agent", Layer: 1,
				Lever: models.LeverDeflection, Score: 86,
				GrossFTE: 24.7, NetFTE: 21.2, CapReason: models.CapReasonPoolCap,
				Mechanism: "Deflection: self-service containment",
				PhasedFTE: []float64{10.6, 21.2, 21.2},
			},
			{
				InitiativeID: "LS01", Initiative: "Nearshore move", Layer: 3,
				Lever: models.LeverCostReduction, Score: 55,
				GrossCost: 1_160_932, NetCost: 980_000, CapReason: models.CapReasonFull,
				Mechanism: "Location: cost arbitrage",
				PhasedFTE: []float64{0, 0, 0},
			},
		},
		RoleImpacts: []models.RoleImpact{
			{Role: "Tier 1 Agent", BaselineFTE: 450, NetFTE: 21.2, ReductionShare: 0.047, Yearly: []float64{10.6, 21.2, 21.2}},
		},
		TotalNetFTE: 21.2,

		Financials: models.FinancialSummary{
			HorizonYears:   3,
			DiscountRate:   0.10,
			YearlyBenefits: []float64{500_000, 900_000, 950_000},
			YearlyCosts:    []float64{450_000, 150_000, 150_000},
			NetCashFlow:    []float64{-700_000, 50_000, 750_000, 800_000},
			Investment:     models.InvestmentBreakdown{Base: 800_000, ChangeManagement: 80_000, Training: 40_000, Contingency: 80_000, Total: 1_000_000},
			NPV:            346_000,
			IRR:            &irr,
			PaybackMonths:  &payback,
			TotalBenefit:   2_350_000,
			TotalCost:      1_450_000,
			CostPerContact: 8.50,
		},
		Diagnostic: &models.DiagnosticReport{
			OverallScore: 47.5, Rating: "amber",
			Metrics: []models.MetricAssessment{
				{Metric: "aht", Baseline: 432, Benchmark: 360, Gap: -0.2, Score: 40, Rating: "amber"},
			},
		},
		Risk: &models.RiskReport{
			OverallScore: 54.7, Level: "medium",
			Factors: []models.RiskFactor{
				{Category: "data", Score: 100, Drivers: []string{"sparse repeat data"}, Mitigation: "Instrument the gaps"},
			},
		},
		Workforce: &models.WorkforcePlan{TotalReduction: 21.2, AttritionAbsorbed: 21.2},
		Scenarios: map[string]models.ScenarioSummary{
			"conservative": {Name: "conservative", NetFTE: 15.1, Investment: 1_500_000, NPV: -120_000},
			"base":         {Name: "base", NetFTE: 21.2, TotalBenefit: 2_350_000, Investment: 1_000_000, NPV: 346_000, IRR: &irr},
			"aggressive":   {Name: "aggressive", NetFTE: 27.8, Investment: 600_000, NPV: 800_000},
		},
		Sensitivity: []models.SensitivityResult{
			{Variable: "impact_rate", Delta: 0.2, NPVLow: 100_000, NPVHigh: 600_000, Swing: 500_000},
		},
		Warnings: []string{"volume annualization factor defaulted to 12 (monthly); set run.volume_annualization_factor explicitly"},
	}
}

func TestFormatText(t *testing.T) {
	output := formatter.FormatText(fixtureResult())

	contains := []string{
		"CONTACT TRANSFORMATION BENEFITS CASE",
		"run run-0001",
		"generated 2025-11-04",
		"baseline: 500 FTE | 120000 contacts/yr (factor 12) | $8.50 per contact",
		"warning: volume annualization factor defaulted to 12",
		"DIAGNOSTIC",
		"overall 47.5",
		"aht",
		"OPPORTUNITY POOLS",
		"deflection",
		"contacts",
		"NETTING WATERFALL",
		"AI01",
		"[pool_cap]",
		"gross   24.7 -> net   21.2 FTE",
		"saving $1160932 -> $980000",
		"ROLE IMPACT",
		"Tier 1 Agent",
		"FINANCIALS",
		"3-year horizon at 10% discount",
		"investment: $1.00M",
		"NPV $346k",
		"IRR 42.0%",
		"payback 14 months",
		"WORKFORCE TRANSITION",
		"DELIVERY RISK",
		"medium",
		"sparse repeat data",
		"Instrument the gaps",
		"SCENARIOS",
		"conservative",
		"aggressive",
		"SENSITIVITY (+/-20%)",
		"impact_rate",
	}
	for _, want := range contains {
		assert.Contains(t, output, want)
	}
}

func TestFormatText_SkipsAbsentSections(t *testing.T) {
	// A bare result renders the header and financial skeleton only; the
	// optional layers stay out instead of printing empty tables.
	result := &models.RunResult{
		RunID:      "run-0002",
		Scenario:   "base",
		Financials: models.FinancialSummary{HorizonYears: 0},
	}

	output := formatter.FormatText(result)

	assert.Contains(t, output, "CONTACT TRANSFORMATION BENEFITS CASE")
	assert.Contains(t, output, "FINANCIALS")
	for _, section := range []string{
		"DIAGNOSTIC", "OPPORTUNITY POOLS", "NETTING WATERFALL", "ROLE IMPACT",
		"WORKFORCE TRANSITION", "DELIVERY RISK", "SCENARIOS", "SENSITIVITY",
	} {
		assert.NotContains(t, output, section)
	}
	assert.Contains(t, output, "IRR n/a")
	assert.Contains(t, output, "payback n/a")
}

func TestFormatJSON(t *testing.T) {
	output := formatter.FormatJSON(fixtureResult())

	var decoded models.RunResult
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.Equal(t, "run-0001", decoded.RunID)
	assert.Equal(t, "base", decoded.Scenario)
	assert.Len(t, decoded.Audit, 2)
	assert.Equal(t, models.CapReasonPoolCap, decoded.Audit[0].CapReason)
	assert.InDelta(t, 21.2, decoded.TotalNetFTE, 1e-9)
	require.NotNil(t, decoded.Financials.IRR)
	assert.InDelta(t, 0.42, *decoded.Financials.IRR, 1e-9)
	assert.Len(t, decoded.Scenarios, 3)
	assert.Len(t, decoded.Warnings, 1)
}

func TestFormatCSV(t *testing.T) {
	output := formatter.FormatCSV(fixtureResult())

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3, "header plus one row per audit entry")

	assert.Equal(t,
		"Initiative ID,Name,Layer,Lever,Score,Gross FTE,Net FTE,Gross Saving,Net Saving,Cap Reason,Year 1 FTE,Year 2 FTE,Year 3 FTE,Mechanism",
		lines[0])

	assert.Contains(t, lines[1], "AI01,Virtual agent,1,deflection,86.0,24.7,21.2,0,0,pool_cap,10.6,21.2,21.2")
	assert.Contains(t, lines[1], "Deflection: self-service containment")
	assert.Contains(t, lines[2], "LS01,Nearshore move,3,cost_reduction,55.0,0.0,0.0,1160932,980000,full,0.0,0.0,0.0")
}

func TestFormatCSV_PadsShortPhasing(t *testing.T) {
	// An entry with a short phased vector still fills every year column.
	result := &models.RunResult{
		Audit: []models.AuditEntry{
			{InitiativeID: "X1", Initiative: "Stub", Layer: 1, Lever: models.LeverDeflection, PhasedFTE: []float64{1.5}},
		},
		Financials: models.FinancialSummary{HorizonYears: 3},
	}

	output := formatter.FormatCSV(result)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "1.5,0.0,0.0")
}
