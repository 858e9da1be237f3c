package pools_test

import (
	"testing"

	"contact-navigator/config"
	"contact-navigator/models"
	"contact-navigator/pools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

// fixtureProfile is a single voice intent with every derived field pinned
// so ceiling arithmetic can be checked by hand. Volume is monthly.
func fixtureProfile() models.EnrichedIntentProfile {
	return models.EnrichedIntentProfile{
		IntentRecord: models.IntentRecord{
			Intent: "Plan change", Channel: "voice",
			Volume: 1000, AHTSeconds: 300, ACWSeconds: 45, Complexity: 0.40,
			RepeatRate: fp(0.10),
		},
		Repeatability:      0.45,
		EmotionalRisk:      0.20,
		AuthRequirement:    0.30,
		Containment:        0.80,
		EligibleFraction:   0.50,
		Decomposition:      models.AHTDecomposition{Talk: 210, Hold: 30, Search: 60, Wrap: 45},
		TransferSplit:      models.RateSplit{Preventable: 0.04, Structural: 0.04},
		EscalationSplit:    models.RateSplit{Preventable: 0.016, Structural: 0.024},
		MigrationReadiness: 0.585,
	}
}

func fixtureRoles() []models.Role {
	return []models.Role{
		{Name: "Tier 1 Agent", FTE: 450, AnnualCostPerFTE: 42000, Segment: "frontline", Migratable: true},
		{Name: "Team Lead", FTE: 50, AnnualCostPerFTE: 60000, Segment: "support", Migratable: false},
	}
}

func TestNewBaseline(t *testing.T) {
	cfg := config.Default() // factor 12, net productive hours 1456

	b := pools.NewBaseline([]models.EnrichedIntentProfile{fixtureProfile()}, fixtureRoles(), cfg)

	// 1000 monthly contacts * 12 = 12000 annual.
	assert.InDelta(t, 12000.0, b.AnnualVolume, 1e-6)
	assert.InDelta(t, 300.0, b.AvgHandleSeconds, 1e-9)
	assert.InDelta(t, 500.0, b.TotalFTE, 1e-9)
	assert.InDelta(t, 450.0, b.MigratableFTE, 1e-9)
	// 450*42000 + 50*60000 = 21.9M; weighted = 43800.
	assert.InDelta(t, 21_900_000.0, b.TotalAnnualCost, 1e-3)
	assert.InDelta(t, 43800.0, b.WeightedCostPerFTE, 1e-6)
	assert.InDelta(t, 1456.0, b.NetProductiveHours, 1e-9)
}

func TestNewBaseline_CostOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Finance.AvgCostPerFTE = 50000

	b := pools.NewBaseline([]models.EnrichedIntentProfile{fixtureProfile()}, fixtureRoles(), cfg)

	assert.Equal(t, 50000.0, b.WeightedCostPerFTE, "explicit average cost overrides the role-weighted value")
}

func TestBaselineConversions(t *testing.T) {
	b := pools.Baseline{NetProductiveHours: 1456, AvgHandleSeconds: 300}

	// 3,600,000 saved seconds = 1000 hours = 1000/1456 FTE.
	assert.InDelta(t, 1000.0/1456, b.FTEFromSeconds(3_600_000), 1e-9)
	// 12000 contacts * 300s = 1000 hours.
	assert.InDelta(t, 1000.0/1456, b.FTEFromContacts(12000), 1e-9)
}

func TestBuild_Ceilings(t *testing.T) {
	cfg := config.Default()
	set := pools.Build([]models.EnrichedIntentProfile{fixtureProfile()}, fixtureRoles(), cfg)

	get := func(lever models.Lever) *pools.Pool {
		p, ok := set.Get(lever)
		require.True(t, ok, "pool %s missing", lever)
		return p
	}

	// Deflection: 12000 * 0.50 eligible * 0.80 containment = 4800
	// contacts = 400 hours at 300s AHT.
	deflect := get(models.LeverDeflection)
	assert.Equal(t, "contacts", deflect.Unit)
	assert.InDelta(t, 4800.0, deflect.Ceiling, 1e-6)
	assert.InDelta(t, 400.0/1456, deflect.CeilingFTE, 1e-9)

	// AHT: reducible = search+wrap = 105s per contact * 12000 = 1.26M
	// seconds = 350 hours.
	aht := get(models.LeverAHTReduction)
	assert.Equal(t, "seconds", aht.Unit)
	assert.InDelta(t, 1_260_000.0, aht.Ceiling, 1e-3)
	assert.InDelta(t, 350.0/1456, aht.CeilingFTE, 1e-9)

	// Repeat: rate 0.10, FCR defaults to 0.75, target = .90-.15*.40 = .84,
	// gap .09 -> share .09 capped at .10*.70 = .07 -> 840 contacts = 70h.
	repeat := get(models.LeverRepeatReduction)
	assert.InDelta(t, 840.0, repeat.Ceiling, 1e-6)
	assert.InDelta(t, 70.0/1456, repeat.CeilingFTE, 1e-9)

	// Transfers: 12000 * 0.04 preventable = 480, at 180s each = 24 hours.
	transfer := get(models.LeverTransferReduction)
	assert.Equal(t, "transfers", transfer.Unit)
	assert.InDelta(t, 480.0, transfer.Ceiling, 1e-6)
	assert.InDelta(t, 24.0/1456, transfer.CeilingFTE, 1e-9)

	// Escalations: 12000 * 0.016 = 192, at 300s each = 16 hours.
	escalation := get(models.LeverEscalationReduction)
	assert.InDelta(t, 192.0, escalation.Ceiling, 1e-6)
	assert.InDelta(t, 16.0/1456, escalation.CeilingFTE, 1e-9)

	// Shrinkage: 500 FTE * (0.30 - 0.22) = 40 FTE.
	shrink := get(models.LeverShrinkageReduction)
	assert.Equal(t, "fte", shrink.Unit)
	assert.InDelta(t, 40.0, shrink.Ceiling, 1e-6)
	assert.InDelta(t, 40.0, shrink.CeilingFTE, 1e-6)

	// Location: migratable share = 0.585; 450 migratable FTE * 0.585 *
	// 0.35 arbitrage = 92.1375 cost-equivalent FTE.
	cost := get(models.LeverCostReduction)
	assert.InDelta(t, 92.1375, cost.Ceiling, 1e-6)
	assert.InDelta(t, 92.1375, cost.CeilingFTE, 1e-6)
}

func TestPoolConsume_Clamps(t *testing.T) {
	cfg := config.Default()
	set := pools.Build([]models.EnrichedIntentProfile{fixtureProfile()}, fixtureRoles(), cfg)

	shrink, ok := set.Get(models.LeverShrinkageReduction)
	require.True(t, ok)

	// Ceiling is 40 FTE. First draw fits whole.
	gotFTE, gotNative := shrink.Consume(25, 25)
	assert.InDelta(t, 25.0, gotFTE, 1e-9)
	assert.InDelta(t, 25.0, gotNative, 1e-9)
	assert.InDelta(t, 15.0, shrink.RemainingFTE(), 1e-6)

	// Second draw asks for 25 but only 15 remain.
	gotFTE, _ = shrink.Consume(25, 25)
	assert.InDelta(t, 15.0, gotFTE, 1e-6)
	assert.InDelta(t, 0.0, shrink.RemainingFTE(), 1e-6)
	assert.InDelta(t, 1.0, shrink.Utilization(), 1e-9)

	// Exhausted pool yields nothing more.
	gotFTE, gotNative = shrink.Consume(5, 5)
	assert.Equal(t, 0.0, gotFTE)
	assert.Equal(t, 0.0, gotNative)

	// Negative requests are treated as zero.
	gotFTE, _ = shrink.Consume(-3, -3)
	assert.Equal(t, 0.0, gotFTE)
}

func TestSnapshot_CanonicalOrder(t *testing.T) {
	cfg := config.Default()
	set := pools.Build([]models.EnrichedIntentProfile{fixtureProfile()}, fixtureRoles(), cfg)

	reports := set.Snapshot()
	require.Len(t, reports, len(models.CanonicalLeverOrder))

	for i, r := range reports {
		assert.Equal(t, models.CanonicalLeverOrder[i], r.Lever, "snapshot order must be canonical")
	}
}

func TestRepeatFallback(t *testing.T) {
	cfg := config.Default()
	h := &cfg.Heuristics

	tests := map[string]struct {
		profiles     []models.EnrichedIntentProfile
		expectedRate float64
		expectedUsed bool
	}{
		"ObservedRepeatAboveFloor_NoFallback": {
			profiles: []models.EnrichedIntentProfile{
				{IntentRecord: models.IntentRecord{Volume: 1000, RepeatRate: fp(0.10)}},
			},
			expectedRate: 0,
			expectedUsed: false,
		},
		"NoRepeatData_FCRGapFallback": {
			// Weighted FCR 0.70 -> fallback = max(.05, .30*.60) = 0.18.
			profiles: []models.EnrichedIntentProfile{
				{IntentRecord: models.IntentRecord{Volume: 1000, FCRRate: fp(0.70)}},
			},
			expectedRate: 0.18,
			expectedUsed: true,
		},
		"HighFCR_FloorBinds": {
			// Weighted FCR 0.95 -> gap fallback .03 under the .05 floor.
			profiles: []models.EnrichedIntentProfile{
				{IntentRecord: models.IntentRecord{Volume: 1000, FCRRate: fp(0.95)}},
			},
			expectedRate: 0.05,
			expectedUsed: true,
		},
		"TraceRepeatBelowFloor_StillFallsBack": {
			// Weighted repeat 0.01 sits under the 0.02 floor.
			profiles: []models.EnrichedIntentProfile{
				{IntentRecord: models.IntentRecord{Volume: 1000, RepeatRate: fp(0.01), FCRRate: fp(0.80)}},
			},
			expectedRate: 0.12,
			expectedUsed: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rate, used := pools.RepeatFallback(tt.profiles, 12, h)
			assert.Equal(t, tt.expectedUsed, used)
			if tt.expectedUsed {
				assert.InDelta(t, tt.expectedRate, rate, 1e-9)
			}
		})
	}
}
