package gross_test

import (
	"errors"
	"testing"

	"contact-navigator/config"
	customerrors "contact-navigator/errors"
	"contact-navigator/gross"
	"contact-navigator/models"
	"contact-navigator/pools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

// newContext pins one voice intent (1000 monthly contacts, 300s AHT,
// reducible 105s) against a 500 FTE workforce so every lever's arithmetic
// can be followed by hand.
func newContext() *gross.Context {
	profiles := []models.EnrichedIntentProfile{
		{
			IntentRecord: models.IntentRecord{
				Intent: "Plan change", Channel: "voice",
				Volume: 1000, AHTSeconds: 300, ACWSeconds: 45, Complexity: 0.40,
				RepeatRate: fp(0.10), TransferRate: 0.08, EscalationRate: 0.04,
			},
			Containment:        0.80,
			EligibleFraction:   0.50,
			Decomposition:      models.AHTDecomposition{Talk: 210, Hold: 30, Search: 60, Wrap: 45},
			TransferSplit:      models.RateSplit{Preventable: 0.04, Structural: 0.04},
			EscalationSplit:    models.RateSplit{Preventable: 0.016, Structural: 0.024},
			MigrationReadiness: 0.585,
		},
	}
	roles := []models.Role{
		{Name: "Tier 1 Agent", FTE: 450, AnnualCostPerFTE: 42000, Segment: "frontline", Migratable: true},
		{Name: "Team Lead", FTE: 50, AnnualCostPerFTE: 60000, Segment: "support", Migratable: false},
	}
	cfg := config.Default()
	return &gross.Context{
		Profiles: profiles,
		Roles:    roles,
		Baseline: pools.NewBaseline(profiles, roles, cfg),
		Config:   cfg,
	}
}

func TestAffected(t *testing.T) {
	ctx := newContext()

	tests := map[string]struct {
		targets       []string
		expectedFTE   float64
		expectedCost  float64
		expectedNames []string
	}{
		"EmptyTargets_WholeWorkforce": {
			targets:     nil,
			expectedFTE: 500,
			// (450*42000 + 50*60000) / 500 = 43800.
			expectedCost:  43800,
			expectedNames: []string{"Tier 1 Agent", "Team Lead"},
		},
		"SingleTarget": {
			targets:       []string{"Tier 1 Agent"},
			expectedFTE:   450,
			expectedCost:  42000,
			expectedNames: []string{"Tier 1 Agent"},
		},
		"UnknownTarget_NothingAffected": {
			targets:       []string{"Quality Analyst"},
			expectedFTE:   0,
			expectedCost:  0,
			expectedNames: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fte, cost, names := gross.Affected(models.Initiative{TargetRoles: tt.targets}, ctx.Roles)
			assert.InDelta(t, tt.expectedFTE, fte, 1e-9)
			assert.InDelta(t, tt.expectedCost, cost, 1e-6)
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestCompute_Deflection(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "AI01", Lever: models.LeverDeflection,
		ImpactRate: 0.30, Adoption: 0.65,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte, ok := effect.(models.FTEEffect)
	require.True(t, ok, "deflection must produce an FTE effect")

	// 12000 annual * 0.50 eligible * min(.30, .80) * 0.65 = 1170 contacts
	// = 97.5 hours at 300s each.
	assert.InDelta(t, 1170.0, fte.Native, 1e-6)
	assert.InDelta(t, 97.5/1456, fte.FTE, 1e-9)
	assert.Contains(t, fte.Mechanism, "Deflection:")
}

func TestCompute_Deflection_ContainmentClampsImpact(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "AI99", Lever: models.LeverDeflection,
		ImpactRate: 0.90, Adoption: 0.65,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// Impact 0.90 exceeds containment 0.80, so 0.80 applies:
	// 12000 * 0.50 * 0.80 * 0.65 = 3120 contacts.
	assert.InDelta(t, 3120.0, fte.Native, 1e-6)
}

func TestCompute_AHTReduction(t *testing.T) {
	tests := map[string]struct {
		init            models.Initiative
		expectedSeconds float64
	}{
		"ExplicitSecondsPerContact": {
			init: models.Initiative{
				ID: "AI03", Lever: models.LeverAHTReduction,
				SecondsPerContact: 45, Adoption: 0.70,
			},
			// 12000 * 45s * 0.70 = 378000 seconds.
			expectedSeconds: 378000,
		},
		"SecondsClampedToReducible": {
			init: models.Initiative{
				ID: "AI04", Lever: models.LeverAHTReduction,
				SecondsPerContact: 150, Adoption: 0.70,
			},
			// Reducible is only 105s: 12000 * 105 * 0.70 = 882000.
			expectedSeconds: 882000,
		},
		"RateBased": {
			init: models.Initiative{
				ID: "OP01", Lever: models.LeverAHTReduction,
				ImpactRate: 0.20, Adoption: 0.70,
			},
			// 20% of the reducible 105s = 21s per contact.
			expectedSeconds: 12000 * 21 * 0.70,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newContext()
			effect, err := gross.Compute(tt.init, ctx)
			require.NoError(t, err)

			fte := effect.(models.FTEEffect)
			assert.InDelta(t, tt.expectedSeconds, fte.Native, 1e-3)
			assert.InDelta(t, tt.expectedSeconds/3600/1456, fte.FTE, 1e-9)
		})
	}
}

func TestCompute_AHTReduction_FallbackReducible(t *testing.T) {
	ctx := newContext()
	// Wipe the decomposition: the default 35% of AHT takes over.
	ctx.Profiles[0].Decomposition = models.AHTDecomposition{}

	init := models.Initiative{
		ID: "OP01", Lever: models.LeverAHTReduction,
		ImpactRate: 0.50, Adoption: 1.0,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// Fallback reducible = 300 * 0.35 = 105s; 50% of that = 52.5s.
	assert.InDelta(t, 12000*52.5, fte.Native, 1e-3)
}

func TestCompute_RepeatReduction(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "OP02", Lever: models.LeverRepeatReduction,
		ImpactRate: 0.40, Adoption: 0.50,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// Observed repeat 0.10 is trusted (above the 0.02 floor):
	// 12000 * 0.10 * 0.40 * 0.50 = 240 contacts.
	assert.InDelta(t, 240.0, fte.Native, 1e-6)
	assert.NotContains(t, fte.Mechanism, "FCR-derived")
}

func TestCompute_RepeatReduction_PreventableCapBinds(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "OP02", Lever: models.LeverRepeatReduction,
		ImpactRate: 1.0, Adoption: 0.90,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// Raw elimination would be 1080 contacts but at most 70% of observed
	// repeats are preventable: 12000 * 0.10 * 0.70 = 840.
	assert.InDelta(t, 840.0, fte.Native, 1e-6)
}

func TestCompute_RepeatReduction_SparseDataFallback(t *testing.T) {
	ctx := newContext()
	ctx.Profiles[0].RepeatRate = nil
	ctx.Profiles[0].FCRRate = fp(0.70)

	init := models.Initiative{
		ID: "OP02", Lever: models.LeverRepeatReduction,
		ImpactRate: 0.40, Adoption: 0.50,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// No observed repeats: FCR gap fallback = max(.05, .30*.60) = 0.18.
	// 12000 * 0.18 * 0.40 * 0.50 = 432 contacts.
	assert.InDelta(t, 432.0, fte.Native, 1e-6)
	assert.Contains(t, fte.Mechanism, "FCR-derived")
}

func TestCompute_TransferReduction(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "AI06", Lever: models.LeverTransferReduction,
		ImpactRate: 0.35, Adoption: 0.60,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// Prevented share = max(.15, .55 - .40*.40) = 0.39.
	// 12000 * 0.08 * 0.39 * 0.35 * 0.60 = 78.624 transfers.
	assert.InDelta(t, 78.624, fte.Native, 1e-6)
	// Each avoided transfer saves 180s.
	assert.InDelta(t, 78.624*180/3600/1456, fte.FTE, 1e-9)
}

func TestCompute_EscalationReduction(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "AI07", Lever: models.LeverEscalationReduction,
		ImpactRate: 0.30, Adoption: 0.60,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	fte := effect.(models.FTEEffect)
	// Preventable escalations 0.016 of volume:
	// 12000 * 0.016 * 0.30 * 0.60 = 34.56, at 300s each.
	assert.InDelta(t, 34.56, fte.Native, 1e-6)
	assert.InDelta(t, 34.56*300/3600/1456, fte.FTE, 1e-9)
}

func TestCompute_Shrinkage(t *testing.T) {
	tests := map[string]struct {
		init        models.Initiative
		expectedFTE float64
	}{
		"ImpactBelowGap": {
			init: models.Initiative{
				ID: "OP05", Lever: models.LeverShrinkageReduction,
				ImpactRate: 0.04, Adoption: 0.85,
			},
			// min(.04*.85, .08) = 0.034 on 500 FTE = 17.
			expectedFTE: 17,
		},
		"GapBinds": {
			init: models.Initiative{
				ID: "OP06", Lever: models.LeverShrinkageReduction,
				ImpactRate: 0.20, Adoption: 1.0,
			},
			// The 8pt shrinkage gap caps the recovery: 500 * 0.08 = 40.
			expectedFTE: 40,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newContext()
			effect, err := gross.Compute(tt.init, ctx)
			require.NoError(t, err)

			fte := effect.(models.FTEEffect)
			assert.InDelta(t, tt.expectedFTE, fte.FTE, 1e-6)
			assert.InDelta(t, tt.expectedFTE*43800, fte.Cost, 1e-3)
		})
	}
}

func TestCompute_Location(t *testing.T) {
	ctx := newContext()

	init := models.Initiative{
		ID: "LS01", Lever: models.LeverCostReduction,
		ImpactRate: 0.40, Adoption: 0.75,
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	cost, ok := effect.(models.CostEffect)
	require.True(t, ok, "location must produce a cost-only effect")

	// Candidates are the migratable 450 FTE at 42000; migratable volume
	// share 0.585. Migrated = 450 * 0.585 * 0.40 * 0.75 = 78.975 FTE.
	assert.InDelta(t, 78.975, cost.MigratedFTE, 1e-6)
	// Saving = 78.975 * 42000 * 0.35 arbitrage = 1,160,932.50.
	assert.InDelta(t, 1_160_932.50, cost.Cost, 1e-2)
}

func TestCompute_Location_NoMigratableCandidates(t *testing.T) {
	ctx := newContext()

	// Team Lead is not migratable, so targeting it leaves no candidates.
	init := models.Initiative{
		ID: "LS02", Lever: models.LeverCostReduction,
		ImpactRate: 0.40, Adoption: 0.75,
		TargetRoles: []string{"Team Lead"},
	}

	effect, err := gross.Compute(init, ctx)
	require.NoError(t, err)

	cost := effect.(models.CostEffect)
	assert.Equal(t, 0.0, cost.MigratedFTE)
	assert.Equal(t, 0.0, cost.Cost)
}

func TestCompute_UnknownLever(t *testing.T) {
	ctx := newContext()

	_, err := gross.Compute(models.Initiative{ID: "XX01", Lever: "teleportation"}, ctx)
	assert.ErrorIs(t, err, customerrors.ErrUnknownLever)

	var cerr *customerrors.CatalogError
	if assert.True(t, errors.As(err, &cerr)) {
		assert.Equal(t, "XX01", cerr.InitiativeID)
	}
}
