// Package engine orchestrates a full run: enrichment, pool construction,
// the operational diagnostic, initiative scoring, the netting waterfall,
// and the financial, risk, and workforce layers on top, plus the scenario
// and sensitivity reruns. Every run builds fresh state from its inputs;
// nothing carries over between runs.
package engine

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"contact-navigator/benchmark"
	"contact-navigator/config"
	"contact-navigator/diagnostic"
	"contact-navigator/enrichment"
	apperrors "contact-navigator/errors"
	"contact-navigator/finance"
	"contact-navigator/gross"
	"contact-navigator/logging"
	"contact-navigator/metrics"
	"contact-navigator/models"
	"contact-navigator/pools"
	"contact-navigator/risk"
	"contact-navigator/waterfall"
	"contact-navigator/workforce"
)

// scenarioShift is the multiplier set of one named scenario.
type scenarioShift struct {
	impact     float64
	ramp       float64
	investment float64
}

var scenarioShifts = map[string]scenarioShift{
	"conservative": {impact: 0.70, ramp: 1.15, investment: 1.50},
	"aggressive":   {impact: 1.30, ramp: 0.90, investment: 0.60},
}

// scenarioNames fixes the rerun order.
var scenarioNames = []string{"conservative", "aggressive"}

const sensitivityDelta = 0.20

// runState bundles the base run's artifacts for the rerun helpers.
type runState struct {
	cfg       *config.Config
	profiles  []models.EnrichedIntentProfile
	roles     []models.Role
	annotated []models.Initiative
	base      pools.Baseline
	res       *waterfall.Result
	inv       models.InvestmentBreakdown
	fin       models.FinancialSummary
}

// Run executes the full pipeline over the inputs and returns the complete
// result. The context bounds the whole run including reruns.
func Run(ctx context.Context, in models.Inputs, cfg *config.Config, log logging.Logger) (*models.RunResult, error) {
	log = logging.OrNop(log)
	start := time.Now()

	if err := validate(in, cfg); err != nil {
		return nil, err
	}
	metrics.ResetRunGauges()

	result := &models.RunResult{
		RunID:                  uuid.NewString(),
		GeneratedAt:            start.UTC(),
		Scenario:               "base",
		AnnualizationFactor:    cfg.Run.VolumeAnnualizationFactor,
		AnnualizationDefaulted: cfg.Run.AnnualizationDefaulted,
	}
	if cfg.Run.AnnualizationDefaulted {
		log.Warnf(ctx, "volume annualization factor not configured; assuming monthly samples (factor %.0f)", cfg.Run.VolumeAnnualizationFactor)
		result.Warnings = append(result.Warnings,
			"volume annualization factor defaulted to 12 (monthly); set run.volume_annualization_factor explicitly")
	}

	profiles, err := enrichment.Enrich(ctx, in.Queues, cfg, log)
	if err != nil {
		return nil, err
	}
	base := pools.NewBaseline(profiles, in.Roles, cfg)
	set := pools.Build(profiles, in.Roles, cfg)

	resolver := benchmark.NewResolver(cfg.Benchmarks)
	diag := diagnostic.Assess(profiles, base, resolver)
	annotated := waterfall.Annotate(in.Initiatives, set, base, diag)

	gctx := &gross.Context{Profiles: profiles, Roles: in.Roles, Baseline: base, Config: cfg}
	res, err := waterfall.Run(ctx, annotated, gctx, set, log)
	if err != nil {
		return nil, err
	}

	inv := finance.Investment(annotated, base.TotalFTE, cfg)
	fin := finance.Summary(res, in.Roles, base, inv, cfg)

	result.AnnualVolume = base.AnnualVolume
	result.TotalBaselineFTE = base.TotalFTE
	result.Intents = enrichment.Summarize(profiles)
	result.Pools = res.Pools
	result.Audit = res.Audit
	result.RoleImpacts = res.RoleImpacts
	result.TotalNetFTE = res.TotalNetFTE
	result.TotalGross = res.TotalGrossFTE
	result.Financials = fin
	result.Diagnostic = diag
	result.Risk = risk.Assess(res, annotated, profiles, base)
	result.Workforce = workforce.Plan(res, in.Roles, cfg)
	result.Warnings = append(result.Warnings, res.Warnings...)

	st := &runState{
		cfg:       cfg,
		profiles:  profiles,
		roles:     in.Roles,
		annotated: annotated,
		base:      base,
		res:       res,
		inv:       inv,
		fin:       fin,
	}
	if result.Scenarios, err = scenarios(ctx, st); err != nil {
		return nil, err
	}
	if result.Sensitivity, err = sensitivity(ctx, st); err != nil {
		return nil, err
	}

	observe(result, time.Since(start))
	log.Infof(ctx, "run %s: %.1f net FTE of %.1f gross, NPV %.0f, %d warnings in %s",
		result.RunID, result.TotalNetFTE, result.TotalGross, fin.NPV,
		len(result.Warnings), time.Since(start).Round(time.Millisecond))
	return result, nil
}

func validate(in models.Inputs, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(in.Queues) == 0 {
		return apperrors.ErrNoQueues
	}
	if len(in.Roles) == 0 {
		return apperrors.ErrNoRoles
	}
	for _, init := range in.Initiatives {
		if init.Enabled {
			return nil
		}
	}
	return apperrors.ErrNoInitiatives
}

// rerun executes the waterfall over possibly perturbed inputs with a fresh
// pool set. Reruns log nothing; warnings surfaced once on the base run
// would only repeat.
func rerun(ctx context.Context, inits []models.Initiative, profiles []models.EnrichedIntentProfile, roles []models.Role, cfg *config.Config) (*waterfall.Result, pools.Baseline, error) {
	base := pools.NewBaseline(profiles, roles, cfg)
	set := pools.Build(profiles, roles, cfg)
	gctx := &gross.Context{Profiles: profiles, Roles: roles, Baseline: base, Config: cfg}
	res, err := waterfall.Run(ctx, inits, gctx, set, logging.Nop())
	return res, base, err
}

// scenarios reruns the waterfall under the conservative and aggressive
// multiplier sets. Impact multipliers stretch both the rate and the
// seconds-denominated parameters, ramp multipliers stretch the phasing,
// and investment multipliers scale the estimate directly.
func scenarios(ctx context.Context, st *runState) (map[string]models.ScenarioSummary, error) {
	out := map[string]models.ScenarioSummary{
		"base": {
			Name:         "base",
			NetFTE:       st.res.TotalNetFTE,
			TotalBenefit: st.fin.TotalBenefit,
			Investment:   st.inv.Total,
			NPV:          st.fin.NPV,
			IRR:          st.fin.IRR,
		},
	}
	for _, name := range scenarioNames {
		shift := scenarioShifts[name]
		scaled := scaleImpact(st.annotated, shift.impact, shift.ramp)
		res, base, err := rerun(ctx, scaled, st.profiles, st.roles, st.cfg)
		if err != nil {
			return nil, err
		}
		inv := finance.ScaleInvestment(finance.Investment(scaled, base.TotalFTE, st.cfg), shift.investment)
		fin := finance.Summary(res, st.roles, base, inv, st.cfg)
		out[name] = models.ScenarioSummary{
			Name:         name,
			NetFTE:       res.TotalNetFTE,
			TotalBenefit: fin.TotalBenefit,
			Investment:   inv.Total,
			NPV:          fin.NPV,
			IRR:          fin.IRR,
		}
	}
	return out, nil
}

// sensitivity perturbs one variable at a time by +/-20% and reports the
// NPV band per variable, widest swing first. Variables that only touch the
// financial fold reuse the base netting result; the rest rerun the
// waterfall.
func sensitivity(ctx context.Context, st *runState) ([]models.SensitivityResult, error) {
	type variable struct {
		name string
		npv  func(delta float64) (float64, error)
	}

	rerunNPV := func(inits []models.Initiative, roles []models.Role, cfg *config.Config) (float64, error) {
		res, base, err := rerun(ctx, inits, st.profiles, roles, cfg)
		if err != nil {
			return 0, err
		}
		return finance.Summary(res, roles, base, st.inv, cfg).NPV, nil
	}

	variables := []variable{
		{"impact_rate", func(d float64) (float64, error) {
			return rerunNPV(scaleImpact(st.annotated, 1+d, 1), st.roles, st.cfg)
		}},
		{"adoption", func(d float64) (float64, error) {
			return rerunNPV(scaleAdoption(st.annotated, 1+d), st.roles, st.cfg)
		}},
		{"cost_per_fte", func(d float64) (float64, error) {
			return rerunNPV(st.annotated, scaleRoleCosts(st.roles, 1+d), st.cfg)
		}},
		{"discount_rate", func(d float64) (float64, error) {
			cfg := st.cfg.Clone()
			cfg.Finance.DiscountRate *= 1 + d
			return finance.Summary(st.res, st.roles, st.base, st.inv, cfg).NPV, nil
		}},
		{"investment", func(d float64) (float64, error) {
			inv := finance.ScaleInvestment(st.inv, 1+d)
			return finance.Summary(st.res, st.roles, st.base, inv, st.cfg).NPV, nil
		}},
		{"annualization_factor", func(d float64) (float64, error) {
			cfg := st.cfg.Clone()
			cfg.Run.VolumeAnnualizationFactor *= 1 + d
			return rerunNPV(st.annotated, st.roles, cfg)
		}},
	}

	results := make([]models.SensitivityResult, 0, len(variables))
	for _, v := range variables {
		low, err := v.npv(-sensitivityDelta)
		if err != nil {
			return nil, err
		}
		high, err := v.npv(sensitivityDelta)
		if err != nil {
			return nil, err
		}
		results = append(results, models.SensitivityResult{
			Variable: v.name,
			Delta:    sensitivityDelta,
			NPVLow:   low,
			NPVHigh:  high,
			Swing:    math.Abs(high - low),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Swing > results[j].Swing
	})
	return results, nil
}

func scaleImpact(inits []models.Initiative, impact, ramp float64) []models.Initiative {
	out := make([]models.Initiative, len(inits))
	copy(out, inits)
	for i := range out {
		out[i].ImpactRate = math.Min(1, out[i].ImpactRate*impact)
		out[i].SecondsPerContact *= impact
		if ramp != 1 && out[i].RampMonths > 0 {
			out[i].RampMonths = int(math.Max(2, math.Round(float64(out[i].RampMonths)*ramp)))
		}
	}
	return out
}

func scaleAdoption(inits []models.Initiative, m float64) []models.Initiative {
	out := make([]models.Initiative, len(inits))
	copy(out, inits)
	for i := range out {
		out[i].Adoption = math.Min(1, out[i].Adoption*m)
	}
	return out
}

func scaleRoleCosts(roles []models.Role, m float64) []models.Role {
	out := make([]models.Role, len(roles))
	copy(out, roles)
	for i := range out {
		out[i].AnnualCostPerFTE *= m
	}
	return out
}

func observe(result *models.RunResult, elapsed time.Duration) {
	metrics.RunsTotal.Inc()
	metrics.RunDurationSeconds.Observe(elapsed.Seconds())
	metrics.NetFTETotal.Set(result.TotalNetFTE)
	metrics.GrossFTETotal.Set(result.TotalGross)
	metrics.NPVDollars.Set(result.Financials.NPV)
	metrics.InitiativesPerRun.Observe(float64(len(result.Audit)))
	for _, p := range result.Pools {
		lever := string(p.Lever)
		metrics.PoolCeilingFTE.WithLabelValues(lever).Set(p.CeilingFTE)
		metrics.PoolConsumedFTE.WithLabelValues(lever).Set(p.ConsumedFTE)
		metrics.PoolUtilization.WithLabelValues(lever).Set(p.Utilization)
	}
	for _, a := range result.Audit {
		metrics.InitiativesByCapReason.WithLabelValues(string(a.CapReason)).Inc()
		if a.CapReason == models.CapReasonUnknownLever {
			metrics.UnknownLeversTotal.Inc()
		}
	}
}
