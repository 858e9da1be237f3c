// Package finance turns a netting result into a multi-year projection:
// inflated benefits, an investment estimate with platform pooling, net
// cash flows, NPV, IRR, and payback. Everything here is a pure fold over
// the phased vectors; nothing reaches back into the pools.
package finance

import (
	"math"
	"sort"

	"contact-navigator/config"
	"contact-navigator/models"
	"contact-navigator/pools"
	"contact-navigator/waterfall"
)

// Per-lever investment bases used when a catalog entry carries none.
// Calibrated for an operation around the reference FTE size; the size
// scale stretches them in either direction.
var defaultInvestmentBase = map[models.Lever]float64{
	models.LeverDeflection:          450_000,
	models.LeverAHTReduction:        300_000,
	models.LeverRepeatReduction:     220_000,
	models.LeverTransferReduction:   180_000,
	models.LeverEscalationReduction: 180_000,
	models.LeverShrinkageReduction:  120_000,
	models.LeverCostReduction:       900_000,
}

// pooledMarginalShare is what a follow-on initiative pays when an earlier,
// higher-scored initiative already funded its platform family.
const pooledMarginalShare = 0.25

// Project builds the full financial summary for one netting result.
func Project(res *waterfall.Result, inits []models.Initiative, roles []models.Role, base pools.Baseline, cfg *config.Config) models.FinancialSummary {
	inv := Investment(inits, base.TotalFTE, cfg)
	return Summary(res, roles, base, inv, cfg)
}

// Investment estimates the one-time implementation cost across the enabled
// initiatives. Each initiative pays its catalog base (or the lever default)
// stretched by the size scale; initiatives sharing a platform family pay
// the marginal share once the family's anchor is funded, with the
// highest-scored initiative anchoring. Change management, training, and
// contingency are uplifts on the pooled base.
func Investment(inits []models.Initiative, totalFTE float64, cfg *config.Config) models.InvestmentBreakdown {
	buildable := make([]models.Initiative, 0, len(inits))
	for _, init := range inits {
		if init.Enabled && init.Lever.Known() {
			buildable = append(buildable, init)
		}
	}
	sort.SliceStable(buildable, func(i, j int) bool {
		if buildable[i].Score != buildable[j].Score {
			return buildable[i].Score > buildable[j].Score
		}
		return buildable[i].ID < buildable[j].ID
	})

	scale := sizeScale(totalFTE, cfg.Finance.SizeScaleReferenceFTE)
	funded := make(map[string]bool)
	baseCost := 0.0
	for _, init := range buildable {
		b := init.InvestmentBase
		if b <= 0 {
			b = defaultInvestmentBase[init.Lever]
		}
		b *= scale
		if fam := init.PlatformFamily; fam != "" {
			if funded[fam] {
				b *= pooledMarginalShare
			} else {
				funded[fam] = true
			}
		}
		baseCost += b
	}

	cm := baseCost * cfg.Finance.ChangeMgmtShare
	tr := baseCost * cfg.Finance.TrainingShare
	ct := baseCost * cfg.Finance.ContingencyShare
	return models.InvestmentBreakdown{
		Base:             baseCost,
		ChangeManagement: cm,
		Training:         tr,
		Contingency:      ct,
		Total:            baseCost + cm + tr + ct,
	}
}

// sizeScale stretches investment estimates by the square root of the
// workforce ratio, clamped so tiny or huge operations stay plausible.
func sizeScale(totalFTE, refFTE float64) float64 {
	if refFTE <= 0 {
		return 1
	}
	return math.Max(0.30, math.Min(2.0, math.Sqrt(math.Max(totalFTE, 0)/refFTE)))
}

// Summary folds phased benefits against a given investment estimate.
// Benefits price each role's phased reduction at that role's own cost and
// add the cost-only savings, inflated by wage growth; the investment is
// split over the first periods and ongoing run cost recurs every year.
// Year 0 carries only the upfront investment share.
func Summary(res *waterfall.Result, roles []models.Role, base pools.Baseline, inv models.InvestmentBreakdown, cfg *config.Config) models.FinancialSummary {
	horizon := cfg.Finance.HorizonYears
	costByRole := make(map[string]float64, len(roles))
	for _, r := range roles {
		costByRole[r.Name] = r.AnnualCostPerFTE
	}

	benefits := make([]float64, horizon)
	for _, ri := range res.RoleImpacts {
		cost := costByRole[ri.Role]
		for y := 0; y < horizon && y < len(ri.Yearly); y++ {
			benefits[y] += ri.Yearly[y] * cost
		}
	}
	for y := 0; y < horizon && y < len(res.CostPhased); y++ {
		benefits[y] += res.CostPhased[y]
	}
	for y := range benefits {
		benefits[y] *= math.Pow(1+cfg.Finance.WageInflation, float64(y+1))
	}

	split := cfg.Finance.InvestmentSplit
	ongoing := inv.Total * cfg.Finance.OngoingCostShare
	costs := make([]float64, horizon)
	for y := 1; y <= horizon; y++ {
		costs[y-1] = ongoing
		if y < len(split) {
			costs[y-1] += inv.Total * split[y]
		}
	}

	cash := make([]float64, horizon+1)
	if len(split) > 0 {
		cash[0] = -inv.Total * split[0]
	}
	for y := 1; y <= horizon; y++ {
		cash[y] = benefits[y-1] - costs[y-1]
	}

	totalBenefit := 0.0
	for _, b := range benefits {
		totalBenefit += b
	}
	totalCost := inv.Total + ongoing*float64(horizon)

	summary := models.FinancialSummary{
		HorizonYears:   horizon,
		DiscountRate:   cfg.Finance.DiscountRate,
		YearlyBenefits: benefits,
		YearlyCosts:    costs,
		NetCashFlow:    cash,
		Investment:     inv,
		NPV:            NPV(cash, cfg.Finance.DiscountRate),
		IRR:            IRR(cash),
		TotalBenefit:   totalBenefit,
		TotalCost:      totalCost,
	}
	if base.AnnualVolume > 0 {
		summary.CostPerContact = base.TotalAnnualCost / base.AnnualVolume
	}
	if horizon > 0 {
		if steady := benefits[horizon-1] - ongoing; steady > 0 {
			months := inv.Total / steady * 12
			summary.PaybackMonths = &months
		}
	}
	return summary
}

// NPV discounts the cash flow vector, treating index 0 as the present.
func NPV(cashflows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR finds the discount rate that zeroes the NPV by Newton-Raphson from a
// 10% guess, with the rate clamped to [-0.5, 10] to keep iterates real.
// Cash flows that never change sign have no internal rate, and
// non-convergence within the iteration limit also returns nil.
func IRR(cashflows []float64) *float64 {
	hasPos, hasNeg := false, false
	for _, cf := range cashflows {
		if cf > 0 {
			hasPos = true
		}
		if cf < 0 {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return nil
	}

	rate := 0.10
	for i := 0; i < 100; i++ {
		npv, dnpv := 0.0, 0.0
		for t, cf := range cashflows {
			ft := float64(t)
			npv += cf / math.Pow(1+rate, ft)
			dnpv -= ft * cf / math.Pow(1+rate, ft+1)
		}
		if math.Abs(npv) < 1 {
			return &rate
		}
		if math.Abs(dnpv) < 1e-10 {
			return nil
		}
		rate = math.Max(-0.5, math.Min(10, rate-npv/dnpv))
	}
	return nil
}

// ScaleInvestment multiplies every component of an estimate, for scenario
// and sensitivity reruns.
func ScaleInvestment(inv models.InvestmentBreakdown, m float64) models.InvestmentBreakdown {
	return models.InvestmentBreakdown{
		Base:             inv.Base * m,
		ChangeManagement: inv.ChangeManagement * m,
		Training:         inv.Training * m,
		Contingency:      inv.Contingency * m,
		Total:            inv.Total * m,
	}
}
