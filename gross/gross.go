// Package gross converts an initiative's catalog parameters into an
// uncapped impact using lever-specific physics. Every lever has its own
// formula; there is no shared generic curve, and levers outside the known
// set are rejected so the waterfall can fail closed on them.
package gross

import (
	"fmt"
	"math"

	"contact-navigator/config"
	apperrors "contact-navigator/errors"
	"contact-navigator/models"
	"contact-navigator/pools"
)

// Context carries the immutable inputs shared by every gross computation
// in a run.
type Context struct {
	Profiles []models.EnrichedIntentProfile
	Roles    []models.Role
	Baseline pools.Baseline
	Config   *config.Config
}

// Affected resolves an initiative's target roles. An empty target list
// means the whole workforce. Returns the affected FTE total, the
// FTE-weighted annual cost of those roles, and the role names.
func Affected(init models.Initiative, roles []models.Role) (float64, float64, []string) {
	targets := make(map[string]bool, len(init.TargetRoles))
	for _, t := range init.TargetRoles {
		targets[t] = true
	}

	var fte, cost float64
	var names []string
	for _, r := range roles {
		if len(targets) > 0 && !targets[r.Name] {
			continue
		}
		fte += r.FTE
		cost += r.FTE * r.AnnualCostPerFTE
		names = append(names, r.Name)
	}
	if fte > 0 {
		cost /= fte
	}
	return fte, cost, names
}

// Compute returns the gross effect for one initiative. Unknown levers
// return a CatalogError wrapping ErrUnknownLever; the caller decides how
// to surface it.
func Compute(init models.Initiative, ctx *Context) (models.Effect, error) {
	switch init.Lever {
	case models.LeverDeflection:
		return deflection(init, ctx), nil
	case models.LeverAHTReduction:
		return ahtReduction(init, ctx), nil
	case models.LeverRepeatReduction:
		return repeatReduction(init, ctx), nil
	case models.LeverTransferReduction:
		return transferReduction(init, ctx), nil
	case models.LeverEscalationReduction:
		return escalationReduction(init, ctx), nil
	case models.LeverShrinkageReduction:
		return shrinkage(init, ctx), nil
	case models.LeverCostReduction:
		return location(init, ctx), nil
	default:
		return nil, &apperrors.CatalogError{
			InitiativeID: init.ID,
			Err:          apperrors.ErrUnknownLever,
		}
	}
}

// deflection removes whole contacts. Eligibility already excludes
// auth-blocked volume; containment caps the initiative's own impact rate
// so it can never contain more than is physically feasible per intent.
func deflection(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	_, cost, _ := Affected(init, ctx.Roles)

	var contacts float64
	for _, p := range ctx.Profiles {
		annual := p.Volume * b.AnnualizationFactor
		rate := p.EligibleFraction * math.Min(init.ImpactRate, p.Containment) * init.Adoption
		contacts += annual * rate
	}
	fte := b.FTEFromContacts(contacts)

	return models.FTEEffect{
		FTE:    fte,
		Native: contacts,
		Cost:   fte * cost,
		Mechanism: fmt.Sprintf("Deflection: %.0f contacts removed x %.0fs avg handle -> %.1f FTE",
			contacts, b.AvgHandleSeconds, fte),
	}
}

// ahtReduction saves seconds per contact. Only the reducible segments
// (search and wrap) are addressable; an explicit seconds figure on the
// catalog entry is clamped to them.
func ahtReduction(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	h := &ctx.Config.Heuristics
	_, cost, _ := Affected(init, ctx.Roles)

	var seconds float64
	for _, p := range ctx.Profiles {
		annual := p.Volume * b.AnnualizationFactor
		reducible := p.Decomposition.Reducible()
		if reducible <= 0 {
			reducible = p.AHTSeconds * h.DefaultAHTReduciblePct
		}
		var perContact float64
		if init.SecondsPerContact > 0 {
			perContact = math.Min(init.SecondsPerContact, reducible)
		} else {
			perContact = reducible * init.ImpactRate
		}
		seconds += annual * perContact * init.Adoption
	}
	fte := b.FTEFromSeconds(seconds)

	return models.FTEEffect{
		FTE:    fte,
		Native: seconds,
		Cost:   fte * cost,
		Mechanism: fmt.Sprintf("AHT: %.0f hrs saved across %.0f contacts -> %.1f FTE",
			seconds/3600, b.AnnualVolume, fte),
	}
}

// repeatReduction eliminates repeat contacts via better first-contact
// resolution, with the same sparse-data fallback as the pool so gross and
// ceiling share one view of the repeat rate.
func repeatReduction(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	h := &ctx.Config.Heuristics
	_, cost, _ := Affected(init, ctx.Roles)

	fallback, useFallback := pools.RepeatFallback(ctx.Profiles, b.AnnualizationFactor, h)

	var contacts float64
	for _, p := range ctx.Profiles {
		annual := p.Volume * b.AnnualizationFactor
		rate := pools.ObservedRepeat(p)
		if useFallback {
			rate = fallback
		}
		eliminated := annual * rate * init.ImpactRate * init.Adoption
		eliminated = math.Min(eliminated, annual*rate*h.MaxPreventableRepeatShare)
		contacts += eliminated
	}
	fte := b.FTEFromContacts(contacts)

	mechanism := fmt.Sprintf("Repeat: %.0f contacts eliminated -> %.1f FTE", contacts, fte)
	if useFallback {
		mechanism += fmt.Sprintf(" (FCR-derived %.0f%% rate, raw repeat data too sparse)", fallback*100)
	}
	return models.FTEEffect{FTE: fte, Native: contacts, Cost: fte * cost, Mechanism: mechanism}
}

// transferReduction avoids the duplicated handle time of lateral
// transfers. The prevented share narrows with complexity: transfers on
// complex intents genuinely need a specialist.
func transferReduction(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	h := &ctx.Config.Heuristics
	_, cost, _ := Affected(init, ctx.Roles)

	var prevented float64
	for _, p := range ctx.Profiles {
		annual := p.Volume * b.AnnualizationFactor
		share := math.Max(h.TransferPreventedFloor, h.TransferPreventedBase-h.TransferPreventedSlope*p.Complexity)
		prevented += annual * p.TransferRate * share * init.ImpactRate * init.Adoption
	}
	fte := b.FTEFromSeconds(prevented * h.ExtraSecondsPerTransfer)

	return models.FTEEffect{
		FTE:    fte,
		Native: prevented,
		Cost:   fte * cost,
		Mechanism: fmt.Sprintf("Transfer: %.0f prevented x %.0fs -> %.1f FTE",
			prevented, h.ExtraSecondsPerTransfer, fte),
	}
}

func escalationReduction(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	h := &ctx.Config.Heuristics
	_, cost, _ := Affected(init, ctx.Roles)

	var prevented float64
	for _, p := range ctx.Profiles {
		annual := p.Volume * b.AnnualizationFactor
		prevented += annual * p.EscalationSplit.Preventable * init.ImpactRate * init.Adoption
	}
	fte := b.FTEFromSeconds(prevented * h.ExtraSecondsPerEscalation)

	return models.FTEEffect{
		FTE:    fte,
		Native: prevented,
		Cost:   fte * cost,
		Mechanism: fmt.Sprintf("Escalation: %.0f prevented x %.0fs -> %.1f FTE",
			prevented, h.ExtraSecondsPerEscalation, fte),
	}
}

// shrinkage recovers scheduled-but-unproductive capacity across the whole
// workforce. The recovery is floored at the best-practice target; the
// lever cannot push shrinkage below it.
func shrinkage(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	run := ctx.Config.Run
	_, cost, _ := Affected(init, ctx.Roles)
	if cost <= 0 {
		cost = b.WeightedCostPerFTE
	}

	gap := math.Max(0, run.CurrentShrinkage-run.TargetShrinkage)
	reduction := math.Min(init.ImpactRate*init.Adoption, gap)
	fte := reduction * b.TotalFTE

	return models.FTEEffect{
		FTE:    fte,
		Native: fte,
		Cost:   fte * cost,
		Mechanism: fmt.Sprintf("Shrinkage: %.1fpt recovery on %.0f FTE -> %.1f FTE",
			reduction*100, b.TotalFTE, fte),
	}
}

// location moves migratable positions to lower-cost delivery. It produces
// a cost delta only; the migrated positions keep handling the same
// workload, so the result can never be an FTE reduction.
func location(init models.Initiative, ctx *Context) models.Effect {
	b := ctx.Baseline
	h := &ctx.Config.Heuristics

	targets := make(map[string]bool, len(init.TargetRoles))
	for _, t := range init.TargetRoles {
		targets[t] = true
	}
	var candidateFTE, candidateCost float64
	for _, r := range ctx.Roles {
		if !r.Migratable {
			continue
		}
		if len(targets) > 0 && !targets[r.Name] {
			continue
		}
		candidateFTE += r.FTE
		candidateCost += r.FTE * r.AnnualCostPerFTE
	}
	if candidateFTE > 0 {
		candidateCost /= candidateFTE
	}

	var migratableVol float64
	for _, p := range ctx.Profiles {
		migratableVol += p.Volume * b.AnnualizationFactor * p.MigrationReadiness
	}
	share := migratableVol / math.Max(b.AnnualVolume, 1)

	migrated := candidateFTE * share * init.ImpactRate * init.Adoption
	saving := migrated * candidateCost * h.CostArbitrageRate

	return models.CostEffect{
		Cost:        saving,
		MigratedFTE: migrated,
		Mechanism: fmt.Sprintf("Location: %.1f FTE migrated x %.0f%% arbitrage -> %.0f/yr",
			migrated, h.CostArbitrageRate*100, saving),
	}
}
