// Package waterfall nets gross initiative impacts against the finite
// opportunity pools in a deterministic order and records why each
// initiative was cut. Ordering is total: layer ascending, canonical lever
// order within a layer, score descending within a lever, then initiative
// ID. Two runs over the same inputs therefore produce identical audit
// trails.
package waterfall

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"contact-navigator/config"
	apperrors "contact-navigator/errors"
	"contact-navigator/gross"
	"contact-navigator/logging"
	"contact-navigator/models"
	"contact-navigator/pools"
)

const capTolerance = 1e-9

// Result is the outcome of one netting pass.
type Result struct {
	Audit       []models.AuditEntry
	RoleImpacts []models.RoleImpact
	Pools       []models.PoolReport

	TotalGrossFTE float64
	TotalNetFTE   float64

	// CostPhased aggregates the phased cost-only savings (location
	// arbitrage) per projection year. These never appear in the role FTE
	// vectors.
	CostPhased []float64

	Warnings []string
}

// Run folds the enabled initiatives through the pools. Each initiative
// takes at most what its lever's pool still holds, then the safety caps
// shave the result, and only the final net amount is debited, so the sum
// of net FTE per lever always equals that pool's consumption. Unknown
// levers net to zero with their pool untouched; any other gross error
// aborts the run.
func Run(ctx context.Context, inits []models.Initiative, gctx *gross.Context, set *pools.Set, log logging.Logger) (*Result, error) {
	log = logging.OrNop(log)
	cfg := gctx.Config
	horizon := cfg.Finance.HorizonYears
	curve := Curve(cfg.Run.PhasingCurve)

	enabled := make([]models.Initiative, 0, len(inits))
	for _, init := range inits {
		if init.Enabled {
			enabled = append(enabled, init)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		a, b := enabled[i], enabled[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if ai, bi := a.Lever.OrderIndex(), b.Lever.OrderIndex(); ai != bi {
			return ai < bi
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.ID < b.ID
	})

	res := &Result{
		Audit:      make([]models.AuditEntry, 0, len(enabled)),
		CostPhased: make([]float64, horizon),
	}
	roleCum := make(map[string]float64, len(gctx.Roles))
	roleYearly := make(map[string][]float64, len(gctx.Roles))
	for _, r := range gctx.Roles {
		roleYearly[r.Name] = make([]float64, horizon)
	}

	for _, init := range enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := models.AuditEntry{
			InitiativeID: init.ID,
			Initiative:   init.Name,
			Layer:        init.Layer,
			Lever:        init.Lever,
			Score:        init.Score,
			PhasedFTE:    make([]float64, horizon),
			PhasedCost:   make([]float64, horizon),
		}

		effect, err := gross.Compute(init, gctx)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnknownLever) {
				log.Warnf(ctx, "initiative %s: %v; netted at zero", init.ID, err)
				res.Warnings = append(res.Warnings, fmt.Sprintf("initiative %s netted at zero: %v", init.ID, err))
				entry.CapReason = models.CapReasonUnknownLever
				entry.Mechanism = "lever not recognized"
				res.Audit = append(res.Audit, entry)
				continue
			}
			return nil, err
		}

		factors := YearlyFactors(curve, init.StartMonth, init.EndMonth, init.RampMonths, horizon)

		switch e := effect.(type) {
		case models.CostEffect:
			res.netCost(e, set, cfg, factors, &entry)
		case models.FTEEffect:
			res.netFTE(init, e, set, gctx, cfg, factors, roleCum, roleYearly, &entry)
		}
		res.Audit = append(res.Audit, entry)
	}

	for _, r := range gctx.Roles {
		net := roleCum[r.Name]
		share := 0.0
		if r.FTE > 0 {
			share = net / r.FTE
		}
		res.RoleImpacts = append(res.RoleImpacts, models.RoleImpact{
			Role:           r.Name,
			BaselineFTE:    r.FTE,
			NetFTE:         net,
			ReductionShare: share,
			Yearly:         roleYearly[r.Name],
		})
	}
	res.Pools = set.Snapshot()
	return res, nil
}

// netCost nets the cost-arbitrage lever against the location pool. The
// pool is denominated in cost-equivalent FTE, so the demand on it is the
// migrated headcount scaled by the arbitrage rate, and a pool haircut
// scales the saving proportionally. No FTE aggregate moves.
func (res *Result) netCost(e models.CostEffect, set *pools.Set, cfg *config.Config, factors []float64, entry *models.AuditEntry) {
	pool, ok := set.Get(models.LeverCostReduction)
	if !ok {
		entry.CapReason = models.CapReasonFull
		entry.Mechanism = e.Mechanism
		return
	}
	eqFTE := e.MigratedFTE * cfg.Heuristics.CostArbitrageRate
	net := math.Max(0, math.Min(eqFTE, pool.RemainingFTE()))
	reason := models.CapReasonFull
	if net < eqFTE-capTolerance {
		reason = models.CapReasonPoolCap
	}
	scale := 0.0
	if eqFTE > 0 {
		scale = net / eqFTE
	}
	netCost := e.Cost * scale
	pool.Consume(net, net)

	entry.GrossCost = e.Cost
	entry.NetCost = netCost
	entry.CapReason = reason
	entry.Mechanism = e.Mechanism
	for y, f := range factors {
		phased := netCost * f
		entry.PhasedCost[y] = phased
		res.CostPhased[y] += phased
	}
}

// netFTE nets an FTE-bearing lever: pool ceiling first, then the
// per-initiative and per-role safety caps, and only then is the pool
// debited with the final amount. The net reduction spreads across the
// affected roles in proportion to their headcount.
func (res *Result) netFTE(init models.Initiative, e models.FTEEffect, set *pools.Set, gctx *gross.Context, cfg *config.Config, factors []float64, roleCum map[string]float64, roleYearly map[string][]float64, entry *models.AuditEntry) {
	pool, ok := set.Get(init.Lever)
	if !ok {
		entry.CapReason = models.CapReasonFull
		entry.Mechanism = e.Mechanism
		return
	}

	net := math.Max(0, math.Min(e.FTE, pool.RemainingFTE()))
	reason := models.CapReasonFull
	if net < e.FTE-capTolerance {
		reason = models.CapReasonPoolCap
	}

	affectedFTE, weightedCost, names := gross.Affected(init, gctx.Roles)
	share := cfg.Caps.PerLever[string(init.Lever)]
	if init.CapOverride > 0 {
		share = init.CapOverride
	}
	if share <= 0 || share > cfg.Caps.AbsoluteInitiative {
		share = cfg.Caps.AbsoluteInitiative
	}
	avail := 0.0
	for _, r := range gctx.Roles {
		if !contains(names, r.Name) {
			continue
		}
		avail += math.Max(0, r.FTE*cfg.Caps.PerRoleCumulative-roleCum[r.Name])
	}
	if safety := math.Min(share*affectedFTE, avail); safety < net-capTolerance {
		net = math.Max(0, safety)
		reason = models.CapReasonSafetyCap
	}

	ratio := 0.0
	if e.FTE > 0 {
		ratio = net / e.FTE
	}
	pool.Consume(net, e.Native*ratio)

	netCost := net * weightedCost
	if affectedFTE > 0 {
		for _, r := range gctx.Roles {
			if !contains(names, r.Name) {
				continue
			}
			part := net * r.FTE / affectedFTE
			roleCum[r.Name] += part
			for y, f := range factors {
				roleYearly[r.Name][y] += part * f
			}
		}
	}

	entry.GrossFTE = e.FTE
	entry.NetFTE = net
	entry.GrossCost = e.Cost
	entry.NetCost = netCost
	entry.CapReason = reason
	entry.Mechanism = e.Mechanism
	entry.Roles = names
	for y, f := range factors {
		entry.PhasedFTE[y] = net * f
		entry.PhasedCost[y] = netCost * f
	}

	res.TotalGrossFTE += e.FTE
	res.TotalNetFTE += net
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
