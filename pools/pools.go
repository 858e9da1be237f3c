// Package pools computes the finite opportunity ceiling per lever and
// tracks consumption during waterfall netting. Each pool is a hard limit
// derived from the enriched baseline: the netting engine can never award
// more benefit than the baseline physically contains, no matter how many
// initiatives target the same lever.
package pools

import (
	"math"

	"contact-navigator/config"
	"contact-navigator/models"
)

// Baseline carries the run-level aggregates shared by pool construction,
// gross-impact physics, and the financial projection.
type Baseline struct {
	AnnualizationFactor float64
	AnnualVolume        float64
	TotalFTE            float64
	MigratableFTE       float64
	WeightedCostPerFTE  float64
	TotalAnnualCost     float64
	NetProductiveHours  float64
	// AvgHandleSeconds is the volume-weighted mean AHT used to convert
	// deflected and eliminated contacts into hours.
	AvgHandleSeconds float64
}

// FTEFromSeconds converts annual saved seconds into FTE.
func (b Baseline) FTEFromSeconds(seconds float64) float64 {
	return seconds / 3600 / math.Max(b.NetProductiveHours, 1)
}

// FTEFromContacts converts annual removed contacts into FTE at the
// baseline average handle time.
func (b Baseline) FTEFromContacts(contacts float64) float64 {
	return b.FTEFromSeconds(contacts * b.AvgHandleSeconds)
}

// NewBaseline aggregates profiles and roles under the configured
// annualization factor.
func NewBaseline(profiles []models.EnrichedIntentProfile, roles []models.Role, cfg *config.Config) Baseline {
	b := Baseline{
		AnnualizationFactor: cfg.Run.VolumeAnnualizationFactor,
		NetProductiveHours:  cfg.Run.EffectiveNetProductiveHours(),
	}

	var ahtVolume float64
	for _, p := range profiles {
		annual := p.Volume * b.AnnualizationFactor
		b.AnnualVolume += annual
		ahtVolume += p.AHTSeconds * annual
	}
	b.AvgHandleSeconds = ahtVolume / math.Max(b.AnnualVolume, 1)

	var costFTE float64
	for _, r := range roles {
		b.TotalFTE += r.FTE
		costFTE += r.FTE * r.AnnualCostPerFTE
		if r.Migratable {
			b.MigratableFTE += r.FTE
		}
	}
	b.TotalAnnualCost = costFTE
	if b.TotalFTE > 0 {
		b.WeightedCostPerFTE = costFTE / b.TotalFTE
	}
	if cfg.Finance.AvgCostPerFTE > 0 {
		b.WeightedCostPerFTE = cfg.Finance.AvgCostPerFTE
	}
	return b
}

// Pool is the finite ceiling for one lever. Ceilings are immutable after
// construction; consumption is monotone and clamped so consumed never
// exceeds the ceiling and remaining is never negative.
type Pool struct {
	Lever      models.Lever
	Unit       string
	Ceiling    float64
	CeilingFTE float64

	consumed    float64
	consumedFTE float64
}

// Remaining returns the unconsumed ceiling in the pool's native unit.
func (p *Pool) Remaining() float64 {
	return p.Ceiling - p.consumed
}

// RemainingFTE returns the unconsumed ceiling in FTE terms.
func (p *Pool) RemainingFTE() float64 {
	return p.CeilingFTE - p.consumedFTE
}

// Consumed returns the native units consumed so far.
func (p *Pool) Consumed() float64 { return p.consumed }

// ConsumedFTE returns the FTE consumed so far.
func (p *Pool) ConsumedFTE() float64 { return p.consumedFTE }

// Utilization returns consumed/ceiling in FTE terms, in [0,1].
func (p *Pool) Utilization() float64 {
	if p.CeilingFTE <= 0 {
		return 0
	}
	return p.consumedFTE / p.CeilingFTE
}

// Consume debits the pool, clamping both amounts to what remains, and
// returns what was actually taken.
func (p *Pool) Consume(fte, native float64) (float64, float64) {
	fte = math.Min(math.Max(fte, 0), p.RemainingFTE())
	native = math.Min(math.Max(native, 0), p.Remaining())
	p.consumedFTE += fte
	p.consumed += native
	return fte, native
}

// Set is the collection of pools for one run, iterated in canonical lever
// order so reports are stable.
type Set struct {
	Baseline Baseline

	pools map[models.Lever]*Pool
}

// Get returns the pool registered for a lever.
func (s *Set) Get(lever models.Lever) (*Pool, bool) {
	p, ok := s.pools[lever]
	return p, ok
}

// Snapshot renders every pool in canonical order.
func (s *Set) Snapshot() []models.PoolReport {
	reports := make([]models.PoolReport, 0, len(s.pools))
	for _, lever := range models.CanonicalLeverOrder {
		p, ok := s.pools[lever]
		if !ok {
			continue
		}
		reports = append(reports, models.PoolReport{
			Lever:        p.Lever,
			Unit:         p.Unit,
			Ceiling:      p.Ceiling,
			Consumed:     p.consumed,
			Remaining:    p.Remaining(),
			CeilingFTE:   p.CeilingFTE,
			ConsumedFTE:  p.consumedFTE,
			RemainingFTE: p.RemainingFTE(),
			Utilization:  p.Utilization(),
		})
	}
	return reports
}

// Build computes every pool ceiling from the enriched baseline. Volumes
// are annualized exactly linearly by the configured factor; nothing here
// infers the factor from capacity.
func Build(profiles []models.EnrichedIntentProfile, roles []models.Role, cfg *config.Config) *Set {
	b := NewBaseline(profiles, roles, cfg)
	h := &cfg.Heuristics

	set := &Set{
		Baseline: b,
		pools:    make(map[models.Lever]*Pool, len(models.CanonicalLeverOrder)),
	}

	var (
		deflectContacts float64
		reducibleSec    float64
		transfers       float64
		escalations     float64
		repeatContacts  float64
		migratableVol   float64
	)

	fallbackRepeat, useFallback := RepeatFallback(profiles, b.AnnualizationFactor, h)

	for _, p := range profiles {
		annual := p.Volume * b.AnnualizationFactor

		deflectContacts += annual * p.EligibleFraction * p.Containment
		reducibleSec += annual * p.Decomposition.Reducible()
		transfers += annual * p.TransferSplit.Preventable
		escalations += annual * p.EscalationSplit.Preventable
		migratableVol += annual * p.MigrationReadiness

		rate := ObservedRepeat(p)
		if useFallback {
			rate = fallbackRepeat
		}
		repeatContacts += annual * reducibleRepeatShare(p, rate, h)
	}

	migratableShare := migratableVol / math.Max(b.AnnualVolume, 1)
	shrinkageGap := math.Max(0, cfg.Run.CurrentShrinkage-cfg.Run.TargetShrinkage)

	set.pools[models.LeverDeflection] = &Pool{
		Lever:      models.LeverDeflection,
		Unit:       "contacts",
		Ceiling:    deflectContacts,
		CeilingFTE: b.FTEFromContacts(deflectContacts),
	}
	set.pools[models.LeverAHTReduction] = &Pool{
		Lever:      models.LeverAHTReduction,
		Unit:       "seconds",
		Ceiling:    reducibleSec,
		CeilingFTE: b.FTEFromSeconds(reducibleSec),
	}
	set.pools[models.LeverRepeatReduction] = &Pool{
		Lever:      models.LeverRepeatReduction,
		Unit:       "contacts",
		Ceiling:    repeatContacts,
		CeilingFTE: b.FTEFromContacts(repeatContacts),
	}
	set.pools[models.LeverTransferReduction] = &Pool{
		Lever:      models.LeverTransferReduction,
		Unit:       "transfers",
		Ceiling:    transfers,
		CeilingFTE: b.FTEFromSeconds(transfers * h.ExtraSecondsPerTransfer),
	}
	set.pools[models.LeverEscalationReduction] = &Pool{
		Lever:      models.LeverEscalationReduction,
		Unit:       "escalations",
		Ceiling:    escalations,
		CeilingFTE: b.FTEFromSeconds(escalations * h.ExtraSecondsPerEscalation),
	}
	set.pools[models.LeverShrinkageReduction] = &Pool{
		Lever:      models.LeverShrinkageReduction,
		Unit:       "fte",
		Ceiling:    b.TotalFTE * shrinkageGap,
		CeilingFTE: b.TotalFTE * shrinkageGap,
	}

	// The location pool is denominated in cost-equivalent FTE: migrated
	// positions keep working, so only the arbitrage share of their cost is
	// an opportunity.
	locationFTE := b.MigratableFTE * migratableShare * h.CostArbitrageRate
	set.pools[models.LeverCostReduction] = &Pool{
		Lever:      models.LeverCostReduction,
		Unit:       "fte",
		Ceiling:    locationFTE,
		CeilingFTE: locationFTE,
	}

	return set
}

// RepeatFallback decides whether observed repeat rates are usable. Short
// sample windows make repeat detection unreliable; when the volume-weighted
// rate sits under the floor, a rate derived from the FCR gap replaces the
// observed data for every intent. The gross calculator shares this so the
// ceiling and the demand on it are built from one view of the repeat rate.
func RepeatFallback(profiles []models.EnrichedIntentProfile, factor float64, h *config.HeuristicsConfig) (float64, bool) {
	var totalVol, repeatVol, fcrVol float64
	for _, p := range profiles {
		annual := p.Volume * factor
		totalVol += annual
		repeatVol += ObservedRepeat(p) * annual
		fcrVol += observedFCR(p, h) * annual
	}
	weightedRepeat := repeatVol / math.Max(totalVol, 1)
	if weightedRepeat >= h.RepeatRateFloor {
		return 0, false
	}
	weightedFCR := fcrVol / math.Max(totalVol, 1)
	return math.Max(h.FCRFallbackFloor, (1-weightedFCR)*h.FCRFallbackSlope), true
}

// reducibleRepeatShare returns the share of annual volume that better
// first-contact resolution could remove for one intent: bounded by the FCR
// gap to a complexity-adjusted target and by the maximum preventable share
// of observed repeats.
func reducibleRepeatShare(p models.EnrichedIntentProfile, rate float64, h *config.HeuristicsConfig) float64 {
	if rate <= 0 {
		return 0
	}
	fcr := observedFCR(p, h)
	target := h.FCRTargetBase - h.FCRTargetComplexitySlope*p.Complexity
	gap := math.Max(0, target-fcr)
	share := rate * math.Min(1, gap/math.Max(rate, 0.01))
	return math.Min(share, rate*h.MaxPreventableRepeatShare)
}

// ObservedRepeat returns the record's repeat rate, zero when unmeasured.
func ObservedRepeat(p models.EnrichedIntentProfile) float64 {
	if p.RepeatRate == nil {
		return 0
	}
	return *p.RepeatRate
}

func observedFCR(p models.EnrichedIntentProfile, h *config.HeuristicsConfig) float64 {
	if p.FCRRate == nil {
		return h.DefaultFCR
	}
	return *p.FCRRate
}
