// Package enrichment derives the per-intent profile fields every
// downstream calculation depends on: deflection eligibility, handle-time
// decomposition, preventable transfer and escalation shares, and digital
// migration readiness. Observed fields on a record always win; heuristics
// keyed on complexity and the intent name fill the gaps.
package enrichment

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"contact-navigator/config"
	"contact-navigator/logging"
	"contact-navigator/models"
)

// digitalChannels score zero migration readiness: the contact is already
// on a digital channel.
var digitalChannels = map[string]bool{
	"chat":   true,
	"email":  true,
	"web":    true,
	"app":    true,
	"social": true,
}

// Enrich computes a profile for every record. Records are processed
// concurrently but the output order matches the input order. The only
// error path is context cancellation; the heuristics themselves are total
// over parser-validated input.
func Enrich(ctx context.Context, records []models.IntentRecord, cfg *config.Config, log logging.Logger) ([]models.EnrichedIntentProfile, error) {
	log = logging.OrNop(log)

	profiles := make([]models.EnrichedIntentProfile, len(records))
	g, ctx := errgroup.WithContext(ctx)
	workers := cfg.Run.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			profiles[i] = enrichOne(rec, &cfg.Heuristics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debugf(ctx, "enriched %d intents", len(profiles))
	return profiles, nil
}

func enrichOne(rec models.IntentRecord, h *config.HeuristicsConfig) models.EnrichedIntentProfile {
	cx := clamp01(rec.Complexity)
	name := strings.ToLower(rec.Intent)

	rep := bandValue(h.RepeatabilityBands, cx)
	if rec.RepeatRate != nil && *rec.RepeatRate > h.RepeatBoostThreshold {
		rep = clamp01(rep + h.RepeatBoost)
	}

	emo := emotionalRisk(rec, name, cx, h)
	auth := authRequirement(rec, name, cx, h)

	w := h.DeflectionWeights
	containment := w.Repeatability*rep +
		w.EmotionalRisk*(1-emo) +
		w.AuthRequirement*(1-auth) +
		w.Complexity*(1-cx)
	if auth > h.AuthDampeningThreshold {
		containment *= h.AuthDampening
	}
	containment = clamp01(containment)

	// Eligibility carries only the repeatability and auth signals;
	// containment is applied downstream as min(impact, containment) so the
	// same feasibility discount is never counted twice.
	eligible := clamp01(rep * (1 - auth*h.EligibilityAuthPenalty))

	return models.EnrichedIntentProfile{
		IntentRecord:       rec,
		Repeatability:      rep,
		EmotionalRisk:      emo,
		AuthRequirement:    auth,
		Containment:        containment,
		EligibleFraction:   eligible,
		Decomposition:      decompose(rec, cx, h),
		TransferSplit:      transferSplit(rec, cx, h),
		EscalationSplit:    escalationSplit(rec, cx, h),
		MigrationReadiness: migrationReadiness(rec.Channel, cx, emo, auth, h),
	}
}

func emotionalRisk(rec models.IntentRecord, name string, cx float64, h *config.HeuristicsConfig) float64 {
	if rec.EmotionalScore != nil {
		return clamp01(*rec.EmotionalScore)
	}
	if containsAny(name, h.HighEmotionKeywords) {
		return h.HighEmotionScore
	}
	if containsAny(name, h.ElevatedEmotionKeywords) {
		return h.ElevatedEmotionScore
	}
	return bandValue(h.EmotionalBands, cx)
}

func authRequirement(rec models.IntentRecord, name string, cx float64, h *config.HeuristicsConfig) float64 {
	if rec.AuthScore != nil {
		return clamp01(*rec.AuthScore)
	}
	if containsAny(name, h.LowAuthKeywords) {
		return h.LowAuthScore
	}
	if containsAny(name, h.HighAuthKeywords) {
		return h.HighAuthScore
	}
	return bandValue(h.AuthBands, cx)
}

// decompose splits handle time into talk/hold/search/wrap. Wrap is the
// measured ACW and talk absorbs whatever hold and search leave behind, so
// the segments sum to AHT+ACW exactly. A granular breakdown on the record
// contributes its proportions, scaled onto the reported AHT.
func decompose(rec models.IntentRecord, cx float64, h *config.HeuristicsConfig) models.AHTDecomposition {
	var hold, search float64
	if b := rec.Breakdown; b != nil && b.TalkSeconds+b.HoldSeconds+b.SearchSeconds > 0 {
		sum := b.TalkSeconds + b.HoldSeconds + b.SearchSeconds
		hold = rec.AHTSeconds * b.HoldSeconds / sum
		search = rec.AHTSeconds * b.SearchSeconds / sum
	} else {
		sb := shareBand(h.AHTShareBands, cx)
		hold = rec.AHTSeconds * sb.Hold
		search = rec.AHTSeconds * sb.Search
	}
	return models.AHTDecomposition{
		Talk:   rec.AHTSeconds - hold - search,
		Hold:   hold,
		Search: search,
		Wrap:   rec.ACWSeconds,
	}
}

// transferSplit classifies the observed transfer rate. Simple intents with
// transfers point at missing agent knowledge or authority; complex intents
// genuinely need a specialist. A high escalation rate signals structural
// complexity and dampens the preventable share.
func transferSplit(rec models.IntentRecord, cx float64, h *config.HeuristicsConfig) models.RateSplit {
	if rec.TransferRate <= 0 {
		return models.RateSplit{}
	}
	share := bandValue(h.TransferPreventableBands, cx)
	if rec.EscalationRate > h.TransferEscalationThreshold {
		share *= h.TransferEscalationDampener
	}
	preventable := rec.TransferRate * share
	return models.RateSplit{
		Preventable: preventable,
		Structural:  rec.TransferRate - preventable,
	}
}

func escalationSplit(rec models.IntentRecord, cx float64, h *config.HeuristicsConfig) models.RateSplit {
	if rec.EscalationRate <= 0 {
		return models.RateSplit{}
	}
	share := h.EscalationPreventableBase - h.EscalationPreventableSlope*cx
	if share < h.EscalationPreventableFloor {
		share = h.EscalationPreventableFloor
	}
	preventable := rec.EscalationRate * share
	return models.RateSplit{
		Preventable: preventable,
		Structural:  rec.EscalationRate - preventable,
	}
}

func migrationReadiness(channel string, cx, emo, auth float64, h *config.HeuristicsConfig) float64 {
	if digitalChannels[channel] {
		return 0
	}
	if channel == "ivr" {
		return h.MigrationIVRFactor * (1 - cx)
	}
	base := h.MigrationVoiceBase -
		cx*h.MigrationComplexitySlope -
		emo*h.MigrationEmotionSlope -
		auth*h.MigrationAuthSlope
	return clamp01(base)
}

// Summarize aggregates profiles for reporting. Volumes stay in the sample
// period; averages are volume weighted.
func Summarize(profiles []models.EnrichedIntentProfile) models.IntentSummary {
	var s models.IntentSummary
	var containmentVol, emotionVol float64
	for _, p := range profiles {
		s.TotalVolume += p.Volume
		s.DeflectableVolume += p.Volume * p.EligibleFraction
		s.MigratableVolume += p.Volume * p.MigrationReadiness
		containmentVol += p.Volume * p.Containment
		emotionVol += p.Volume * p.EmotionalRisk
	}
	if s.TotalVolume > 0 {
		s.DeflectableShare = s.DeflectableVolume / s.TotalVolume
		s.MigratableShare = s.MigratableVolume / s.TotalVolume
		s.AvgContainment = containmentVol / s.TotalVolume
		s.AvgEmotionalRisk = emotionVol / s.TotalVolume
	}
	return s
}

func bandValue(bands []config.Band, x float64) float64 {
	for _, b := range bands {
		if x <= b.UpTo {
			return b.Value
		}
	}
	if len(bands) == 0 {
		return 0
	}
	return bands[len(bands)-1].Value
}

func shareBand(bands []config.AHTShareBand, x float64) config.AHTShareBand {
	for _, b := range bands {
		if x <= b.UpTo {
			return b
		}
	}
	if len(bands) == 0 {
		return config.AHTShareBand{}
	}
	return bands[len(bands)-1]
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
