// Package diagnostic scores the operational baseline against industry
// benchmarks before any initiative is applied. The output is a weighted
// health check whose red flags also feed the initiative scoring bonus.
package diagnostic

import (
	"math"

	"contact-navigator/benchmark"
	"contact-navigator/models"
	"contact-navigator/pools"
)

// metricWeights must sum to 1; the overall score is the weighted mean.
var metricWeights = map[string]float64{
	"aht":        0.25,
	"fcr":        0.20,
	"csat":       0.25,
	"escalation": 0.15,
	"cpc":        0.15,
}

// metricOrder fixes the report layout.
var metricOrder = []string{"aht", "fcr", "csat", "escalation", "cpc"}

// lowerIsBetter flips the gap sign for metrics where the benchmark is a
// ceiling rather than a floor.
var lowerIsBetter = map[string]bool{
	"aht":        true,
	"escalation": true,
	"cpc":        true,
	"fcr":        false,
	"csat":       false,
}

// Assess compares the volume-weighted baseline against resolved benchmarks.
// Each metric scores 50 + gap*50 clamped to [0,100], so matching the
// benchmark lands exactly on 50 and a 100% favorable gap saturates the
// scale. Metrics with no observed data score a neutral 50 and rate "grey".
// Cost per contact always uses the annualized volume.
func Assess(profiles []models.EnrichedIntentProfile, base pools.Baseline, resolver *benchmark.Resolver) *models.DiagnosticReport {
	report := &models.DiagnosticReport{
		AnnualVolume: base.AnnualVolume,
	}
	if base.AnnualVolume > 0 {
		report.CostPerContact = base.TotalAnnualCost / base.AnnualVolume
	}

	overall := 0.0
	for _, metric := range metricOrder {
		assessment := assessMetric(metric, profiles, report.CostPerContact, resolver)
		assessment.Weight = metricWeights[metric]
		overall += assessment.Score * assessment.Weight
		report.Metrics = append(report.Metrics, assessment)
	}
	report.OverallScore = math.Round(overall*10) / 10
	report.Rating = rating(report.OverallScore)
	return report
}

func assessMetric(metric string, profiles []models.EnrichedIntentProfile, cpc float64, resolver *benchmark.Resolver) models.MetricAssessment {
	var valueSum, benchSum, volume float64
	for _, p := range profiles {
		observed, ok := observedValue(metric, p, cpc)
		if !ok {
			continue
		}
		bench, ok := resolver.Lookup(p.Channel, p.Intent, metric)
		if !ok {
			continue
		}
		valueSum += observed * p.Volume
		benchSum += bench * p.Volume
		volume += p.Volume
	}

	if volume <= 0 || benchSum <= 0 {
		return models.MetricAssessment{Metric: metric, Score: 50, Rating: "grey"}
	}

	value := valueSum / volume
	bench := benchSum / volume
	if metric == "cpc" {
		// The baseline cost per contact is a portfolio figure, not a
		// per-intent observation.
		value = cpc
	}

	gap := (value - bench) / bench
	if lowerIsBetter[metric] {
		gap = -gap
	}
	score := math.Max(0, math.Min(100, 50+gap*50))

	return models.MetricAssessment{
		Metric:    metric,
		Baseline:  value,
		Benchmark: bench,
		Gap:       gap,
		Score:     math.Round(score*10) / 10,
		Rating:    rating(score),
	}
}

// observedValue extracts one profile's reading for a metric. The boolean
// is false when the source data never carried the field, which keeps
// derived heuristics out of the health check.
func observedValue(metric string, p models.EnrichedIntentProfile, cpc float64) (float64, bool) {
	switch metric {
	case "aht":
		return p.AHTSeconds, p.AHTSeconds > 0
	case "fcr":
		if p.FCRRate == nil {
			return 0, false
		}
		return *p.FCRRate, true
	case "csat":
		if p.CSAT == nil {
			return 0, false
		}
		return *p.CSAT, true
	case "escalation":
		return p.EscalationRate, true
	case "cpc":
		return cpc, cpc > 0
	}
	return 0, false
}

func rating(score float64) string {
	switch {
	case score >= 70:
		return "green"
	case score >= 40:
		return "amber"
	default:
		return "red"
	}
}
