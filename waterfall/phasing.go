package waterfall

import "math"

// Curve selects the adoption ramp shape for phasing.
type Curve string

const (
	// CurveSCurve is the default logistic ramp: slow pilot months, steep
	// mid-rollout, flattening near completion.
	CurveSCurve Curve = "s_curve"
	// CurveLinear ramps evenly from go-live to completion.
	CurveLinear Curve = "linear"
)

// Ramp returns the realized share of steady-state impact after monthsLive
// months, for a ramp that completes at rampMonths. Values are exact at the
// endpoints: 0 before go-live and 1.0 once the ramp is complete, for either
// curve.
func Ramp(curve Curve, monthsLive, rampMonths int) float64 {
	if monthsLive <= 0 {
		return 0
	}
	if rampMonths <= 0 || monthsLive >= rampMonths {
		return 1
	}
	if curve == CurveLinear {
		return float64(monthsLive) / float64(rampMonths)
	}
	return sCurve(float64(monthsLive), float64(rampMonths))
}

// sCurve evaluates a logistic with its midpoint at 45% of the ramp and a
// steepness that scales inversely with ramp length, rescaled so the raw
// logistic's nonzero tails land exactly on 0 at month zero and 1 at ramp
// completion.
func sCurve(t, ramp float64) float64 {
	midpoint := ramp * 0.45
	k := 6.0 / ramp
	logistic := func(x float64) float64 {
		return 1 / (1 + math.Exp(-k*(x-midpoint)))
	}
	floor := logistic(0)
	ceiling := logistic(ramp)
	scaled := (logistic(t) - floor) / math.Max(ceiling-floor, 0.001)
	return math.Min(1, math.Max(0, scaled))
}

// YearlyFactors averages the monthly ramp into per-year phasing factors
// over the projection horizon. Month numbering is 1-based from the start
// of the program; months before startMonth contribute zero, as do months
// past endMonth when a benefit window is set (endMonth 0 means the benefit
// runs to the end of the horizon). A year in which an initiative is live
// for only part of the year therefore gets a fractional factor even after
// the ramp completes.
func YearlyFactors(curve Curve, startMonth, endMonth, rampMonths, horizonYears int) []float64 {
	if startMonth < 1 {
		startMonth = 1
	}
	factors := make([]float64, horizonYears)
	for y := range factors {
		var sum float64
		for m := y*12 + 1; m <= (y+1)*12; m++ {
			if m < startMonth {
				continue
			}
			if endMonth > 0 && m > endMonth {
				continue
			}
			sum += Ramp(curve, m-startMonth+1, rampMonths)
		}
		factors[y] = sum / 12
	}
	return factors
}
