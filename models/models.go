// Package models holds the shared domain types for the benefits engine:
// baseline intent records, enriched profiles, initiatives, audit entries,
// and the aggregated run result.
package models

import "time"

// Lever enumerates the closed set of improvement mechanisms. Anything
// outside this set is treated as unknown and nets to zero downstream.
type Lever string

const (
	LeverDeflection          Lever = "deflection"
	LeverAHTReduction        Lever = "aht_reduction"
	LeverRepeatReduction     Lever = "repeat_reduction"
	LeverTransferReduction   Lever = "transfer_reduction"
	LeverEscalationReduction Lever = "escalation_reduction"
	LeverShrinkageReduction  Lever = "shrinkage_reduction"
	// LeverCostReduction is the location/cost-arbitrage lever. It moves
	// cost, never FTE, and consumes the migration pool.
	LeverCostReduction Lever = "cost_reduction"
)

// CanonicalLeverOrder fixes the netting order of levers within a layer.
// The audit trail depends on this ordering being stable.
var CanonicalLeverOrder = []Lever{
	LeverDeflection,
	LeverAHTReduction,
	LeverRepeatReduction,
	LeverTransferReduction,
	LeverEscalationReduction,
	LeverShrinkageReduction,
	LeverCostReduction,
}

// Known reports whether the lever belongs to the closed set.
func (l Lever) Known() bool {
	for _, known := range CanonicalLeverOrder {
		if l == known {
			return true
		}
	}
	return false
}

// CostOnly reports whether the lever produces a cost delta with zero FTE
// impact.
func (l Lever) CostOnly() bool {
	return l == LeverCostReduction
}

// OrderIndex returns the lever's position in the canonical order. Unknown
// levers sort after every known lever.
func (l Lever) OrderIndex() int {
	for i, known := range CanonicalLeverOrder {
		if l == known {
			return i
		}
	}
	return len(CanonicalLeverOrder)
}

// AHTBreakdown carries explicitly measured handle-time segments when the
// source system provides them. Wrap time comes from the ACW field.
type AHTBreakdown struct {
	TalkSeconds   float64
	HoldSeconds   float64
	SearchSeconds float64
}

// IntentRecord is one baseline queue/intent as loaded from the operational
// export. Pointer fields are optional; enrichment derives them from
// complexity and channel when absent. Volume is per sample period, not
// annualized.
type IntentRecord struct {
	Intent         string
	Channel        string
	Volume         float64
	AHTSeconds     float64
	ACWSeconds     float64
	Complexity     float64
	Breakdown      *AHTBreakdown
	AuthScore      *float64
	EmotionalScore *float64
	RepeatRate     *float64
	TransferRate   float64
	EscalationRate float64
	FCRRate        *float64
	CSAT           *float64
}

// AHTDecomposition splits total handle time into its four segments.
// Invariant: Talk+Hold+Search+Wrap equals the record's total AHT.
type AHTDecomposition struct {
	Talk   float64 `json:"talk"`
	Hold   float64 `json:"hold"`
	Search float64 `json:"search"`
	Wrap   float64 `json:"wrap"`
}

// Total returns the sum of all four segments.
func (d AHTDecomposition) Total() float64 {
	return d.Talk + d.Hold + d.Search + d.Wrap
}

// Reducible returns the seconds eligible for AHT-reduction initiatives.
// Only search and wrap qualify; talk and hold are structurally fixed.
func (d AHTDecomposition) Reducible() float64 {
	return d.Search + d.Wrap
}

// RateSplit divides an observed rate into a preventable and a structural
// share. Preventable+Structural equals the observed rate.
type RateSplit struct {
	Preventable float64 `json:"preventable"`
	Structural  float64 `json:"structural"`
}

// Total returns the observed rate the split was derived from.
func (s RateSplit) Total() float64 {
	return s.Preventable + s.Structural
}

// EnrichedIntentProfile is an IntentRecord annotated with every derived
// field the downstream math needs. Computed once per run, immutable after.
type EnrichedIntentProfile struct {
	IntentRecord

	Repeatability      float64
	EmotionalRisk      float64
	AuthRequirement    float64
	Containment        float64
	EligibleFraction   float64
	Decomposition      AHTDecomposition
	TransferSplit      RateSplit
	EscalationSplit    RateSplit
	MigrationReadiness float64
}

// IntentSummary aggregates the enriched profiles for reporting. Volumes
// are per sample period; shares and averages are volume weighted.
type IntentSummary struct {
	TotalVolume       float64 `json:"total_volume"`
	DeflectableVolume float64 `json:"deflectable_volume"`
	DeflectableShare  float64 `json:"deflectable_share"`
	MigratableVolume  float64 `json:"migratable_volume"`
	MigratableShare   float64 `json:"migratable_share"`
	AvgContainment    float64 `json:"avg_containment"`
	AvgEmotionalRisk  float64 `json:"avg_emotional_risk"`
}

// Role is one headcount segment from the staffing baseline.
type Role struct {
	Name             string
	FTE              float64
	AnnualCostPerFTE float64
	Segment          string
	Migratable       bool
}

// Initiative is one catalog entry. Catalog fields are inputs; Score may be
// derived when the catalog leaves it at zero, and Tier is always derived.
type Initiative struct {
	ID             string
	Name           string
	Description    string
	Layer          int
	Lever          Lever
	Score          float64
	Tier           string
	Enabled        bool
	PlatformFamily string

	// Lever-specific parameters.
	ImpactRate        float64
	SecondsPerContact float64
	Adoption          float64
	TargetRoles       []string

	// Phasing. EndMonth truncates the benefit window; zero means the
	// benefit runs to the end of the horizon.
	StartMonth int
	RampMonths int
	EndMonth   int

	// Safety-cap override as a share of affected FTE. Zero means use the
	// lever default.
	CapOverride float64

	// Investment model inputs.
	InvestmentBase float64

	// Scoring attributes on the catalog's 1-5 scales.
	Value           float64
	Readiness       float64
	ComplexityScore float64
	RiskScore       float64
	Alignment       float64
}

// Effect is the gross-impact result for one initiative. It is a sealed
// two-variant union: FTE-bearing levers produce an FTEEffect, the
// cost-arbitrage lever produces a CostEffect. Role-level FTE aggregation
// accepts FTEEffect values only, so a cost-only result cannot reach an FTE
// total by construction.
type Effect interface {
	effect()
}

// FTEEffect is the gross impact of an FTE-bearing lever.
type FTEEffect struct {
	FTE       float64
	Native    float64
	Cost      float64
	Mechanism string
}

func (FTEEffect) effect() {}

// CostEffect is the gross impact of the cost-arbitrage lever. MigratedFTE
// records how many positions move for pool accounting and workforce
// planning; it is not an FTE reduction.
type CostEffect struct {
	Cost        float64
	MigratedFTE float64
	Mechanism   string
}

func (CostEffect) effect() {}

// CapReason records which constraint bound an initiative's net impact.
type CapReason string

const (
	CapReasonFull         CapReason = "full"
	CapReasonPoolCap      CapReason = "pool_cap"
	CapReasonSafetyCap    CapReason = "safety_cap"
	CapReasonUnknownLever CapReason = "unknown_lever"
)

// AuditEntry traces one initiative through the netting waterfall.
// Invariants: NetFTE <= GrossFTE, and NetFTE == 0 whenever CapReason is
// unknown_lever.
type AuditEntry struct {
	InitiativeID string    `json:"initiative_id"`
	Initiative   string    `json:"initiative"`
	Layer        int       `json:"layer"`
	Lever        Lever     `json:"lever"`
	Score        float64   `json:"score"`
	GrossFTE     float64   `json:"gross_fte"`
	NetFTE       float64   `json:"net_fte"`
	GrossCost    float64   `json:"gross_cost"`
	NetCost      float64   `json:"net_cost"`
	CapReason    CapReason `json:"cap_reason"`
	Mechanism    string    `json:"mechanism"`
	PhasedFTE    []float64 `json:"phased_fte"`
	PhasedCost   []float64 `json:"phased_cost"`
	Roles        []string  `json:"roles,omitempty"`
}

// PoolReport is the post-run snapshot of one pool.
type PoolReport struct {
	Lever        Lever   `json:"lever"`
	Unit         string  `json:"unit"`
	Ceiling      float64 `json:"ceiling"`
	Consumed     float64 `json:"consumed"`
	Remaining    float64 `json:"remaining"`
	CeilingFTE   float64 `json:"ceiling_fte"`
	ConsumedFTE  float64 `json:"consumed_fte"`
	RemainingFTE float64 `json:"remaining_fte"`
	Utilization  float64 `json:"utilization"`
}

// RoleImpact aggregates net FTE reduction per role. Cost-only levers are
// excluded by construction. Yearly carries the phased reduction per
// projection year, so the steady-state NetFTE is its final entry once all
// ramps complete.
type RoleImpact struct {
	Role           string    `json:"role"`
	BaselineFTE    float64   `json:"baseline_fte"`
	NetFTE         float64   `json:"net_fte"`
	ReductionShare float64   `json:"reduction_share"`
	Yearly         []float64 `json:"yearly_fte"`
}

// InvestmentBreakdown itemizes the implementation cost estimate.
type InvestmentBreakdown struct {
	Base             float64 `json:"base"`
	ChangeManagement float64 `json:"change_management"`
	Training         float64 `json:"training"`
	Contingency      float64 `json:"contingency"`
	Total            float64 `json:"total"`
}

// FinancialSummary is the multi-period projection over the phased net
// savings. YearlyBenefits/YearlyCosts are indexed from year 1; NetCashFlow
// starts at year 0 with the upfront investment outflow. IRR is nil when
// root finding does not converge on a real root.
type FinancialSummary struct {
	HorizonYears   int                 `json:"horizon_years"`
	DiscountRate   float64             `json:"discount_rate"`
	YearlyBenefits []float64           `json:"yearly_benefits"`
	YearlyCosts    []float64           `json:"yearly_costs"`
	NetCashFlow    []float64           `json:"net_cash_flow"`
	Investment     InvestmentBreakdown `json:"investment"`
	NPV            float64             `json:"npv"`
	IRR            *float64            `json:"irr"`
	PaybackMonths  *float64            `json:"payback_months"`
	TotalBenefit   float64             `json:"total_benefit"`
	TotalCost      float64             `json:"total_cost"`
	CostPerContact float64             `json:"cost_per_contact"`
}

// MetricAssessment compares one baseline metric against its benchmark.
type MetricAssessment struct {
	Metric    string  `json:"metric"`
	Baseline  float64 `json:"baseline"`
	Benchmark float64 `json:"benchmark"`
	Gap       float64 `json:"gap"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Rating    string  `json:"rating"`
}

// DiagnosticReport is the weighted operational health check.
type DiagnosticReport struct {
	OverallScore   float64            `json:"overall_score"`
	Rating         string             `json:"rating"`
	AnnualVolume   float64            `json:"annual_volume"`
	CostPerContact float64            `json:"cost_per_contact"`
	Metrics        []MetricAssessment `json:"metrics"`
}

// RiskFactor is one weighted category of delivery risk.
type RiskFactor struct {
	Category   string   `json:"category"`
	Score      float64  `json:"score"`
	Weight     float64  `json:"weight"`
	Drivers    []string `json:"drivers,omitempty"`
	Mitigation string   `json:"mitigation,omitempty"`
}

// RiskReport is the weighted portfolio risk assessment.
type RiskReport struct {
	OverallScore float64      `json:"overall_score"`
	Level        string       `json:"level"`
	Factors      []RiskFactor `json:"factors"`
}

// WorkforcePlan splits the total net FTE reduction into transition paths.
type WorkforcePlan struct {
	TotalReduction    float64 `json:"total_reduction"`
	AttritionAbsorbed float64 `json:"attrition_absorbed"`
	Redeployed        float64 `json:"redeployed"`
	Separations       float64 `json:"separations"`
	ReskillCost       float64 `json:"reskill_cost"`
	SeveranceCost     float64 `json:"severance_cost"`
	TransitionCost    float64 `json:"transition_cost"`
}

// ScenarioSummary is the headline outcome of one scenario run.
type ScenarioSummary struct {
	Name         string   `json:"name"`
	NetFTE       float64  `json:"net_fte"`
	TotalBenefit float64  `json:"total_benefit"`
	Investment   float64  `json:"investment"`
	NPV          float64  `json:"npv"`
	IRR          *float64 `json:"irr"`
}

// SensitivityResult reports the NPV swing from a one-at-a-time variable
// perturbation.
type SensitivityResult struct {
	Variable string  `json:"variable"`
	Delta    float64 `json:"delta"`
	NPVLow   float64 `json:"npv_low"`
	NPVHigh  float64 `json:"npv_high"`
	Swing    float64 `json:"swing"`
}

// Inputs bundles everything a run consumes. All fields are read-only to
// the engine.
type Inputs struct {
	Queues      []IntentRecord
	Roles       []Role
	Initiatives []Initiative
}

// RunResult is the complete output of one engine run. Every run is built
// fresh from its inputs; nothing carries over between runs.
type RunResult struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Scenario    string    `json:"scenario"`

	AnnualizationFactor    float64       `json:"annualization_factor"`
	AnnualizationDefaulted bool          `json:"annualization_defaulted"`
	AnnualVolume           float64       `json:"annual_volume"`
	TotalBaselineFTE       float64       `json:"total_baseline_fte"`
	Intents                IntentSummary `json:"intents"`

	Pools       []PoolReport `json:"pools"`
	Audit       []AuditEntry `json:"audit"`
	RoleImpacts []RoleImpact `json:"role_impacts"`
	TotalNetFTE float64      `json:"total_net_fte"`
	TotalGross  float64      `json:"total_gross_fte"`

	Financials  FinancialSummary           `json:"financials"`
	Diagnostic  *DiagnosticReport          `json:"diagnostic,omitempty"`
	Risk        *RiskReport                `json:"risk,omitempty"`
	Workforce   *WorkforcePlan             `json:"workforce,omitempty"`
	Scenarios   map[string]ScenarioSummary `json:"scenarios,omitempty"`
	Sensitivity []SensitivityResult        `json:"sensitivity,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}
