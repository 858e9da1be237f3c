// Package config loads and validates every tunable the engine consumes.
// All heuristic weights, thresholds, and band tables live here as named,
// validated parameters rather than inline constants, so a calibration
// change never requires touching formula code.
package config

import (
	"math"
	"strings"

	"github.com/spf13/viper"

	apperrors "contact-navigator/errors"
)

// Band maps a complexity range to a heuristic value. Bands are evaluated
// in order; the first band with Complexity <= UpTo wins. The final band
// should carry UpTo = 1 to close the range.
type Band struct {
	UpTo  float64 `mapstructure:"up_to"`
	Value float64 `mapstructure:"value"`
}

// AHTShareBand maps a complexity range to hold and search shares of the
// talk-side handle time. Wrap comes from the measured ACW field and talk
// is the remainder, so the four segments always sum to the measured
// handle time.
type AHTShareBand struct {
	UpTo   float64 `mapstructure:"up_to"`
	Hold   float64 `mapstructure:"hold"`
	Search float64 `mapstructure:"search"`
}

// DeflectionWeights combines the four independent eligibility signals.
// The four weights must sum to 1.
type DeflectionWeights struct {
	Repeatability   float64 `mapstructure:"repeatability"`
	EmotionalRisk   float64 `mapstructure:"emotional_risk"`
	AuthRequirement float64 `mapstructure:"auth_requirement"`
	Complexity      float64 `mapstructure:"complexity"`
}

// RunConfig holds the global run parameters.
type RunConfig struct {
	// VolumeAnnualizationFactor converts sampled volume to an annual
	// run-rate: 1 = already annual, 12 = monthly, 52 = weekly, 250 =
	// daily working days. When the key is absent it defaults to 12 and
	// AnnualizationDefaulted is set so the default is surfaced, never
	// silent. Inference from capacity ratios is disallowed.
	VolumeAnnualizationFactor float64 `mapstructure:"volume_annualization_factor"`
	AnnualizationDefaulted    bool    `mapstructure:"-"`

	GrossHoursPerYear float64 `mapstructure:"gross_hours_per_year"`
	CurrentShrinkage  float64 `mapstructure:"current_shrinkage"`
	TargetShrinkage   float64 `mapstructure:"target_shrinkage"`
	// NetProductiveHours overrides the derived value when positive.
	NetProductiveHours float64 `mapstructure:"net_productive_hours"`
	// PhasingCurve selects the adoption ramp shape: "s_curve" or "linear".
	PhasingCurve string `mapstructure:"phasing_curve"`
	// Workers bounds enrichment and gross-impact parallelism.
	Workers int `mapstructure:"workers"`
}

// EffectiveNetProductiveHours returns the seconds-to-FTE denominator:
// the explicit override when set, otherwise gross hours discounted by
// current shrinkage.
func (r RunConfig) EffectiveNetProductiveHours() float64 {
	if r.NetProductiveHours > 0 {
		return r.NetProductiveHours
	}
	return r.GrossHoursPerYear * (1 - r.CurrentShrinkage)
}

// HeuristicsConfig holds every enrichment and pool heuristic. Defaults
// mirror the calibration shipped with the original benchmark set; clients
// override them per engagement.
type HeuristicsConfig struct {
	DeflectionWeights      DeflectionWeights `mapstructure:"deflection_weights"`
	AuthDampening          float64           `mapstructure:"auth_dampening"`
	AuthDampeningThreshold float64           `mapstructure:"auth_dampening_threshold"`
	EligibilityAuthPenalty float64           `mapstructure:"eligibility_auth_penalty"`

	RepeatabilityBands   []Band  `mapstructure:"repeatability_bands"`
	RepeatBoost          float64 `mapstructure:"repeat_boost"`
	RepeatBoostThreshold float64 `mapstructure:"repeat_boost_threshold"`

	EmotionalBands          []Band   `mapstructure:"emotional_bands"`
	HighEmotionKeywords     []string `mapstructure:"high_emotion_keywords"`
	ElevatedEmotionKeywords []string `mapstructure:"elevated_emotion_keywords"`
	HighEmotionScore        float64  `mapstructure:"high_emotion_score"`
	ElevatedEmotionScore    float64  `mapstructure:"elevated_emotion_score"`

	AuthBands        []Band   `mapstructure:"auth_bands"`
	LowAuthKeywords  []string `mapstructure:"low_auth_keywords"`
	HighAuthKeywords []string `mapstructure:"high_auth_keywords"`
	LowAuthScore     float64  `mapstructure:"low_auth_score"`
	HighAuthScore    float64  `mapstructure:"high_auth_score"`

	AHTShareBands []AHTShareBand `mapstructure:"aht_share_bands"`

	TransferPreventableBands    []Band  `mapstructure:"transfer_preventable_bands"`
	TransferEscalationDampener  float64 `mapstructure:"transfer_escalation_dampener"`
	TransferEscalationThreshold float64 `mapstructure:"transfer_escalation_threshold"`
	TransferPreventedBase       float64 `mapstructure:"transfer_prevented_base"`
	TransferPreventedSlope      float64 `mapstructure:"transfer_prevented_slope"`
	TransferPreventedFloor      float64 `mapstructure:"transfer_prevented_floor"`

	EscalationPreventableBase  float64 `mapstructure:"escalation_preventable_base"`
	EscalationPreventableSlope float64 `mapstructure:"escalation_preventable_slope"`
	EscalationPreventableFloor float64 `mapstructure:"escalation_preventable_floor"`

	MigrationVoiceBase       float64 `mapstructure:"migration_voice_base"`
	MigrationComplexitySlope float64 `mapstructure:"migration_complexity_slope"`
	MigrationEmotionSlope    float64 `mapstructure:"migration_emotion_slope"`
	MigrationAuthSlope       float64 `mapstructure:"migration_auth_slope"`
	MigrationIVRFactor       float64 `mapstructure:"migration_ivr_factor"`

	RepeatRateFloor           float64 `mapstructure:"repeat_rate_floor"`
	DefaultFCR                float64 `mapstructure:"default_fcr"`
	FCRFallbackFloor          float64 `mapstructure:"fcr_fallback_floor"`
	FCRFallbackSlope          float64 `mapstructure:"fcr_fallback_slope"`
	FCRTargetBase             float64 `mapstructure:"fcr_target_base"`
	FCRTargetComplexitySlope  float64 `mapstructure:"fcr_target_complexity_slope"`
	MaxPreventableRepeatShare float64 `mapstructure:"max_preventable_repeat_share"`

	DefaultAHTReduciblePct    float64 `mapstructure:"default_aht_reducible_pct"`
	ExtraSecondsPerTransfer   float64 `mapstructure:"extra_seconds_per_transfer"`
	ExtraSecondsPerEscalation float64 `mapstructure:"extra_seconds_per_escalation"`
	CostArbitrageRate         float64 `mapstructure:"cost_arbitrage_rate"`
}

// CapsConfig holds the safety caps applied after pool netting.
type CapsConfig struct {
	// PerLever caps a single initiative's net FTE as a share of affected
	// FTE, keyed by lever name.
	PerLever map[string]float64 `mapstructure:"per_lever"`
	// AbsoluteInitiative caps any single initiative regardless of lever.
	AbsoluteInitiative float64 `mapstructure:"absolute_initiative"`
	// PerRoleCumulative caps the total reduction any single role can
	// absorb across all initiatives.
	PerRoleCumulative float64 `mapstructure:"per_role_cumulative"`
}

// FinanceConfig holds the projection parameters.
type FinanceConfig struct {
	HorizonYears  int     `mapstructure:"horizon_years"`
	DiscountRate  float64 `mapstructure:"discount_rate"`
	WageInflation float64 `mapstructure:"wage_inflation"`
	// AvgCostPerFTE overrides the role-weighted average when positive.
	AvgCostPerFTE    float64   `mapstructure:"avg_cost_per_fte"`
	OngoingCostShare float64   `mapstructure:"ongoing_cost_share"`
	ChangeMgmtShare  float64   `mapstructure:"change_mgmt_share"`
	TrainingShare    float64   `mapstructure:"training_share"`
	ContingencyShare float64   `mapstructure:"contingency_share"`
	InvestmentSplit  []float64 `mapstructure:"investment_split"`
	// SizeScaleReferenceFTE anchors the sqrt size scaling of investment
	// estimates.
	SizeScaleReferenceFTE float64 `mapstructure:"size_scale_reference_fte"`
}

// WorkforceConfig holds the transition-planning parameters.
type WorkforceConfig struct {
	MonthlyAttrition         float64 `mapstructure:"monthly_attrition"`
	AttritionAbsorptionShare float64 `mapstructure:"attrition_absorption_share"`
	RedeploymentPct          float64 `mapstructure:"redeployment_pct"`
	SeverancePctOfSalary     float64 `mapstructure:"severance_pct_of_salary"`
	ReskillCostPerFTE        float64 `mapstructure:"reskill_cost_per_fte"`
}

// LoggerConfig mirrors logging.Config.
type LoggerConfig struct {
	Level        string `mapstructure:"level"`
	Encoding     string `mapstructure:"encoding"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
}

// ServerConfig configures the optional results API.
type ServerConfig struct {
	Mode string `mapstructure:"mode"`
}

// Config is the validated configuration for one run.
type Config struct {
	Run        RunConfig          `mapstructure:"run"`
	Heuristics HeuristicsConfig   `mapstructure:"heuristics"`
	Caps       CapsConfig         `mapstructure:"caps"`
	Finance    FinanceConfig      `mapstructure:"finance"`
	Workforce  WorkforceConfig    `mapstructure:"workforce"`
	Benchmarks map[string]float64 `mapstructure:"benchmarks"`
	Logger     LoggerConfig       `mapstructure:"logger"`
	Server     ServerConfig       `mapstructure:"server"`
}

// Load reads configuration using Viper. An explicit path wins; otherwise
// config.yaml is searched in . and ./config. Environment variables
// override file values (e.g. RUN_VOLUME_ANNUALIZATION_FACTOR). A missing
// file is fine: defaults cover every parameter.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file on the default search path is fine; an explicit
		// path must exist, and a malformed file is always an error.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			return nil, err
		}
	}

	return build(v)
}

// Default returns the fully defaulted configuration without touching the
// filesystem. The shipped defaults are statically valid, so this cannot
// fail.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := build(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// The annualization factor deliberately has no viper default: an
	// absent key must be distinguishable from an explicit value so the
	// documented fallback of 12 can be surfaced to the caller. Reading it
	// explicitly also covers env-only overrides, which Unmarshal misses
	// for keys without defaults.
	if v.IsSet("run.volume_annualization_factor") {
		cfg.Run.VolumeAnnualizationFactor = v.GetFloat64("run.volume_annualization_factor")
	} else {
		cfg.Run.VolumeAnnualizationFactor = 12
		cfg.Run.AnnualizationDefaulted = true
	}

	fillTableDefaults(&cfg.Heuristics)
	if len(cfg.Caps.PerLever) == 0 {
		cfg.Caps.PerLever = defaultPerLeverCaps()
	}
	if len(cfg.Finance.InvestmentSplit) == 0 {
		cfg.Finance.InvestmentSplit = []float64{0.70, 0.30}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("run.gross_hours_per_year", 2080.0)
	v.SetDefault("run.current_shrinkage", 0.30)
	v.SetDefault("run.target_shrinkage", 0.22)
	v.SetDefault("run.net_productive_hours", 0.0)
	v.SetDefault("run.phasing_curve", "s_curve")
	v.SetDefault("run.workers", 4)

	v.SetDefault("heuristics.deflection_weights.repeatability", 0.40)
	v.SetDefault("heuristics.deflection_weights.emotional_risk", 0.25)
	v.SetDefault("heuristics.deflection_weights.auth_requirement", 0.25)
	v.SetDefault("heuristics.deflection_weights.complexity", 0.10)
	v.SetDefault("heuristics.auth_dampening", 0.50)
	v.SetDefault("heuristics.auth_dampening_threshold", 0.80)
	v.SetDefault("heuristics.eligibility_auth_penalty", 0.30)
	v.SetDefault("heuristics.repeat_boost", 0.15)
	v.SetDefault("heuristics.repeat_boost_threshold", 0.15)
	v.SetDefault("heuristics.high_emotion_score", 0.85)
	v.SetDefault("heuristics.elevated_emotion_score", 0.60)
	v.SetDefault("heuristics.low_auth_score", 0.10)
	v.SetDefault("heuristics.high_auth_score", 0.90)
	v.SetDefault("heuristics.transfer_escalation_dampener", 0.70)
	v.SetDefault("heuristics.transfer_escalation_threshold", 0.15)
	v.SetDefault("heuristics.transfer_prevented_base", 0.55)
	v.SetDefault("heuristics.transfer_prevented_slope", 0.40)
	v.SetDefault("heuristics.transfer_prevented_floor", 0.15)
	v.SetDefault("heuristics.escalation_preventable_base", 0.60)
	v.SetDefault("heuristics.escalation_preventable_slope", 0.50)
	v.SetDefault("heuristics.escalation_preventable_floor", 0.10)
	v.SetDefault("heuristics.migration_voice_base", 0.80)
	v.SetDefault("heuristics.migration_complexity_slope", 0.30)
	v.SetDefault("heuristics.migration_emotion_slope", 0.25)
	v.SetDefault("heuristics.migration_auth_slope", 0.15)
	v.SetDefault("heuristics.migration_ivr_factor", 0.20)
	v.SetDefault("heuristics.repeat_rate_floor", 0.02)
	v.SetDefault("heuristics.default_fcr", 0.75)
	v.SetDefault("heuristics.fcr_fallback_floor", 0.05)
	v.SetDefault("heuristics.fcr_fallback_slope", 0.60)
	v.SetDefault("heuristics.fcr_target_base", 0.90)
	v.SetDefault("heuristics.fcr_target_complexity_slope", 0.15)
	v.SetDefault("heuristics.max_preventable_repeat_share", 0.70)
	v.SetDefault("heuristics.default_aht_reducible_pct", 0.35)
	v.SetDefault("heuristics.extra_seconds_per_transfer", 180.0)
	v.SetDefault("heuristics.extra_seconds_per_escalation", 300.0)
	v.SetDefault("heuristics.cost_arbitrage_rate", 0.35)

	v.SetDefault("caps.absolute_initiative", 0.20)
	v.SetDefault("caps.per_role_cumulative", 0.45)

	v.SetDefault("finance.horizon_years", 3)
	v.SetDefault("finance.discount_rate", 0.10)
	v.SetDefault("finance.wage_inflation", 0.03)
	v.SetDefault("finance.avg_cost_per_fte", 0.0)
	v.SetDefault("finance.ongoing_cost_share", 0.15)
	v.SetDefault("finance.change_mgmt_share", 0.10)
	v.SetDefault("finance.training_share", 0.05)
	v.SetDefault("finance.contingency_share", 0.10)
	v.SetDefault("finance.size_scale_reference_fte", 3000.0)

	v.SetDefault("workforce.monthly_attrition", 0.03)
	v.SetDefault("workforce.attrition_absorption_share", 0.60)
	v.SetDefault("workforce.redeployment_pct", 0.10)
	v.SetDefault("workforce.severance_pct_of_salary", 0.25)
	v.SetDefault("workforce.reskill_cost_per_fte", 5000.0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("server.mode", "release")
}

// fillTableDefaults installs the calibrated band tables and keyword lists
// wherever the config file left them empty.
func fillTableDefaults(h *HeuristicsConfig) {
	if len(h.RepeatabilityBands) == 0 {
		h.RepeatabilityBands = []Band{
			{UpTo: 0.20, Value: 0.85},
			{UpTo: 0.35, Value: 0.65},
			{UpTo: 0.50, Value: 0.45},
			{UpTo: 0.70, Value: 0.25},
			{UpTo: 1.00, Value: 0.10},
		}
	}
	if len(h.EmotionalBands) == 0 {
		h.EmotionalBands = []Band{
			{UpTo: 0.25, Value: 0.10},
			{UpTo: 0.45, Value: 0.25},
			{UpTo: 0.65, Value: 0.45},
			{UpTo: 1.00, Value: 0.65},
		}
	}
	if len(h.AuthBands) == 0 {
		h.AuthBands = []Band{
			{UpTo: 0.25, Value: 0.20},
			{UpTo: 0.50, Value: 0.50},
			{UpTo: 1.00, Value: 0.75},
		}
	}
	if len(h.AHTShareBands) == 0 {
		h.AHTShareBands = []AHTShareBand{
			{UpTo: 0.25, Hold: 0.05, Search: 0.25},
			{UpTo: 0.50, Hold: 0.10, Search: 0.20},
			{UpTo: 0.70, Hold: 0.15, Search: 0.18},
			{UpTo: 1.00, Hold: 0.20, Search: 0.15},
		}
	}
	if len(h.TransferPreventableBands) == 0 {
		h.TransferPreventableBands = []Band{
			{UpTo: 0.30, Value: 0.75},
			{UpTo: 0.55, Value: 0.50},
			{UpTo: 0.75, Value: 0.30},
			{UpTo: 1.00, Value: 0.15},
		}
	}
	if len(h.HighEmotionKeywords) == 0 {
		h.HighEmotionKeywords = []string{
			"complaint", "dispute", "cancel", "fraud", "bereavement",
			"hardship", "escalat", "threat", "legal",
		}
	}
	if len(h.ElevatedEmotionKeywords) == 0 {
		h.ElevatedEmotionKeywords = []string{
			"refund", "billing", "overcharge", "disconnect", "terminate",
			"close account",
		}
	}
	if len(h.LowAuthKeywords) == 0 {
		h.LowAuthKeywords = []string{
			"faq", "general", "product info", "hours", "location",
			"status check", "tracking", "pricing",
		}
	}
	if len(h.HighAuthKeywords) == 0 {
		h.HighAuthKeywords = []string{
			"account change", "password", "transaction", "transfer",
			"payment", "address change", "personal detail",
		}
	}
}

func defaultPerLeverCaps() map[string]float64 {
	return map[string]float64{
		"deflection":           0.18,
		"aht_reduction":        0.12,
		"repeat_reduction":     0.12,
		"transfer_reduction":   0.10,
		"escalation_reduction": 0.10,
		"shrinkage_reduction":  0.10,
		"cost_reduction":       0.15,
	}
}

// Validate rejects the run before any computation when a parameter is
// outside its documented domain. The returned error names the offending
// parameter.
func (c *Config) Validate() error {
	f := c.Run.VolumeAnnualizationFactor
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return &apperrors.ConfigError{
			Param: "run.volume_annualization_factor",
			Err:   apperrors.ErrNonPositiveFactor,
		}
	}
	if c.Run.GrossHoursPerYear <= 0 {
		return &apperrors.ConfigError{
			Param: "run.gross_hours_per_year",
			Err:   apperrors.ErrNonPositiveHours,
		}
	}
	if c.Run.CurrentShrinkage < 0 || c.Run.CurrentShrinkage >= 1 {
		return &apperrors.ConfigError{
			Param: "run.current_shrinkage",
			Err:   apperrors.ErrWeightsOutOfRange,
		}
	}
	if c.Run.TargetShrinkage < 0 || c.Run.TargetShrinkage >= 1 {
		return &apperrors.ConfigError{
			Param: "run.target_shrinkage",
			Err:   apperrors.ErrWeightsOutOfRange,
		}
	}
	switch c.Run.PhasingCurve {
	case "s_curve", "linear":
	default:
		return &apperrors.ConfigError{
			Param: "run.phasing_curve",
			Err:   apperrors.ErrUnknownCurve,
		}
	}

	w := c.Heuristics.DeflectionWeights
	for param, weight := range map[string]float64{
		"heuristics.deflection_weights.repeatability":    w.Repeatability,
		"heuristics.deflection_weights.emotional_risk":   w.EmotionalRisk,
		"heuristics.deflection_weights.auth_requirement": w.AuthRequirement,
		"heuristics.deflection_weights.complexity":       w.Complexity,
	} {
		if weight < 0 || weight > 1 {
			return &apperrors.ConfigError{Param: param, Err: apperrors.ErrWeightsOutOfRange}
		}
	}
	sum := w.Repeatability + w.EmotionalRisk + w.AuthRequirement + w.Complexity
	if math.Abs(sum-1) > 1e-6 {
		return &apperrors.ConfigError{
			Param: "heuristics.deflection_weights",
			Err:   apperrors.ErrWeightsNotNormalized,
		}
	}

	if err := validateBands("heuristics.repeatability_bands", c.Heuristics.RepeatabilityBands); err != nil {
		return err
	}
	if err := validateBands("heuristics.emotional_bands", c.Heuristics.EmotionalBands); err != nil {
		return err
	}
	if err := validateBands("heuristics.auth_bands", c.Heuristics.AuthBands); err != nil {
		return err
	}
	if err := validateBands("heuristics.transfer_preventable_bands", c.Heuristics.TransferPreventableBands); err != nil {
		return err
	}
	prev := 0.0
	for i, b := range c.Heuristics.AHTShareBands {
		bad := b.UpTo <= 0 || b.UpTo > 1 ||
			b.Hold < 0 || b.Search < 0 || b.Hold+b.Search >= 1 ||
			(i > 0 && b.UpTo <= prev)
		if bad {
			return &apperrors.ConfigError{
				Param: "heuristics.aht_share_bands",
				Err:   apperrors.ErrWeightsOutOfRange,
			}
		}
		prev = b.UpTo
	}

	for lever, share := range c.Caps.PerLever {
		if share <= 0 || share > 1 {
			return &apperrors.ConfigError{
				Param: "caps.per_lever." + lever,
				Err:   apperrors.ErrInvalidCap,
			}
		}
	}
	if c.Caps.AbsoluteInitiative <= 0 || c.Caps.AbsoluteInitiative > 1 {
		return &apperrors.ConfigError{Param: "caps.absolute_initiative", Err: apperrors.ErrInvalidCap}
	}
	if c.Caps.PerRoleCumulative <= 0 || c.Caps.PerRoleCumulative > 1 {
		return &apperrors.ConfigError{Param: "caps.per_role_cumulative", Err: apperrors.ErrInvalidCap}
	}

	if c.Finance.HorizonYears < 1 {
		return &apperrors.ConfigError{Param: "finance.horizon_years", Err: apperrors.ErrInvalidHorizon}
	}
	if c.Finance.DiscountRate <= -1 {
		return &apperrors.ConfigError{Param: "finance.discount_rate", Err: apperrors.ErrInvalidDiscountRate}
	}

	return nil
}

func validateBands(param string, bands []Band) error {
	prev := 0.0
	for i, b := range bands {
		if b.UpTo <= 0 || b.UpTo > 1 {
			return &apperrors.ConfigError{Param: param, Err: apperrors.ErrWeightsOutOfRange}
		}
		if i > 0 && b.UpTo <= prev {
			return &apperrors.ConfigError{Param: param, Err: apperrors.ErrWeightsOutOfRange}
		}
		if b.Value < 0 || b.Value > 1 {
			return &apperrors.ConfigError{Param: param, Err: apperrors.ErrWeightsOutOfRange}
		}
		prev = b.UpTo
	}
	return nil
}

// Clone deep-copies the configuration so scenario and sensitivity runs can
// perturb parameters without touching the base run.
func (c *Config) Clone() *Config {
	out := *c
	out.Caps.PerLever = make(map[string]float64, len(c.Caps.PerLever))
	for k, v := range c.Caps.PerLever {
		out.Caps.PerLever[k] = v
	}
	out.Finance.InvestmentSplit = append([]float64(nil), c.Finance.InvestmentSplit...)
	out.Heuristics.RepeatabilityBands = append([]Band(nil), c.Heuristics.RepeatabilityBands...)
	out.Heuristics.EmotionalBands = append([]Band(nil), c.Heuristics.EmotionalBands...)
	out.Heuristics.AuthBands = append([]Band(nil), c.Heuristics.AuthBands...)
	out.Heuristics.AHTShareBands = append([]AHTShareBand(nil), c.Heuristics.AHTShareBands...)
	out.Heuristics.TransferPreventableBands = append([]Band(nil), c.Heuristics.TransferPreventableBands...)
	out.Heuristics.HighEmotionKeywords = append([]string(nil), c.Heuristics.HighEmotionKeywords...)
	out.Heuristics.ElevatedEmotionKeywords = append([]string(nil), c.Heuristics.ElevatedEmotionKeywords...)
	out.Heuristics.LowAuthKeywords = append([]string(nil), c.Heuristics.LowAuthKeywords...)
	out.Heuristics.HighAuthKeywords = append([]string(nil), c.Heuristics.HighAuthKeywords...)
	if c.Benchmarks != nil {
		out.Benchmarks = make(map[string]float64, len(c.Benchmarks))
		for k, v := range c.Benchmarks {
			out.Benchmarks[k] = v
		}
	}
	return &out
}
