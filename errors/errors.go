package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError identifies the offending parameter when a run is rejected
// before computation starts.
type ConfigError struct {
	Param string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %v", e.Param, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CatalogError wraps a validation failure for a single catalog entry.
type CatalogError struct {
	InitiativeID string
	Err          error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("invalid initiative %q: %v", e.InitiativeID, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrInvalidFieldCount      = fmt.Errorf("invalid field count")
	ErrInvalidVolume          = fmt.Errorf("invalid volume")
	ErrInvalidAHT             = fmt.Errorf("invalid handle time")
	ErrInvalidRate            = fmt.Errorf("invalid rate")
	ErrInvalidComplexity      = fmt.Errorf("invalid complexity")
	ErrInvalidFTE             = fmt.Errorf("invalid fte count")
	ErrInvalidCost            = fmt.Errorf("invalid cost")
	ErrEmptyRecord            = fmt.Errorf("empty record")
	ErrNonPositiveFactor      = fmt.Errorf("annualization factor must be positive and finite")
	ErrNonPositiveHours       = fmt.Errorf("hours must be positive")
	ErrWeightsOutOfRange      = fmt.Errorf("weights must lie in [0,1]")
	ErrWeightsNotNormalized   = fmt.Errorf("weights must sum to 1")
	ErrInvalidCap             = fmt.Errorf("cap must lie in (0,1]")
	ErrInvalidHorizon         = fmt.Errorf("horizon must be at least one year")
	ErrInvalidDiscountRate    = fmt.Errorf("discount rate must be greater than -1")
	ErrUnknownLever           = fmt.Errorf("unknown lever")
	ErrUnknownCurve           = fmt.Errorf("unknown phasing curve")
	ErrNoInitiatives          = fmt.Errorf("no enabled initiatives")
	ErrNoQueues               = fmt.Errorf("no queue records")
	ErrNoRoles                = fmt.Errorf("no role records")
	ErrDuplicateInitiativeID  = fmt.Errorf("duplicate initiative id")
	ErrMissingInitiativeField = fmt.Errorf("missing required initiative field")
)
