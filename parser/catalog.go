package parser

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"contact-navigator/errors"
	"contact-navigator/models"
)

// catalogFile is the on-disk shape of an initiative catalog.
type catalogFile struct {
	Initiatives []catalogEntry `yaml:"initiatives"`
}

type catalogEntry struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Layer             int      `yaml:"layer"`
	Lever             string   `yaml:"lever"`
	Score             float64  `yaml:"score"`
	Enabled           *bool    `yaml:"enabled"`
	PlatformFamily    string   `yaml:"platform_family"`
	ImpactRate        float64  `yaml:"impact_rate"`
	SecondsPerContact float64  `yaml:"seconds_per_contact"`
	Adoption          float64  `yaml:"adoption"`
	TargetRoles       []string `yaml:"target_roles"`
	StartMonth        int      `yaml:"start_month"`
	RampMonths        int      `yaml:"ramp_months"`
	EndMonth          int      `yaml:"end_month"`
	CapOverride       float64  `yaml:"cap_override"`
	InvestmentBase    float64  `yaml:"investment_base"`
	Value             float64  `yaml:"value"`
	Readiness         float64  `yaml:"readiness"`
	Complexity        float64  `yaml:"complexity"`
	Risk              float64  `yaml:"risk"`
	Alignment         float64  `yaml:"alignment"`
}

// LoadCatalog parses a YAML initiative catalog. Lever strings pass through
// unvalidated: the netting engine fails closed on anything outside the
// known set, and rejecting here would hide that path from the audit trail.
func LoadCatalog(r io.Reader) ([]models.Initiative, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Initiatives))
	out := make([]models.Initiative, 0, len(file.Initiatives))
	for _, entry := range file.Initiatives {
		if entry.ID == "" {
			return nil, &errors.CatalogError{
				InitiativeID: entry.Name,
				Err:          errors.ErrMissingInitiativeField,
			}
		}
		if entry.Name == "" || entry.Lever == "" {
			return nil, &errors.CatalogError{
				InitiativeID: entry.ID,
				Err:          errors.ErrMissingInitiativeField,
			}
		}
		if seen[entry.ID] {
			return nil, &errors.CatalogError{
				InitiativeID: entry.ID,
				Err:          errors.ErrDuplicateInitiativeID,
			}
		}
		seen[entry.ID] = true

		out = append(out, entry.toInitiative())
	}

	return out, nil
}

// LoadCatalogFile opens and parses path.
func LoadCatalogFile(path string) ([]models.Initiative, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

func (e catalogEntry) toInitiative() models.Initiative {
	init := models.Initiative{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		Layer:             e.Layer,
		Lever:             models.Lever(e.Lever),
		Score:             e.Score,
		Enabled:           true,
		PlatformFamily:    e.PlatformFamily,
		ImpactRate:        e.ImpactRate,
		SecondsPerContact: e.SecondsPerContact,
		Adoption:          e.Adoption,
		TargetRoles:       e.TargetRoles,
		StartMonth:        e.StartMonth,
		RampMonths:        e.RampMonths,
		EndMonth:          e.EndMonth,
		CapOverride:       e.CapOverride,
		InvestmentBase:    e.InvestmentBase,
		Value:             e.Value,
		Readiness:         e.Readiness,
		ComplexityScore:   e.Complexity,
		RiskScore:         e.Risk,
		Alignment:         e.Alignment,
	}
	if e.Enabled != nil {
		init.Enabled = *e.Enabled
	}
	if init.StartMonth < 1 {
		init.StartMonth = 1
	}
	if init.RampMonths < 1 {
		init.RampMonths = 6
	}
	if init.Adoption <= 0 {
		// Calibrated adoption default for entries that omit it.
		init.Adoption = 0.60
	}
	return init
}
