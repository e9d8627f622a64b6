package cohort

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Quantity is a fixed parameter value with its one-sigma uncertainty.
type Quantity struct {
	Value float64 `yaml:"value"`
	Sigma float64 `yaml:"sigma"`
}

// Params holds the fixed physiological and volumetric constants that enter
// the mass balance. They are treated as given, never fitted, and are passed
// explicitly into both the regression engine and the solver; there is no
// process-wide parameter state.
//
// Units: WaterIntake in L/day, FoodArsenic in µg/day, everything else is a
// dimensionless fraction.
type Params struct {
	// WaterIntake is the assumed total daily drinking-water volume (Q).
	WaterIntake Quantity `yaml:"water_intake"`
	// FoodArsenic is the assumed daily arsenic mass ingested with food (Mf).
	FoodArsenic Quantity `yaml:"food_arsenic"`
	// BeverageFraction is the share of fluid intake from non-well beverages (ff).
	BeverageFraction Quantity `yaml:"beverage_fraction"`
	// CookingFraction is the share of intake attributable to cooking water (fc).
	CookingFraction Quantity `yaml:"cooking_fraction"`
	// MetabolicLoss is the ingested fraction lost to non-urinary metabolic
	// pathways (md).
	MetabolicLoss Quantity `yaml:"metabolic_loss"`
	// BodyRetention is the ingested fraction retained in body tissue (mb).
	BodyRetention Quantity `yaml:"body_retention"`

	// BiomarkerSigma is the measurement uncertainty on urinary arsenic, µg/L.
	// Zero means the biomarker is treated as exactly known.
	BiomarkerSigma float64 `yaml:"biomarker_sigma"`
	// ConcentrationSigma is the measurement uncertainty on well-water
	// arsenic, µg/L, applied to each source mean independently.
	ConcentrationSigma float64 `yaml:"concentration_sigma"`
}

// DefaultParams returns the study's published parameter set.
func DefaultParams() Params {
	return Params{
		WaterIntake:      Quantity{Value: 3, Sigma: 1},
		FoodArsenic:      Quantity{Value: 64, Sigma: 4},
		BeverageFraction: Quantity{Value: 0.2, Sigma: 0.1},
		CookingFraction:  Quantity{Value: 0.12, Sigma: 0.06},
		MetabolicLoss:    Quantity{Value: 0.06, Sigma: 0.03},
		BodyRetention:    Quantity{Value: 0, Sigma: 0},
	}
}

// WellFraction returns the share of intake attributable to well water
// directly, 1 - ff - fc.
func (p Params) WellFraction() float64 {
	return 1 - p.BeverageFraction.Value - p.CookingFraction.Value
}

// ExcretedFraction returns the net urinary excretion factor, 1 - md - mb.
func (p Params) ExcretedFraction() float64 {
	return 1 - p.MetabolicLoss.Value - p.BodyRetention.Value
}

// Validate checks that the parameter set is physically usable by the solver.
func (p Params) Validate() error {
	checks := []struct {
		name string
		q    Quantity
	}{
		{"water_intake", p.WaterIntake},
		{"food_arsenic", p.FoodArsenic},
		{"beverage_fraction", p.BeverageFraction},
		{"cooking_fraction", p.CookingFraction},
		{"metabolic_loss", p.MetabolicLoss},
		{"body_retention", p.BodyRetention},
	}
	for _, c := range checks {
		if math.IsNaN(c.q.Value) || math.IsInf(c.q.Value, 0) {
			return fmt.Errorf("parameter %s: value %v is not finite", c.name, c.q.Value)
		}
		if c.q.Sigma < 0 || math.IsNaN(c.q.Sigma) || math.IsInf(c.q.Sigma, 0) {
			return fmt.Errorf("parameter %s: sigma %v is not a non-negative finite value", c.name, c.q.Sigma)
		}
	}
	if p.WaterIntake.Value <= 0 {
		return fmt.Errorf("parameter water_intake: value %v must be positive", p.WaterIntake.Value)
	}
	if p.WellFraction() <= 0 {
		return fmt.Errorf("beverage_fraction %v + cooking_fraction %v leave no well-water intake",
			p.BeverageFraction.Value, p.CookingFraction.Value)
	}
	if p.ExcretedFraction() <= 0 {
		return fmt.Errorf("metabolic_loss %v + body_retention %v leave no urinary excretion",
			p.MetabolicLoss.Value, p.BodyRetention.Value)
	}
	if p.BiomarkerSigma < 0 {
		return fmt.Errorf("biomarker_sigma %v must be non-negative", p.BiomarkerSigma)
	}
	if p.ConcentrationSigma < 0 {
		return fmt.Errorf("concentration_sigma %v must be non-negative", p.ConcentrationSigma)
	}

	return nil
}

// ParseParams decodes a YAML parameter document and validates it.
// Fields absent from the document keep the published defaults.
func ParseParams(data []byte) (Params, error) {
	p := DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("failed to parse params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}

	return p, nil
}

// LoadParams reads and parses a YAML parameter file.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read params file: %w", err)
	}

	return ParseParams(data)
}
