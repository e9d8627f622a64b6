package cohort

import (
	"fmt"
	"math"
)

// Sex is the recorded sex of an individual, used only for group subsetting.
type Sex string

const (
	SexFemale  Sex = "female"
	SexMale    Sex = "male"
	SexUnknown Sex = ""
)

// Record holds one individual's measurements.
//
// Concentrations are arsenic in µg/L. PrimaryWell is the well the individual
// reports as their main drinking source and is required by both models as the
// reference source. CompoundWells maps well IDs to concentrations for other
// wells inside the individual's household compound; OtherWells does the same
// for accessible wells elsewhere in the study area.
//
// Sex and KnewWellArsenic carry no physical meaning for the mass balance;
// they exist so a cohort can be subset the way the field study groups were.
type Record struct {
	ID string

	// Biomarker is the measured urinary arsenic concentration.
	Biomarker float64
	// PrimaryWell is the arsenic concentration at the individual's primary well.
	PrimaryWell float64
	// CompoundWells maps compound well IDs to arsenic concentrations.
	CompoundWells map[string]float64
	// OtherWells maps study-area well IDs to arsenic concentrations.
	OtherWells map[string]float64

	Sex Sex
	// KnewWellArsenic records whether the individual already knew their
	// well's arsenic level when the biomarker was sampled.
	KnewWellArsenic bool
}

// CompoundMean returns the mean arsenic concentration over compound wells,
// or 0 when the individual has none.
func (r *Record) CompoundMean() float64 {
	return meanConcentration(r.CompoundWells)
}

// OtherMean returns the mean arsenic concentration over study-area wells,
// or 0 when the individual has none.
func (r *Record) OtherMean() float64 {
	return meanConcentration(r.OtherWells)
}

// Validate checks the record invariants: a non-empty ID, finite non-negative
// concentrations everywhere, and a present primary-well concentration.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record has empty ID")
	}
	if !isValidConcentration(r.Biomarker) {
		return fmt.Errorf("record %s: biomarker concentration %v is not a non-negative finite value", r.ID, r.Biomarker)
	}
	if !isValidConcentration(r.PrimaryWell) {
		return fmt.Errorf("record %s: primary well concentration %v is not a non-negative finite value", r.ID, r.PrimaryWell)
	}
	for well, c := range r.CompoundWells {
		if !isValidConcentration(c) {
			return fmt.Errorf("record %s: compound well %s concentration %v is not a non-negative finite value", r.ID, well, c)
		}
	}
	for well, c := range r.OtherWells {
		if !isValidConcentration(c) {
			return fmt.Errorf("record %s: other well %s concentration %v is not a non-negative finite value", r.ID, well, c)
		}
	}

	return nil
}

func isValidConcentration(c float64) bool {
	return c >= 0 && !math.IsInf(c, 1) && !math.IsNaN(c)
}

func meanConcentration(wells map[string]float64) float64 {
	if len(wells) == 0 {
		return 0
	}

	var sum float64
	for _, c := range wells {
		sum += c
	}

	return sum / float64(len(wells))
}
