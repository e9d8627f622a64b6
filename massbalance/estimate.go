package massbalance

import (
	"fmt"

	"github.com/hydroscope/wellmix/regression"
)

// Value is a point estimate with its propagated standard error.
type Value struct {
	Est float64
	SE  float64
}

// FractionEstimate is the solver output for one (individual, model) pair.
// It is written once by Solve and never mutated afterwards.
//
// Primary, Compound and Other are the drinking-water fractions attributed to
// the individual's primary well, other wells in their compound, and wells
// elsewhere in the study area. They satisfy the closure constraint
// Primary + Compound + Other = 1 within numerical tolerance, but individual
// fractions may fall outside [0,1]: such solutions are reported raw with
// Valid cleared rather than clamped.
//
// Excreted is the implied urinary excreted-share diagnostic,
// (1−md−mb)·f_primary/β1.
type FractionEstimate struct {
	ID     string
	Model  regression.ModelKind
	Method Method

	Primary  Value
	Compound Value
	Other    Value
	Excreted Value

	// Valid is false when any fraction lies outside [0,1] or a standard
	// error exceeds the configured sanity threshold. The estimate itself is
	// still populated.
	Valid bool
	// Warnings lists the physical-validity violations in human-readable form.
	Warnings []string
}

// Sum returns f_primary + f_compound + f_other, which the solver guarantees
// to be 1 within the closure tolerance.
func (e *FractionEstimate) Sum() float64 {
	return e.Primary.Est + e.Compound.Est + e.Other.Est
}

// PrimaryWellShare returns the primary-well fraction normalized by the
// fraction sum. With closure holding it equals Primary.Est up to tolerance;
// normalizing keeps flagged out-of-range solutions comparable on plots.
func (e *FractionEstimate) PrimaryWellShare() float64 {
	return e.Primary.Est / e.Sum()
}

// OtherWellShare returns the combined non-primary share, normalized the same
// way as PrimaryWellShare.
func (e *FractionEstimate) OtherWellShare() float64 {
	return (e.Compound.Est + e.Other.Est) / e.Sum()
}

// String returns a one-line summary of the estimate.
func (e *FractionEstimate) String() string {
	return fmt.Sprintf("FractionEstimate{ID: %s, Model: %s, f_p: %.3f±%.3f, f_c: %.3f±%.3f, f_o: %.3f±%.3f, Valid: %t}",
		e.ID, e.Model,
		e.Primary.Est, e.Primary.SE,
		e.Compound.Est, e.Compound.SE,
		e.Other.Est, e.Other.SE,
		e.Valid)
}
