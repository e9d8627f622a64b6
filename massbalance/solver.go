package massbalance

import (
	"fmt"
	"math"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/internal/options"
	"github.com/hydroscope/wellmix/regression"
)

// Solve attributes one individual's drinking water across the three source
// categories under the given fitted model and parameter set.
//
// The record, model and params are read-only inputs; a Solve never mutates
// shared state, which is what makes per-individual solves safe to run
// concurrently against one fitted model.
//
// Parameters:
//   - rec: the individual's record; must pass Validate
//   - model: a fitted calibration model, shared read-only
//   - params: fixed physiological constants with uncertainties
//   - opts: optional solver configuration
//
// Returns:
//   - *FractionEstimate: fractions with standard errors and validity flags
//   - error: ErrDegenerateSystem (wrapped with the individual's ID) when the
//     per-individual system is singular or aliased; validation errors for
//     unusable inputs
func Solve(rec *cohort.Record, model *regression.Model, params cohort.Params, opts ...SolveOption) (*FractionEstimate, error) {
	cfg := defaultSolveConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if model == nil || len(model.Coefficients) != model.Kind.NumCoefficients() {
		return nil, fmt.Errorf("invalid model for solve")
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return solveRecord(rec, model, params, cfg)
}

// solveRecord runs the solve and propagation for pre-validated inputs.
func solveRecord(rec *cohort.Record, model *regression.Model, params cohort.Params, cfg SolveConfig) (*FractionEstimate, error) {
	in := newInputs(rec, model, params)

	frac, err := solveSystem(in, cfg.CondThreshold, cfg.AliasTol)
	if err != nil {
		return nil, fmt.Errorf("individual %s: %w", rec.ID, err)
	}

	var se fractions
	switch cfg.Method {
	case MethodResample:
		se, err = resampleSE(rec.ID, in, model, params, cfg)
	default:
		se, err = deltaSE(in, model, params, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("individual %s: %w", rec.ID, err)
	}

	est := &FractionEstimate{
		ID:       rec.ID,
		Model:    model.Kind,
		Method:   cfg.Method,
		Primary:  Value{Est: frac.Primary, SE: se.Primary},
		Compound: Value{Est: frac.Compound, SE: se.Compound},
		Other:    Value{Est: frac.Other, SE: se.Other},
		Excreted: Value{Est: frac.Excreted, SE: se.Excreted},
	}
	est.Warnings = validityWarnings(frac, se, cfg.SaneSE)
	est.Valid = len(est.Warnings) == 0

	return est, nil
}

// validityWarnings reports physical-validity violations: fractions outside
// [0,1] and standard errors beyond the sanity threshold. The raw solution is
// kept as-is either way; an out-of-range fraction is a sign the individual's
// data are inconsistent with the model and must stay visible.
func validityWarnings(frac, se fractions, saneSE float64) []string {
	named := []struct {
		name string
		est  float64
		se   float64
	}{
		{"f_primary", frac.Primary, se.Primary},
		{"f_compound", frac.Compound, se.Compound},
		{"f_other", frac.Other, se.Other},
	}

	var warnings []string
	for _, f := range named {
		if f.est < -ClosureTol || f.est > 1+ClosureTol {
			warnings = append(warnings, fmt.Sprintf("%s = %.6g outside [0,1]", f.name, f.est))
		}
		if math.IsNaN(f.se) || f.se > saneSE {
			warnings = append(warnings, fmt.Sprintf("%s standard error %.6g exceeds sanity threshold %.3g", f.name, f.se, saneSE))
		}
	}

	return warnings
}
