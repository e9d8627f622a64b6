// Package wellmix attributes drinking-water consumption across arsenic
// sources from a urinary biomarker.
//
// The pipeline has two stages. A regression stage fits urinary arsenic
// against well-water concentrations over a cohort, producing calibration
// coefficients with their full covariance. A mass-balance stage then solves,
// for each individual, the fraction of drinking water drawn from their
// primary well, from other wells in their household compound, and from wells
// elsewhere in the study area, propagating uncertainty from both the fitted
// coefficients and the assumed physiological parameters.
//
// # Core Features
//
//   - Two calibration models: distributed (single slope) and household
//     (separate slopes for primary and compound wells)
//   - Per-individual three-source solve under the closure constraint
//     f_primary + f_compound + f_other = 1
//   - Delta-method uncertainty propagation, with multivariate-normal
//     resampling as an option
//   - Concurrent batch solving with per-individual failure isolation
//   - Physical-validity flagging: out-of-range fractions are reported raw,
//     never clamped
//
// # Basic Usage
//
// Fitting a model and solving a cohort:
//
//	import "github.com/hydroscope/wellmix"
//
//	c, _ := cohort.LoadCSV("cohort.csv")
//	params := cohort.DefaultParams()
//
//	model, err := wellmix.Fit(c, regression.ModelHousehold)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := wellmix.SolveBatch(ctx, c, model, params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, id := range c.IDs() {
//	    if est, ok := res.Estimates[id]; ok {
//	        fmt.Printf("%s: f_primary=%.3f±%.3f\n", id, est.Primary.Est, est.Primary.SE)
//	    }
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the regression
// and massbalance packages, simplifying the common fit-then-solve flow. For
// fine-grained control (condition thresholds, resample counts, worker
// limits), use those packages directly.
package wellmix

import (
	"context"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/internal/hash"
	"github.com/hydroscope/wellmix/massbalance"
	"github.com/hydroscope/wellmix/regression"
)

// Fit fits the calibration regression of the urinary biomarker on well-water
// concentrations over the cohort.
//
// Parameters:
//   - c: The cohort to calibrate on; every record needs a biomarker and a
//     primary-well concentration.
//   - kind: regression.ModelDistributed or regression.ModelHousehold.
//
// Returns:
//   - *regression.Model: The fitted model with coefficient covariance.
//   - error: regression.ErrInsufficientData or regression.ErrSingularDesign
//     when the cohort cannot support the fit.
func Fit(c cohort.Cohort, kind regression.ModelKind) (*regression.Model, error) {
	return regression.Fit(c, kind)
}

// Solve solves the three-source mass balance for one individual under a
// fitted model.
//
// Parameters:
//   - rec: The individual's record.
//   - model: A model from Fit.
//   - params: The physiological parameter set, typically
//     cohort.DefaultParams() or loaded from YAML.
//   - opts: Optional configuration (see massbalance.SolveOption).
//
// Returns:
//   - *massbalance.FractionEstimate: Source fractions with standard errors.
//   - error: massbalance.ErrDegenerateSystem when the individual's system is
//     unidentifiable or ill-conditioned.
func Solve(rec *cohort.Record, model *regression.Model, params cohort.Params,
	opts ...massbalance.SolveOption,
) (*massbalance.FractionEstimate, error) {
	return massbalance.Solve(rec, model, params, opts...)
}

// SolveBatch solves the mass balance for every individual in the cohort
// concurrently. Per-individual failures are collected in the result rather
// than aborting the batch.
//
// Example:
//
//	res, err := wellmix.SolveBatch(ctx, c, model, params,
//	    massbalance.WithMethod(massbalance.MethodResample),
//	    massbalance.WithWorkers(4),
//	)
func SolveBatch(ctx context.Context, c cohort.Cohort, model *regression.Model,
	params cohort.Params, opts ...massbalance.SolveOption,
) (*massbalance.BatchResult, error) {
	return massbalance.SolveBatch(ctx, c, model, params, opts...)
}

// Attribute runs the common fit-then-solve flow in one call: fit the given
// model kind on the cohort, then solve every individual against it.
func Attribute(ctx context.Context, c cohort.Cohort, kind regression.ModelKind,
	params cohort.Params, opts ...massbalance.SolveOption,
) (*regression.Model, *massbalance.BatchResult, error) {
	model, err := regression.Fit(c, kind)
	if err != nil {
		return nil, nil, err
	}

	res, err := massbalance.SolveBatch(ctx, c, model, params, opts...)
	if err != nil {
		return nil, nil, err
	}

	return model, res, nil
}

// IndividualID converts an individual identifier string to its 64-bit hash.
//
// The same hash seeds the per-individual resampling RNG, so two runs over
// the same cohort produce identical resampled standard errors regardless of
// worker scheduling. Exposed for callers that key external storage by the
// hashed ID.
func IndividualID(id string) uint64 {
	return hash.ID(id)
}
