package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hydroscope/wellmix/cohort"
)

// Model is a fitted mass-balance calibration model.
//
// A Model is created once per analysis run by Fit and is immutable
// afterwards; it is shared read-only by every per-individual solve.
//
// Fields:
//   - Kind: which calibration model was fit
//   - Coefficients: fitted coefficients, intercept first
//   - Covariance: full coefficient covariance matrix
//   - ResidualVariance: unbiased residual variance estimate σ̂²
//   - DF: residual degrees of freedom (n - p)
//   - N: sample size used for the fit
//   - RSquared, RSquaredAdj, RMSE: goodness-of-fit statistics
//   - Cond: condition number of the design matrix
//   - Formula: human-readable fitted equation
type Model struct {
	Kind ModelKind
	// Coefficients holds [β0, β1] for the distributed model and
	// [β0, β1, β2] for the household model.
	Coefficients []float64
	// Covariance is the p×p coefficient covariance matrix σ̂²·(XᵀX)⁻¹.
	Covariance *mat.SymDense
	// ResidualVariance is σ̂² = RSS / (n - p).
	ResidualVariance float64
	// DF is the residual degrees of freedom.
	DF int
	// N is the number of cohort records used in the fit.
	N int

	RSquared    float64
	RSquaredAdj float64
	RMSE        float64

	// Cond is the design-matrix condition number at fit time.
	Cond float64
	// Formula is a human-readable representation of the fitted model.
	Formula string
}

// StdErrors returns the per-coefficient standard errors, the square roots of
// the covariance diagonal.
func (m *Model) StdErrors() []float64 {
	p := len(m.Coefficients)
	se := make([]float64, p)
	for i := range p {
		se[i] = math.Sqrt(m.Covariance.At(i, i))
	}

	return se
}

// Predict returns the fitted biomarker value for one record.
//
// This is the quantity the plotting collaborator draws against the observed
// biomarker level.
func (m *Model) Predict(rec *cohort.Record) float64 {
	x := predictors(rec, m.Kind)

	var y float64
	for i, b := range m.Coefficients {
		y += b * x[i]
	}

	return y
}

// PredictCohort returns fitted biomarker values keyed by individual ID.
func (m *Model) PredictCohort(c cohort.Cohort) map[string]float64 {
	out := make(map[string]float64, len(c))
	for id, rec := range c {
		out[id] = m.Predict(rec)
	}

	return out
}

// String returns a short human-readable summary of the fitted model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Kind: %s, N: %d, R²: %.4f, Formula: %s}",
		m.Kind, m.N, m.RSquared, m.Formula)
}

// predictors builds the design row for one record: intercept first, then the
// primary-well concentration, then (household model only) the compound mean.
func predictors(rec *cohort.Record, kind ModelKind) []float64 {
	if kind == ModelHousehold {
		return []float64{1, rec.PrimaryWell, rec.CompoundMean()}
	}

	return []float64{1, rec.PrimaryWell}
}
