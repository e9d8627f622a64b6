// Package regression fits the two linear mass-balance calibration models to
// a cohort by ordinary least squares.
//
// Two model kinds are supported:
//
//   - Distributed: biomarker = β0 + β1·primary, treating all non-primary
//     wells as one distributed pool absorbed by the intercept.
//   - Household: biomarker = β0 + β1·primary + β2·compoundMean, giving
//     household-compound wells their own slope.
//
// Which kind to fit is the caller's modeling choice; the engine never infers
// it from the data. A fitted Model is immutable and carries the full
// coefficient covariance matrix (not just standard errors), because the
// downstream fraction uncertainty depends on coefficient correlations.
//
// # Failure modes
//
// Fit returns ErrInsufficientData when the sample size does not exceed the
// number of coefficients, and ErrSingularDesign when the design matrix is
// rank-deficient or its condition number exceeds the threshold. Both are
// fatal to that model's run: no individual can be solved without a fitted
// model, and the engine never substitutes a fallback.
//
// # Usage
//
//	model, err := regression.Fit(c, regression.ModelHousehold)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(model) // kind, n, R², formula
package regression
