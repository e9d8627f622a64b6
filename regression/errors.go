package regression

import "errors"

var (
	// ErrInsufficientData reports a fit attempted with sample size no larger
	// than the number of coefficients.
	ErrInsufficientData = errors.New("insufficient data for regression fit")

	// ErrSingularDesign reports a rank-deficient or near-singular design
	// matrix, typically collinear source concentrations.
	ErrSingularDesign = errors.New("singular regression design matrix")
)
