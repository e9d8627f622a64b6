package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/internal/options"
)

// Fit fits the given calibration model to the cohort by ordinary least
// squares.
//
// The design matrix is assembled in sorted-ID order so the fit is
// deterministic for a given cohort. Fitting goes through the thin SVD of the
// design, which yields the rank and condition diagnostics the error
// contract requires and the (XᵀX)⁻¹ factor for the coefficient covariance.
//
// Parameters:
//   - c: cohort to fit; must contain more records than the model has
//     coefficients
//   - kind: which calibration model to fit (the caller's modeling choice)
//   - opts: optional fit configuration
//
// Returns:
//   - *Model: immutable fitted model with coefficients, covariance and
//     goodness-of-fit statistics
//   - error: ErrInsufficientData when n ≤ p; ErrSingularDesign when the
//     design is rank-deficient or its condition number exceeds the threshold
func Fit(c cohort.Cohort, kind ModelKind, opts ...FitOption) (*Model, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	n := len(c)
	p := kind.NumCoefficients()
	if n <= p {
		return nil, fmt.Errorf("%w: %d records for %d coefficients", ErrInsufficientData, n, p)
	}

	x, y := designMatrix(c, kind)

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("%w: SVD of the design matrix failed to converge", ErrSingularDesign)
	}

	sv := svd.Values(nil)
	rank, cond := rankAndCond(sv, cfg.CondThreshold)
	if rank < p {
		return nil, fmt.Errorf("%w: design rank %d < %d coefficients (condition number %.3g)",
			ErrSingularDesign, rank, p, cond)
	}

	var betaVec mat.VecDense
	svd.SolveVecTo(&betaVec, y, rank)
	beta := make([]float64, p)
	for i := range p {
		beta[i] = betaVec.AtVec(i)
	}

	rss, tss := residualSums(x, y, beta)
	df := n - p
	sigma2 := rss / float64(df)

	cov, err := coefficientCovariance(&svd, sv, p, sigma2)
	if err != nil {
		return nil, err
	}

	r2 := 1.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	return &Model{
		Kind:             kind,
		Coefficients:     beta,
		Covariance:       cov,
		ResidualVariance: sigma2,
		DF:               df,
		N:                n,
		RSquared:         r2,
		RSquaredAdj:      1 - (1-r2)*float64(n-1)/float64(df),
		RMSE:             math.Sqrt(rss / float64(n)),
		Cond:             cond,
		Formula:          formula(kind, beta),
	}, nil
}

// designMatrix assembles the design matrix and response vector in sorted-ID
// order.
func designMatrix(c cohort.Cohort, kind ModelKind) (*mat.Dense, *mat.VecDense) {
	ids := c.IDs()
	n := len(ids)
	p := kind.NumCoefficients()

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, id := range ids {
		rec := c[id]
		x.SetRow(i, predictors(rec, kind))
		y.SetVec(i, rec.Biomarker)
	}

	return x, y
}

// rankAndCond returns the numerical rank of the design given its singular
// values and the condition number σmax/σmin. Singular values below
// σmax/threshold count as zero.
func rankAndCond(sv []float64, threshold float64) (rank int, cond float64) {
	if len(sv) == 0 || sv[0] == 0 {
		return 0, math.Inf(1)
	}

	smax := sv[0]
	smin := sv[len(sv)-1]
	if smin == 0 {
		cond = math.Inf(1)
	} else {
		cond = smax / smin
	}

	tol := smax / threshold
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}

	return rank, cond
}

func residualSums(x *mat.Dense, y *mat.VecDense, beta []float64) (rss, tss float64) {
	n, p := x.Dims()

	var meanY float64
	for i := range n {
		meanY += y.AtVec(i)
	}
	meanY /= float64(n)

	for i := range n {
		var pred float64
		for j := range p {
			pred += x.At(i, j) * beta[j]
		}
		r := y.AtVec(i) - pred
		rss += r * r
		d := y.AtVec(i) - meanY
		tss += d * d
	}

	return rss, tss
}

// coefficientCovariance computes σ̂²·(XᵀX)⁻¹ from the thin SVD of X as
// σ̂²·V·Σ⁻²·Vᵀ.
func coefficientCovariance(svd *mat.SVD, sv []float64, p int, sigma2 float64) (*mat.SymDense, error) {
	var v mat.Dense
	svd.VTo(&v)

	cov := mat.NewSymDense(p, nil)
	for i := range p {
		for j := i; j < p; j++ {
			var sum float64
			for k := range p {
				s := sv[k]
				if s == 0 {
					return nil, fmt.Errorf("%w: zero singular value in covariance computation", ErrSingularDesign)
				}
				sum += v.At(i, k) * v.At(j, k) / (s * s)
			}
			cov.SetSym(i, j, sigma2*sum)
		}
	}

	return cov, nil
}

func formula(kind ModelKind, beta []float64) string {
	if kind == ModelHousehold {
		return fmt.Sprintf("urinary = %.3f + %.3f·primary + %.3f·compound", beta[0], beta[1], beta[2])
	}

	return fmt.Sprintf("urinary = %.3f + %.3f·primary", beta[0], beta[1])
}
