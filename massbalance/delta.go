package massbalance

import (
	"fmt"
	"math"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/regression"
)

// deltaSE propagates input uncertainty to the solved fractions by the delta
// method: Var(f) ≈ gᵀ·Σ·g with g the gradient of the solve at the point
// estimate.
//
// The gradient is taken by central differences through the full system
// solve, so it is exact to second order in the step. Σ has two parts: the
// fitted coefficient covariance block (correlations included) and
// independent variances for the measured and configured scalar inputs.
func deltaSE(in inputs, model *regression.Model, params cohort.Params, cfg SolveConfig) (fractions, error) {
	p := len(model.Coefficients)

	grads, err := gradients(in, cfg)
	if err != nil {
		return fractions{}, err
	}

	sigmas := scalarSigmas(params)

	variance := func(out int) float64 {
		var v float64
		// Coefficient block with correlations.
		for i := range p {
			for j := range p {
				v += grads[out][i] * grads[out][j] * model.Covariance.At(i, j)
			}
		}
		// Independent scalar inputs.
		for k, s := range sigmas {
			if s > 0 {
				g := grads[out][p+k]
				v += g * g * s * s
			}
		}

		return v
	}

	return fractions{
		Primary:  math.Sqrt(variance(0)),
		Compound: math.Sqrt(variance(1)),
		Other:    math.Sqrt(variance(2)),
		Excreted: math.Sqrt(variance(3)),
	}, nil
}

// gradients returns the central-difference gradient of each solver output
// with respect to every theta entry: grads[output][input].
func gradients(in inputs, cfg SolveConfig) ([4][]float64, error) {
	dim := len(in.Theta)

	var grads [4][]float64
	for out := range grads {
		grads[out] = make([]float64, dim)
	}

	perturbed := inputs{
		Kind:        in.Kind,
		Theta:       make([]float64, dim),
		NumCompound: in.NumCompound,
		NumOther:    in.NumOther,
	}

	for i := range dim {
		h := gradientStep(in.Theta[i])

		copy(perturbed.Theta, in.Theta)
		perturbed.Theta[i] = in.Theta[i] + h
		plus, err := solveSystem(perturbed, cfg.CondThreshold, cfg.AliasTol)
		if err != nil {
			return grads, fmt.Errorf("gradient perturbation of input %d: %w", i, err)
		}

		perturbed.Theta[i] = in.Theta[i] - h
		minus, err := solveSystem(perturbed, cfg.CondThreshold, cfg.AliasTol)
		if err != nil {
			return grads, fmt.Errorf("gradient perturbation of input %d: %w", i, err)
		}

		inv := 1 / (2 * h)
		grads[0][i] = (plus.Primary - minus.Primary) * inv
		grads[1][i] = (plus.Compound - minus.Compound) * inv
		grads[2][i] = (plus.Other - minus.Other) * inv
		grads[3][i] = (plus.Excreted - minus.Excreted) * inv
	}

	return grads, nil
}

// gradientStep picks a central-difference step proportional to the input's
// magnitude, floored for inputs near zero.
func gradientStep(x float64) float64 {
	const rel = 1e-6

	return rel * math.Max(1, math.Abs(x))
}
