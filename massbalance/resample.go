package massbalance

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/internal/hash"
	"github.com/hydroscope/wellmix/regression"
)

// resampleSE propagates uncertainty by resampling: coefficients are drawn
// from a multivariate normal at the fitted mean and covariance, scalar
// inputs from independent normals at their configured sigmas, and the
// system is re-solved per draw. The empirical standard deviation across
// draws is the reported standard error.
//
// The RNG is seeded from a hash of the individual's ID, so a batch run
// produces identical results regardless of worker count or completion
// order. Draws that land on a degenerate system are skipped; when more than
// half fail the individual is reported as degenerate.
func resampleSE(id string, in inputs, model *regression.Model, params cohort.Params, cfg SolveConfig) (fractions, error) {
	s1, s2 := hash.Seed(id)
	src := rand.NewPCG(s1, s2)
	rng := rand.New(src)

	p := len(model.Coefficients)

	// A singular covariance (e.g. a perfect noiseless fit) admits no normal
	// draw; the coefficients are then held at their point estimates and the
	// spread comes from the scalar inputs alone.
	mvn, drawCoeffs := distmv.NewNormal(model.Coefficients, model.Covariance, src)

	sigmas := scalarSigmas(params)

	draw := inputs{
		Kind:        in.Kind,
		Theta:       make([]float64, len(in.Theta)),
		NumCompound: in.NumCompound,
		NumOther:    in.NumOther,
	}
	coeffBuf := make([]float64, p)

	samples := [4][]float64{}
	for out := range samples {
		samples[out] = make([]float64, 0, cfg.Resamples)
	}

	failed := 0
	for range cfg.Resamples {
		copy(draw.Theta, in.Theta)
		if drawCoeffs {
			mvn.Rand(coeffBuf)
			copy(draw.Theta[:p], coeffBuf)
		}
		for k, s := range sigmas {
			if s > 0 {
				draw.Theta[p+k] += rng.NormFloat64() * s
			}
		}

		f, err := solveSystem(draw, cfg.CondThreshold, cfg.AliasTol)
		if err != nil {
			failed++
			continue
		}

		samples[0] = append(samples[0], f.Primary)
		samples[1] = append(samples[1], f.Compound)
		samples[2] = append(samples[2], f.Other)
		samples[3] = append(samples[3], f.Excreted)
	}

	if failed*2 > cfg.Resamples {
		return fractions{}, fmt.Errorf("%w: %d of %d resampling draws failed", ErrDegenerateSystem, failed, cfg.Resamples)
	}

	return fractions{
		Primary:  stat.StdDev(samples[0], nil),
		Compound: stat.StdDev(samples[1], nil),
		Other:    stat.StdDev(samples[2], nil),
		Excreted: stat.StdDev(samples[3], nil),
	}, nil
}
