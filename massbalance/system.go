package massbalance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/regression"
)

// fractions is the raw solution of one mass-balance system.
type fractions struct {
	Primary  float64
	Compound float64
	Other    float64
	Excreted float64
}

// inputs bundles everything one solve depends on, flattened so the
// propagation code can perturb any single quantity.
//
// Theta layout: the model's p coefficients first, then the ten scalar
// inputs in the order defined by the idx* helpers below. The well counts
// are structural (integer) quantities and carry no uncertainty, so they
// live outside theta.
type inputs struct {
	Kind  regression.ModelKind
	Theta []float64
	// NumCompound and NumOther are the individual's well counts per pool.
	NumCompound int
	NumOther    int
}

// Offsets of the scalar inputs after the p coefficients.
const (
	offBiomarker = iota
	offPrimary
	offCompound
	offOther
	offWaterIntake
	offFoodArsenic
	offBeverageFrac
	offCookingFrac
	offMetabolicLoss
	offBodyRetention
	numScalarInputs
)

// newInputs flattens a record, model and parameter set into a theta vector.
func newInputs(rec *cohort.Record, model *regression.Model, params cohort.Params) inputs {
	p := len(model.Coefficients)
	theta := make([]float64, p+numScalarInputs)
	copy(theta, model.Coefficients)

	theta[p+offBiomarker] = rec.Biomarker
	theta[p+offPrimary] = rec.PrimaryWell
	theta[p+offCompound] = rec.CompoundMean()
	theta[p+offOther] = rec.OtherMean()
	theta[p+offWaterIntake] = params.WaterIntake.Value
	theta[p+offFoodArsenic] = params.FoodArsenic.Value
	theta[p+offBeverageFrac] = params.BeverageFraction.Value
	theta[p+offCookingFrac] = params.CookingFraction.Value
	theta[p+offMetabolicLoss] = params.MetabolicLoss.Value
	theta[p+offBodyRetention] = params.BodyRetention.Value

	return inputs{
		Kind:        model.Kind,
		Theta:       theta,
		NumCompound: len(rec.CompoundWells),
		NumOther:    len(rec.OtherWells),
	}
}

// scalarSigmas returns the one-sigma uncertainties of the scalar inputs in
// theta order. Coefficient uncertainty is carried separately as the full
// covariance block.
func scalarSigmas(params cohort.Params) []float64 {
	s := make([]float64, numScalarInputs)
	s[offBiomarker] = params.BiomarkerSigma
	s[offPrimary] = params.ConcentrationSigma
	s[offCompound] = params.ConcentrationSigma
	s[offOther] = params.ConcentrationSigma
	s[offWaterIntake] = params.WaterIntake.Sigma
	s[offFoodArsenic] = params.FoodArsenic.Sigma
	s[offBeverageFrac] = params.BeverageFraction.Sigma
	s[offCookingFrac] = params.CookingFraction.Sigma
	s[offMetabolicLoss] = params.MetabolicLoss.Sigma
	s[offBodyRetention] = params.BodyRetention.Sigma

	return s
}

// solveSystem assembles and solves the 3×3 mass-balance system for one
// input vector.
//
// Rows: balance [Cp Cc Co]·f = E, closure [1 1 1]·f = 1, and the
// model-dependent structure row. Degeneracy (aliased sources, vanishing
// calibration slope, or condition number above the threshold) is reported
// as ErrDegenerateSystem.
func solveSystem(in inputs, condThreshold, aliasTol float64) (fractions, error) {
	p := in.Kind.NumCoefficients()
	beta := in.Theta[:p]
	u := in.Theta[p+offBiomarker]
	cp := in.Theta[p+offPrimary]
	cc := in.Theta[p+offCompound]
	co := in.Theta[p+offOther]
	q := in.Theta[p+offWaterIntake]
	mf := in.Theta[p+offFoodArsenic]
	ff := in.Theta[p+offBeverageFrac]
	fcw := in.Theta[p+offCookingFrac]
	md := in.Theta[p+offMetabolicLoss]
	mb := in.Theta[p+offBodyRetention]

	slope := beta[1]
	totalSlope := slope
	if in.Kind == regression.ModelHousehold {
		totalSlope += beta[2]
	}
	if slope == 0 || totalSlope == 0 {
		return fractions{}, fmt.Errorf("%w: calibration slope vanishes", ErrDegenerateSystem)
	}

	wellFrac := 1 - ff - fcw
	if wellFrac <= 0 || q <= 0 {
		return fractions{}, fmt.Errorf("%w: parameters leave no well-water intake", ErrDegenerateSystem)
	}

	// Identifiability: identical compound and study-area concentrations make
	// the two sources indistinguishable in the balance row.
	if in.NumCompound > 0 && in.NumOther > 0 {
		scale := math.Max(1, math.Max(math.Abs(cc), math.Abs(co)))
		if math.Abs(cc-co) <= aliasTol*scale {
			return fractions{}, fmt.Errorf("%w: compound and study-area sources aliased at concentration %.6g", ErrDegenerateSystem, cc)
		}
	}

	// Implied well-water exposure concentration.
	e := ((u-beta[0])/totalSlope - mf/q) / wellFrac

	structure := structureRow(in, beta, cp, cc)

	a := mat.NewDense(3, 3, []float64{
		cp, cc, co,
		1, 1, 1,
		structure[0], structure[1], structure[2],
	})
	b := mat.NewVecDense(3, []float64{e, 1, 0})

	if cond := mat.Cond(a, 2); math.IsInf(cond, 1) || cond > condThreshold {
		return fractions{}, fmt.Errorf("%w: system condition number %.3g exceeds %.3g", ErrDegenerateSystem, cond, condThreshold)
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return fractions{}, fmt.Errorf("%w: %v", ErrDegenerateSystem, err)
	}

	fp := x.AtVec(0)

	return fractions{
		Primary:  fp,
		Compound: x.AtVec(1),
		Other:    x.AtVec(2),
		Excreted: (1 - md - mb) * fp / slope,
	}, nil
}

// structureRow returns the model-dependent third equation.
//
// Household: pathway contributions in the ratio of the fitted slopes,
// β2·Cp·f_p − β1·Cc·f_c = 0, with the compound fraction pinned to zero when
// the individual has no compound pathway. Distributed: non-primary volume
// split across
// pools in proportion to well counts (uniform access); with no non-primary
// wells at all, both pool fractions are pinned to zero.
func structureRow(in inputs, beta []float64, cp, cc float64) [3]float64 {
	if in.Kind == regression.ModelHousehold {
		if in.NumCompound == 0 || cc == 0 {
			// No compound pathway to match against; pin its fraction.
			return [3]float64{0, 1, 0}
		}

		return [3]float64{beta[2] * cp, -beta[1] * cc, 0}
	}

	if in.NumCompound == 0 && in.NumOther == 0 {
		return [3]float64{0, 1, 1}
	}

	return [3]float64{0, float64(in.NumOther), -float64(in.NumCompound)}
}
