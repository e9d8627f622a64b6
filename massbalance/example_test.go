package massbalance_test

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/massbalance"
	"github.com/hydroscope/wellmix/regression"
)

// ExampleSolve attributes one individual's drinking water across the three
// source categories using an already-fitted calibration model.
func ExampleSolve() {
	params := cohort.DefaultParams()
	params.WaterIntake.Sigma = 0
	params.FoodArsenic.Sigma = 0
	params.BeverageFraction.Sigma = 0
	params.CookingFraction.Sigma = 0
	params.MetabolicLoss.Sigma = 0
	params.BodyRetention.Sigma = 0

	// In production this comes from regression.Fit on the cohort.
	model := &regression.Model{
		Kind:         regression.ModelDistributed,
		Coefficients: []float64{5, 2},
		Covariance:   mat.NewSymDense(2, nil),
		N:            100,
		DF:           98,
	}

	cmix := 0.7*100 + 0.2*40 + 0.1*250
	biomarker := 5 + 2*(params.WellFraction()*cmix+
		params.FoodArsenic.Value/params.WaterIntake.Value)

	rec := &cohort.Record{
		ID:            "ind-001",
		Biomarker:     biomarker,
		PrimaryWell:   100,
		CompoundWells: map[string]float64{"c1": 30, "c2": 50},
		OtherWells:    map[string]float64{"o1": 250},
	}

	est, err := massbalance.Solve(rec, model, params)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("f_primary=%.3f f_compound=%.3f f_other=%.3f valid=%t\n",
		est.Primary.Est, est.Compound.Est, est.Other.Est, est.Valid)

	// Output:
	// f_primary=0.700 f_compound=0.200 f_other=0.100 valid=true
}
