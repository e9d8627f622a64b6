package massbalance

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/regression"
)

func wellPosedRecord(id string, i int) *cohort.Record {
	primary := 50 + 3*float64(i)

	return &cohort.Record{
		ID:            id,
		Biomarker:     40 + 1.9*primary,
		PrimaryWell:   primary,
		CompoundWells: map[string]float64{"c1": 30 + float64(i%9)},
		OtherWells:    map[string]float64{"o1": 100 + float64(i%13)},
	}
}

func TestSolveBatchIsolatesDegenerateIndividuals(t *testing.T) {
	params := cohort.DefaultParams()
	model := fixedModel(regression.ModelDistributed, []float64{40, 1.9}, []float64{
		4.0, -0.02,
		-0.02, 0.001,
	})

	records := make([]*cohort.Record, 0, 100)
	for i := range 99 {
		records = append(records, wellPosedRecord(fmt.Sprintf("ind-%03d", i), i))
	}
	// One individual with compound and study-area concentrations identical.
	records = append(records, &cohort.Record{
		ID:            "degenerate",
		Biomarker:     200,
		PrimaryWell:   80,
		CompoundWells: map[string]float64{"c1": 70},
		OtherWells:    map[string]float64{"o1": 70},
	})

	c, err := cohort.New(records...)
	require.NoError(t, err)

	res, err := SolveBatch(context.Background(), c, model, params, WithWorkers(4))
	require.NoError(t, err, "one degenerate individual must not abort the batch")

	require.Len(t, res.Estimates, 99)
	require.Len(t, res.Failures, 1)
	require.ErrorIs(t, res.Failures["degenerate"], ErrDegenerateSystem)

	for id, est := range res.Estimates {
		require.Equal(t, id, est.ID)
		require.InDelta(t, 1.0, est.Sum(), 1e-9, "closure for %s", id)
	}
}

func TestSolveBatchDeterministicAcrossWorkerCounts(t *testing.T) {
	params := cohort.DefaultParams()
	model := fixedModel(regression.ModelDistributed, []float64{40, 1.9}, []float64{
		4.0, -0.02,
		-0.02, 0.001,
	})

	records := make([]*cohort.Record, 0, 40)
	for i := range 40 {
		records = append(records, wellPosedRecord(fmt.Sprintf("ind-%03d", i), i))
	}
	c, err := cohort.New(records...)
	require.NoError(t, err)

	serial, err := SolveBatch(context.Background(), c, model, params,
		WithWorkers(1), WithMethod(MethodResample), WithResamples(200))
	require.NoError(t, err)

	parallel, err := SolveBatch(context.Background(), c, model, params,
		WithWorkers(8), WithMethod(MethodResample), WithResamples(200))
	require.NoError(t, err)

	require.Equal(t, serial.Estimates, parallel.Estimates,
		"per-individual seeding must make results independent of scheduling")
}

func TestSolveBatchCanceledContext(t *testing.T) {
	params := cohort.DefaultParams()
	model := fixedModel(regression.ModelDistributed, []float64{40, 1.9}, nil)

	c, err := cohort.New(wellPosedRecord("solo", 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = SolveBatch(ctx, c, model, params)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolveBatchInvalidCohort(t *testing.T) {
	params := cohort.DefaultParams()
	model := fixedModel(regression.ModelDistributed, []float64{40, 1.9}, nil)

	c := cohort.Cohort{"bad": {ID: "bad", Biomarker: -1, PrimaryWell: 10}}
	_, err := SolveBatch(context.Background(), c, model, params)
	require.Error(t, err)
}

func TestBatchResultInvalid(t *testing.T) {
	res := &BatchResult{
		Estimates: map[string]*FractionEstimate{
			"ok":  {ID: "ok", Valid: true},
			"bad": {ID: "bad", Valid: false},
		},
	}
	require.Equal(t, []string{"bad"}, res.Invalid())
}
