package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/compress"
	"github.com/hydroscope/wellmix/massbalance"
	"github.com/hydroscope/wellmix/regression"
)

func testBatchResult() *massbalance.BatchResult {
	return &massbalance.BatchResult{
		Model: regression.ModelHousehold,
		Estimates: map[string]*massbalance.FractionEstimate{
			"ind-002": {
				ID:       "ind-002",
				Model:    regression.ModelHousehold,
				Method:   massbalance.MethodDelta,
				Primary:  massbalance.Value{Est: 0.7, SE: 0.05},
				Compound: massbalance.Value{Est: 0.2, SE: 0.03},
				Other:    massbalance.Value{Est: 0.1, SE: 0.02},
				Excreted: massbalance.Value{Est: 0.33, SE: 0.04},
				Valid:    true,
			},
			"ind-001": {
				ID:       "ind-001",
				Model:    regression.ModelHousehold,
				Method:   massbalance.MethodDelta,
				Primary:  massbalance.Value{Est: 1.2, SE: 0.4},
				Compound: massbalance.Value{Est: -0.1, SE: 0.2},
				Other:    massbalance.Value{Est: -0.1, SE: 0.2},
				Excreted: massbalance.Value{Est: 0.5, SE: 0.1},
				Valid:    false,
				Warnings: []string{"f_primary outside [0, 1]", "f_compound outside [0, 1]"},
			},
		},
		Failures: map[string]error{
			"ind-003": errors.New("individual ind-003: degenerate mass-balance system"),
		},
	}
}

func testModel() *regression.Model {
	cov := mat.NewSymDense(3, []float64{
		0.25, 0.01, 0.00,
		0.01, 0.04, 0.00,
		0.00, 0.00, 0.09,
	})

	return &regression.Model{
		Kind:             regression.ModelHousehold,
		Coefficients:     []float64{5, 2, 1},
		Covariance:       cov,
		ResidualVariance: 1.5,
		DF:               97,
		N:                100,
		RSquared:         0.91,
		RSquaredAdj:      0.908,
		RMSE:             1.22,
		Cond:             34.5,
	}
}

func readAllCSV(t *testing.T, r io.Reader) [][]string {
	t.Helper()

	rows, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestWriteEstimates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEstimates(&buf, testBatchResult()))

	rows := readAllCSV(t, &buf)
	require.Len(t, rows, 3)
	require.Equal(t, estimateHeader, rows[0])

	// Sorted by ID regardless of map iteration order.
	require.Equal(t, "ind-001", rows[1][0])
	require.Equal(t, "ind-002", rows[2][0])

	require.Equal(t, "household", rows[2][1])
	require.Equal(t, "delta", rows[2][2])
	require.Equal(t, "0.7", rows[2][3])
	require.Equal(t, "true", rows[2][11])
	require.Empty(t, rows[2][12])

	require.Equal(t, "false", rows[1][11])
	require.Equal(t, "f_primary outside [0, 1]; f_compound outside [0, 1]", rows[1][12])
}

func TestWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFailures(&buf, testBatchResult()))

	rows := readAllCSV(t, &buf)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"id", "error"}, rows[0])
	require.Equal(t, "ind-003", rows[1][0])
	require.Contains(t, rows[1][1], "degenerate")
}

func TestWriteModelSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteModelSummary(&buf, testModel()))

	rows := readAllCSV(t, &buf)

	byField := make(map[string][]string, len(rows))
	for _, row := range rows[1:] {
		byField[row[0]] = row
	}

	require.Equal(t, "household", byField["model"][1])
	require.Equal(t, "100", byField["n"][1])
	require.Equal(t, "97", byField["df"][1])
	require.Equal(t, "0.91", byField["r_squared"][1])

	require.Equal(t, "5", byField["intercept"][1])
	require.Equal(t, "0.5", byField["intercept"][2])
	require.Equal(t, "2", byField["slope_primary"][1])
	require.Equal(t, "0.2", byField["slope_primary"][2])
	require.Equal(t, "1", byField["slope_compound"][1])
	require.Equal(t, "0.3", byField["slope_compound"][2])
}

func TestWriteObservedPredicted(t *testing.T) {
	c := cohort.Cohort{
		"ind-002": {ID: "ind-002", Biomarker: 30, PrimaryWell: 10, CompoundWells: map[string]float64{"w1": 5}},
		"ind-001": {ID: "ind-001", Biomarker: 12, PrimaryWell: 2, CompoundWells: map[string]float64{"w1": 3}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteObservedPredicted(&buf, c, testModel()))

	rows := readAllCSV(t, &buf)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"id", "primary_well", "observed", "predicted"}, rows[0])

	// 5 + 2*2 + 1*3 = 12
	require.Equal(t, []string{"ind-001", "2", "12", "12"}, rows[1])
	// 5 + 2*10 + 1*5 = 30
	require.Equal(t, []string{"ind-002", "10", "30", "30"}, rows[2])
}

func TestCreateOpenRoundTrip(t *testing.T) {
	for _, typ := range []compress.Type{compress.TypeNone, compress.TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := compress.New(typ)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "out", "estimates.csv")

			w, err := Create(path, codec)
			require.NoError(t, err)
			require.NoError(t, WriteEstimates(w, testBatchResult()))
			require.NoError(t, w.Close())

			r, err := Open(path, codec)
			require.NoError(t, err)

			rows := readAllCSV(t, r)
			require.NoError(t, r.Close())
			require.Len(t, rows, 3)
			require.Equal(t, "ind-001", rows[1][0])
		})
	}
}
