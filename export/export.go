package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/massbalance"
	"github.com/hydroscope/wellmix/regression"
)

// estimateHeader is the column layout of the per-individual estimates table.
var estimateHeader = []string{
	"id", "model", "method",
	"f_primary", "f_primary_se",
	"f_compound", "f_compound_se",
	"f_other", "f_other_se",
	"excreted", "excreted_se",
	"valid", "warnings",
}

// WriteEstimates writes the successful estimates of a batch result as CSV,
// one row per individual in sorted-ID order. Warnings are joined with "; "
// in the final column. Failures are not part of this table; see
// WriteFailures.
func WriteEstimates(w io.Writer, res *massbalance.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(estimateHeader); err != nil {
		return fmt.Errorf("failed to write estimates header: %w", err)
	}

	for _, id := range sortedKeys(res.Estimates) {
		est := res.Estimates[id]
		row := []string{
			est.ID,
			est.Model.String(),
			est.Method.String(),
			formatFloat(est.Primary.Est), formatFloat(est.Primary.SE),
			formatFloat(est.Compound.Est), formatFloat(est.Compound.SE),
			formatFloat(est.Other.Est), formatFloat(est.Other.SE),
			formatFloat(est.Excreted.Est), formatFloat(est.Excreted.SE),
			strconv.FormatBool(est.Valid),
			strings.Join(est.Warnings, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write estimate row for %s: %w", id, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteFailures writes the per-individual failures of a batch result as CSV
// in sorted-ID order, so skipped individuals stay visible next to the
// estimates table.
func WriteFailures(w io.Writer, res *massbalance.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "error"}); err != nil {
		return fmt.Errorf("failed to write failures header: %w", err)
	}

	for _, id := range sortedKeys(res.Failures) {
		if err := cw.Write([]string{id, res.Failures[id].Error()}); err != nil {
			return fmt.Errorf("failed to write failure row for %s: %w", id, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteModelSummary writes a fitted model as field/value/sigma rows: the fit
// statistics first, then one row per coefficient with its standard error.
func WriteModelSummary(w io.Writer, model *regression.Model) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "value", "sigma"}); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	rows := [][]string{
		{"model", model.Kind.String(), ""},
		{"n", strconv.Itoa(model.N), ""},
		{"df", strconv.Itoa(model.DF), ""},
		{"r_squared", formatFloat(model.RSquared), ""},
		{"r_squared_adj", formatFloat(model.RSquaredAdj), ""},
		{"rmse", formatFloat(model.RMSE), ""},
		{"residual_variance", formatFloat(model.ResidualVariance), ""},
		{"condition_number", formatFloat(model.Cond), ""},
	}

	se := model.StdErrors()
	for i, name := range coefficientNames(model.Kind) {
		rows = append(rows, []string{name, formatFloat(model.Coefficients[i]), formatFloat(se[i])})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row %q: %w", row[0], err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteObservedPredicted writes one row per individual with the primary-well
// concentration, the observed biomarker level, and the model's fitted value.
// This is the table the plotting collaborator draws.
func WriteObservedPredicted(w io.Writer, c cohort.Cohort, model *regression.Model) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "primary_well", "observed", "predicted"}); err != nil {
		return fmt.Errorf("failed to write observed/predicted header: %w", err)
	}

	for _, id := range c.IDs() {
		rec := c[id]
		row := []string{
			id,
			formatFloat(rec.PrimaryWell),
			formatFloat(rec.Biomarker),
			formatFloat(model.Predict(rec)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write observed/predicted row for %s: %w", id, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func coefficientNames(kind regression.ModelKind) []string {
	if kind == regression.ModelHousehold {
		return []string{"intercept", "slope_primary", "slope_compound"}
	}

	return []string{"intercept", "slope_primary"}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
