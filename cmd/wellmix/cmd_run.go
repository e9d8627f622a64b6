package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/compress"
	"github.com/hydroscope/wellmix/export"
	"github.com/hydroscope/wellmix/massbalance"
	"github.com/hydroscope/wellmix/regression"
)

var runFlags struct {
	input     string
	params    string
	group     string
	out       string
	model     string
	method    string
	workers   int
	resamples int
	codec     string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fit the calibration models and solve source fractions for a cohort",
	Long: `Run the full attribution pipeline: load a cohort CSV, subset it to a
study group, fit the selected regression model(s), solve the per-individual
mass balance, and write estimate/summary/prediction tables to the output
directory.

Usage:
  wellmix run --input cohort.csv --out output_data/
  wellmix run --input cohort.csv --params params.yaml --group women \
      --model household --method resample --codec zstd`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.input, "input", "i", "", "Cohort CSV path (required)")
	f.StringVarP(&runFlags.params, "params", "p", "", "YAML parameter file (default: published parameter set)")
	f.StringVarP(&runFlags.group, "group", "g", string(cohort.GroupAll), "Study group: "+groupNames())
	f.StringVarP(&runFlags.out, "out", "o", "output_data", "Output directory")
	f.StringVarP(&runFlags.model, "model", "m", "both", "Model: distributed, household or both")
	f.StringVar(&runFlags.method, "method", "delta", "Uncertainty propagation: delta or resample")
	f.IntVarP(&runFlags.workers, "workers", "w", 0, "Concurrent solves (0 = one per CPU)")
	f.IntVar(&runFlags.resamples, "resamples", 0, "Resampling draws (0 = solver default)")
	f.StringVarP(&runFlags.codec, "codec", "c", "none", "Output compression: none, s2, lz4 or zstd")

	_ = runCmd.MarkFlagRequired("input")
}

func runRun(cmd *cobra.Command, _ []string) error {
	codecType, ok := compress.TypeFromString(runFlags.codec)
	if !ok {
		return fmt.Errorf("unknown codec %q (available: none, s2, lz4, zstd)", runFlags.codec)
	}
	codec, err := compress.New(codecType)
	if err != nil {
		return err
	}

	method, ok := massbalance.MethodFromString(runFlags.method)
	if !ok {
		return fmt.Errorf("unknown method %q (available: delta, resample)", runFlags.method)
	}

	kinds, err := modelKinds(runFlags.model)
	if err != nil {
		return err
	}

	c, err := cohort.LoadCSV(runFlags.input)
	if err != nil {
		return err
	}

	params := cohort.DefaultParams()
	if runFlags.params != "" {
		if params, err = cohort.LoadParams(runFlags.params); err != nil {
			return err
		}
	}

	group := cohort.Group(runFlags.group)
	sub, err := c.Subset(group)
	if err != nil {
		return err
	}
	if len(sub) == 0 {
		return fmt.Errorf("group %q selects no individuals from %s", group, runFlags.input)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cohort: %d individuals, group %s: %d\n", len(c), group, len(sub))

	opts := []massbalance.SolveOption{
		massbalance.WithMethod(method),
		massbalance.WithWorkers(runFlags.workers),
	}
	if runFlags.resamples > 0 {
		opts = append(opts, massbalance.WithResamples(runFlags.resamples))
	}

	for _, kind := range kinds {
		if err := runModel(cmd, sub, kind, params, codec, group, opts); err != nil {
			return err
		}
	}

	return nil
}

func runModel(cmd *cobra.Command, c cohort.Cohort, kind regression.ModelKind, params cohort.Params,
	codec compress.Codec, group cohort.Group, opts []massbalance.SolveOption,
) error {
	model, err := regression.Fit(c, kind)
	if err != nil {
		return fmt.Errorf("%s model: %w", kind, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (n=%d, R²=%.3f, RMSE=%.2f)\n",
		kind, model.Formula, model.N, model.RSquared, model.RMSE)

	res, err := massbalance.SolveBatch(cmd.Context(), c, model, params, opts...)
	if err != nil {
		return fmt.Errorf("%s model: %w", kind, err)
	}

	suffix := fmt.Sprintf("%s_%s", group, kind)
	tables := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{"estimates_" + suffix, func(w io.Writer) error { return export.WriteEstimates(w, res) }},
		{"model_summary_" + suffix, func(w io.Writer) error { return export.WriteModelSummary(w, model) }},
		{"observed_predicted_" + suffix, func(w io.Writer) error { return export.WriteObservedPredicted(w, c, model) }},
	}
	if len(res.Failures) > 0 {
		tables = append(tables, struct {
			name  string
			write func(w io.Writer) error
		}{"failures_" + suffix, func(w io.Writer) error { return export.WriteFailures(w, res) }})
	}

	for _, table := range tables {
		path := filepath.Join(runFlags.out, table.name+".csv")
		if err := writeTable(path, codec, table.write); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d estimates (%d flagged invalid), %d failures\n",
		kind, len(res.Estimates), len(res.Invalid()), len(res.Failures))
	for _, id := range sortedFailureIDs(res) {
		fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %s: %v\n", id, res.Failures[id])
	}

	return nil
}

func writeTable(path string, codec compress.Codec, write func(w io.Writer) error) error {
	w, err := export.Create(path, codec)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	return w.Close()
}

func modelKinds(name string) ([]regression.ModelKind, error) {
	if strings.EqualFold(name, "both") {
		return []regression.ModelKind{regression.ModelDistributed, regression.ModelHousehold}, nil
	}

	kind, ok := regression.KindFromString(name)
	if !ok {
		return nil, fmt.Errorf("unknown model %q (available: distributed, household, both)", name)
	}

	return []regression.ModelKind{kind}, nil
}

func groupNames() string {
	names := make([]string, 0, len(cohort.Groups()))
	for _, g := range cohort.Groups() {
		names = append(names, string(g))
	}

	return strings.Join(names, ", ")
}

func sortedFailureIDs(res *massbalance.BatchResult) []string {
	ids := make([]string, 0, len(res.Failures))
	for id := range res.Failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
