package massbalance

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hydroscope/wellmix/cohort"
	"github.com/hydroscope/wellmix/internal/options"
	"github.com/hydroscope/wellmix/regression"
)

// BatchResult collects the outcome of a cohort-wide solve for one model.
//
// Estimates and Failures are keyed by individual ID; together they cover the
// whole cohort. A per-individual failure never removes other individuals'
// estimates.
type BatchResult struct {
	Model     regression.ModelKind
	Estimates map[string]*FractionEstimate
	Failures  map[string]error
}

// Invalid returns the IDs of estimates whose Valid flag is cleared, in
// unspecified order.
func (r *BatchResult) Invalid() []string {
	var ids []string
	for id, est := range r.Estimates {
		if !est.Valid {
			ids = append(ids, id)
		}
	}

	return ids
}

// SolveBatch solves every individual in the cohort against one fitted model
// using a bounded worker pool.
//
// Each worker reads only its own record plus the shared read-only model and
// params, so no locking is needed around the solve itself. Results are keyed
// by individual ID; nothing depends on completion order. Per-individual
// degenerate systems land in BatchResult.Failures and never abort the run;
// the returned error is non-nil only for invalid inputs or context
// cancellation.
//
// Example:
//
//	res, err := massbalance.SolveBatch(ctx, c, model, params,
//	    massbalance.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d solved, %d failed\n", len(res.Estimates), len(res.Failures))
func SolveBatch(ctx context.Context, c cohort.Cohort, model *regression.Model, params cohort.Params, opts ...SolveOption) (*BatchResult, error) {
	cfg := defaultSolveConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if model == nil || len(model.Coefficients) != model.Kind.NumCoefficients() {
		return nil, fmt.Errorf("invalid model for batch solve")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := &BatchResult{
		Model:     model.Kind,
		Estimates: make(map[string]*FractionEstimate, len(c)),
		Failures:  make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for id, rec := range c {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			est, err := solveRecord(rec, model, params, cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failures[id] = err
			} else {
				res.Estimates[id] = est
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return res, nil
}
