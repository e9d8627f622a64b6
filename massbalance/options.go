package massbalance

import (
	"fmt"

	"github.com/hydroscope/wellmix/internal/options"
)

// Method selects the uncertainty propagation strategy.
type Method int

const (
	// MethodDelta is first-order (delta method) propagation: a numeric
	// gradient of the solve, contracted with the input covariance. Fast and
	// deterministic; the default.
	MethodDelta Method = iota
	// MethodResample re-solves the system under multivariate-normal
	// coefficient draws and independent parameter draws, reporting the
	// empirical spread. Slower, robust near poorly conditioned systems.
	MethodResample
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodDelta:
		return "delta"
	case MethodResample:
		return "resample"
	default:
		return "unknown"
	}
}

// MethodFromString returns the Method for a name; ok reports recognition.
func MethodFromString(name string) (Method, bool) {
	switch name {
	case "delta":
		return MethodDelta, true
	case "resample":
		return MethodResample, true
	default:
		return 0, false
	}
}

const (
	defaultResamples     = 1000
	defaultCondThreshold = 1e12
	defaultAliasTol      = 1e-9
	defaultSaneSE        = 1.0
	// ClosureTol is the tolerance within which solved fractions must sum
	// to one.
	ClosureTol = 1e-9
)

// SolveConfig holds configuration shared by Solve and SolveBatch.
type SolveConfig struct {
	// Method selects delta-method or resampling propagation.
	Method Method
	// Resamples is the number of draws used by MethodResample.
	Resamples int
	// CondThreshold is the maximum accepted condition number of the
	// per-individual system.
	CondThreshold float64
	// AliasTol is the relative tolerance at which compound and study-area
	// concentrations are considered identical, making the split
	// unidentifiable.
	AliasTol float64
	// SaneSE is the standard-error sanity threshold; larger SEs clear the
	// estimate's Valid flag.
	SaneSE float64
	// Workers bounds batch concurrency; 0 means one worker per CPU.
	Workers int
}

func defaultSolveConfig() SolveConfig {
	return SolveConfig{
		Method:        MethodDelta,
		Resamples:     defaultResamples,
		CondThreshold: defaultCondThreshold,
		AliasTol:      defaultAliasTol,
		SaneSE:        defaultSaneSE,
	}
}

// SolveOption is a functional option for SolveConfig.
type SolveOption = options.Option[*SolveConfig]

// WithMethod selects the uncertainty propagation method.
func WithMethod(m Method) SolveOption {
	return options.NoError(func(cfg *SolveConfig) {
		cfg.Method = m
	})
}

// WithResamples sets the number of resampling draws.
func WithResamples(n int) SolveOption {
	return options.New(func(cfg *SolveConfig) error {
		if n < 2 {
			return fmt.Errorf("resample count must be at least 2, got %d", n)
		}
		cfg.Resamples = n

		return nil
	})
}

// WithCondThreshold overrides the per-individual system condition-number
// threshold above which Solve reports ErrDegenerateSystem.
func WithCondThreshold(threshold float64) SolveOption {
	return options.New(func(cfg *SolveConfig) error {
		if threshold <= 0 {
			return fmt.Errorf("condition threshold must be positive, got %v", threshold)
		}
		cfg.CondThreshold = threshold

		return nil
	})
}

// WithSaneSE sets the standard-error sanity threshold for validity flagging.
func WithSaneSE(se float64) SolveOption {
	return options.New(func(cfg *SolveConfig) error {
		if se <= 0 {
			return fmt.Errorf("sanity threshold must be positive, got %v", se)
		}
		cfg.SaneSE = se

		return nil
	})
}

// WithWorkers bounds the number of concurrent per-individual solves in
// SolveBatch. Zero restores the default of one worker per CPU.
func WithWorkers(n int) SolveOption {
	return options.New(func(cfg *SolveConfig) error {
		if n < 0 {
			return fmt.Errorf("worker count must be non-negative, got %d", n)
		}
		cfg.Workers = n

		return nil
	})
}
