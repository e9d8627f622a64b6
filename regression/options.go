package regression

import (
	"fmt"

	"github.com/hydroscope/wellmix/internal/options"
)

// defaultCondThreshold bounds the design-matrix condition number accepted by
// Fit. Beyond it the normal-equations inverse loses all significant digits
// in float64, so the fit is treated as singular.
const defaultCondThreshold = 1e12

// FitConfig holds configuration for a regression fit.
type FitConfig struct {
	// CondThreshold is the maximum accepted design condition number.
	CondThreshold float64
}

func defaultFitConfig() FitConfig {
	return FitConfig{CondThreshold: defaultCondThreshold}
}

// FitOption is a functional option for FitConfig.
type FitOption = options.Option[*FitConfig]

// WithCondThreshold overrides the design condition-number threshold above
// which Fit reports ErrSingularDesign.
func WithCondThreshold(threshold float64) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if threshold <= 0 {
			return fmt.Errorf("condition threshold must be positive, got %v", threshold)
		}
		cfg.CondThreshold = threshold

		return nil
	})
}
