package massbalance

import "errors"

// ErrDegenerateSystem reports a per-individual solve whose linear system is
// numerically singular or whose sources are aliased (e.g. compound and
// study-area concentrations identical, making the split unidentifiable).
// It is recoverable at the batch level: the individual is skipped and
// reported, never aborting the cohort run.
var ErrDegenerateSystem = errors.New("degenerate mass-balance system")
