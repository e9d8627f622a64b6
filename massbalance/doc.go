// Package massbalance solves the per-individual water-source attribution
// problem and propagates statistical uncertainty into the resulting
// fractions.
//
// For one individual and one fitted calibration model, Solve combines the
// individual's measurements, the fitted coefficients, and the fixed
// physiological parameters into a 3×3 linear system whose unknowns are the
// drinking-water fractions (f_primary, f_compound, f_other):
//
//	balance:   f_p·Cp + f_c·Cc + f_o·Co = E
//	closure:   f_p + f_c + f_o = 1
//	structure: model-dependent third relation (see below)
//
// E is the implied well-water exposure concentration, obtained by inverting
// the fitted calibration at the individual's biomarker level and removing
// the food-arsenic and non-well-beverage contributions:
//
//	E = ((u − β0)/s − Mf/Q) / (1 − ff − fc)
//
// where s is the total water slope (β1 for the distributed model, β1+β2 for
// the household model). The structure row closes the system: the household
// model matches pathway contributions to the ratio of its two fitted slopes
// (β2·Cp·f_p = β1·Cc·f_c), while the distributed model splits non-primary
// volume across compound and study-area wells in proportion to well counts,
// its uniform-access assumption.
//
// Solutions outside the physical simplex are reported raw together with a
// cleared Valid flag and warnings; they are never clamped, since a negative
// fraction is a diagnostic that the individual's data contradict the model.
//
// # Uncertainty propagation
//
// The default is the delta method: the solve is treated as a function of the
// fitted coefficients (with their full covariance) and of the measured and
// configured inputs (with independent variances); a central-difference
// gradient through the full solve gives Var ≈ gᵀ·Σ·g. This is fast and
// deterministic, and the solve is linear enough away from degeneracy for
// first-order propagation to be accurate.
//
// WithMethod(MethodResample) switches to resampling: coefficients are drawn
// from a multivariate normal at the fitted covariance, parameters from
// independent normals, the system is re-solved per draw, and the empirical
// spread becomes the standard error. It is slower but robust near poorly
// conditioned systems where the gradient approximation degrades. Each
// individual's draw stream is seeded from a hash of their ID, so batch
// results do not depend on worker scheduling.
//
// # Failure semantics
//
// A solve that hits a numerically singular or aliased system fails with
// ErrDegenerateSystem for that individual only. SolveBatch isolates such
// failures into the batch report and always completes the remaining cohort.
package massbalance
