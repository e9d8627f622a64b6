// Package export serializes analysis results to CSV for downstream
// persistence and plotting collaborators.
//
// Three tables are produced: per-individual fraction estimates, per-model
// fit summaries, and observed-versus-predicted biomarker pairs (the input
// for calibration scatter plots). Row order is deterministic (sorted by
// individual ID) so repeated runs diff cleanly. Output can be streamed
// through any compress.Codec for large cohorts.
package export
