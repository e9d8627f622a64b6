// Package cohort defines the study data model shared by the regression and
// mass-balance packages: per-individual records, the ID-keyed cohort map,
// and the fixed physiological parameters with their uncertainties.
//
// The package holds data and validation only. Fitting and solving live in
// the regression and massbalance packages; file ingestion lives with the
// caller. All types are plain values with no hidden mutable state, which is
// what allows per-individual solves to run concurrently against a shared
// cohort.
package cohort
