// Package compress provides streaming compression codecs for cohort result
// files.
//
// Fraction estimates for large cohorts are written as CSV; the codecs here
// wrap the destination writer so the export layer can emit None, S2, LZ4 or
// Zstandard streams behind one interface. S2 and LZ4 favor speed, Zstd
// favors ratio for archival output, and None is the default for small runs.
//
// The Zstandard codec has two implementations selected at build time: the
// pure-Go encoder from klauspost/compress by default, and the cgo-backed
// gozstd bindings when built with cgo for long archival runs where encode
// throughput matters.
package compress
