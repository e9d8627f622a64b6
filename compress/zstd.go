package compress

// ZstdCodec compresses with Zstandard, trading encode speed for the best
// ratio of the supported codecs. Preferred for archival of large cohort
// outputs.
//
// The implementation is selected at build time: pure Go by default,
// cgo-backed gozstd when built with cgo.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// Type returns TypeZstd.
func (ZstdCodec) Type() Type { return TypeZstd }

// Extension returns ".zst".
func (ZstdCodec) Extension() string { return ".zst" }
