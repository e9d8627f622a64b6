package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Codec compresses with S2, the Snappy-compatible format tuned for
// throughput. Good default when result files are consumed immediately by
// another tool rather than archived.
type S2Codec struct{}

var _ Codec = S2Codec{}

// Type returns TypeS2.
func (S2Codec) Type() Type { return TypeS2 }

// Extension returns ".s2".
func (S2Codec) Extension() string { return ".s2" }

// WrapWriter wraps w with an S2 stream writer.
func (S2Codec) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}

// WrapReader wraps r with an S2 stream reader.
func (S2Codec) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
