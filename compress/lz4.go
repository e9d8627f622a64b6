package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Codec compresses with the LZ4 frame format.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// Type returns TypeLZ4.
func (LZ4Codec) Type() Type { return TypeLZ4 }

// Extension returns ".lz4".
func (LZ4Codec) Extension() string { return ".lz4" }

// WrapWriter wraps w with an LZ4 frame writer.
func (LZ4Codec) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

// WrapReader wraps r with an LZ4 frame reader.
func (LZ4Codec) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
