//go:build cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// WrapWriter wraps w with the cgo-backed Zstandard encoder.
func (ZstdCodec) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return gozstd.NewWriter(w), nil
}

// WrapReader wraps r with the cgo-backed Zstandard decoder.
func (ZstdCodec) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return &zstdReadCloser{Reader: gozstd.NewReader(r)}, nil
}

// zstdReadCloser releases the reader's C-allocated state on Close.
type zstdReadCloser struct {
	*gozstd.Reader
}

func (r *zstdReadCloser) Close() error {
	r.Release()

	return nil
}
