//go:build !cgo

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// WrapWriter wraps w with a pure-Go Zstandard encoder.
func (ZstdCodec) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

// WrapReader wraps r with a pure-Go Zstandard decoder.
func (ZstdCodec) WrapReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return dec.IOReadCloser(), nil
}
