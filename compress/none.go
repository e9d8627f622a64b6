package compress

import "io"

// NoneCodec passes data through untouched.
type NoneCodec struct{}

var _ Codec = NoneCodec{}

// Type returns TypeNone.
func (NoneCodec) Type() Type { return TypeNone }

// Extension returns the empty suffix.
func (NoneCodec) Extension() string { return "" }

// WrapWriter returns w behind a no-op closer. Closing the wrapper does not
// close the underlying writer; the caller keeps ownership of it.
func (NoneCodec) WrapWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// WrapReader returns r behind a no-op closer.
func (NoneCodec) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
