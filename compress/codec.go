package compress

import (
	"fmt"
	"io"
	"strings"
)

// Type identifies a compression codec by name.
type Type string

const (
	TypeNone Type = "none"
	TypeS2   Type = "s2"
	TypeLZ4  Type = "lz4"
	TypeZstd Type = "zstd"
)

// String returns the codec name.
func (t Type) String() string {
	return string(t)
}

// TypeFromString returns the Type for a name (case-insensitive).
// The second return value reports whether the name was recognized.
func TypeFromString(name string) (Type, bool) {
	switch Type(strings.ToLower(name)) {
	case TypeNone:
		return TypeNone, true
	case TypeS2:
		return TypeS2, true
	case TypeLZ4:
		return TypeLZ4, true
	case TypeZstd:
		return TypeZstd, true
	default:
		return "", false
	}
}

// Codec wraps writers and readers with a compression stream.
//
// Implementations are stateless values; the returned wrappers own any
// per-stream state. WrapWriter's result must be closed to flush the stream
// frame, even for codecs that buffer nothing.
type Codec interface {
	// Type returns the codec identifier.
	Type() Type
	// Extension returns the filename suffix for the codec, "" for none.
	Extension() string
	// WrapWriter wraps w with a compressing stream.
	WrapWriter(w io.Writer) (io.WriteCloser, error)
	// WrapReader wraps r with the matching decompressing stream.
	WrapReader(r io.Reader) (io.ReadCloser, error)
}

// New creates the Codec for a compression type.
func New(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return NoneCodec{}, nil
	case TypeS2:
		return S2Codec{}, nil
	case TypeLZ4:
		return LZ4Codec{}, nil
	case TypeZstd:
		return ZstdCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown compression type %q", t)
	}
}
