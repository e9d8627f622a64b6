package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("id,f_primary,f_compound,f_other\nind-001,0.70,0.20,0.10\n", 500))

	for _, typ := range []Type{TypeNone, TypeS2, TypeLZ4, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := New(typ)
			require.NoError(t, err)
			require.Equal(t, typ, codec.Type())

			var buf bytes.Buffer
			w, err := codec.WrapWriter(&buf)
			require.NoError(t, err)

			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := codec.WrapReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			require.Equal(t, payload, got)

			if typ != TypeNone {
				require.Less(t, buf.Len(), len(payload), "repetitive CSV should shrink")
			}
		})
	}
}

func TestTypeFromString(t *testing.T) {
	typ, ok := TypeFromString("ZSTD")
	require.True(t, ok)
	require.Equal(t, TypeZstd, typ)

	_, ok = TypeFromString("gzip")
	require.False(t, ok)

	_, err := New(Type("gzip"))
	require.Error(t, err)
}

func TestExtensions(t *testing.T) {
	for typ, want := range map[Type]string{
		TypeNone: "",
		TypeS2:   ".s2",
		TypeLZ4:  ".lz4",
		TypeZstd: ".zst",
	} {
		codec, err := New(typ)
		require.NoError(t, err)
		require.Equal(t, want, codec.Extension())
	}
}
