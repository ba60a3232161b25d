package compression_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/nbt-go/format/nbt"
	"github.com/eluv-io/nbt-go/format/nbt/compression"
	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
)

func document(t *testing.T) []byte {
	c := value.NewCompound()
	c.Set("name", value.String("abc"))
	c.Set("data", value.ByteArray(make([]int8, 4096)))
	bts, err := nbt.MarshalBigEndian(c, "")
	require.NoError(t, err)
	return bts
}

func TestRoundTrip(t *testing.T) {
	doc := document(t)
	for _, typ := range []compression.Type{compression.None, compression.GZip, compression.Zlib, compression.LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, err := compression.NewWriter(buf, typ)
			require.NoError(t, err)
			_, err = w.Write(doc)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if typ != compression.None {
				require.Less(t, buf.Len(), len(doc))
			}
			require.Equal(t, typ, compression.Detect(buf.Bytes()))

			detected, r, err := compression.DetectReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.Equal(t, typ, detected)
			res, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			require.Equal(t, doc, res)

			v, err := nbt.Decode(decompressed(t, buf.Bytes(), typ), wire.BigEndian)
			require.NoError(t, err)
			name, _ := v.(*value.Compound).Get("name")
			require.Equal(t, value.String("abc"), name)
		})
	}
}

func decompressed(t *testing.T, data []byte, typ compression.Type) io.Reader {
	r, err := compression.NewReader(bytes.NewReader(data), typ)
	require.NoError(t, err)
	return r
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		peek []byte
		want compression.Type
	}{
		{"empty", nil, compression.None},
		{"compound", []byte{0x0A, 0x00, 0x00}, compression.None},
		{"gzip", []byte{0x1F, 0x8B, 0x08, 0x00}, compression.GZip},
		{"zlib default", []byte{0x78, 0x9C}, compression.Zlib},
		{"zlib best", []byte{0x78, 0xDA}, compression.Zlib},
		{"zlib bad check", []byte{0x78, 0x9D}, compression.None},
		{"lz4", []byte{0x04, 0x22, 0x4D, 0x18}, compression.LZ4},
		{"short lz4", []byte{0x04, 0x22}, compression.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, compression.Detect(tt.peek))
		})
	}
}

func TestParse(t *testing.T) {
	for _, typ := range []compression.Type{compression.None, compression.GZip, compression.Zlib, compression.LZ4} {
		res, err := compression.Parse(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, res)
	}
	_, err := compression.Parse("zip")
	require.True(t, errors.IsKind(errors.K.Invalid, err))
	require.Equal(t, "unknown", compression.Type(9).String())
	require.False(t, compression.Type(0).Valid())
}

func TestInvalid(t *testing.T) {
	_, err := compression.NewReader(bytes.NewReader([]byte{0x0A, 0x00}), compression.GZip)
	require.True(t, errors.IsKind(errors.K.Invalid, err))

	_, err = compression.NewWriter(&bytes.Buffer{}, compression.Type(7))
	require.True(t, errors.IsKind(errors.K.Invalid, err))

	typ, r, err := compression.DetectReader(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, compression.None, typ)
	res, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, res)
}
