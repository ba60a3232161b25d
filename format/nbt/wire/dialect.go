// Package wire implements the primitive encodings of the three NBT wire dialects: fixed-width big-endian (Java
// edition files), fixed-width little-endian (Bedrock edition files) and the little-endian varint dialect of the
// Bedrock network protocol.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

const (
	// MaxShortStringLen is the string length capacity of the fixed-width dialects.
	MaxShortStringLen = 65535
	// MaxLen is the sequence length capacity of all dialects and the string length capacity of the varint dialect.
	MaxLen = 2147483647
)

// Reader is the input of the decoding functions.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Dialect encodes and decodes the primitives of one wire dialect. Tag ids and Byte payloads are a single raw byte in
// every dialect. Encoding errors and decoding errors are *nbterr.Error values: capacity violations on encode are
// InvalidInput, malformed input is InvalidData, short input is UnexpectedEof and reader or writer failures are Io.
//
// Dialects are stateless and safe for concurrent use.
type Dialect interface {
	Name() string
	MaxStringLen() int
	MaxSeqLen() int

	EncodeTag(w io.Writer, t tag.Tag) error
	EncodeByte(w io.Writer, v int8) error
	EncodeShort(w io.Writer, v int16) error
	EncodeInt(w io.Writer, v int32) error
	EncodeLong(w io.Writer, v int64) error
	EncodeFloat(w io.Writer, v float32) error
	EncodeDouble(w io.Writer, v float64) error
	EncodeStringLen(w io.Writer, n int) error
	EncodeSeqLen(w io.Writer, n int) error

	DecodeTag(r Reader) (tag.Tag, error)
	DecodeByte(r Reader) (int8, error)
	DecodeShort(r Reader) (int16, error)
	DecodeInt(r Reader) (int32, error)
	DecodeLong(r Reader) (int64, error)
	DecodeFloat(r Reader) (float32, error)
	DecodeDouble(r Reader) (float64, error)
	DecodeStringLen(r Reader) (int, error)
	DecodeSeqLen(r Reader) (int, error)
}

var (
	BigEndian    Dialect = &fixed{name: "be", order: binary.BigEndian}
	LittleEndian Dialect = &fixed{name: "le", order: binary.LittleEndian}
	Varint       Dialect = &varintDialect{fixed: fixed{name: "varint", order: binary.LittleEndian}}
)

// ByName returns the dialect with the given name: "be", "le" or "varint".
func ByName(name string) (Dialect, bool) {
	switch name {
	case "be", "java", "bigendian":
		return BigEndian, true
	case "le", "bedrock", "littleendian":
		return LittleEndian, true
	case "varint", "network":
		return Varint, true
	}
	return nil, false
}

func writeByte(w io.Writer, b byte) error {
	if bw, ok := w.(io.ByteWriter); ok {
		return nbterr.Wrap(bw.WriteByte(b))
	}
	_, err := w.Write([]byte{b})
	return nbterr.Wrap(err)
}

func readByte(r Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, nbterr.Wrap(err)
	}
	return b, nil
}

func checkEncodeLen(what string, n, max int) error {
	if n < 0 || n > max {
		return nbterr.Newf(nbterr.InvalidInput, "%s length %d exceeds maximum %d", what, n, max)
	}
	return nil
}

func checkDecodeLen(what string, n int64, max int) (int, error) {
	if n < 0 {
		return 0, nbterr.Newf(nbterr.InvalidData, "negative %s length %d", what, n)
	}
	if n > int64(max) {
		return 0, nbterr.Newf(nbterr.InvalidData, "%s length %d exceeds maximum %d", what, n, max)
	}
	return int(n), nil
}
