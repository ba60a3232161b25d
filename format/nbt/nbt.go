// Package nbt encodes and decodes NBT documents in the three wire dialects of package wire. A document is a root tag
// (Compound, or List in the varint dialect when enabled), a root name string and the root payload.
//
// Values to encode are value.Value trees, emit.Producer implementations or plain Go values (see emit.Reflect).
// Decoding produces value.Value trees, or Go values through Unmarshal. All errors returned are *nbterr.Error values.
package nbt

import (
	"bytes"
	"io"

	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
)

// Encode writes v as a document named name in dialect d.
func Encode(w io.Writer, v interface{}, name string, d wire.Dialect, opts ...Option) error {
	return NewEncoder(w, d, opts...).EncodeNamed(name, v)
}

// Marshal returns the encoding of v as a document named name in dialect d.
func Marshal(v interface{}, name string, d wire.Dialect, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, v, name, d, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one document in dialect d and returns its root value.
func Decode(r io.Reader, d wire.Dialect, opts ...Option) (value.Value, error) {
	_, v, err := NewDecoder(r, d, opts...).DecodeNamed()
	return v, err
}

// DecodeNamed reads one document in dialect d and returns its root name and value.
func DecodeNamed(r io.Reader, d wire.Dialect, opts ...Option) (string, value.Value, error) {
	return NewDecoder(r, d, opts...).DecodeNamed()
}

// Unmarshal decodes the document in data into dst. See Decoder.Decode.
func Unmarshal(data []byte, d wire.Dialect, dst interface{}, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), d, opts...).Decode(dst)
}

func EncodeBigEndian(w io.Writer, v interface{}, name string) error {
	return Encode(w, v, name, wire.BigEndian)
}

func MarshalBigEndian(v interface{}, name string) ([]byte, error) {
	return Marshal(v, name, wire.BigEndian)
}

func DecodeBigEndian(r io.Reader) (value.Value, error) {
	return Decode(r, wire.BigEndian)
}

func EncodeLittleEndian(w io.Writer, v interface{}, name string) error {
	return Encode(w, v, name, wire.LittleEndian)
}

func MarshalLittleEndian(v interface{}, name string) ([]byte, error) {
	return Marshal(v, name, wire.LittleEndian)
}

func DecodeLittleEndian(r io.Reader) (value.Value, error) {
	return Decode(r, wire.LittleEndian)
}

// EncodeVarint writes v in the varint dialect. allowListRoot permits a List root.
func EncodeVarint(w io.Writer, v interface{}, name string, allowListRoot bool) error {
	return Encode(w, v, name, wire.Varint, varintOpts(allowListRoot)...)
}

// MarshalVarint returns the varint dialect encoding of v. allowListRoot permits a List root.
func MarshalVarint(v interface{}, name string, allowListRoot bool) ([]byte, error) {
	return Marshal(v, name, wire.Varint, varintOpts(allowListRoot)...)
}

// DecodeVarint reads a document in the varint dialect. Both Compound and List roots are accepted.
func DecodeVarint(r io.Reader) (value.Value, error) {
	return Decode(r, wire.Varint, OptListRoot())
}

func varintOpts(allowListRoot bool) []Option {
	if allowListRoot {
		return []Option{OptListRoot()}
	}
	return nil
}
