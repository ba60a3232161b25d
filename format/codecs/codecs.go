// Package codecs provides streaming codecs for NBT documents in the three wire dialects, plus JSON and CBOR export
// codecs, all with optional self-describing multicodec headers.
package codecs

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/eluv-io/log-go"

	"github.com/eluv-io/nbt-go/format/nbt"
	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
)

var (
	BigEndianCodec    = NbtCodec(wire.BigEndian, "")
	LittleEndianCodec = NbtCodec(wire.LittleEndian, "")
	VarintCodec       = NbtCodec(wire.Varint, "", nbt.OptListRoot())
	JsonCodec         = makeJsonCodec()
	CborCodec         = makeCborCodec()

	BigEndianMultiCodecPath    = "/nbt/be"
	LittleEndianMultiCodecPath = "/nbt/le"
	VarintMultiCodecPath       = "/nbt/varint"
	JsonMultiCodecPath         = "/json"
	CborMultiCodecPath         = "/cbor"

	BigEndianMultiCodec    = NewMultiCodec(BigEndianCodec, BigEndianMultiCodecPath)
	LittleEndianMultiCodec = NewMultiCodec(LittleEndianCodec, LittleEndianMultiCodecPath)
	VarintMultiCodec       = NewMultiCodec(VarintCodec, VarintMultiCodecPath)
	JsonMultiCodec         = NewMultiCodec(JsonCodec, JsonMultiCodecPath)
	CborMultiCodec         = NewMultiCodec(CborCodec, CborMultiCodecPath)

	// NbtMuxCodec encodes big-endian NBT and decodes NBT in any dialect.
	NbtMuxCodec = NewNbtMuxCodec()
)

// NamedDecoder is a decoder of NBT documents that also reports the root name. Decoders of NbtCodec, of multicodecs
// wrapping it and of MuxCodec implement it.
type NamedDecoder interface {
	Decoder
	DecodeNamed() (string, value.Value, error)
}

// NewNbtMuxCodec returns a MuxCodec for NBT documents in all three dialects, encoding big-endian. The options apply
// to every dialect; list roots are always accepted in the varint dialect.
func NewNbtMuxCodec(opts ...nbt.Option) *MuxCodec {
	varintOpts := append([]nbt.Option{nbt.OptListRoot()}, opts...)
	return NewMuxCodec(
		NewMultiCodec(NbtCodec(wire.BigEndian, "", opts...), BigEndianMultiCodecPath),
		NewMultiCodec(NbtCodec(wire.LittleEndian, "", opts...), LittleEndianMultiCodecPath),
		NewMultiCodec(NbtCodec(wire.Varint, "", varintOpts...), VarintMultiCodecPath),
	)
}

// DialectOf returns the NBT dialect identified by the given multicodec path.
func DialectOf(path string) (wire.Dialect, bool) {
	switch path {
	case BigEndianMultiCodecPath:
		return wire.BigEndian, true
	case LittleEndianMultiCodecPath:
		return wire.LittleEndian, true
	case VarintMultiCodecPath:
		return wire.Varint, true
	}
	return nil, false
}

// NbtCodec returns a codec for NBT documents in dialect d with the given root name. Encoders accept value.Value
// trees and Go values, decoders decode into a *value.Value or a Go value (see nbt.Decoder).
func NbtCodec(d wire.Dialect, name string, opts ...nbt.Option) Codec {
	return NewCodec(
		func(w io.Writer) Encoder {
			return &nbtEncoder{enc: nbt.NewEncoder(w, d, opts...), name: name}
		},
		func(r io.Reader) Decoder {
			return nbt.NewDecoder(r, d, opts...)
		},
	)
}

// NbtMultiCodec returns the multicodec of the given dialect.
func NbtMultiCodec(d wire.Dialect) MultiCodec {
	switch d {
	case wire.LittleEndian:
		return LittleEndianMultiCodec
	case wire.Varint:
		return VarintMultiCodec
	}
	return BigEndianMultiCodec
}

type nbtEncoder struct {
	enc  *nbt.Encoder
	name string
}

func (e *nbtEncoder) Encode(obj interface{}) error {
	return e.enc.EncodeNamed(e.name, obj)
}

////////////////////////////////////////////////////////////////////////////////

// exportEncoder converts value trees to plain Go values before encoding them.
type exportEncoder struct {
	enc Encoder
}

func (e *exportEncoder) Encode(obj interface{}) error {
	if v, ok := obj.(value.Value); ok {
		obj = value.ToInterface(v)
	}
	return e.enc.Encode(obj)
}

func makeJsonCodec() Codec {
	return NewCodec(
		func(w io.Writer) Encoder {
			return &exportEncoder{enc: json.NewEncoder(w)}
		},
		func(r io.Reader) Decoder {
			return json.NewDecoder(r)
		},
	)
}

func makeCborCodec() Codec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		log.Fatal("failed to create cbor encoder mode", err)
	}

	dec, err := cbor.DecOptions{
		DefaultMapType:   reflect.TypeOf((map[string]interface{})(nil)),
		MaxArrayElements: 1024 * 1024, // github.com/fxamacker/cbor/v2 default is 128 * 1024
		MaxMapPairs:      1024 * 1024, // github.com/fxamacker/cbor/v2 default is 128 * 1024
		MaxNestedLevels:  512,         // matches the default NBT depth limit
	}.DecMode()
	if err != nil {
		log.Fatal("failed to create cbor decoder mode", err)
	}

	return NewCodec(
		func(w io.Writer) Encoder {
			return &exportEncoder{enc: enc.NewEncoder(w)}
		},
		func(r io.Reader) Decoder {
			return dec.NewDecoder(r)
		})
}
