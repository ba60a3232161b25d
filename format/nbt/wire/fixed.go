package wire

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// fixed is a fixed-width dialect in the given byte order. String lengths are unsigned 16-bit, sequence lengths
// signed 32-bit.
type fixed struct {
	name  string
	order binary.ByteOrder
}

func (d *fixed) Name() string {
	return d.name
}

func (d *fixed) MaxStringLen() int {
	return MaxShortStringLen
}

func (d *fixed) MaxSeqLen() int {
	return MaxLen
}

func (d *fixed) EncodeTag(w io.Writer, t tag.Tag) error {
	return writeByte(w, byte(t))
}

func (d *fixed) EncodeByte(w io.Writer, v int8) error {
	return writeByte(w, byte(v))
}

func (d *fixed) EncodeShort(w io.Writer, v int16) error {
	var b [2]byte
	d.order.PutUint16(b[:], uint16(v))
	return write(w, b[:])
}

func (d *fixed) EncodeInt(w io.Writer, v int32) error {
	var b [4]byte
	d.order.PutUint32(b[:], uint32(v))
	return write(w, b[:])
}

func (d *fixed) EncodeLong(w io.Writer, v int64) error {
	var b [8]byte
	d.order.PutUint64(b[:], uint64(v))
	return write(w, b[:])
}

func (d *fixed) EncodeFloat(w io.Writer, v float32) error {
	var b [4]byte
	d.order.PutUint32(b[:], math.Float32bits(v))
	return write(w, b[:])
}

func (d *fixed) EncodeDouble(w io.Writer, v float64) error {
	var b [8]byte
	d.order.PutUint64(b[:], math.Float64bits(v))
	return write(w, b[:])
}

func (d *fixed) EncodeStringLen(w io.Writer, n int) error {
	if err := checkEncodeLen("string", n, MaxShortStringLen); err != nil {
		return err
	}
	var b [2]byte
	d.order.PutUint16(b[:], uint16(n))
	return write(w, b[:])
}

func (d *fixed) EncodeSeqLen(w io.Writer, n int) error {
	if err := checkEncodeLen("sequence", n, MaxLen); err != nil {
		return err
	}
	return d.EncodeInt(w, int32(n))
}

func (d *fixed) DecodeTag(r Reader) (tag.Tag, error) {
	b, err := readByte(r)
	return tag.Tag(b), err
}

func (d *fixed) DecodeByte(r Reader) (int8, error) {
	b, err := readByte(r)
	return int8(b), err
}

func (d *fixed) DecodeShort(r Reader) (int16, error) {
	var b [2]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}
	return int16(d.order.Uint16(b[:])), nil
}

func (d *fixed) DecodeInt(r Reader) (int32, error) {
	var b [4]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}
	return int32(d.order.Uint32(b[:])), nil
}

func (d *fixed) DecodeLong(r Reader) (int64, error) {
	var b [8]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}
	return int64(d.order.Uint64(b[:])), nil
}

func (d *fixed) DecodeFloat(r Reader) (float32, error) {
	var b [4]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(d.order.Uint32(b[:])), nil
}

func (d *fixed) DecodeDouble(r Reader) (float64, error) {
	var b [8]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(d.order.Uint64(b[:])), nil
}

func (d *fixed) DecodeStringLen(r Reader) (int, error) {
	var b [2]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}
	return int(d.order.Uint16(b[:])), nil
}

func (d *fixed) DecodeSeqLen(r Reader) (int, error) {
	n, err := d.DecodeInt(r)
	if err != nil {
		return 0, err
	}
	return checkDecodeLen("sequence", int64(n), MaxLen)
}

func write(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return nbterr.Wrap(err)
}

func read(r Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return nbterr.Wrap(err)
}
