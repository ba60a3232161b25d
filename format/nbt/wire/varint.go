package wire

import (
	"io"
	"math"

	"github.com/eluv-io/errors-go"
	"github.com/multiformats/go-varint"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/util/byteutil"
)

// varintDialect is the Bedrock network dialect: shorts and floats are fixed-width little-endian, ints and longs are
// zigzag encoded unsigned LEB128, string lengths are signed LEB128 and sequence lengths zigzag LEB128.
type varintDialect struct {
	fixed
}

func (d *varintDialect) MaxStringLen() int {
	return MaxLen
}

func (d *varintDialect) EncodeInt(w io.Writer, v int32) error {
	return write(w, varint.ToUvarint(uint64(byteutil.ZigZag32(v))))
}

func (d *varintDialect) EncodeLong(w io.Writer, v int64) error {
	return write(w, varint.ToUvarint(byteutil.ZigZag64(v)))
}

func (d *varintDialect) EncodeStringLen(w io.Writer, n int) error {
	if err := checkEncodeLen("string", n, MaxLen); err != nil {
		return err
	}
	var b [byteutil.MaxVarintLen32]byte
	return write(w, byteutil.AppendSleb128(b[:0], int64(n)))
}

func (d *varintDialect) EncodeSeqLen(w io.Writer, n int) error {
	if err := checkEncodeLen("sequence", n, MaxLen); err != nil {
		return err
	}
	return d.EncodeInt(w, int32(n))
}

func (d *varintDialect) DecodeInt(r Reader) (int32, error) {
	u, err := byteutil.ReadUleb128(r, byteutil.MaxVarintLen32)
	if err != nil {
		return 0, varintErr(err)
	}
	if u > math.MaxUint32 {
		return 0, nbterr.Newf(nbterr.InvalidData, "varint %d overflows 32 bits", u)
	}
	return byteutil.UnZigZag32(uint32(u)), nil
}

func (d *varintDialect) DecodeLong(r Reader) (int64, error) {
	u, err := byteutil.ReadUleb128(r, byteutil.MaxVarintLen64)
	if err != nil {
		return 0, varintErr(err)
	}
	return byteutil.UnZigZag64(u), nil
}

func (d *varintDialect) DecodeStringLen(r Reader) (int, error) {
	n, err := byteutil.ReadSleb128(r, byteutil.MaxVarintLen32)
	if err != nil {
		return 0, varintErr(err)
	}
	return checkDecodeLen("string", n, MaxLen)
}

func (d *varintDialect) DecodeSeqLen(r Reader) (int, error) {
	n, err := d.DecodeInt(r)
	if err != nil {
		return 0, err
	}
	return checkDecodeLen("sequence", int64(n), MaxLen)
}

func varintErr(err error) error {
	if errors.IsKind(errors.K.Invalid, err) {
		return nbterr.New(nbterr.InvalidData, "malformed varint")
	}
	return nbterr.Wrap(err)
}
