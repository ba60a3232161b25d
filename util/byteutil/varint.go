// Package byteutil contains the variable-length integer helpers of the NBT varint dialect.
package byteutil

import (
	"io"

	"github.com/eluv-io/errors-go"
)

const (
	// MaxVarintLen32 is the maximum length of a LEB128 encoded 32-bit quantity.
	MaxVarintLen32 = 5
	// MaxVarintLen64 is the maximum length of a LEB128 encoded 64-bit quantity.
	MaxVarintLen64 = 10
)

// LenUvarInt returns the number of bytes needed to encode the given uint64 as
// varint.
func LenUvarInt(x uint64) int {
	i := 0
	for x >= 0x80 {
		x >>= 7
		i++
	}
	return i + 1
}

// ZigZag32 maps signed to unsigned integers so that values of small magnitude have small encodings: 0, -1, 1, -2 ...
// become 0, 1, 2, 3 ...
func ZigZag32(n int32) uint32 {
	return uint32(n<<1) ^ uint32(n>>31)
}

// UnZigZag32 is the inverse of ZigZag32.
func UnZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZag64 is the 64-bit variant of ZigZag32.
func ZigZag64(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// UnZigZag64 is the inverse of ZigZag64.
func UnZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// AppendSleb128 appends the signed LEB128 encoding of n to dst.
func AppendSleb128(dst []byte, n int64) []byte {
	for {
		b := byte(n & 0x7F)
		n >>= 7
		if (n == 0 && b&0x40 == 0) || (n == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// LenSleb128 returns the number of bytes needed to encode n as signed LEB128.
func LenSleb128(n int64) int {
	i := 1
	for {
		b := n & 0x7F
		n >>= 7
		if (n == 0 && b&0x40 == 0) || (n == -1 && b&0x40 != 0) {
			return i
		}
		i++
	}
}

// ReadSleb128 reads a signed LEB128 value of at most maxLen bytes. Input that ends before the terminating byte yields
// io.ErrUnexpectedEOF; an encoding longer than maxLen yields an error of kind Invalid.
func ReadSleb128(r io.ByteReader, maxLen int) (int64, error) {
	var res int64
	var shift uint
	for i := 0; i < maxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if shift < 64 {
			res |= int64(b&0x7F) << shift
		}
		shift += 7
		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				res |= -1 << shift
			}
			return res, nil
		}
	}
	return 0, errors.E("ReadSleb128", errors.K.Invalid, "reason", "varint too long", "max_len", maxLen)
}

// ReadUleb128 reads an unsigned LEB128 value of at most maxLen bytes with the same error conventions as
// ReadSleb128. Unlike encoding/binary it accepts non-minimal encodings and the full 64-bit range.
func ReadUleb128(r io.ByteReader, maxLen int) (uint64, error) {
	var res uint64
	var shift uint
	for i := 0; i < maxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if shift < 64 {
			res |= uint64(b&0x7F) << shift
		}
		shift += 7
		if b&0x80 == 0 {
			return res, nil
		}
	}
	return 0, errors.E("ReadUleb128", errors.K.Invalid, "reason", "varint too long", "max_len", maxLen)
}
