package value

import (
	"strconv"

	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// Byte is the Byte payload. It remembers whether it was created from a boolean or from an integer; the origin only
// affects presentation, Equal and Compare look at the numeric value alone. The zero value is the integer 0.
type Byte struct {
	n      int8
	isBool bool
}

// Bool creates a Byte of boolean origin holding 1 or 0.
func Bool(b bool) Byte {
	if b {
		return Byte{n: 1, isBool: true}
	}
	return Byte{isBool: true}
}

// Int8 creates a Byte of integer origin.
func Int8(n int8) Byte {
	return Byte{n: n}
}

func (Byte) Tag() tag.Tag { return tag.Byte }

// Int8 returns the numeric value.
func (b Byte) Int8() int8 {
	return b.n
}

// Bool returns true if the numeric value is non-zero.
func (b Byte) Bool() bool {
	return b.n != 0
}

// IsBool returns true if the Byte was created from a boolean.
func (b Byte) IsBool() bool {
	return b.isBool
}

// Equal compares the numeric values of b and o.
func (b Byte) Equal(o Byte) bool {
	return b.n == o.n
}

// Compare returns -1, 0 or 1 depending on the numeric order of b and o.
func (b Byte) Compare(o Byte) int {
	switch {
	case b.n < o.n:
		return -1
	case b.n > o.n:
		return 1
	}
	return 0
}

func (b Byte) String() string {
	if b.isBool {
		return strconv.FormatBool(b.n != 0)
	}
	return strconv.Itoa(int(b.n))
}
