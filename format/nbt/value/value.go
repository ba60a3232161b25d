// Package value is the in-memory model of NBT documents: a tagged union of scalars, packed arrays, homogeneous lists
// and insertion-ordered compounds.
package value

import (
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// Value is any NBT payload. The End tag is never a value.
type Value interface {
	Tag() tag.Tag
}

type (
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []int8
	IntArray  []int32
	LongArray []int64
)

var (
	_ Value = Byte{}
	_ Value = Short(0)
	_ Value = Int(0)
	_ Value = Long(0)
	_ Value = Float(0)
	_ Value = Double(0)
	_ Value = String("")
	_ Value = ByteArray(nil)
	_ Value = IntArray(nil)
	_ Value = LongArray(nil)
	_ Value = (*List)(nil)
	_ Value = (*Compound)(nil)
)

func (Short) Tag() tag.Tag     { return tag.Short }
func (Int) Tag() tag.Tag       { return tag.Int }
func (Long) Tag() tag.Tag      { return tag.Long }
func (Float) Tag() tag.Tag     { return tag.Float }
func (Double) Tag() tag.Tag    { return tag.Double }
func (String) Tag() tag.Tag    { return tag.String }
func (ByteArray) Tag() tag.Tag { return tag.ByteArray }
func (IntArray) Tag() tag.Tag  { return tag.IntArray }
func (LongArray) Tag() tag.Tag { return tag.LongArray }

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch t := v.(type) {
	case ByteArray:
		return append(ByteArray(nil), t...)
	case IntArray:
		return append(IntArray(nil), t...)
	case LongArray:
		return append(LongArray(nil), t...)
	case *List:
		return t.Clone()
	case *Compound:
		return t.Clone()
	}
	return v
}
