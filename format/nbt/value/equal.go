package value

import (
	"math"
)

// Equal reports whether a and b are the same value. Bytes compare numerically regardless of origin, floats compare
// by bit pattern, compounds compare without regard to entry order and empty lists are equal whatever their element
// kind.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Tag() != b.Tag() {
		return false
	}
	switch x := a.(type) {
	case Byte:
		return x.Equal(b.(Byte))
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		y := b.(ByteArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case IntArray:
		y := b.(IntArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case LongArray:
		y := b.(LongArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case *List:
		y := b.(*List)
		if x.Len() != y.Len() {
			return false
		}
		if x.Len() > 0 && x.elem != y.elem {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if x.Len() != y.Len() {
			return false
		}
		eq := true
		x.Range(func(key string, xv Value) bool {
			yv, ok := y.Get(key)
			eq = ok && Equal(xv, yv)
			return eq
		})
		return eq
	}
	return a == b
}
