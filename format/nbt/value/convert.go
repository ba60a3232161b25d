package value

// ToInterface converts v to plain Go values: Byte to bool or int8 depending on its origin, numeric kinds to the
// matching sized Go type, arrays to slices, lists to []interface{} and compounds to map[string]interface{}. The
// result is suitable for generic encoders and for map-based struct decoding.
func ToInterface(v Value) interface{} {
	switch t := v.(type) {
	case Byte:
		if t.isBool {
			return t.Bool()
		}
		return t.n
	case Short:
		return int16(t)
	case Int:
		return int32(t)
	case Long:
		return int64(t)
	case Float:
		return float32(t)
	case Double:
		return float64(t)
	case String:
		return string(t)
	case ByteArray:
		return []int8(append(ByteArray(nil), t...))
	case IntArray:
		return []int32(append(IntArray(nil), t...))
	case LongArray:
		return []int64(append(LongArray(nil), t...))
	case *List:
		res := make([]interface{}, len(t.items))
		for i, item := range t.items {
			res[i] = ToInterface(item)
		}
		return res
	case *Compound:
		res := make(map[string]interface{}, t.Len())
		t.Range(func(key string, item Value) bool {
			res[key] = ToInterface(item)
			return true
		})
		return res
	}
	return nil
}
