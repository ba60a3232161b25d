package emit

import (
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/value"
)

// Value returns a producer for the given value tree.
func Value(v value.Value) Producer {
	return valueProducer{v: v}
}

type valueProducer struct {
	v value.Value
}

type (
	int8Elem  int8
	int32Elem int32
	int64Elem int64
)

func (e int8Elem) Produce(s Serializer) error  { return s.Byte(int8(e)) }
func (e int32Elem) Produce(s Serializer) error { return s.Int(int32(e)) }
func (e int64Elem) Produce(s Serializer) error { return s.Long(int64(e)) }

func (p valueProducer) Produce(s Serializer) error {
	switch t := p.v.(type) {
	case value.Byte:
		if t.IsBool() {
			return s.Bool(t.Bool())
		}
		return s.Byte(t.Int8())
	case value.Short:
		return s.Short(int16(t))
	case value.Int:
		return s.Int(int32(t))
	case value.Long:
		return s.Long(int64(t))
	case value.Float:
		return s.Float(float32(t))
	case value.Double:
		return s.Double(float64(t))
	case value.String:
		return s.String(string(t))
	case value.ByteArray:
		seq, err := s.Seq(tag.ByteArray, len(t))
		if err != nil {
			return err
		}
		for _, b := range t {
			if err = seq.Element(int8Elem(b)); err != nil {
				return err
			}
		}
		return seq.End()
	case value.IntArray:
		seq, err := s.Seq(tag.IntArray, len(t))
		if err != nil {
			return err
		}
		for _, n := range t {
			if err = seq.Element(int32Elem(n)); err != nil {
				return err
			}
		}
		return seq.End()
	case value.LongArray:
		seq, err := s.Seq(tag.LongArray, len(t))
		if err != nil {
			return err
		}
		for _, n := range t {
			if err = seq.Element(int64Elem(n)); err != nil {
				return err
			}
		}
		return seq.End()
	case *value.List:
		if t == nil {
			break
		}
		seq, err := s.Seq(tag.List, t.Len())
		if err != nil {
			return err
		}
		t.Range(func(_ int, item value.Value) bool {
			err = seq.Element(Value(item))
			return err == nil
		})
		if err != nil {
			return err
		}
		return seq.End()
	case *value.Compound:
		if t == nil {
			break
		}
		m, err := s.Map()
		if err != nil {
			return err
		}
		t.Range(func(key string, item value.Value) bool {
			err = m.Entry(key, Value(item))
			return err == nil
		})
		if err != nil {
			return err
		}
		return m.End()
	}
	return nbterr.Unsupported("nil", "values")
}
