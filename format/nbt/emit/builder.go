package emit

import (
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/value"
)

// maxPrealloc caps the capacity reserved for sequences from their announced length.
const maxPrealloc = 1024

// ValueBuilder is an Emitter that assembles the emitted events into a value tree.
type ValueBuilder struct {
	NopHooks
	stack  []*frame
	result value.Value
}

type frame struct {
	brand tag.Tag
	list  *value.List
	bytes value.ByteArray
	ints  value.IntArray
	longs value.LongArray
	comp  *value.Compound
	key   string
}

// NewValueBuilder creates a builder.
func NewValueBuilder() *ValueBuilder {
	return &ValueBuilder{}
}

// ToValue walks the value produced by p into a new value tree.
func ToValue(p Producer, opts ...Option) (value.Value, error) {
	b := NewValueBuilder()
	if err := Run(b, p, opts...); err != nil {
		return nil, err
	}
	return b.Value(), nil
}

// Value returns the completed value, or nil if the walk has not completed.
func (b *ValueBuilder) Value() value.Value {
	if len(b.stack) > 0 {
		return nil
	}
	return b.result
}

func (b *ValueBuilder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *ValueBuilder) put(v value.Value) error {
	f := b.top()
	if f == nil {
		b.result = v
		return nil
	}
	switch f.brand {
	case tag.Compound:
		f.comp.Set(f.key, v)
	case tag.List:
		if err := f.list.Push(v); err != nil {
			return nbterr.New(nbterr.InvalidInput, err.Error())
		}
	case tag.ByteArray:
		bv, ok := v.(value.Byte)
		if !ok {
			return nbterr.Newf(nbterr.InvalidInput, "byte array element must be Byte, found %s", v.Tag())
		}
		f.bytes = append(f.bytes, bv.Int8())
	case tag.IntArray:
		iv, ok := v.(value.Int)
		if !ok {
			return nbterr.Newf(nbterr.InvalidInput, "int array element must be Int, found %s", v.Tag())
		}
		f.ints = append(f.ints, int32(iv))
	case tag.LongArray:
		lv, ok := v.(value.Long)
		if !ok {
			return nbterr.Newf(nbterr.InvalidInput, "long array element must be Long, found %s", v.Tag())
		}
		f.longs = append(f.longs, int64(lv))
	}
	return nil
}

func (b *ValueBuilder) EmitBool(v bool) error      { return b.put(value.Bool(v)) }
func (b *ValueBuilder) EmitByte(v int8) error      { return b.put(value.Int8(v)) }
func (b *ValueBuilder) EmitShort(v int16) error    { return b.put(value.Short(v)) }
func (b *ValueBuilder) EmitInt(v int32) error      { return b.put(value.Int(v)) }
func (b *ValueBuilder) EmitLong(v int64) error     { return b.put(value.Long(v)) }
func (b *ValueBuilder) EmitFloat(v float32) error  { return b.put(value.Float(v)) }
func (b *ValueBuilder) EmitDouble(v float64) error { return b.put(value.Double(v)) }
func (b *ValueBuilder) EmitString(v string) error  { return b.put(value.String(v)) }

func (b *ValueBuilder) BeginSeq(kind SeqKind, n int) error {
	if n > maxPrealloc {
		n = maxPrealloc
	}
	f := &frame{brand: kind.Brand}
	switch kind.Brand {
	case tag.List:
		f.list = value.ListOf(kind.Elem)
	case tag.ByteArray:
		f.bytes = make(value.ByteArray, 0, n)
	case tag.IntArray:
		f.ints = make(value.IntArray, 0, n)
	case tag.LongArray:
		f.longs = make(value.LongArray, 0, n)
	default:
		return nbterr.Newf(nbterr.InvalidInput, "invalid sequence kind %s", kind.Brand)
	}
	b.stack = append(b.stack, f)
	return nil
}

func (b *ValueBuilder) EndSeq() error {
	f := b.pop()
	switch f.brand {
	case tag.List:
		return b.put(f.list)
	case tag.ByteArray:
		return b.put(f.bytes)
	case tag.IntArray:
		return b.put(f.ints)
	}
	return b.put(f.longs)
}

func (b *ValueBuilder) BeginMap() error {
	b.stack = append(b.stack, &frame{brand: tag.Compound, comp: value.NewCompound()})
	return nil
}

func (b *ValueBuilder) EmitKey(key string) error {
	b.top().key = key
	return nil
}

func (b *ValueBuilder) EndMap() error {
	return b.put(b.pop().comp)
}

func (b *ValueBuilder) pop() *frame {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	return f
}
