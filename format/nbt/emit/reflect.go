package emit

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/value"
)

var (
	producerType = reflect.TypeOf((*Producer)(nil)).Elem()
	valueType    = reflect.TypeOf((*value.Value)(nil)).Elem()
	textType     = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Reflect returns a producer for an arbitrary Go value:
//   - bool, int8, int16, int32 and int64 produce Byte, Short, Int and Long; int produces Long
//   - float32 and float64 produce Float and Double, string produces String
//   - []byte and [N]byte produce ByteArray, other slices and arrays produce List
//   - maps produce Compound with entries sorted by key; string, bool and integer keys are supported
//   - structs produce Compound from their exported fields, named and controlled by `nbt:"name,omitempty"` tags; a
//     tag of "-" skips the field and untagged embedded structs are flattened
//   - pointers and interfaces are followed; value.Value and Producer implementations are used directly
//   - other encoding.TextMarshaler implementations produce String
//
// Unsigned integers other than bytes, nil pointers and the remaining kinds are rejected with InvalidInput.
func Reflect(v interface{}) Producer {
	if p, ok := v.(Producer); ok {
		return p
	}
	if vv, ok := v.(value.Value); ok {
		return Value(vv)
	}
	return reflectProducer{rv: reflect.ValueOf(v)}
}

type reflectProducer struct {
	rv reflect.Value
}

func (p reflectProducer) Produce(s Serializer) error {
	rv := p.rv
	for {
		if !rv.IsValid() {
			return nbterr.Unsupported("nil", "values")
		}
		if rv.CanInterface() && rv.Type().Implements(producerType) && !isNilPtr(rv) {
			return rv.Interface().(Producer).Produce(s)
		}
		if rv.CanInterface() && rv.Type().Implements(valueType) && !isNilPtr(rv) {
			return Value(rv.Interface().(value.Value)).Produce(s)
		}
		if rv.CanInterface() && rv.Type().Implements(textType) && !isNilPtr(rv) {
			txt, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return err
			}
			return s.String(string(txt))
		}
		if rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface {
			break
		}
		if rv.IsNil() {
			return nbterr.Unsupported("nil", "values")
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return s.Bool(rv.Bool())
	case reflect.Int8:
		return s.Byte(int8(rv.Int()))
	case reflect.Int16:
		return s.Short(int16(rv.Int()))
	case reflect.Int32:
		return s.Int(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return s.Long(rv.Int())
	case reflect.Float32:
		return s.Float(float32(rv.Float()))
	case reflect.Float64:
		return s.Double(rv.Float())
	case reflect.String:
		return s.String(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return produceBytes(s, rv)
		}
		return produceList(s, rv)
	case reflect.Map:
		return produceMap(s, rv)
	case reflect.Struct:
		return produceStruct(s, rv)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return nbterr.Unsupported("unsigned integer", "values")
	}
	return nbterr.Unsupported(rv.Kind().String(), "values")
}

func isNilPtr(rv reflect.Value) bool {
	return (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil()
}

func produceBytes(s Serializer, rv reflect.Value) error {
	seq, err := s.Seq(tag.ByteArray, rv.Len())
	if err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err = seq.Element(int8Elem(int8(rv.Index(i).Uint()))); err != nil {
			return err
		}
	}
	return seq.End()
}

func produceList(s Serializer, rv reflect.Value) error {
	seq, err := s.Seq(tag.List, rv.Len())
	if err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err = seq.Element(reflectProducer{rv: rv.Index(i)}); err != nil {
			return err
		}
	}
	return seq.End()
}

func produceMap(s Serializer, rv reflect.Value) error {
	type entry struct {
		name string
		key  reflect.Value
		val  reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		entries = append(entries, entry{name: fmt.Sprint(k.Interface()), key: k, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	m, err := s.Map()
	if err != nil {
		return err
	}
	for _, en := range entries {
		switch en.key.Kind() {
		case reflect.String:
			err = m.Entry(en.key.String(), reflectProducer{rv: en.val})
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			err = m.Entry(strconv.FormatUint(en.key.Uint(), 10), reflectProducer{rv: en.val})
		default:
			err = m.EntryKey(reflectProducer{rv: en.key}, reflectProducer{rv: en.val})
		}
		if err != nil {
			return err
		}
	}
	return m.End()
}

func produceStruct(s Serializer, rv reflect.Value) error {
	m, err := s.Map()
	if err != nil {
		return err
	}
	for _, f := range cachedFields(rv.Type()) {
		fv, ok := fieldByIndex(rv, f.index)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		if err = m.Entry(f.name, reflectProducer{rv: fv}); err != nil {
			return err
		}
	}
	return m.End()
}

////////////////////////////////////////////////////////////////////////////////

type field struct {
	name      string
	index     []int
	omitEmpty bool
}

var fieldCache sync.Map // map[reflect.Type][]field

func cachedFields(t reflect.Type) []field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]field)
	}
	f, _ := fieldCache.LoadOrStore(t, typeFields(t, nil))
	return f.([]field)
}

// typeFields lists the encoded fields of struct type t in declaration order, flattening untagged embedded structs.
func typeFields(t reflect.Type, index []int) []field {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tagVal := sf.Tag.Get("nbt")
		if tagVal == "-" {
			continue
		}
		idx := append(append([]int(nil), index...), i)
		name, opts, _ := strings.Cut(tagVal, ",")

		ft := sf.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if sf.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			fields = append(fields, typeFields(ft, idx)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, field{
			name:      name,
			index:     idx,
			omitEmpty: strings.Contains(","+opts+",", ",omitempty,"),
		})
	}
	return fields
}

// fieldByIndex is reflect.Value.FieldByIndex that reports false instead of panicking on nil embedded pointers.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
