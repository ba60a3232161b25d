// Package codecutil decodes generic value trees into Go values.
package codecutil

import (
	"encoding"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DefaultTagName is the struct tag consulted by MapDecode unless another one is given.
const DefaultTagName = "nbt"

type MapUnmarshaler interface {
	UnmarshalMap(m map[string]interface{}) error
}

var mapUnmarshaler = reflect.TypeOf((*MapUnmarshaler)(nil)).Elem()
var textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// MapDecode decodes a generic source structure, as produced by value.ToInterface, into the destination object dst
// (usually a pointer to a struct value). Struct fields are matched by the given tag name, "nbt" by default.
//
// The implementation uses github.com/mitchellh/mapstructure with the following special decoding hooks:
//   - decodes with the 'UnmarshalMap(m map[string]interface{}) error' function if implemented by the destination
//     object/field
//   - decodes with the 'UnmarshalText(text []byte) error' function if the destination implements
//     encoding.TextUnmarshaler
//   - decodes byte arrays ([]int8) into []byte fields
//   - decodes bytes (int8) into bool fields, non-zero being true
func MapDecode(src interface{}, dst interface{}, tagName ...string) error {
	tn := DefaultTagName
	if len(tagName) > 0 && tagName[0] != "" {
		tn = tagName[0]
	}
	cfg := &mapstructure.DecoderConfig{
		TagName:    tn,
		Result:     dst,
		DecodeHook: decodeHook,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(src)
}

var byteSliceType = reflect.TypeOf([]byte(nil))

func decodeHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	switch dt := data.(type) {
	case map[string]interface{}:
		t, ptr := resolve(t)
		if ptr.Implements(mapUnmarshaler) {
			instance := reflect.New(t)

			ret := instance.Interface()
			err := ret.(MapUnmarshaler).UnmarshalMap(dt)
			if err != nil {
				return nil, err
			}
			return ret, nil
		}
	case string:
		t, ptr := resolve(t)
		if ptr.Implements(textUnmarshaler) {
			instance := reflect.New(t)

			ret := instance.Interface()
			err := ret.(encoding.TextUnmarshaler).UnmarshalText([]byte(dt))
			if err != nil {
				return nil, err
			}
			return ret, nil
		}
	case []int8:
		if t == byteSliceType {
			res := make([]byte, len(dt))
			for i, b := range dt {
				res[i] = byte(b)
			}
			return res, nil
		}
	case int8:
		if t.Kind() == reflect.Bool {
			return dt != 0, nil
		}
	}

	return data, nil
}

func resolve(t reflect.Type) (reflect.Type, reflect.Type) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	ptr := reflect.PointerTo(t)
	return t, ptr
}
