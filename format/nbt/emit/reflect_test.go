package emit

import (
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/value"
)

type Position struct {
	X, Y, Z int32
}

type Meta struct {
	Version int32 `nbt:"version"`
}

type player struct {
	Meta
	Name      string            `nbt:"name"`
	Health    float32           `nbt:"health"`
	OnGround  bool              `nbt:"on_ground"`
	Pos       Position          `nbt:"pos"`
	Inventory []string          `nbt:"inventory,omitempty"`
	Scores    map[string]int16  `nbt:"scores"`
	Skin      []byte            `nbt:"skin"`
	Ids       value.IntArray    `nbt:"ids"`
	Extra     value.Value       `nbt:"extra,omitempty"`
	Ignored   string            `nbt:"-"`
	secret    string
	Nick      *string           `nbt:"nick,omitempty"`
	Tags      map[uint8]string  `nbt:"tags"`
}

func TestReflectStruct(t *testing.T) {
	p := player{
		Meta:     Meta{Version: 3},
		Name:     "steve",
		Health:   20,
		OnGround: true,
		Pos:      Position{X: 1, Y: 64, Z: -1},
		Scores:   map[string]int16{"b": 2, "a": 1},
		Skin:     []byte{0xFF, 0x01},
		Ids:      value.IntArray{5},
		Ignored:  "x",
		secret:   "y",
		Tags:     map[uint8]string{7: "seven"},
	}
	v, err := ToValue(Reflect(&p))
	require.NoError(t, err)

	c := v.(*value.Compound)
	require.Equal(t, []string{"version", "name", "health", "on_ground", "pos", "scores", "skin", "ids", "tags"}, c.Keys())

	name, _ := c.Get("name")
	require.Equal(t, value.String("steve"), name)
	onGround, _ := c.Get("on_ground")
	require.True(t, onGround.(value.Byte).IsBool())
	skin, _ := c.Get("skin")
	require.Equal(t, value.ByteArray{-1, 1}, skin)
	pos, _ := c.Get("pos")
	require.Equal(t, []string{"X", "Y", "Z"}, pos.(*value.Compound).Keys())
	scores, _ := c.Get("scores")
	require.Equal(t, []string{"a", "b"}, scores.(*value.Compound).Keys())
	tags, _ := c.Get("tags")
	seven, _ := tags.(*value.Compound).Get("7")
	require.Equal(t, value.String("seven"), seven)
	ids, _ := c.Get("ids")
	require.Equal(t, value.IntArray{5}, ids)
}

func TestReflectScalars(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want value.Value
	}{
		{"bool", true, value.Bool(true)},
		{"int8", int8(-1), value.Int8(-1)},
		{"int16", int16(2), value.Short(2)},
		{"int32", int32(3), value.Int(3)},
		{"int64", int64(4), value.Long(4)},
		{"int", 5, value.Long(5)},
		{"float32", float32(1.5), value.Float(1.5)},
		{"float64", 2.5, value.Double(2.5)},
		{"string", "s", value.String("s")},
		{"byte array", [2]byte{1, 2}, value.ByteArray{1, 2}},
		{"pointer", func() interface{} { i := int32(9); return &i }(), value.Int(9)},
		{"value", value.Long(1), value.Long(1)},
		{"nil byte array value", value.ByteArray(nil), value.ByteArray{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ToValue(Reflect(tt.in))
			require.NoError(t, err)
			require.True(t, value.Equal(tt.want, v), "got %#v", v)
		})
	}
}

type dimension int

func (d dimension) MarshalText() ([]byte, error) {
	switch d {
	case 0:
		return []byte("overworld"), nil
	case -1:
		return []byte("nether"), nil
	}
	return nil, errors.Str("unknown dimension")
}

func TestReflectTextMarshaler(t *testing.T) {
	type player struct {
		Dim  dimension  `nbt:"dim"`
		Prev *dimension `nbt:"prev,omitempty"`
	}
	nether := dimension(-1)
	v, err := ToValue(Reflect(player{Dim: 0, Prev: &nether}))
	require.NoError(t, err)
	want := value.NewCompound()
	want.Set("dim", value.String("overworld"))
	want.Set("prev", value.String("nether"))
	require.True(t, value.Equal(want, v), "%v", v)

	_, err = ToValue(Reflect(player{Dim: 7}))
	e := requireCategory(t, err, nbterr.Custom)
	requirePath(t, e, "/dim")
}

func TestReflectLists(t *testing.T) {
	v, err := ToValue(Reflect([][]int16{{1, 2}, {}}))
	require.NoError(t, err)
	l := v.(*value.List)
	require.Equal(t, tag.List, l.Elem())
	require.Equal(t, tag.Short, l.Get(0).(*value.List).Elem())
	require.Equal(t, tag.End, l.Get(1).(*value.List).Elem())

	_, err = ToValue(Reflect([]interface{}{int32(1), "two"}))
	requireCategory(t, err, nbterr.InvalidInput)
}

func TestReflectUnsupported(t *testing.T) {
	var nilPtr *Position
	tests := []struct {
		name string
		in   interface{}
		msg  string
	}{
		{"uint", uint32(1), "NBT does not support unsigned integer values"},
		{"nil", nil, "NBT does not support nil values"},
		{"nil pointer", nilPtr, "NBT does not support nil values"},
		{"complex", complex(1, 2), "NBT does not support complex128 values"},
		{"chan", make(chan int), "NBT does not support chan values"},
		{"float key", map[float64]int32{1: 1}, "NBT does not support double keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToValue(Reflect(tt.in))
			e := requireCategory(t, err, nbterr.InvalidInput)
			require.Equal(t, tt.msg, e.Message())
		})
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	inner := value.NewCompound()
	inner.Set("longs", value.LongArray{1, 2})
	inner.Set("empty", value.NewList())
	c := value.NewCompound()
	c.Set("inner", inner)
	c.Set("list", mustList(t, value.Double(1), value.Double(2)))
	c.Set("flag", value.Bool(false))

	v, err := ToValue(Value(c))
	require.NoError(t, err)
	require.True(t, value.Equal(c, v))
	require.Equal(t, c.Keys(), v.(*value.Compound).Keys())

	flag, _ := v.(*value.Compound).Get("flag")
	require.True(t, flag.(value.Byte).IsBool())

	b := NewValueBuilder()
	require.Nil(t, b.Value())
}
