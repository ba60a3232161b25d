package snbt_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/snbt"
	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/util/ioutil"
)

func mustList(t *testing.T, values ...value.Value) *value.List {
	l, err := value.NewListFrom(values...)
	require.NoError(t, err)
	return l
}

func TestCompact(t *testing.T) {
	c := value.NewCompound()
	c.Set("b", value.Int8(1))
	c.Set("s", value.Short(2))
	c.Set("l", value.Long(3))
	c.Set("f", value.Float(1.5))
	c.Set("d", value.Double(-0.25))
	c.Set("t", value.Bool(true))
	c.Set("str", value.String("a\"b\\c\né😀"))
	c.Set("bytes", value.ByteArray{1, -1})
	c.Set("ints", value.IntArray{1, 2})
	c.Set("longs", value.LongArray{1})
	c.Set("list", mustList(t, value.Int(1), value.Int(2)))
	c.Set("empty", value.NewList())
	c.Set("with space", value.Int(0))
	c.Set("", value.Int(0))

	s, err := snbt.ToString(c)
	require.NoError(t, err)
	require.Equal(t,
		`{b:1b,s:2s,l:3L,f:1.5f,d:-0.25d,t:true,str:"a\"b\\c\n\u00e9\ud83d\ude00",`+
			`bytes:[B;1b,-1b],ints:[I;1,2],longs:[L;1L],list:[1,2],empty:[],"with space":0,"":0}`,
		s)
}

func TestPretty(t *testing.T) {
	c := value.NewCompound()
	c.Set("name", value.String("abc"))
	c.Set("list", mustList(t, value.Int(1), value.Int(2)))
	c.Set("empty", value.NewList())
	c.Set("arr", value.IntArray{1, 2})
	c.Set("nested", value.NewCompound())

	s, err := snbt.ToPrettyString(c)
	require.NoError(t, err)
	require.Equal(t, `{
  name: "abc",
  list: [
    1,
    2
  ],
  empty: [],
  arr: [I; 1, 2],
  nested: {}
}`, s)

	s, err = snbt.ToString(mustList(t, value.Short(7)), snbt.OptIndent("\t"))
	require.NoError(t, err)
	require.Equal(t, "[\n\t7s\n]", s)
}

func TestScalars(t *testing.T) {
	tests := []struct {
		v    interface{}
		want string
	}{
		{value.Int(5), "5"},
		{value.Bool(false), "false"},
		{value.Int8(-128), "-128b"},
		{value.Float(1), "1.0f"},
		{value.Float(0.1), "0.1f"},
		{value.Double(1e20), "1e+20d"},
		{value.Float(float32(math.Inf(1))), "Infinityf"},
		{value.Double(math.Inf(-1)), "-Infinityd"},
		{value.Double(math.NaN()), "NaNd"},
		{value.String("\x00\t\r\b\f"), `"\u0000\t\r\b\f"`},
		{"go string", `"go string"`},
		{int64(9), "9L"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s, err := snbt.ToString(tt.v)
			require.NoError(t, err)
			require.Equal(t, tt.want, s)
		})
	}
}

func TestQuoteKeys(t *testing.T) {
	c := value.NewCompound()
	c.Set("a", value.Int(1))
	c.Set("b.c-d_e+f", value.Int(2))

	s, err := snbt.ToString(c)
	require.NoError(t, err)
	require.Equal(t, `{a:1,b.c-d_e+f:2}`, s)

	s, err = snbt.ToString(c, snbt.OptQuoteKeys())
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b.c-d_e+f":2}`, s)
}

func TestGoValues(t *testing.T) {
	v := struct {
		ID    string  `nbt:"id"`
		Count int8    `nbt:"Count"`
		Tags  []int32 `nbt:"tags"`
	}{"stone", 3, []int32{1}}

	s, err := snbt.ToString(v)
	require.NoError(t, err)
	require.Equal(t, `{id:"stone",Count:3b,tags:[1]}`, s)
}

func TestErrors(t *testing.T) {
	c := value.NewCompound()
	c.Set("l", mustList(t, mustList(t, value.Int(1))))

	_, err := snbt.ToString(c, snbt.OptMaxDepth(2))
	var e *nbterr.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, nbterr.RecursionLimitExceeded, e.Category())

	err = snbt.Write(ioutil.NewFailingWriter(&bytes.Buffer{}, 3), c)
	require.True(t, errors.As(err, &e))
	require.Equal(t, nbterr.Io, e.Category())

	buf := &bytes.Buffer{}
	em := snbt.NewEmitter(buf)
	require.NoError(t, em.EmitLong(-1))
	require.Equal(t, "-1L", buf.String())
}

func TestQuoteKey(t *testing.T) {
	require.Equal(t, "Level", snbt.QuoteKey("Level"))
	require.Equal(t, `""`, snbt.QuoteKey(""))
	require.Equal(t, `"a b"`, snbt.QuoteKey("a b"))
}
