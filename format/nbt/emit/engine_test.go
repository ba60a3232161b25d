package emit

import (
	"fmt"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/value"
)

// recorder logs the events of a walk.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...interface{}) error {
	r.events = append(r.events, fmt.Sprintf(format, args...))
	return nil
}

func (r *recorder) EmitBool(v bool) error           { return r.add("bool %v", v) }
func (r *recorder) EmitByte(v int8) error           { return r.add("byte %d", v) }
func (r *recorder) EmitShort(v int16) error         { return r.add("short %d", v) }
func (r *recorder) EmitInt(v int32) error           { return r.add("int %d", v) }
func (r *recorder) EmitLong(v int64) error          { return r.add("long %d", v) }
func (r *recorder) EmitFloat(v float32) error       { return r.add("float %v", v) }
func (r *recorder) EmitDouble(v float64) error      { return r.add("double %v", v) }
func (r *recorder) EmitString(v string) error       { return r.add("string %s", v) }
func (r *recorder) BeginSeq(k SeqKind, n int) error { return r.add("begin %s %d", k, n) }
func (r *recorder) BeforeElement() error            { return r.add("<elem") }
func (r *recorder) AfterElement() error             { return r.add("elem>") }
func (r *recorder) EndSeq() error                   { return r.add("end seq") }
func (r *recorder) BeginMap() error                 { return r.add("begin map") }
func (r *recorder) BeforeKey(hint tag.Tag) error    { return r.add("<key %s", hint) }
func (r *recorder) EmitKey(key string) error        { return r.add("key %s", key) }
func (r *recorder) AfterKey() error                 { return r.add("key>") }
func (r *recorder) BeforeValue() error              { return r.add("<value") }
func (r *recorder) AfterValue() error               { return r.add("value>") }
func (r *recorder) EndMap() error                   { return r.add("end map") }

func mustList(t *testing.T, values ...value.Value) *value.List {
	l, err := value.NewListFrom(values...)
	require.NoError(t, err)
	return l
}

func requireCategory(t *testing.T, err error, c nbterr.Category) *nbterr.Error {
	var e *nbterr.Error
	require.True(t, errors.As(err, &e), "not an nbt error: %v", err)
	require.Equal(t, c, e.Category(), "%v", err)
	return e
}

func requirePath(t *testing.T, e *nbterr.Error, want string) {
	p, ok := e.Position().Path()
	require.True(t, ok, "no path in %v", e)
	require.Equal(t, want, p.String())
}

func TestListEvents(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want []string
	}{
		{
			name: "deferred begin",
			v:    mustList(t, value.Int(1), value.Int(2)),
			want: []string{"begin List<Int> 2", "<elem", "int 1", "elem>", "<elem", "int 2", "elem>", "end seq"},
		},
		{
			name: "empty list",
			v:    value.NewList(),
			want: []string{"begin List<End> 0", "end seq"},
		},
		{
			name: "empty declared list",
			v:    value.ListOf(tag.Int),
			want: []string{"begin List<End> 0", "end seq"},
		},
		{
			name: "byte array",
			v:    value.ByteArray{1, -1},
			want: []string{"begin ByteArray 2", "<elem", "byte 1", "elem>", "<elem", "byte -1", "elem>", "end seq"},
		},
		{
			name: "long array",
			v:    value.LongArray{7},
			want: []string{"begin LongArray 1", "<elem", "long 7", "elem>", "end seq"},
		},
		{
			name: "list of lists",
			v:    mustList(t, mustList(t, value.Bool(true)), value.NewList()),
			want: []string{
				"begin List<List> 2",
				"<elem", "begin List<Byte> 1", "<elem", "bool true", "elem>", "end seq", "elem>",
				"<elem", "begin List<End> 0", "end seq", "elem>",
				"end seq",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			require.NoError(t, Run(rec, Value(tt.v)))
			require.Equal(t, tt.want, rec.events)
		})
	}
}

func TestMapEvents(t *testing.T) {
	c := value.NewCompound()
	c.Set("name", value.String("abc"))
	c.Set("list", mustList(t, value.Short(3)))

	rec := &recorder{}
	require.NoError(t, Run(rec, Value(c)))
	require.Equal(t, []string{
		"begin map",
		"<key String", "key name", "key>", "<value", "string abc", "value>",
		"<key List", "key list", "key>", "<value", "begin List<Short> 1", "<elem", "short 3", "elem>", "end seq", "value>",
		"end map",
	}, rec.events)
}

// listOf produces a list from the given producers, bypassing the homogeneity of value.List.
func listOf(items ...Producer) Producer {
	return ProducerFunc(func(s Serializer) error {
		seq, err := s.Seq(tag.List, len(items))
		if err != nil {
			return err
		}
		for _, item := range items {
			if err = seq.Element(item); err != nil {
				return err
			}
		}
		return seq.End()
	})
}

func compoundOf(key string, p Producer) Producer {
	return ProducerFunc(func(s Serializer) error {
		m, err := s.Map()
		if err != nil {
			return err
		}
		if err = m.Entry(key, p); err != nil {
			return err
		}
		return m.End()
	})
}

func TestInhomogeneousList(t *testing.T) {
	p := compoundOf("items", listOf(Reflect(int32(1)), Reflect("two")))
	rec := &recorder{}
	err := Run(rec, p)
	e := requireCategory(t, err, nbterr.InvalidInput)
	require.Contains(t, e.Message(), "found String, expected Int")
	requirePath(t, e, "/items/1")
}

func TestArrayElementRestriction(t *testing.T) {
	p := ProducerFunc(func(s Serializer) error {
		seq, err := s.Seq(tag.IntArray, 1)
		if err != nil {
			return err
		}
		if err = seq.Element(Reflect(int64(1))); err != nil {
			return err
		}
		return seq.End()
	})
	err := Run(&recorder{}, p)
	e := requireCategory(t, err, nbterr.InvalidInput)
	require.Contains(t, e.Message(), "must be Int, found Long")
	requirePath(t, e, "/0")

	// booleans are bytes
	p = ProducerFunc(func(s Serializer) error {
		seq, err := s.Seq(tag.ByteArray, 1)
		if err != nil {
			return err
		}
		if err = seq.Element(Reflect(true)); err != nil {
			return err
		}
		return seq.End()
	})
	v, err := ToValue(p)
	require.NoError(t, err)
	require.Equal(t, value.ByteArray{1}, v)
}

func TestSequenceCount(t *testing.T) {
	tooFew := ProducerFunc(func(s Serializer) error {
		seq, err := s.Seq(tag.List, 2)
		if err != nil {
			return err
		}
		if err = seq.Element(Reflect(int8(1))); err != nil {
			return err
		}
		return seq.End()
	})
	requireCategory(t, Run(&recorder{}, tooFew), nbterr.InvalidInput)

	tooMany := ProducerFunc(func(s Serializer) error {
		seq, err := s.Seq(tag.List, 0)
		if err != nil {
			return err
		}
		if err = seq.Element(Reflect(int8(1))); err != nil {
			return err
		}
		return seq.End()
	})
	requireCategory(t, Run(&recorder{}, tooMany), nbterr.InvalidInput)

	notEnded := ProducerFunc(func(s Serializer) error {
		_, err := s.Map()
		return err
	})
	requireCategory(t, Run(&recorder{}, notEnded), nbterr.InvalidInput)
}

func TestSingleValue(t *testing.T) {
	none := ProducerFunc(func(s Serializer) error { return nil })
	requireCategory(t, Run(&recorder{}, none), nbterr.InvalidInput)

	two := ProducerFunc(func(s Serializer) error {
		if err := s.Int(1); err != nil {
			return err
		}
		return s.Int(2)
	})
	requireCategory(t, Run(&recorder{}, two), nbterr.InvalidInput)
}

func TestKeys(t *testing.T) {
	tests := []struct {
		key     interface{}
		want    string
		wantErr bool
	}{
		{key: "plain", want: "plain"},
		{key: true, want: "true"},
		{key: false, want: "false"},
		{key: int8(-5), want: "-5"},
		{key: 42, want: "42"},
		{key: 1.5, wantErr: true},
		{key: float32(1.5), wantErr: true},
		{key: []int32{1}, wantErr: true},
		{key: map[string]int32{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.key), func(t *testing.T) {
			p := ProducerFunc(func(s Serializer) error {
				m, err := s.Map()
				if err != nil {
					return err
				}
				if err = m.EntryKey(Reflect(tt.key), Reflect(int32(1))); err != nil {
					return err
				}
				return m.End()
			})
			rec := &recorder{}
			err := Run(rec, p)
			if tt.wantErr {
				e := requireCategory(t, err, nbterr.InvalidInput)
				require.Contains(t, e.Message(), "keys")
				requirePath(t, e, "/?")
				return
			}
			require.NoError(t, err)
			require.Contains(t, rec.events, "key "+tt.want)
		})
	}
}

func nested(depth int) value.Value {
	var v value.Value = value.Int(1)
	for i := 0; i < depth; i++ {
		l := value.NewList()
		_ = l.Push(v)
		v = l
	}
	return v
}

func TestDepthLimit(t *testing.T) {
	require.NoError(t, Run(&recorder{}, Value(nested(5)), OptMaxDepth(5)))

	err := Run(&recorder{}, Value(nested(6)), OptMaxDepth(5))
	e := requireCategory(t, err, nbterr.RecursionLimitExceeded)
	requirePath(t, e, "/0/0/0/0/0")

	require.NoError(t, Run(&recorder{}, Value(nested(DefaultMaxDepth))))
	requireCategory(t, Run(&recorder{}, Value(nested(DefaultMaxDepth+1))), nbterr.RecursionLimitExceeded)
}

func TestProducerErrors(t *testing.T) {
	boom := errors.Str("boom")
	p := compoundOf("a", ProducerFunc(func(s Serializer) error { return boom }))
	err := Run(&recorder{}, p)
	e := requireCategory(t, err, nbterr.Custom)
	require.Equal(t, boom, e.Unwrap())
	requirePath(t, e, "/a")

	// emitter failures keep their category
	failing := &failingEmitter{recorder: recorder{}, failOn: "string"}
	err = Run(failing, compoundOf("a", Reflect("x")))
	requireCategory(t, err, nbterr.Io)
}

func TestFailureIsSticky(t *testing.T) {
	var elemErr, entryErr, endErr error
	bad := ProducerFunc(func(s Serializer) error {
		seq, err := s.Seq(tag.List, 2)
		if err != nil {
			return err
		}
		if err = seq.Element(Reflect(int32(1))); err != nil {
			return err
		}
		elemErr = seq.Element(Reflect("x"))
		// ignore the failure and end the list anyway
		return seq.End()
	})
	p := ProducerFunc(func(s Serializer) error {
		m, err := s.Map()
		if err != nil {
			return err
		}
		_ = m.Entry("bad", bad)
		entryErr = m.Entry("ok", Reflect(float32(1)))
		endErr = m.End()
		return nil
	})

	rec := &recorder{}
	err := Run(rec, p)
	e := requireCategory(t, err, nbterr.InvalidInput)
	requirePath(t, e, "/bad/1")
	require.Contains(t, e.Error(), "Int")
	require.Equal(t, err, elemErr)
	require.Equal(t, err, entryErr)
	require.Equal(t, err, endErr)

	// nothing is emitted after the failure
	require.NotContains(t, rec.events, "key ok")
	require.NotContains(t, rec.events, "end seq")

	_, err = ToValue(p)
	e = requireCategory(t, err, nbterr.InvalidInput)
	requirePath(t, e, "/bad/1")
}

func TestKeyFailureIsSticky(t *testing.T) {
	var keyErr error
	p := ProducerFunc(func(s Serializer) error {
		m, err := s.Map()
		if err != nil {
			return err
		}
		keyErr = m.EntryKey(Reflect(1.5), Reflect(int32(1)))
		return m.Entry("next", Reflect(int32(2)))
	})
	err := Run(&recorder{}, p)
	e := requireCategory(t, err, nbterr.InvalidInput)
	require.Equal(t, err, keyErr)
	requirePath(t, e, "/?")
}

type failingEmitter struct {
	recorder
	failOn string
}

func (f *failingEmitter) EmitString(v string) error {
	if f.failOn == "string" {
		return nbterr.Wrap(errors.Str("disk full"))
	}
	return f.recorder.EmitString(v)
}

func TestProbe(t *testing.T) {
	calls := 0
	p := ProducerFunc(func(s Serializer) error {
		m, err := s.Map()
		if err != nil {
			return err
		}
		calls++
		return m.End()
	})
	kind, err := Probe(p)
	require.NoError(t, err)
	require.Equal(t, tag.Compound, kind)
	require.Equal(t, 0, calls)

	kind, err = Probe(Reflect(true))
	require.NoError(t, err)
	require.Equal(t, tag.Byte, kind)

	kind, err = Probe(Value(value.IntArray{1}))
	require.NoError(t, err)
	require.Equal(t, tag.IntArray, kind)

	_, err = Probe(ProducerFunc(func(s Serializer) error { return nil }))
	requireCategory(t, err, nbterr.InvalidInput)
}

func TestCheckRoot(t *testing.T) {
	kind, err := CheckRoot(Value(value.NewCompound()), false)
	require.NoError(t, err)
	require.Equal(t, tag.Compound, kind)

	_, err = CheckRoot(Value(value.NewList()), false)
	e := requireCategory(t, err, nbterr.InvalidInput)
	require.Contains(t, e.Message(), "invalid root type List")

	kind, err = CheckRoot(Value(value.NewList()), true)
	require.NoError(t, err)
	require.Equal(t, tag.List, kind)

	_, err = CheckRoot(Value(value.Int(1)), true)
	requireCategory(t, err, nbterr.InvalidInput)
}
