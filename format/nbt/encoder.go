package nbt

import (
	"bufio"
	"io"

	"github.com/eluv-io/nbt-go/format/nbt/emit"
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
	"github.com/eluv-io/nbt-go/util/ioutil"
)

// Encoder writes NBT documents in a given wire dialect.
type Encoder struct {
	w    io.Writer
	d    wire.Dialect
	opts options
}

// NewEncoder creates an encoder writing to w in dialect d.
func NewEncoder(w io.Writer, d wire.Dialect, opts ...Option) *Encoder {
	return &Encoder{
		w:    w,
		d:    d,
		opts: newOptions(opts),
	}
}

// Encode writes v as a document with an empty root name. See EncodeNamed.
func (e *Encoder) Encode(v interface{}) error {
	return e.EncodeNamed("", v)
}

// EncodeNamed writes v as a document with the given root name. v may be a value.Value, an emit.Producer or any Go
// value supported by emit.Reflect. The root must be a Compound, or a List if list roots are enabled for the varint
// dialect.
func (e *Encoder) EncodeNamed(name string, v interface{}) error {
	p := emit.Reflect(v)
	kind, err := emit.CheckRoot(p, e.opts.allowListRoot(e.d))
	if err != nil {
		return err
	}

	var out io.Writer = e.w
	if e.opts.maxOutput > 0 {
		out = ioutil.NewLimitedWriter(out, e.opts.maxOutput)
	}
	bw := bufio.NewWriter(out)

	if err = e.header(bw, kind, name); err != nil {
		return nbterr.AttachPath(err, &nbterr.Path{})
	}
	em := &binaryEmitter{d: e.d, w: bw}
	if err = emit.Run(em, p, emit.OptMaxDepth(e.opts.maxDepth)); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return nbterr.AttachPath(err, &nbterr.Path{})
	}
	return nil
}

func (e *Encoder) header(w io.Writer, kind tag.Tag, name string) error {
	if err := e.d.EncodeTag(w, kind); err != nil {
		return err
	}
	if e.opts.nameless {
		return nil
	}
	return wire.EncodeString(e.d, w, name)
}

////////////////////////////////////////////////////////////////////////////////

// binaryEmitter writes the events of a walk in a wire dialect. Compound tags are written by the parent: the root tag
// by the encoder, entry tags in BeforeKey from the probed hint and list element tags in BeginSeq.
type binaryEmitter struct {
	emit.NopHooks
	d wire.Dialect
	w io.Writer
}

var _ emit.Emitter = (*binaryEmitter)(nil)

func (b *binaryEmitter) EmitBool(v bool) error {
	var n int8
	if v {
		n = 1
	}
	return b.d.EncodeByte(b.w, n)
}

func (b *binaryEmitter) EmitByte(v int8) error      { return b.d.EncodeByte(b.w, v) }
func (b *binaryEmitter) EmitShort(v int16) error    { return b.d.EncodeShort(b.w, v) }
func (b *binaryEmitter) EmitInt(v int32) error      { return b.d.EncodeInt(b.w, v) }
func (b *binaryEmitter) EmitLong(v int64) error     { return b.d.EncodeLong(b.w, v) }
func (b *binaryEmitter) EmitFloat(v float32) error  { return b.d.EncodeFloat(b.w, v) }
func (b *binaryEmitter) EmitDouble(v float64) error { return b.d.EncodeDouble(b.w, v) }
func (b *binaryEmitter) EmitString(v string) error  { return wire.EncodeString(b.d, b.w, v) }

func (b *binaryEmitter) BeginSeq(kind emit.SeqKind, n int) error {
	if kind.Brand == tag.List {
		if err := b.d.EncodeTag(b.w, kind.Elem); err != nil {
			return err
		}
	}
	return b.d.EncodeSeqLen(b.w, n)
}

func (b *binaryEmitter) EndSeq() error {
	return nil
}

func (b *binaryEmitter) BeginMap() error {
	return nil
}

func (b *binaryEmitter) BeforeKey(hint tag.Tag) error {
	return b.d.EncodeTag(b.w, hint)
}

func (b *binaryEmitter) EmitKey(key string) error {
	return wire.EncodeString(b.d, b.w, key)
}

func (b *binaryEmitter) EndMap() error {
	return b.d.EncodeTag(b.w, tag.End)
}
