package nbt

import (
	"io"

	elog "github.com/eluv-io/log-go"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
	"github.com/eluv-io/nbt-go/util/codecutil"
	"github.com/eluv-io/nbt-go/util/ioutil"
)

var log = elog.Get("/nbt")

// maxPrealloc caps the capacity reserved from a decoded sequence length. Longer sequences grow as their elements are
// actually read.
const maxPrealloc = 1024

// Decoder reads NBT documents in a given wire dialect. Successive calls read successive documents from the same
// stream.
type Decoder struct {
	r     *ioutil.CountingByteReader
	d     wire.Dialect
	opts  options
	path  *nbterr.Path
	depth int
}

// NewDecoder creates a decoder reading from r in dialect d. Readers that do not implement io.ByteReader are buffered
// and may be read ahead of the decoded documents.
func NewDecoder(r io.Reader, d wire.Dialect, opts ...Option) *Decoder {
	return &Decoder{
		r:    ioutil.NewCountingByteReader(r),
		d:    d,
		opts: newOptions(opts),
	}
}

// Decode reads the next document into dst. dst is either a *value.Value receiving the root value, or a pointer to a
// Go value decoded with codecutil.MapDecode using `nbt` struct tags.
func (dec *Decoder) Decode(dst interface{}) error {
	_, v, err := dec.DecodeNamed()
	if err != nil {
		return err
	}
	if vp, ok := dst.(*value.Value); ok {
		*vp = v
		return nil
	}
	err = codecutil.MapDecode(value.ToInterface(v), dst)
	if err != nil {
		return nbterr.AttachPath(nbterr.AsCustom(err), &nbterr.Path{})
	}
	return nil
}

// DecodeNamed reads the next document and returns its root name and root value.
func (dec *Decoder) DecodeNamed() (string, value.Value, error) {
	dec.path = &nbterr.Path{}
	dec.depth = 0
	name, v, err := dec.document()
	if err != nil {
		err = nbterr.AttachPath(err, dec.path)
		if log.IsDebug() {
			log.Debug("rejected document", "dialect", dec.d.Name(), "offset", dec.r.Offset(), "error", err)
		}
		return "", nil, err
	}
	return name, v, nil
}

// Offset returns the number of bytes consumed so far.
func (dec *Decoder) Offset() int64 {
	return dec.r.Offset()
}

func (dec *Decoder) document() (string, value.Value, error) {
	t, err := dec.d.DecodeTag(dec.r)
	if err != nil {
		return "", nil, err
	}
	if !t.Valid() {
		return "", nil, nbterr.Newf(nbterr.InvalidData, "unknown tag 0x%02x", byte(t))
	}
	if t != tag.Compound && !(t == tag.List && dec.opts.allowListRoot(dec.d)) {
		return "", nil, nbterr.Newf(nbterr.InvalidData, "invalid root type %s", t)
	}
	name := ""
	if !dec.opts.nameless {
		name, err = wire.DecodeString(dec.d, dec.r)
		if err != nil {
			return "", nil, err
		}
	}
	v, err := dec.payload(t)
	if err != nil {
		return "", nil, err
	}
	return name, v, nil
}

func (dec *Decoder) payload(t tag.Tag) (value.Value, error) {
	d, r := dec.d, dec.r
	switch t {
	case tag.Byte:
		v, err := d.DecodeByte(r)
		return value.Int8(v), err
	case tag.Short:
		v, err := d.DecodeShort(r)
		return value.Short(v), err
	case tag.Int:
		v, err := d.DecodeInt(r)
		return value.Int(v), err
	case tag.Long:
		v, err := d.DecodeLong(r)
		return value.Long(v), err
	case tag.Float:
		v, err := d.DecodeFloat(r)
		return value.Float(v), err
	case tag.Double:
		v, err := d.DecodeDouble(r)
		return value.Double(v), err
	case tag.String:
		v, err := wire.DecodeString(d, r)
		return value.String(v), err
	case tag.ByteArray, tag.IntArray, tag.LongArray, tag.List, tag.Compound:
		if err := dec.enter(); err != nil {
			return nil, err
		}
		defer func() { dec.depth-- }()
		switch t {
		case tag.ByteArray:
			return dec.byteArray()
		case tag.IntArray:
			return dec.intArray()
		case tag.LongArray:
			return dec.longArray()
		case tag.List:
			return dec.list()
		}
		return dec.compound()
	}
	return nil, nbterr.Newf(nbterr.InvalidData, "unknown tag 0x%02x", byte(t))
}

func (dec *Decoder) enter() error {
	if dec.depth >= dec.opts.maxDepth {
		return nbterr.RecursionLimit(dec.opts.maxDepth)
	}
	dec.depth++
	return nil
}

func (dec *Decoder) byteArray() (value.Value, error) {
	n, err := dec.d.DecodeSeqLen(dec.r)
	if err != nil {
		return nil, err
	}
	b, err := wire.ReadBytes(dec.r, n)
	if err != nil {
		return nil, err
	}
	res := make(value.ByteArray, n)
	for i, c := range b {
		res[i] = int8(c)
	}
	return res, nil
}

func (dec *Decoder) intArray() (value.Value, error) {
	n, err := dec.d.DecodeSeqLen(dec.r)
	if err != nil {
		return nil, err
	}
	res := make(value.IntArray, 0, prealloc(n))
	for i := 0; i < n; i++ {
		v, err := dec.d.DecodeInt(dec.r)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (dec *Decoder) longArray() (value.Value, error) {
	n, err := dec.d.DecodeSeqLen(dec.r)
	if err != nil {
		return nil, err
	}
	res := make(value.LongArray, 0, prealloc(n))
	for i := 0; i < n; i++ {
		v, err := dec.d.DecodeLong(dec.r)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (dec *Decoder) list() (value.Value, error) {
	elem, err := dec.d.DecodeTag(dec.r)
	if err != nil {
		return nil, err
	}
	n, err := dec.d.DecodeSeqLen(dec.r)
	if err != nil {
		return nil, err
	}
	if elem == tag.End {
		if n > 0 {
			return nil, nbterr.Newf(nbterr.InvalidData, "list of End with %d elements", n)
		}
		return value.NewList(), nil
	}
	if !elem.Valid() {
		return nil, nbterr.Newf(nbterr.InvalidData, "unknown tag 0x%02x", byte(elem))
	}

	res := value.ListOf(elem)
	for i := 0; i < n; i++ {
		dec.path.PushIndex(i)
		v, err := dec.payload(elem)
		if err != nil {
			return nil, err
		}
		if err = res.Push(v); err != nil {
			return nil, nbterr.New(nbterr.InvalidData, err.Error())
		}
		dec.path.Pop()
	}
	return res, nil
}

func (dec *Decoder) compound() (value.Value, error) {
	res := value.NewCompound()
	for {
		t, err := dec.d.DecodeTag(dec.r)
		if err != nil {
			return nil, err
		}
		if t == tag.End {
			return res, nil
		}
		key, err := wire.DecodeString(dec.d, dec.r)
		if err != nil {
			return nil, err
		}
		dec.path.PushName(key)
		v, err := dec.payload(t)
		if err != nil {
			return nil, err
		}
		res.Set(key, v)
		dec.path.Pop()
	}
}

func prealloc(n int) int {
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}
