package emit

import (
	"strconv"

	"github.com/eluv-io/errors-go"

	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// errProbed aborts a producer as soon as the kind of its value is known.
var errProbed = errors.Str("kind probed")

// Probe determines the kind of the value produced by p without producing any of its children: the producer is
// aborted on its first call. Errors returned by p before that call are passed on.
func Probe(p Producer) (tag.Tag, error) {
	pr := &probe{}
	err := p.Produce(pr)
	if pr.done {
		return pr.kind, nil
	}
	if err != nil {
		return tag.End, err
	}
	return tag.End, nbterr.New(nbterr.InvalidInput, "no value produced")
}

type probe struct {
	kind tag.Tag
	done bool
}

func (p *probe) record(t tag.Tag) error {
	p.kind = t
	p.done = true
	return errProbed
}

func (p *probe) Bool(bool) error      { return p.record(tag.Byte) }
func (p *probe) Byte(int8) error      { return p.record(tag.Byte) }
func (p *probe) Short(int16) error    { return p.record(tag.Short) }
func (p *probe) Int(int32) error      { return p.record(tag.Int) }
func (p *probe) Long(int64) error     { return p.record(tag.Long) }
func (p *probe) Float(float32) error  { return p.record(tag.Float) }
func (p *probe) Double(float64) error { return p.record(tag.Double) }
func (p *probe) String(string) error  { return p.record(tag.String) }

func (p *probe) Map() (MapSerializer, error) {
	return nil, p.record(tag.Compound)
}

func (p *probe) Seq(brand tag.Tag, _ int) (SeqSerializer, error) {
	if brand != tag.List && !brand.IsArray() {
		return nil, nbterr.Newf(nbterr.InvalidInput, "invalid sequence kind %s", brand)
	}
	return nil, p.record(brand)
}

////////////////////////////////////////////////////////////////////////////////

// CollectKey runs p and converts its value to a compound key. Strings are used as is, booleans become "true" or
// "false" and integers their decimal representation. Other kinds are rejected with InvalidInput.
func CollectKey(p Producer) (string, error) {
	kc := &keyCollector{}
	if err := p.Produce(kc); err != nil {
		return "", err
	}
	if !kc.done {
		return "", nbterr.New(nbterr.InvalidInput, "no key produced")
	}
	return kc.key, nil
}

type keyCollector struct {
	key  string
	done bool
}

func (k *keyCollector) set(key string) error {
	if k.done {
		return nbterr.New(nbterr.InvalidInput, "more than one key produced")
	}
	k.key = key
	k.done = true
	return nil
}

func (k *keyCollector) Bool(v bool) error     { return k.set(strconv.FormatBool(v)) }
func (k *keyCollector) Byte(v int8) error     { return k.set(strconv.FormatInt(int64(v), 10)) }
func (k *keyCollector) Short(v int16) error   { return k.set(strconv.FormatInt(int64(v), 10)) }
func (k *keyCollector) Int(v int32) error     { return k.set(strconv.FormatInt(int64(v), 10)) }
func (k *keyCollector) Long(v int64) error    { return k.set(strconv.FormatInt(v, 10)) }
func (k *keyCollector) String(v string) error { return k.set(v) }

func (k *keyCollector) Float(float32) error {
	return nbterr.Unsupported("float", "keys")
}

func (k *keyCollector) Double(float64) error {
	return nbterr.Unsupported("double", "keys")
}

func (k *keyCollector) Seq(tag.Tag, int) (SeqSerializer, error) {
	return nil, nbterr.Unsupported("sequence", "keys")
}

func (k *keyCollector) Map() (MapSerializer, error) {
	return nil, nbterr.Unsupported("map", "keys")
}

////////////////////////////////////////////////////////////////////////////////

// arrayElement emits one element of a packed array. The element serializer only accepts the array's element
// primitive; booleans are accepted in byte arrays.
func (e *engine) arrayElement(p Producer, elem tag.Tag) error {
	s := &arraySlot{slot: slot{e: e}, elem: elem}
	if err := p.Produce(s); err != nil {
		return e.fail(nbterr.AsCustom(err))
	}
	if e.err != nil {
		return e.err
	}
	return s.finish()
}

type arraySlot struct {
	slot
	elem tag.Tag
}

func (s *arraySlot) reject(found tag.Tag) error {
	return s.e.failf("array element must be %s, found %s", s.elem, found)
}

func (s *arraySlot) Bool(v bool) error {
	if s.elem != tag.Byte {
		return s.reject(tag.Byte)
	}
	var b int8
	if v {
		b = 1
	}
	return s.slot.Byte(b)
}

func (s *arraySlot) Byte(v int8) error {
	if s.elem != tag.Byte {
		return s.reject(tag.Byte)
	}
	return s.slot.Byte(v)
}

func (s *arraySlot) Int(v int32) error {
	if s.elem != tag.Int {
		return s.reject(tag.Int)
	}
	return s.slot.Int(v)
}

func (s *arraySlot) Long(v int64) error {
	if s.elem != tag.Long {
		return s.reject(tag.Long)
	}
	return s.slot.Long(v)
}

func (s *arraySlot) Short(int16) error    { return s.reject(tag.Short) }
func (s *arraySlot) Float(float32) error  { return s.reject(tag.Float) }
func (s *arraySlot) Double(float64) error { return s.reject(tag.Double) }
func (s *arraySlot) String(string) error  { return s.reject(tag.String) }

func (s *arraySlot) Seq(brand tag.Tag, _ int) (SeqSerializer, error) {
	return nil, s.reject(brand)
}

func (s *arraySlot) Map() (MapSerializer, error) {
	return nil, s.reject(tag.Compound)
}
