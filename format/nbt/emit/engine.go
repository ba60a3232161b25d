package emit

import (
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// DefaultMaxDepth is the default maximum nesting of sequences and maps.
const DefaultMaxDepth = 512

type config struct {
	maxDepth int
}

// Option configures a walk.
type Option func(*config)

// OptMaxDepth sets the maximum nesting depth. Values <= 0 select DefaultMaxDepth.
func OptMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// Run walks the value produced by p and feeds it to em. Failures are *nbterr.Error values positioned at the path of
// the value being processed; errors returned by p that are not *nbterr.Error are reported with category Custom.
func Run(em Emitter, p Producer, opts ...Option) error {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxDepth <= 0 {
		cfg.maxDepth = DefaultMaxDepth
	}
	e := &engine{
		em:       em,
		path:     &nbterr.Path{},
		maxDepth: cfg.maxDepth,
	}
	return e.value(p)
}

type engine struct {
	em       Emitter
	path     *nbterr.Path
	depth    int
	maxDepth int
	err      error // first failure, returned by every later call
}

// fail records err positioned at the current path. Once a walk has failed, the first failure is returned for any
// later error.
func (e *engine) fail(err error) error {
	if e.err == nil {
		e.err = nbterr.AttachPath(err, e.path)
	}
	return e.err
}

func (e *engine) failf(format string, args ...interface{}) error {
	return e.fail(nbterr.Newf(nbterr.InvalidInput, format, args...))
}

// value runs p against a fresh single-value slot.
func (e *engine) value(p Producer) error {
	s := &slot{e: e}
	if err := p.Produce(s); err != nil {
		return e.fail(nbterr.AsCustom(err))
	}
	if e.err != nil {
		return e.err
	}
	return s.finish()
}

func (e *engine) enter() error {
	if e.depth >= e.maxDepth {
		return e.fail(nbterr.RecursionLimit(e.maxDepth))
	}
	e.depth++
	return nil
}

////////////////////////////////////////////////////////////////////////////////

// slot accepts exactly one value.
type slot struct {
	e    *engine
	used bool
	open ender
}

type ender interface {
	ended() bool
}

func (s *slot) use() error {
	if s.e.err != nil {
		return s.e.err
	}
	if s.used {
		return s.e.failf("more than one value produced")
	}
	s.used = true
	return nil
}

func (s *slot) finish() error {
	if !s.used {
		return s.e.failf("no value produced")
	}
	if s.open != nil && !s.open.ended() {
		return s.e.failf("sequence or map not ended")
	}
	return nil
}

func (s *slot) emit(fn func() error) error {
	if err := s.use(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return s.e.fail(err)
	}
	return nil
}

func (s *slot) Bool(v bool) error {
	return s.emit(func() error { return s.e.em.EmitBool(v) })
}

func (s *slot) Byte(v int8) error {
	return s.emit(func() error { return s.e.em.EmitByte(v) })
}

func (s *slot) Short(v int16) error {
	return s.emit(func() error { return s.e.em.EmitShort(v) })
}

func (s *slot) Int(v int32) error {
	return s.emit(func() error { return s.e.em.EmitInt(v) })
}

func (s *slot) Long(v int64) error {
	return s.emit(func() error { return s.e.em.EmitLong(v) })
}

func (s *slot) Float(v float32) error {
	return s.emit(func() error { return s.e.em.EmitFloat(v) })
}

func (s *slot) Double(v float64) error {
	return s.emit(func() error { return s.e.em.EmitDouble(v) })
}

func (s *slot) String(v string) error {
	return s.emit(func() error { return s.e.em.EmitString(v) })
}

func (s *slot) Seq(brand tag.Tag, n int) (SeqSerializer, error) {
	if err := s.use(); err != nil {
		return nil, err
	}
	if brand != tag.List && !brand.IsArray() {
		return nil, s.e.failf("invalid sequence kind %s", brand)
	}
	if n < 0 {
		return nil, s.e.failf("negative sequence length %d", n)
	}
	if err := s.e.enter(); err != nil {
		return nil, err
	}
	seq := &seqSer{e: s.e, kind: SeqKind{Brand: brand}, n: n}
	if brand.IsArray() {
		// arrays have a fixed element kind, nothing to probe
		seq.kind = ArrayKind(brand)
		if err := s.e.em.BeginSeq(seq.kind, n); err != nil {
			return nil, s.e.fail(err)
		}
		seq.begun = true
	}
	s.open = seq
	return seq, nil
}

func (s *slot) Map() (MapSerializer, error) {
	if err := s.use(); err != nil {
		return nil, err
	}
	if err := s.e.enter(); err != nil {
		return nil, err
	}
	if err := s.e.em.BeginMap(); err != nil {
		return nil, s.e.fail(err)
	}
	m := &mapSer{e: s.e}
	s.open = m
	return m, nil
}

////////////////////////////////////////////////////////////////////////////////

type seqSer struct {
	e     *engine
	kind  SeqKind
	n     int
	count int
	begun bool
	done  bool
}

func (s *seqSer) ended() bool {
	return s.done
}

func (s *seqSer) Element(p Producer) error {
	e := s.e
	if e.err != nil {
		return e.err
	}
	if s.done {
		return e.failf("element after end of sequence")
	}
	if s.count >= s.n {
		return e.failf("sequence has more than the declared %d elements", s.n)
	}
	if s.kind.Brand == tag.List {
		if err := s.probeElement(p); err != nil {
			return err
		}
	}

	e.path.PushIndex(s.count)
	defer e.path.Pop()
	if err := e.em.BeforeElement(); err != nil {
		return e.fail(err)
	}
	var err error
	if s.kind.Brand == tag.List {
		err = e.value(p)
	} else {
		err = e.arrayElement(p, s.kind.Elem)
	}
	if err != nil {
		return err
	}
	if err = e.em.AfterElement(); err != nil {
		return e.fail(err)
	}
	s.count++
	return nil
}

// probeElement checks the kind of the next list element. The first element decides the element kind and begins
// the sequence.
func (s *seqSer) probeElement(p Producer) error {
	e := s.e
	e.path.PushIndex(s.count)
	kind, err := Probe(p)
	if err != nil {
		err = nbterr.AsCustom(err)
	} else if s.begun && kind != s.kind.Elem {
		err = nbterr.InvalidSeq(kind, s.kind.Elem)
	}
	if err != nil {
		err = e.fail(err)
	}
	e.path.Pop()
	if err != nil || s.begun {
		return err
	}

	s.kind.Elem = kind
	if err = e.em.BeginSeq(s.kind, s.n); err != nil {
		return e.fail(err)
	}
	s.begun = true
	return nil
}

func (s *seqSer) End() error {
	e := s.e
	if e.err != nil {
		return e.err
	}
	if s.done {
		return e.failf("sequence already ended")
	}
	if s.count != s.n {
		return e.failf("sequence declared %d elements but produced %d", s.n, s.count)
	}
	if !s.begun {
		s.kind.Elem = tag.End
		if err := e.em.BeginSeq(s.kind, 0); err != nil {
			return e.fail(err)
		}
		s.begun = true
	}
	if err := e.em.EndSeq(); err != nil {
		return e.fail(err)
	}
	s.done = true
	e.depth--
	return nil
}

////////////////////////////////////////////////////////////////////////////////

type mapSer struct {
	e    *engine
	done bool
}

func (m *mapSer) ended() bool {
	return m.done
}

func (m *mapSer) Entry(key string, p Producer) error {
	if m.e.err != nil {
		return m.e.err
	}
	if m.done {
		return m.e.failf("entry after end of map")
	}
	return m.entry(key, p)
}

func (m *mapSer) EntryKey(kp Producer, p Producer) error {
	e := m.e
	if e.err != nil {
		return e.err
	}
	if m.done {
		return e.failf("entry after end of map")
	}
	e.path.PushUnresolved()
	key, err := CollectKey(kp)
	if err != nil {
		err = e.fail(nbterr.AsCustom(err))
	}
	e.path.Pop()
	if err != nil {
		return err
	}
	return m.entry(key, p)
}

func (m *mapSer) entry(key string, p Producer) error {
	e := m.e
	e.path.PushName(key)
	kind, err := Probe(p)
	if err != nil {
		err = e.fail(nbterr.AsCustom(err))
	}
	e.path.Pop()
	if err != nil {
		return err
	}

	if err = e.em.BeforeKey(kind); err != nil {
		return e.fail(err)
	}
	if err = e.em.EmitKey(key); err != nil {
		return e.fail(err)
	}
	if err = e.em.AfterKey(); err != nil {
		return e.fail(err)
	}

	e.path.PushName(key)
	defer e.path.Pop()
	if err = e.em.BeforeValue(); err != nil {
		return e.fail(err)
	}
	if err = e.value(p); err != nil {
		return err
	}
	if err = e.em.AfterValue(); err != nil {
		return e.fail(err)
	}
	return nil
}

func (m *mapSer) End() error {
	e := m.e
	if e.err != nil {
		return e.err
	}
	if m.done {
		return e.failf("map already ended")
	}
	if err := e.em.EndMap(); err != nil {
		return e.fail(err)
	}
	m.done = true
	e.depth--
	return nil
}
