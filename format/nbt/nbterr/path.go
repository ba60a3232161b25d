package nbterr

import (
	"strconv"
	"strings"
)

var segEncoder = strings.NewReplacer("~", "~0", "/", "~1")

type segKind uint8

const (
	segName segKind = iota
	segIndex
	segUnresolved
)

// Segment is a single step of a Path: a compound key, a sequence index or a placeholder for a key that is still being
// computed.
type Segment struct {
	kind  segKind
	name  string
	index int
}

// Name returns the compound key of a name segment.
func (s Segment) Name() (string, bool) {
	return s.name, s.kind == segName
}

// Index returns the position of an index segment.
func (s Segment) Index() (int, bool) {
	return s.index, s.kind == segIndex
}

// IsUnresolved returns true for the placeholder segment pushed while a map key is computed.
func (s Segment) IsUnresolved() bool {
	return s.kind == segUnresolved
}

func (s Segment) String() string {
	switch s.kind {
	case segIndex:
		return strconv.Itoa(s.index)
	case segUnresolved:
		return "?"
	}
	return segEncoder.Replace(s.name)
}

// Path tracks the location of the value currently being processed as a stack of segments. It is pushed and popped in
// lock-step with traversal and copied into an error's position on the first failure. The zero value is an empty path.
type Path struct {
	segs []Segment
}

// NewPath creates a path from the given segments.
func NewPath(segments ...Segment) *Path {
	return &Path{segs: append([]Segment(nil), segments...)}
}

// Name creates a compound key segment.
func Name(name string) Segment {
	return Segment{kind: segName, name: name}
}

// Index creates a sequence index segment.
func Index(i int) Segment {
	return Segment{kind: segIndex, index: i}
}

// Unresolved creates the placeholder segment.
func Unresolved() Segment {
	return Segment{kind: segUnresolved}
}

func (p *Path) PushName(name string) {
	p.segs = append(p.segs, Name(name))
}

func (p *Path) PushIndex(i int) {
	p.segs = append(p.segs, Index(i))
}

func (p *Path) PushUnresolved() {
	p.segs = append(p.segs, Unresolved())
}

// Pop removes the innermost segment. It is a no-op on an empty path.
func (p *Path) Pop() {
	if len(p.segs) > 0 {
		p.segs = p.segs[:len(p.segs)-1]
	}
}

func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.segs)
}

// Segments returns a copy of the path's segments, outermost first.
func (p *Path) Segments() []Segment {
	if p == nil {
		return nil
	}
	return append([]Segment(nil), p.segs...)
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() *Path {
	return &Path{segs: p.Segments()}
}

// String formats the path with '/' separators, escaping '~' and '/' in keys as in RFC 6901. The empty path formats
// as "/".
func (p *Path) String() string {
	if p.Len() == 0 {
		return "/"
	}
	sb := strings.Builder{}
	for _, seg := range p.segs {
		sb.WriteByte('/')
		sb.WriteString(seg.String())
	}
	return sb.String()
}
