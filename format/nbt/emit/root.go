package emit

import (
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// CheckRoot probes the root value produced by p and verifies that it may be the root of a document: a Compound, or
// a List if allowList is true. It returns the root's kind.
func CheckRoot(p Producer, allowList bool) (tag.Tag, error) {
	kind, err := Probe(p)
	if err != nil {
		return tag.End, nbterr.AttachPath(nbterr.AsCustom(err), &nbterr.Path{})
	}
	if kind == tag.Compound || (allowList && kind == tag.List) {
		return kind, nil
	}
	return tag.End, nbterr.AttachPath(nbterr.InvalidRoot(kind), &nbterr.Path{})
}
