// Package emit drives a generic walk over producer data into an Emitter. The walk probes the kind of every list
// element and compound value before emitting it, so that formats which announce element kinds ahead of the payload
// (like binary NBT) can be written in a single pass without buffering.
package emit

import (
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// SeqKind describes a sequence: a List with its element kind, or one of the packed arrays.
type SeqKind struct {
	Brand tag.Tag // List, ByteArray, IntArray or LongArray
	Elem  tag.Tag // element kind, End for an empty list
}

// ListKind returns the SeqKind of a list of the given element kind.
func ListKind(elem tag.Tag) SeqKind {
	return SeqKind{Brand: tag.List, Elem: elem}
}

// ArrayKind returns the SeqKind of the given packed array tag.
func ArrayKind(brand tag.Tag) SeqKind {
	return SeqKind{Brand: brand, Elem: brand.ArrayElem()}
}

func (k SeqKind) String() string {
	if k.Brand == tag.List {
		return "List<" + k.Elem.String() + ">"
	}
	return k.Brand.String()
}

// Emitter consumes the events of a walk. The engine guarantees the event order:
//
//	sequence:  BeginSeq (BeforeElement value AfterElement)* EndSeq
//	map:       BeginMap (BeforeKey EmitKey AfterKey BeforeValue value AfterValue)* EndMap
//
// where the hint passed to BeforeKey is the kind of the value that follows. The number of elements announced in
// BeginSeq is exact and every list element has the kind announced in SeqKind.Elem.
type Emitter interface {
	EmitBool(v bool) error
	EmitByte(v int8) error
	EmitShort(v int16) error
	EmitInt(v int32) error
	EmitLong(v int64) error
	EmitFloat(v float32) error
	EmitDouble(v float64) error
	EmitString(v string) error

	BeginSeq(kind SeqKind, n int) error
	BeforeElement() error
	AfterElement() error
	EndSeq() error

	BeginMap() error
	BeforeKey(hint tag.Tag) error
	EmitKey(key string) error
	AfterKey() error
	BeforeValue() error
	AfterValue() error
	EndMap() error
}

// NopHooks implements the separator hooks of Emitter as no-ops. Embed it in emitters that have nothing to write
// between elements and entries.
type NopHooks struct{}

func (NopHooks) BeforeElement() error      { return nil }
func (NopHooks) AfterElement() error       { return nil }
func (NopHooks) BeforeKey(_ tag.Tag) error { return nil }
func (NopHooks) AfterKey() error           { return nil }
func (NopHooks) BeforeValue() error        { return nil }
func (NopHooks) AfterValue() error         { return nil }
