package emit

import (
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// Producer produces exactly one value into the given Serializer. Producers are invoked more than once per value
// (once to probe the kind, once to emit), so Produce must be repeatable and free of side effects.
type Producer interface {
	Produce(s Serializer) error
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(s Serializer) error

func (f ProducerFunc) Produce(s Serializer) error {
	return f(s)
}

// Serializer accepts a single value. Sequences and maps are produced through the returned SeqSerializer or
// MapSerializer, which must be ended before Produce returns.
type Serializer interface {
	Bool(v bool) error
	Byte(v int8) error
	Short(v int16) error
	Int(v int32) error
	Long(v int64) error
	Float(v float32) error
	Double(v float64) error
	String(v string) error

	// Seq starts a sequence of n elements. brand is tag.List for a list or one of the packed array tags.
	Seq(brand tag.Tag, n int) (SeqSerializer, error)
	// Map starts a compound.
	Map() (MapSerializer, error)
}

type SeqSerializer interface {
	Element(p Producer) error
	End() error
}

type MapSerializer interface {
	// Entry produces an entry with a string key.
	Entry(key string, p Producer) error
	// EntryKey produces an entry whose key is itself produced. Strings, booleans and integers are accepted as keys.
	EntryKey(key Producer, p Producer) error
	End() error
}
