// Package tag defines the one-byte type ids that prefix every NBT payload.
package tag

import (
	"strings"

	"github.com/eluv-io/errors-go"
)

// Tag is the type id of an NBT payload. The numbering is identical in all wire dialects.
type Tag byte

const (
	End Tag = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	ByteArray
	String
	List
	Compound
	IntArray
	LongArray
)

var names = [...]string{
	End:       "End",
	Byte:      "Byte",
	Short:     "Short",
	Int:       "Int",
	Long:      "Long",
	Float:     "Float",
	Double:    "Double",
	ByteArray: "ByteArray",
	String:    "String",
	List:      "List",
	Compound:  "Compound",
	IntArray:  "IntArray",
	LongArray: "LongArray",
}

// Valid returns true if t is one of the known tag ids.
func (t Tag) Valid() bool {
	return t <= LongArray
}

// IsArray returns true for the packed array kinds ByteArray, IntArray and LongArray.
func (t Tag) IsArray() bool {
	return t == ByteArray || t == IntArray || t == LongArray
}

// ArrayElem returns the element kind of a packed array tag, or End if t is not an array.
func (t Tag) ArrayElem() Tag {
	switch t {
	case ByteArray:
		return Byte
	case IntArray:
		return Int
	case LongArray:
		return Long
	}
	return End
}

func (t Tag) String() string {
	if t.Valid() {
		return names[t]
	}
	return "Unknown"
}

// Parse returns the tag with the given name. Matching is case-insensitive.
func Parse(s string) (Tag, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return Tag(i), nil
		}
	}
	return End, errors.E("tag.Parse", errors.K.Invalid, "reason", "unknown tag", "tag", s)
}
