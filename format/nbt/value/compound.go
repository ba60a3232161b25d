package value

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// Compound is a string-keyed map of values that preserves insertion order. Setting an existing key replaces its
// value in place. The zero value is an empty compound ready to use.
type Compound struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{m: orderedmap.New[string, Value]()}
}

func (c *Compound) Tag() tag.Tag { return tag.Compound }

func (c *Compound) init() {
	if c.m == nil {
		c.m = orderedmap.New[string, Value]()
	}
}

// Set stores v under key and returns the previous value if there was one. It panics if v is nil.
func (c *Compound) Set(key string, v Value) (prev Value, replaced bool) {
	if v == nil {
		panic("compound: nil value for key " + key)
	}
	c.init()
	return c.m.Set(key, v)
}

// Get returns the value stored under key.
func (c *Compound) Get(key string) (Value, bool) {
	if c.m == nil {
		return nil, false
	}
	return c.m.Get(key)
}

// Has returns true if key is present.
func (c *Compound) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key and returns its value.
func (c *Compound) Delete(key string) (Value, bool) {
	if c.m == nil {
		return nil, false
	}
	return c.m.Delete(key)
}

func (c *Compound) Len() int {
	if c.m == nil {
		return 0
	}
	return c.m.Len()
}

// Keys returns the keys in insertion order.
func (c *Compound) Keys() []string {
	keys := make([]string, 0, c.Len())
	c.Range(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (c *Compound) Range(fn func(key string, v Value) bool) {
	if c.m == nil {
		return
	}
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy.
func (c *Compound) Clone() *Compound {
	res := NewCompound()
	c.Range(func(key string, v Value) bool {
		res.m.Set(key, Clone(v))
		return true
	})
	return res
}
