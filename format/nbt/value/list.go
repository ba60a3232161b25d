package value

import (
	"fmt"

	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// MismatchError is returned when a value of a second kind is added to a list. It hands the rejected value back to
// the caller.
type MismatchError struct {
	Rejected Value
	Expected tag.Tag
}

func (e *MismatchError) Error() string {
	found := "nil"
	if e.Rejected != nil {
		found = e.Rejected.Tag().String()
	}
	return fmt.Sprintf("list element mismatch: found %s, expected %s", found, e.Expected)
}

// List is a homogeneous sequence. A list starts empty with element kind End and adopts the kind of the first value
// added. A list created with ListOf keeps its declared kind while empty. Clear and Truncate keep the element kind.
type List struct {
	elem  tag.Tag
	items []Value
}

// NewList creates an empty list of undetermined element kind.
func NewList() *List {
	return &List{}
}

// ListOf creates an empty list declared to hold values of the given kind.
func ListOf(elem tag.Tag) *List {
	return &List{elem: elem}
}

// NewListFrom creates a list with the given values, failing if they are not all of the same kind.
func NewListFrom(values ...Value) (*List, error) {
	l := NewList()
	if err := l.Append(values...); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *List) Tag() tag.Tag { return tag.List }

// Elem returns the element kind, End for a list whose kind is not determined yet.
func (l *List) Elem() tag.Tag {
	return l.elem
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}

// Get returns the value at index i. It panics if i is out of range.
func (l *List) Get(i int) Value {
	return l.items[i]
}

// Values returns a copy of the list's elements.
func (l *List) Values() []Value {
	return append([]Value(nil), l.items...)
}

// Range calls fn for each element in order until fn returns false.
func (l *List) Range(fn func(i int, v Value) bool) {
	for i, v := range l.items {
		if !fn(i, v) {
			return
		}
	}
}

func (l *List) check(v Value) error {
	if v == nil || (l.elem != tag.End && v.Tag() != l.elem) {
		return &MismatchError{Rejected: v, Expected: l.elem}
	}
	return nil
}

func (l *List) adopt(v Value) {
	if l.elem == tag.End {
		l.elem = v.Tag()
	}
}

// Push appends v. A value of a different kind is rejected with a *MismatchError and the list is left unchanged.
func (l *List) Push(v Value) error {
	if err := l.check(v); err != nil {
		return err
	}
	l.adopt(v)
	l.items = append(l.items, v)
	return nil
}

// Insert inserts v at index i, shifting later elements. It panics if i is out of range [0, Len()].
func (l *List) Insert(i int, v Value) error {
	if i < 0 || i > len(l.items) {
		panic(fmt.Sprintf("list insert index %d out of range [0:%d]", i, len(l.items)))
	}
	if err := l.check(v); err != nil {
		return err
	}
	l.adopt(v)
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	return nil
}

// Set replaces the value at index i. It panics if i is out of range.
func (l *List) Set(i int, v Value) error {
	_ = l.items[i]
	if err := l.check(v); err != nil {
		return err
	}
	l.items[i] = v
	return nil
}

// Append appends all values. If any of them has a different kind, nothing is appended and the first offending value
// is returned in a *MismatchError.
func (l *List) Append(values ...Value) error {
	elem := l.elem
	for _, v := range values {
		if v == nil || (elem != tag.End && v.Tag() != elem) {
			return &MismatchError{Rejected: v, Expected: elem}
		}
		elem = v.Tag()
	}
	l.elem = elem
	l.items = append(l.items, values...)
	return nil
}

// Pop removes and returns the last element.
func (l *List) Pop() (Value, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	v := l.items[len(l.items)-1]
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	return v, true
}

// Remove removes and returns the element at index i, shifting later elements. It panics if i is out of range.
func (l *List) Remove(i int) Value {
	v := l.items[i]
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	return v
}

// SwapRemove removes the element at index i and replaces it with the last element. It panics if i is out of range.
func (l *List) SwapRemove(i int) Value {
	v := l.items[i]
	last := len(l.items) - 1
	l.items[i] = l.items[last]
	l.items[last] = nil
	l.items = l.items[:last]
	return v
}

// Truncate keeps the first n elements. It is a no-op if n >= Len().
func (l *List) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(l.items) {
		return
	}
	for i := n; i < len(l.items); i++ {
		l.items[i] = nil
	}
	l.items = l.items[:n]
}

// Clear removes all elements.
func (l *List) Clear() {
	l.Truncate(0)
}

// Clone returns a deep copy.
func (l *List) Clone() *List {
	c := &List{elem: l.elem, items: make([]Value, len(l.items))}
	for i, v := range l.items {
		c.items[i] = Clone(v)
	}
	return c
}
