// Package snbt writes values in the stringified NBT text notation used by Minecraft commands:
//
//	{name:"abc",pos:[I;1,2,3],scale:1.5f,tags:["a","b"]}
//
// The compact form has no whitespace. The pretty form puts compound entries and list elements on their own lines
// and keeps packed arrays on one line.
package snbt

import (
	"bufio"
	"bytes"
	"io"

	"github.com/eluv-io/nbt-go/format/nbt/emit"
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
)

const defaultIndent = "  "

type options struct {
	pretty    bool
	indent    string
	quoteKeys bool
	maxDepth  int
}

type Option func(*options)

// OptPretty selects the multi-line form, indented with two spaces per level.
func OptPretty() Option {
	return func(o *options) {
		o.pretty = true
	}
}

// OptIndent selects the multi-line form with the given indentation per level.
func OptIndent(indent string) Option {
	return func(o *options) {
		o.pretty = true
		o.indent = indent
	}
}

// OptQuoteKeys quotes all compound keys. By default only keys with characters other than ASCII letters, digits and
// "+-._" are quoted.
func OptQuoteKeys() Option {
	return func(o *options) {
		o.quoteKeys = true
	}
}

// OptMaxDepth limits the nesting of the written value, see emit.OptMaxDepth.
func OptMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

func newOptions(opts []Option) options {
	o := options{indent: defaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Write writes v in SNBT to w. v may be a value.Value, an emit.Producer or any Go value supported by emit.Reflect.
// Any kind of value may be written at the top level.
func Write(w io.Writer, v interface{}, opts ...Option) error {
	o := newOptions(opts)
	bw := bufio.NewWriter(w)
	em := newEmitter(bw, o)
	if err := emit.Run(em, emit.Reflect(v), emit.OptMaxDepth(o.maxDepth)); err != nil {
		return err
	}
	return nbterr.Wrap(bw.Flush())
}

// ToString returns the compact SNBT form of v.
func ToString(v interface{}, opts ...Option) (string, error) {
	buf := &bytes.Buffer{}
	if err := Write(buf, v, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToPrettyString returns the pretty SNBT form of v.
func ToPrettyString(v interface{}, opts ...Option) (string, error) {
	return ToString(v, append([]Option{OptPretty()}, opts...)...)
}

// QuoteKey returns key as written for a compound key: bare if possible, quoted otherwise.
func QuoteKey(key string) string {
	if needsQuotes(key) {
		return string(appendQuoted(nil, key))
	}
	return key
}
