package nbt

import (
	"github.com/eluv-io/nbt-go/format/nbt/emit"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
)

type options struct {
	maxDepth  int
	listRoot  bool
	nameless  bool
	maxOutput int64
}

// Option configures encoding and decoding.
type Option func(*options)

// OptMaxDepth limits the nesting of lists, arrays and compounds. Values <= 0 select emit.DefaultMaxDepth.
func OptMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// OptListRoot permits a List as root value. Only the varint dialect supports list roots, the option is ignored for
// the fixed-width dialects.
func OptListRoot() Option {
	return func(o *options) {
		o.listRoot = true
	}
}

// OptNameless omits the root name: the root tag is directly followed by the root payload.
func OptNameless() Option {
	return func(o *options) {
		o.nameless = true
	}
}

// OptMaxOutput limits the number of bytes written by an encoder. Values <= 0 disable the limit.
func OptMaxOutput(n int64) Option {
	return func(o *options) {
		o.maxOutput = n
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth <= 0 {
		o.maxDepth = emit.DefaultMaxDepth
	}
	return o
}

func (o options) allowListRoot(d wire.Dialect) bool {
	return o.listRoot && d == wire.Varint
}
