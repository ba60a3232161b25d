package snbt

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/eluv-io/nbt-go/format/nbt/emit"
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
	"github.com/eluv-io/nbt-go/format/nbt/tag"
)

// Emitter is an emit.Emitter writing SNBT text.
type Emitter struct {
	w     io.Writer
	opts  options
	stack []level
	buf   []byte
}

type level struct {
	hasValue bool
	inline   bool
}

var _ emit.Emitter = (*Emitter)(nil)

// NewEmitter creates an emitter writing to w. Output is unbuffered.
func NewEmitter(w io.Writer, opts ...Option) *Emitter {
	return newEmitter(w, newOptions(opts))
}

func newEmitter(w io.Writer, o options) *Emitter {
	return &Emitter{
		w:    w,
		opts: o,
		buf:  make([]byte, 0, 64),
	}
}

func (e *Emitter) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return nbterr.Wrap(err)
}

func (e *Emitter) flushBuf() error {
	_, err := e.w.Write(e.buf)
	return nbterr.Wrap(err)
}

func (e *Emitter) top() *level {
	return &e.stack[len(e.stack)-1]
}

func (e *Emitter) newline(depth int) error {
	if !e.opts.pretty {
		return nil
	}
	return e.write("\n" + strings.Repeat(e.opts.indent, depth))
}

func (e *Emitter) EmitBool(v bool) error {
	return e.write(strconv.FormatBool(v))
}

func (e *Emitter) emitInt(v int64, suffix string) error {
	e.buf = strconv.AppendInt(e.buf[:0], v, 10)
	e.buf = append(e.buf, suffix...)
	return e.flushBuf()
}

func (e *Emitter) EmitByte(v int8) error   { return e.emitInt(int64(v), "b") }
func (e *Emitter) EmitShort(v int16) error { return e.emitInt(int64(v), "s") }
func (e *Emitter) EmitInt(v int32) error   { return e.emitInt(int64(v), "") }
func (e *Emitter) EmitLong(v int64) error  { return e.emitInt(v, "L") }

func (e *Emitter) EmitFloat(v float32) error {
	e.buf = appendFloat(e.buf[:0], float64(v), 32)
	e.buf = append(e.buf, 'f')
	return e.flushBuf()
}

func (e *Emitter) EmitDouble(v float64) error {
	e.buf = appendFloat(e.buf[:0], v, 64)
	e.buf = append(e.buf, 'd')
	return e.flushBuf()
}

func (e *Emitter) EmitString(v string) error {
	e.buf = appendQuoted(e.buf[:0], v)
	return e.flushBuf()
}

func (e *Emitter) BeginSeq(kind emit.SeqKind, _ int) error {
	prefix := "["
	switch kind.Brand {
	case tag.ByteArray:
		prefix = "[B;"
	case tag.IntArray:
		prefix = "[I;"
	case tag.LongArray:
		prefix = "[L;"
	}
	e.stack = append(e.stack, level{inline: kind.Brand.IsArray()})
	return e.write(prefix)
}

func (e *Emitter) BeforeElement() error {
	l := e.top()
	if l.inline {
		switch {
		case l.hasValue && e.opts.pretty:
			return e.write(", ")
		case l.hasValue:
			return e.write(",")
		case e.opts.pretty:
			return e.write(" ")
		}
		return nil
	}
	if l.hasValue {
		if err := e.write(","); err != nil {
			return err
		}
	}
	return e.newline(len(e.stack))
}

func (e *Emitter) AfterElement() error {
	e.top().hasValue = true
	return nil
}

func (e *Emitter) EndSeq() error {
	return e.end("]")
}

func (e *Emitter) BeginMap() error {
	e.stack = append(e.stack, level{})
	return e.write("{")
}

func (e *Emitter) BeforeKey(tag.Tag) error {
	if e.top().hasValue {
		if err := e.write(","); err != nil {
			return err
		}
	}
	return e.newline(len(e.stack))
}

func (e *Emitter) EmitKey(key string) error {
	if e.opts.quoteKeys || needsQuotes(key) {
		e.buf = appendQuoted(e.buf[:0], key)
		return e.flushBuf()
	}
	return e.write(key)
}

func (e *Emitter) AfterKey() error {
	return nil
}

func (e *Emitter) BeforeValue() error {
	if e.opts.pretty {
		return e.write(": ")
	}
	return e.write(":")
}

func (e *Emitter) AfterValue() error {
	e.top().hasValue = true
	return nil
}

func (e *Emitter) EndMap() error {
	return e.end("}")
}

func (e *Emitter) end(closing string) error {
	l := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if l.hasValue && !l.inline {
		if err := e.newline(len(e.stack)); err != nil {
			return err
		}
	}
	return e.write(closing)
}

////////////////////////////////////////////////////////////////////////////////

func appendFloat(dst []byte, v float64, bits int) []byte {
	switch {
	case math.IsInf(v, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(v, -1):
		return append(dst, "-Infinity"...)
	case math.IsNaN(v):
		return append(dst, "NaN"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'g', -1, bits)
	for _, c := range dst[start:] {
		if c == '.' || c == 'e' {
			return dst
		}
	}
	return append(dst, ".0"...)
}

// needsQuotes reports whether key cannot be written bare.
func needsQuotes(key string) bool {
	if key == "" {
		return true
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '+', c == '-', c == '.', c == '_':
		default:
			return true
		}
	}
	return false
}

const hex = "0123456789abcdef"

// appendQuoted appends s in double quotes with Java string escapes. Characters outside printable ASCII are written as
// \uXXXX, supplementary characters as an escaped surrogate pair.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '\b':
			dst = append(dst, `\b`...)
		case '\t':
			dst = append(dst, `\t`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\f':
			dst = append(dst, `\f`...)
		case '\r':
			dst = append(dst, `\r`...)
		case '"':
			dst = append(dst, `\"`...)
		case '\\':
			dst = append(dst, `\\`...)
		default:
			switch {
			case r >= 0x20 && r <= 0x7E:
				dst = append(dst, byte(r))
			case r > 0xFFFF:
				hi, lo := utf16.EncodeRune(r)
				dst = appendUnicode(appendUnicode(dst, hi), lo)
			default:
				dst = appendUnicode(dst, r)
			}
		}
	}
	return append(dst, '"')
}

func appendUnicode(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u', hex[r>>12&0xF], hex[r>>8&0xF], hex[r>>4&0xF], hex[r&0xF])
}
