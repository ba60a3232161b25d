// Package nbterr defines the categorized error type reported by the NBT codec and the path used to locate failures
// inside a document.
package nbterr

import (
	"fmt"
	"io"

	"github.com/eluv-io/errors-go"
)

// Category classifies an Error.
type Category int

const (
	// Custom is a failure raised by a value producer or consumer.
	Custom Category = iota
	// InvalidData is malformed input bytes.
	InvalidData
	// InvalidInput is a value that cannot be represented in NBT.
	InvalidInput
	// Io is a failure of the underlying reader or writer.
	Io
	// UnexpectedEof is input that ended before the document was complete.
	UnexpectedEof
	// RecursionLimitExceeded is nesting deeper than the configured maximum.
	RecursionLimitExceeded
)

func (c Category) String() string {
	switch c {
	case Custom:
		return "custom"
	case InvalidData:
		return "invalid data"
	case InvalidInput:
		return "invalid input"
	case Io:
		return "io"
	case UnexpectedEof:
		return "unexpected eof"
	case RecursionLimitExceeded:
		return "recursion limit exceeded"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Kind maps the category to the corresponding errors-go kind.
func (c Category) Kind() errors.Kind {
	switch c {
	case InvalidData, InvalidInput, RecursionLimitExceeded:
		return errors.K.Invalid
	case Io, UnexpectedEof:
		return errors.K.IO
	}
	return errors.K.Other
}

////////////////////////////////////////////////////////////////////////////////

type posKind uint8

const (
	posNone posKind = iota
	posPath
	posByte
	posCursor
)

// Position is the best-effort location of a failure: nothing, a path into the value tree, a byte offset into the
// input, or a line and column for text input.
type Position struct {
	kind   posKind
	path   *Path
	offset int64
	line   int
	column int
}

func PathPosition(p *Path) Position {
	return Position{kind: posPath, path: p.Clone()}
}

func BytePosition(offset int64) Position {
	return Position{kind: posByte, offset: offset}
}

func CursorPosition(line, column int) Position {
	return Position{kind: posCursor, line: line, column: column}
}

func (p Position) IsNone() bool {
	return p.kind == posNone
}

// Path returns the path of a path position.
func (p Position) Path() (*Path, bool) {
	if p.kind != posPath {
		return nil, false
	}
	return p.path.Clone(), true
}

// Offset returns the byte offset of a byte position.
func (p Position) Offset() (int64, bool) {
	return p.offset, p.kind == posByte
}

// Cursor returns line and column of a cursor position.
func (p Position) Cursor() (line int, column int, ok bool) {
	return p.line, p.column, p.kind == posCursor
}

func (p Position) String() string {
	switch p.kind {
	case posPath:
		return "path " + p.path.String()
	case posByte:
		return fmt.Sprintf("byte %d", p.offset)
	case posCursor:
		return fmt.Sprintf("line %d column %d", p.line, p.column)
	}
	return ""
}

////////////////////////////////////////////////////////////////////////////////

// Error is the immutable error value of the NBT codec. Operations that refine an error return a new Error.
type Error struct {
	category Category
	message  string
	position Position
	cause    error
}

// New creates an error without position.
func New(c Category, message string) *Error {
	return &Error{category: c, message: message}
}

// Newf creates an error with a formatted message.
func Newf(c Category, format string, args ...interface{}) *Error {
	return New(c, fmt.Sprintf(format, args...))
}

// From converts err to an *Error. An *Error is returned unchanged. io.EOF and io.ErrUnexpectedEOF map to
// UnexpectedEof, anything else to Io, with err kept as the cause. From returns nil for a nil error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &Error{category: UnexpectedEof, message: "unexpected end of input", cause: err}
	}
	return &Error{category: Io, message: err.Error(), cause: err}
}

// Wrap is like From but returns an untyped nil for a nil error, so that it can be returned directly as an error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return From(err)
}

func (e *Error) Category() Category {
	return e.category
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Position() Position {
	return e.position
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() errors.Kind {
	return e.category.Kind()
}

func (e *Error) Error() string {
	if e.position.IsNone() {
		return e.category.String() + ": " + e.message
	}
	return e.category.String() + ": " + e.message + " at " + e.position.String()
}

// WithPosition returns a copy of the error carrying the given position. If the error already has a position, the
// receiver is returned unchanged.
func (e *Error) WithPosition(pos Position) *Error {
	if !e.position.IsNone() {
		return e
	}
	c := *e
	c.position = pos
	return &c
}

// AttachPath converts err with From and attaches a snapshot of the path unless a position is already present.
func AttachPath(err error, p *Path) error {
	if err == nil {
		return nil
	}
	e := From(err)
	if !e.position.IsNone() {
		return e
	}
	return e.WithPosition(PathPosition(p))
}

// AttachOffset converts err with From and attaches the byte offset unless a position is already present.
func AttachOffset(err error, offset int64) error {
	if err == nil {
		return nil
	}
	return From(err).WithPosition(BytePosition(offset))
}

// CategoryOf returns the category of err, or Custom if err is not an *Error.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.category
	}
	return Custom
}

// Is reports whether err is an *Error of the given category.
func Is(err error, c Category) bool {
	var e *Error
	return errors.As(err, &e) && e.category == c
}

// InvalidSeq is the error for a sequence element whose kind differs from the kind committed by the first element.
func InvalidSeq(actual, expected fmt.Stringer) *Error {
	return Newf(InvalidInput, "inhomogeneous sequence: found %s, expected %s", actual, expected)
}

// InvalidRoot is the error for a document root of a kind the dialect does not permit.
func InvalidRoot(actual fmt.Stringer) *Error {
	return Newf(InvalidInput, "invalid root type %s", actual)
}

// RecursionLimit is the error for nesting beyond the maximum depth.
func RecursionLimit(max int) *Error {
	return Newf(RecursionLimitExceeded, "nesting exceeds maximum depth %d", max)
}

// Unsupported is the error for a Go value or key kind without NBT representation.
func Unsupported(what, role string) *Error {
	return Newf(InvalidInput, "NBT does not support %s %s", what, role)
}

// AsCustom converts an error raised by a value producer or consumer to an *Error of category Custom. An *Error is
// returned unchanged.
func AsCustom(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{category: Custom, message: err.Error(), cause: err}
}
