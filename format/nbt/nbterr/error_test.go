package nbterr

import (
	"io"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	p := &Path{}
	require.Equal(t, "/", p.String())

	p.PushName("level")
	p.PushIndex(3)
	p.PushName("a/b~c")
	require.Equal(t, "/level/3/a~1b~0c", p.String())
	require.Equal(t, 3, p.Len())

	p.Pop()
	p.PushUnresolved()
	require.Equal(t, "/level/3/?", p.String())
	require.True(t, p.Segments()[2].IsUnresolved())

	name, ok := p.Segments()[0].Name()
	require.True(t, ok)
	require.Equal(t, "level", name)
	idx, ok := p.Segments()[1].Index()
	require.True(t, ok)
	require.Equal(t, 3, idx)

	p.Pop()
	p.Pop()
	p.Pop()
	p.Pop()
	require.Equal(t, 0, p.Len())
}

func TestAttachPathOnce(t *testing.T) {
	p := NewPath(Name("outer"))
	err := AttachPath(New(InvalidInput, "boom"), p)

	p.PushIndex(1)
	err = AttachPath(err, p)

	var e *Error
	require.True(t, errors.As(err, &e))
	pos, ok := e.Position().Path()
	require.True(t, ok)
	require.Equal(t, "/outer", pos.String())
	require.Equal(t, "invalid input: boom at path /outer", e.Error())
}

func TestAttachDoesNotMutate(t *testing.T) {
	orig := New(InvalidData, "bad")
	withPos := AttachOffset(orig, 12)
	require.True(t, orig.Position().IsNone())

	off, ok := From(withPos).Position().Offset()
	require.True(t, ok)
	require.EqualValues(t, 12, off)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"eof", io.EOF, UnexpectedEof},
		{"unexpected eof", io.ErrUnexpectedEOF, UnexpectedEof},
		{"other", errors.Str("disk on fire"), Io},
		{"nbt error", New(RecursionLimitExceeded, "deep"), RecursionLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := From(tt.err)
			require.Equal(t, tt.want, e.Category())
			require.True(t, Is(e, tt.want))
		})
	}
	require.Nil(t, From(nil))
	require.NoError(t, Wrap(nil))
	require.Nil(t, AttachPath(nil, &Path{}))
}

func TestCategoryKinds(t *testing.T) {
	require.Equal(t, errors.K.Invalid, New(InvalidData, "x").Kind())
	require.Equal(t, errors.K.IO, New(UnexpectedEof, "x").Kind())
	require.Equal(t, errors.K.Other, New(Custom, "x").Kind())
	require.Equal(t, Custom, CategoryOf(errors.Str("plain")))
}

func TestPositions(t *testing.T) {
	line, col, ok := CursorPosition(2, 7).Cursor()
	require.True(t, ok)
	require.Equal(t, 2, line)
	require.Equal(t, 7, col)
	require.Equal(t, "line 2 column 7", CursorPosition(2, 7).String())

	_, ok = BytePosition(3).Path()
	require.False(t, ok)
}
