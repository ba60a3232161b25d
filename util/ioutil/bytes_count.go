// Package ioutil provides reader and writer wrappers used by the NBT codec and its tests.
package ioutil

import (
	"bufio"
	"io"
)

var (
	_ io.Reader     = (*CountingByteReader)(nil)
	_ io.ByteReader = (*CountingByteReader)(nil)
)

// CountingByteReader is a byte-oriented reader that counts the bytes consumed through it. Readers that already
// implement io.ByteReader are used directly; others are buffered, in which case the wrapped reader may be read ahead of
// the reported offset.
type CountingByteReader struct {
	rd     byteReader
	offset int64
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// NewCountingByteReader wraps the given reader.
func NewCountingByteReader(r io.Reader) *CountingByteReader {
	if cr, ok := r.(*CountingByteReader); ok {
		return cr
	}
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &CountingByteReader{rd: br}
}

func (c *CountingByteReader) Read(p []byte) (int, error) {
	n, err := c.rd.Read(p)
	c.offset += int64(n)
	return n, err
}

func (c *CountingByteReader) ReadByte() (byte, error) {
	b, err := c.rd.ReadByte()
	if err == nil {
		c.offset++
	}
	return b, err
}

// Offset returns the number of bytes consumed so far.
func (c *CountingByteReader) Offset() int64 {
	return c.offset
}
