package wire

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/eluv-io/nbt-go/format/mutf8"
	"github.com/eluv-io/nbt-go/format/nbt/nbterr"
)

// readChunk is the largest length allocated in one piece by ReadBytes.
const readChunk = 64 * 1024

// EncodeString writes the length prefix and modified UTF-8 bytes of s. s must be valid UTF-8.
func EncodeString(d Dialect, w io.Writer, s string) error {
	if !utf8.ValidString(s) {
		return nbterr.New(nbterr.InvalidInput, "string is not valid UTF-8")
	}
	if mutf8.IsValid(s) {
		if err := d.EncodeStringLen(w, len(s)); err != nil {
			return err
		}
		_, err := io.WriteString(w, s)
		return nbterr.Wrap(err)
	}
	if err := d.EncodeStringLen(w, mutf8.Len(s)); err != nil {
		return err
	}
	return write(w, mutf8.Encode(s))
}

// DecodeString reads a length-prefixed modified UTF-8 string.
func DecodeString(d Dialect, r Reader) (string, error) {
	n, err := d.DecodeStringLen(r)
	if err != nil {
		return "", err
	}
	b, err := ReadBytes(r, n)
	if err != nil {
		return "", err
	}
	s, err := mutf8.Decode(b)
	if err != nil {
		return "", nbterr.New(nbterr.InvalidData, "invalid MUTF-8 data")
	}
	return s, nil
}

// ReadBytes reads exactly n bytes. Large reads grow their buffer with the data actually read rather than allocating n
// bytes up front.
func ReadBytes(r Reader, n int) ([]byte, error) {
	if n <= readChunk {
		b := make([]byte, n)
		if err := read(r, b); err != nil {
			return nil, err
		}
		return b, nil
	}
	buf := bytes.Buffer{}
	buf.Grow(readChunk)
	m, err := io.CopyN(&buf, r, int64(n))
	if err != nil {
		if m < int64(n) && err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, nbterr.Wrap(err)
	}
	return buf.Bytes(), nil
}
