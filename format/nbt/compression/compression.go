// Package compression wraps NBT documents in the compression formats found in Minecraft files: gzip for level and
// player data, zlib and LZ4 for region chunks.
package compression

import (
	"bufio"
	"io"
	"strings"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

var log = elog.Get("/nbt/compression")

// Type identifies a compression format. The values match the compression ids of region file chunk headers.
type Type uint8

const (
	GZip Type = 1
	Zlib Type = 2
	None Type = 3
	LZ4  Type = 4
)

var names = map[Type]string{
	GZip: "gzip",
	Zlib: "zlib",
	None: "none",
	LZ4:  "lz4",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "unknown"
}

func (t Type) Valid() bool {
	_, ok := names[t]
	return ok
}

// Parse returns the type with the given name.
func Parse(name string) (Type, error) {
	for t, n := range names {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return None, errors.E("compression.Parse", errors.K.Invalid,
		"reason", "unknown compression type",
		"name", name)
}

// PeekLen is the number of leading bytes examined by Detect.
const PeekLen = 4

var (
	gzipMagic = []byte{0x1F, 0x8B}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Detect determines the compression of a stream from its first bytes. Streams that match no known header are
// reported as None.
func Detect(peek []byte) Type {
	switch {
	case hasPrefix(peek, gzipMagic):
		return GZip
	case hasPrefix(peek, lz4Magic):
		return LZ4
	case isZlibHeader(peek):
		return Zlib
	}
	return None
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, c := range prefix {
		if b[i] != c {
			return false
		}
	}
	return true
}

// isZlibHeader checks for a deflate CMF byte with a window of at most 32K and a matching FCHECK.
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	return cmf&0x0F == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// NewReader returns a reader decompressing r with the given type.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	e := errors.Template("compression.NewReader", errors.K.Invalid, "type", t)
	switch t {
	case None:
		return io.NopCloser(r), nil
	case GZip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, e(err)
		}
		return zr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, e(err)
		}
		return zr, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, e("reason", "unknown compression type")
}

// DetectReader detects the compression of r and returns a reader of the decompressed data.
func DetectReader(r io.Reader) (Type, io.ReadCloser, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(PeekLen)
	if err != nil && err != io.EOF {
		return None, nil, errors.E("compression.DetectReader", errors.K.IO, err)
	}
	t := Detect(peek)
	if log.IsDebug() {
		log.Debug("detected compression", "type", t)
	}
	rc, err := NewReader(br, t)
	if err != nil {
		return None, nil, err
	}
	return t, rc, nil
}

// NewWriter returns a writer compressing to w with the given type. The writer must be closed to flush the
// compressed stream; closing does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case GZip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, errors.E("compression.NewWriter", errors.K.Invalid,
		"reason", "unknown compression type",
		"type", t)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
