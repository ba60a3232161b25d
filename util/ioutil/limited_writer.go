package ioutil

import (
	"io"

	"github.com/eluv-io/errors-go"
)

// LimitedWriter is a writer that limits the number of bytes that can be written to it. Any calls to Write will fail if
// the limit would be exceeded if the full byte slice was written (no bytes will be written in that case).
type LimitedWriter struct {
	Writer  io.Writer
	Limit   int64
	Written int64
}

// NewLimitedWriter creates a LimitedWriter with the given limit. A limit <= 0 disables the check.
func NewLimitedWriter(w io.Writer, limit int64) *LimitedWriter {
	return &LimitedWriter{
		Writer: w,
		Limit:  limit,
	}
}

func (l *LimitedWriter) Write(bts []byte) (n int, err error) {
	written := l.Written + int64(len(bts))
	if l.Limit > 0 && written > l.Limit {
		return 0, errors.E("LimitedWriter.Write", errors.K.Invalid,
			"reason", "output size limit exceeded",
			"limit", l.Limit)
	}
	n, err = l.Writer.Write(bts)
	l.Written += int64(n)
	return n, err
}
