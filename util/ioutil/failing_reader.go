package ioutil

import (
	"fmt"
	"io"

	"github.com/eluv-io/errors-go"
)

var (
	_ io.Reader = (*FailingReader)(nil)
	_ io.Writer = (*FailingWriter)(nil)
)

// FailingReader is a test utility that fails after reading a given bytes count.
type FailingReader struct {
	io.Reader
	failAt     int64
	bytesCount int64
	err        error
}

// NewFailingReader wraps the given io.Reader and fails after having read the given bytes count. The returned failure
// can be provided via the optional error parameter.
func NewFailingReader(r io.Reader, failAt int64, err ...error) *FailingReader {
	return &FailingReader{
		Reader: r,
		failAt: failAt,
		err:    firstErr(err, "read"),
	}
}

func (r *FailingReader) Read(p []byte) (int, error) {
	remaining := r.failAt - r.bytesCount
	if remaining <= 0 {
		return 0, r.err
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := r.Reader.Read(p)
	r.bytesCount += int64(n)
	return n, err
}

// FailingWriter is a test utility that fails once a given bytes count would be exceeded. Bytes up to the limit are
// passed on to the wrapped writer.
type FailingWriter struct {
	io.Writer
	failAt  int64
	written int64
	err     error
}

// NewFailingWriter wraps the given io.Writer and fails when a write would exceed the given bytes count.
func NewFailingWriter(w io.Writer, failAt int64, err ...error) *FailingWriter {
	return &FailingWriter{
		Writer: w,
		failAt: failAt,
		err:    firstErr(err, "write"),
	}
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	remaining := w.failAt - w.written
	if int64(len(p)) <= remaining {
		n, err := w.Writer.Write(p)
		w.written += int64(n)
		return n, err
	}
	n := 0
	if remaining > 0 {
		n, _ = w.Writer.Write(p[:remaining])
		w.written += int64(n)
	}
	return n, w.err
}

func firstErr(errs []error, op string) error {
	if len(errs) > 0 && errs[0] != nil {
		return errs[0]
	}
	return errors.E(op, errors.K.IO, "reason", fmt.Sprintf("failing %s for test", op))
}
