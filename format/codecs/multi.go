package codecs

import (
	"bytes"
	"io"

	"github.com/eluv-io/errors-go"
	mc "github.com/multiformats/go-multicodec"

	"github.com/eluv-io/nbt-go/format/nbt/value"
)

// MultiCodec is a Codec producing and consuming self-describing encodings. The encoder writes a multicodec header
// with the codec's path before the first object, the decoder reads the header and verifies that it matches.
//
// Use a MuxCodec in order to decode the output of any of several multicodecs.
type MultiCodec interface {
	mc.Multicodec
	Path() string
}

// NewMultiCodec creates a MultiCodec for the given codec, identified by path, e.g. "/nbt/be".
func NewMultiCodec(codec Codec, path string) MultiCodec {
	return &multiCodec{
		codec:  codec,
		path:   path,
		header: mc.Header([]byte(path)),
	}
}

type multiCodec struct {
	codec  Codec
	path   string
	header []byte
}

func (m *multiCodec) Header() []byte {
	return m.header
}

func (m *multiCodec) Path() string {
	return m.path
}

func (m *multiCodec) Encoder(w io.Writer) mc.Encoder {
	return &multiEncoder{
		writer:  w,
		encoder: m.codec.Encoder(w),
		header:  m.header,
	}
}

func (m *multiCodec) Decoder(r io.Reader) mc.Decoder {
	return &multiDecoder{
		reader:  r,
		decoder: m.codec.Decoder(r),
		header:  m.header,
	}
}

////////////////////////////////////////////////////////////////////////////////

type multiEncoder struct {
	writer        io.Writer
	encoder       Encoder
	header        []byte
	headerWritten bool
}

func (e *multiEncoder) writeHeader() error {
	if !e.headerWritten {
		if _, err := e.writer.Write(e.header); err != nil {
			return errors.E("multiEncoder.writeHeader", errors.K.IO, err)
		}
		e.headerWritten = true
	}
	return nil
}

func (e *multiEncoder) Encode(obj interface{}) error {
	err := e.writeHeader()
	if err == nil {
		err = e.encoder.Encode(obj)
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////

type multiDecoder struct {
	reader     io.Reader
	decoder    Decoder
	header     []byte
	headerRead bool
}

func (d *multiDecoder) readHeader() error {
	if !d.headerRead {
		hdr, err := mc.ReadHeader(d.reader)
		if err != nil {
			return errors.E("multiDecoder.readHeader", errors.K.Invalid, err,
				"reason", "failed to read header")
		}
		if !bytes.Equal(hdr, d.header) {
			return errors.E("multiDecoder.readHeader", errors.K.Invalid,
				"reason", "invalid header",
				"expected", string(mc.HeaderPath(d.header)),
				"actual", string(mc.HeaderPath(hdr)))
		}
		d.headerRead = true
	}
	return nil
}

func (d *multiDecoder) Decode(obj interface{}) error {
	err := d.readHeader()
	if err == nil {
		err = d.decoder.Decode(obj)
	}
	return err
}

// DecodeNamed decodes the next NBT document with its root name. It fails if the wrapped codec is not an NBT codec.
func (d *multiDecoder) DecodeNamed() (string, value.Value, error) {
	if err := d.readHeader(); err != nil {
		return "", nil, err
	}
	nd, ok := d.decoder.(NamedDecoder)
	if !ok {
		return "", nil, errors.E("multiDecoder.DecodeNamed", errors.K.Invalid,
			"reason", "codec does not decode named documents",
			"path", string(mc.HeaderPath(d.header)))
	}
	return nd.DecodeNamed()
}
