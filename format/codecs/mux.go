package codecs

import (
	"bytes"
	"io"

	"github.com/eluv-io/errors-go"
	"github.com/eluv-io/log-go"
	mc "github.com/multiformats/go-multicodec"

	"github.com/eluv-io/nbt-go/format/nbt/value"
)

var (
	Header []byte
	_      mc.Multicodec = (*MuxCodec)(nil)
	_      NamedDecoder  = (*MuxDecoder)(nil)
)

func init() {
	Header = mc.Header([]byte("/multicodec"))
}

// NewMuxCodec creates a multicodec that muxes between given codecs - see MuxCodec.
func NewMuxCodec(codecs ...mc.Multicodec) *MuxCodec {
	return &MuxCodec{codecs, SelectFirst, false}
}

// SelectCodec is a function that selects the codec to use for encoding a given object.
type SelectCodec func(v interface{}, codecs []mc.Multicodec) mc.Multicodec

// SelectFirst is the default SelectCodec function that selects the first codec given.
func SelectFirst(_ interface{}, codecs []mc.Multicodec) mc.Multicodec {
	if len(codecs) == 0 {
		return nil
	}
	return codecs[0]
}

// SelectPath returns a SelectCodec function choosing the codec with the given multicodec path.
func SelectPath(path string) SelectCodec {
	hdr := mc.Header([]byte(path))
	return func(_ interface{}, codecs []mc.Multicodec) mc.Multicodec {
		for _, c := range codecs {
			if bytes.Equal(hdr, c.Header()) {
				return c
			}
		}
		return nil
	}
}

// MuxCodec is a multicodec that muxes between given codecs. The codec for encoding is chosen with a SelectCodec
// function called for the first object being encoded - per default the first codec in the list is selected. The codec
// for decoding is chosen according to the multicodec header in the data stream.
//
// The multicodec header is written only once at the very beginning even if the same encoder is used for encoding
// multiple objects:
//
//	HEADER|object1|object2|...
//
// Likewise, the decoder expects only a single header and decodes all subsequent objects with the same codec.
//
// Encoders and decoders are NOT thread-safe.
type MuxCodec struct {
	Codecs []mc.Multicodec // codecs to use
	Select SelectCodec     // pick a codec for encoding
	Wrap   bool            // whether to wrap with own header
}

func (c *MuxCodec) Encoder(w io.Writer) mc.Encoder {
	return &muxEncoder{writer: w, mux: c}
}

func (c *MuxCodec) Decoder(r io.Reader) mc.Decoder {
	return c.NewDecoder(r)
}

// NewDecoder returns the decoder of the codec as a *MuxDecoder.
func (c *MuxCodec) NewDecoder(r io.Reader) *MuxDecoder {
	return &MuxDecoder{reader: r, mux: c}
}

func (c *MuxCodec) Header() []byte {
	return Header
}

type muxEncoder struct {
	writer io.Writer
	mux    *MuxCodec
	enc    mc.Encoder
}

// MuxDecoder decodes with the codec selected by the multicodec header at the start of the stream.
type MuxDecoder struct {
	reader io.Reader
	mux    *MuxCodec
	dec    mc.Decoder
	path   string
}

func (c *muxEncoder) Encode(v interface{}) error {
	if c.enc == nil {
		codec := c.mux.Select(v, c.mux.Codecs)
		if codec == nil {
			return errors.E("MuxCodec.Encode", errors.K.NotExist, "reason", "no suitable codec")
		}
		c.enc = codec.Encoder(c.writer)
		if c.mux.Wrap {
			// write multicodec header
			if _, err := c.writer.Write(c.mux.Header()); err != nil {
				return errors.E("MuxCodec.Encode", errors.K.IO, err)
			}
		}
	}

	return c.enc.Encode(v)
}

func (c *MuxDecoder) Decode(v interface{}) error {
	if err := c.selectCodec(); err != nil {
		return err
	}
	return c.dec.Decode(v)
}

// DecodeNamed decodes the next NBT document with its root name. It fails if the selected codec is not an NBT codec.
func (c *MuxDecoder) DecodeNamed() (string, value.Value, error) {
	if err := c.selectCodec(); err != nil {
		return "", nil, err
	}
	nd, ok := c.dec.(NamedDecoder)
	if !ok {
		return "", nil, errors.E("MuxCodec.DecodeNamed", errors.K.Invalid,
			"reason", "codec does not decode named documents",
			"path", c.path)
	}
	return nd.DecodeNamed()
}

// Path returns the multicodec path of the selected codec, e.g. "/nbt/le", or an empty string before the first
// object was decoded.
func (c *MuxDecoder) Path() string {
	return c.path
}

func (c *MuxDecoder) selectCodec() error {
	if c.dec != nil {
		return nil
	}
	e := errors.Template("MuxCodec.Decode", errors.K.Invalid)
	if c.mux.Wrap {
		// read multicodec header
		if err := mc.ConsumeHeader(c.reader, c.mux.Header()); err != nil {
			return e(err)
		}
	}

	// get next header, to select codec
	hdr, err := mc.ReadHeader(c.reader)
	if err != nil {
		return e(err)
	}

	path := string(mc.HeaderPath(hdr))
	codec := c.codecForHeader(hdr)
	if codec == nil {
		return e("reason", "no codec for header", "path", path)
	}
	log.Debug("selected codec", "path", path)

	// "unwind" the read as the selected codec consumes header
	c.dec = codec.Decoder(mc.WrapHeaderReader(hdr, c.reader))
	c.path = path
	return nil
}

func (c *MuxDecoder) codecForHeader(hdr []byte) mc.Multicodec {
	for _, codec := range c.mux.Codecs {
		if bytes.Equal(hdr, codec.Header()) {
			return codec
		}
	}
	return nil
}
