package codecs

import (
	"io"

	mc "github.com/multiformats/go-multicodec"
)

// Codec creates encoders and decoders of one encoding.
type Codec interface {
	// Decoder returns a decoder reading from r.
	Decoder(r io.Reader) Decoder

	// Encoder returns an encoder writing to w.
	Encoder(w io.Writer) Encoder
}

// Encoder encodes objects to an underlying io.Writer.
type Encoder = mc.Encoder

// Decoder decodes objects from an underlying io.Reader.
type Decoder = mc.Decoder

////////////////////////////////////////////////////////////////////////////////

type CreateEncoderFn func(w io.Writer) Encoder
type CreateDecoderFn func(io.Reader) Decoder

// NewCodec creates a new Codec from an encoder and a decoder creation function.
func NewCodec(enc CreateEncoderFn, dec CreateDecoderFn) Codec {
	return &codec{encoderFn: enc, decoderFn: dec}
}

type codec struct {
	encoderFn CreateEncoderFn
	decoderFn CreateDecoderFn
}

func (c *codec) Decoder(r io.Reader) Decoder {
	return c.decoderFn(r)
}

func (c *codec) Encoder(w io.Writer) Encoder {
	return c.encoderFn(w)
}
