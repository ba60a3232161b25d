package main

import (
	"io"

	"github.com/eluv-io/errors-go"

	"github.com/eluv-io/nbt-go/format/codecs"
	"github.com/eluv-io/nbt-go/format/nbt"
	"github.com/eluv-io/nbt-go/format/nbt/compression"
	"github.com/eluv-io/nbt-go/util/aferoutil"
)

func runConvert(env *env, args []string) error {
	df := &docFlags{}
	var to, compress, name string
	var framedOut bool
	fs := newFlagSet(env, df)
	fs.StringVarP(&to, "to", "t", "", "output dialect: be, le or varint (default: the input dialect)")
	fs.StringVarP(&compress, "compress", "c", "", "output compression: gzip, zlib, lz4 or none (default: the input compression)")
	fs.StringVarP(&name, "name", "n", "", "root name of the output (default: the input root name)")
	fs.BoolVar(&framedOut, "framed-out", false, "prefix the output with a multicodec header")
	if ok, err := parse(fs, df, args, 2); !ok || err != nil {
		return err
	}
	in, out := fs.Arg(0), fs.Arg(1)

	e := errors.Template("convert", errors.K.Invalid, "in", in, "out", out)
	doc, err := readDocument(env, in, df)
	if err != nil {
		return e(err)
	}
	d := doc.dialect
	if to != "" {
		if d, err = parseDialect(to); err != nil {
			return e(err)
		}
	}

	typ := doc.compression
	if compress != "" {
		if typ, err = compression.Parse(compress); err != nil {
			return e(err)
		}
	}
	if !fs.Changed("name") {
		name = doc.name
	}

	opts := df.options()
	err = aferoutil.WriteFile(env.fs, out, func(w io.Writer) error {
		cw, err := compression.NewWriter(w, typ)
		if err != nil {
			return err
		}
		if framedOut {
			err = codecs.NewMultiCodec(codecs.NbtCodec(d, name, opts...), codecs.NbtMultiCodec(d).Path()).
				Encoder(cw).Encode(doc.root)
		} else {
			err = nbt.Encode(cw, doc.root, name, d, opts...)
		}
		if err != nil {
			_ = cw.Close()
			return err
		}
		return cw.Close()
	})
	if err != nil {
		return e(err)
	}
	log.Info("converted", "in", in, "out", out, "dialect", d.Name(), "compression", typ)
	return nil
}
