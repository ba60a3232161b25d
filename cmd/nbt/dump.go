package main

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/eluv-io/errors-go"
	"github.com/ghodss/yaml"

	"github.com/eluv-io/nbt-go/format/bytesize"
	"github.com/eluv-io/nbt-go/format/codecs"
	"github.com/eluv-io/nbt-go/format/nbt/snbt"
	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/util/ioutil"
)

var debugDump = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// formatters render a document in the output formats of the dump command.
var formatters = map[string]func(w io.Writer, doc *document) error{
	"snbt": func(w io.Writer, doc *document) error {
		if err := snbt.Write(w, doc.root); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	},
	"pretty": func(w io.Writer, doc *document) error {
		return writePretty(w, doc)
	},
	"json": func(w io.Writer, doc *document) error {
		return codecs.JsonCodec.Encoder(w).Encode(doc.root)
	},
	"yaml": func(w io.Writer, doc *document) error {
		bts, err := yaml.Marshal(value.ToInterface(doc.root))
		if err != nil {
			return err
		}
		_, err = w.Write(bts)
		return err
	},
	"cbor": func(w io.Writer, doc *document) error {
		return codecs.CborCodec.Encoder(w).Encode(doc.root)
	},
	"debug": func(w io.Writer, doc *document) error {
		debugDump.Fdump(w, value.ToInterface(doc.root))
		return nil
	},
}

func writePretty(w io.Writer, doc *document) error {
	if doc.name != "" {
		if _, err := io.WriteString(w, snbt.QuoteKey(doc.name)+": "); err != nil {
			return err
		}
	}
	if err := snbt.Write(w, doc.root, snbt.OptPretty()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func runDump(env *env, args []string) error {
	df := &docFlags{}
	var format string
	var maxOutput bytesize.Size
	fs := newFlagSet(env, df)
	fs.StringVarP(&format, "format", "f", "pretty", "output format: snbt, pretty, json, yaml, cbor or debug")
	fs.Var(&maxOutput, "max-output", "maximum output size, e.g. 64KB (0 for no limit)")
	if ok, err := parse(fs, df, args, 1); !ok || err != nil {
		return err
	}

	e := errors.Template("dump", errors.K.Invalid, "file", fs.Arg(0))
	formatter, ok := formatters[format]
	if !ok {
		return e("reason", "unknown format", "format", format)
	}
	doc, err := readDocument(env, fs.Arg(0), df)
	if err != nil {
		return e(err)
	}

	w := env.stdout
	if maxOutput > 0 {
		w = ioutil.NewLimitedWriter(w, int64(maxOutput))
	}
	if err = formatter(w, doc); err != nil {
		return e(errors.K.IO, err, "format", format)
	}
	return nil
}
