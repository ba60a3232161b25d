package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/eluv-io/nbt-go/format/codecs"
	"github.com/eluv-io/nbt-go/format/nbt"
	"github.com/eluv-io/nbt-go/format/nbt/compression"
	"github.com/eluv-io/nbt-go/format/nbt/value"
	"github.com/eluv-io/nbt-go/format/nbt/wire"
	"github.com/eluv-io/nbt-go/util/ioutil"
)

var log = elog.Get("/nbt/cmd")

type command struct {
	name  string
	usage string
	run   func(env *env, args []string) error
}

var commands = map[string]*command{
	"dump":    {"dump", "dump [flags] FILE", runDump},
	"convert": {"convert", "convert [flags] IN OUT", runConvert},
	"diff":    {"diff", "diff [flags] A B", runDiff},
}

// env is the environment of a command invocation.
type env struct {
	cmd    *command
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, fs afero.Fs, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.E("nbt", errors.K.Invalid, "reason", "missing command")
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stdout)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(stderr)
		return errors.E("nbt", errors.K.Invalid, "reason", "unknown command", "command", args[0])
	}
	return cmd.run(&env{cmd: cmd, fs: fs, stdout: stdout, stderr: stderr}, args[1:])
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Usage:")
	for _, name := range names {
		fmt.Fprintf(w, "  nbt %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "\nRun 'nbt COMMAND --help' for the flags of a command.")
}

////////////////////////////////////////////////////////////////////////////////

// docFlags are the flags shared by all commands that read documents.
type docFlags struct {
	dialect  string
	framed   bool
	nameless bool
	maxDepth int
	logLevel string
}

func newFlagSet(env *env, df *docFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(env.cmd.name, pflag.ContinueOnError)
	fs.SetOutput(env.stderr)
	fs.StringVarP(&df.dialect, "dialect", "d", "be", "wire dialect: be, le or varint")
	fs.BoolVar(&df.framed, "framed", false, "input starts with a multicodec header selecting the dialect")
	fs.BoolVar(&df.nameless, "nameless", false, "documents have no root name")
	fs.IntVar(&df.maxDepth, "max-depth", 0, "maximum nesting depth (0 for the default)")
	fs.StringVar(&df.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintf(env.stderr, "Usage: nbt %s\n\nFlags:\n", env.cmd.usage)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses the command line and configures logging. It returns false if only help was requested.
func parse(fs *pflag.FlagSet, df *docFlags, args []string, nargs int) (bool, error) {
	e := errors.Template("nbt "+fs.Name(), errors.K.Invalid)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return false, nil
		}
		return false, e(err)
	}
	if fs.NArg() != nargs {
		fs.Usage()
		return false, e("reason", "wrong number of arguments", "expected", nargs, "actual", fs.NArg())
	}
	elog.SetDefault(&elog.Config{
		Level:   df.logLevel,
		Handler: "text",
	})
	return true, nil
}

func parseDialect(name string) (wire.Dialect, error) {
	d, ok := wire.ByName(name)
	if !ok {
		return nil, errors.E("parseDialect", errors.K.Invalid, "reason", "unknown dialect", "dialect", name)
	}
	return d, nil
}

func (df *docFlags) options() []nbt.Option {
	opts := []nbt.Option{nbt.OptMaxDepth(df.maxDepth), nbt.OptListRoot()}
	if df.nameless {
		opts = append(opts, nbt.OptNameless())
	}
	return opts
}

// document is a decoded input file.
type document struct {
	name        string
	root        value.Value
	dialect     wire.Dialect
	compression compression.Type
}

func readDocument(env *env, path string, df *docFlags) (*document, error) {
	e := errors.Template("readDocument", errors.K.Invalid, "path", path)
	d, err := parseDialect(df.dialect)
	if err != nil {
		return nil, e(err)
	}

	f, err := env.fs.Open(path)
	if err != nil {
		return nil, e(errors.K.IO, err)
	}
	defer errors.Ignore(f.Close)

	typ, r, err := compression.DetectReader(f)
	if err != nil {
		return nil, e(err)
	}
	defer errors.Ignore(r.Close)

	counter := ioutil.NewCountingByteReader(r)
	doc := &document{dialect: d, compression: typ}
	if df.framed {
		// the header selects the dialect
		dec := codecs.NewNbtMuxCodec(df.options()...).NewDecoder(counter)
		doc.name, doc.root, err = dec.DecodeNamed()
		if err == nil {
			doc.dialect, _ = codecs.DialectOf(dec.Path())
		}
	} else {
		doc.name, doc.root, err = nbt.NewDecoder(counter, d, df.options()...).DecodeNamed()
	}
	if err != nil {
		return nil, e(err, "offset", counter.Offset())
	}
	log.Debug("read document", "path", path, "dialect", doc.dialect.Name(), "compression", typ,
		"bytes", counter.Offset())
	return doc, nil
}
