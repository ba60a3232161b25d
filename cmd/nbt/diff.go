package main

import (
	"bytes"
	"io"

	"github.com/eluv-io/errors-go"
	"github.com/pmezard/go-difflib/difflib"
)

// errDiffer is returned by the diff command when the documents differ.
var errDiffer = errors.Str("documents differ")

func runDiff(env *env, args []string) error {
	df := &docFlags{}
	var context int
	fs := newFlagSet(env, df)
	fs.IntVarP(&context, "context", "U", 3, "number of context lines")
	if ok, err := parse(fs, df, args, 2); !ok || err != nil {
		return err
	}
	a, b := fs.Arg(0), fs.Arg(1)

	e := errors.Template("diff", errors.K.Invalid, "a", a, "b", b)
	textA, err := prettyText(env, a, df)
	if err != nil {
		return e(err)
	}
	textB, err := prettyText(env, b, df)
	if err != nil {
		return e(err)
	}
	if textA == textB {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(textA),
		B:        difflib.SplitLines(textB),
		FromFile: a,
		ToFile:   b,
		Context:  context,
	})
	if err != nil {
		return e(err)
	}
	if _, err = io.WriteString(env.stdout, diff); err != nil {
		return e(errors.K.IO, err)
	}
	return errDiffer
}

func prettyText(env *env, path string, df *docFlags) (string, error) {
	doc, err := readDocument(env, path, df)
	if err != nil {
		return "", err
	}
	buf := &bytes.Buffer{}
	if err = writePretty(buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
