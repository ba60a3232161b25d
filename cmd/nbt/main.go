// nbt inspects and converts NBT files.
//
// Usage:
//
//	nbt dump [flags] FILE
//	nbt convert [flags] IN OUT
//	nbt diff [flags] A B
//
// Compressed input (gzip, zlib, lz4) is detected automatically. diff exits with status 1 if the documents differ.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	err := run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr)
	switch {
	case err == errDiffer:
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}
