// Package aferoutil provides file helpers on top of afero file systems.
package aferoutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/eluv-io/errors-go"
	"github.com/spf13/afero"
)

// MoveFile moves the given source file to the destination path, creating the destination directory if needed. The
// file is renamed if possible, otherwise its data is copied and the source removed.
func MoveFile(fs afero.Fs, src, dst string) error {
	e := errors.Template("MoveFile", errors.K.Invalid, "src", src, "dst", dst)
	if src == "" {
		return e("reason", "empty source path")
	}
	if dst == "" {
		return e("reason", "empty destination path")
	}

	stat, err := fs.Stat(src)
	if err != nil {
		return e(errors.K.IO, err, "reason", "cannot stat source")
	}
	if stat.IsDir() {
		return e("reason", "source is a directory")
	}
	if err = ensureDir(fs, filepath.Dir(dst)); err != nil {
		return e(err)
	}

	err = fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return e(errors.K.NotExist, err)
	}

	if err = copyFile(fs, src, dst); err != nil {
		return e(errors.K.IO, err)
	}
	if err = fs.Remove(src); err != nil {
		return e(errors.K.IO, err, "reason", "failed to remove source file")
	}
	return nil
}

// WriteFile creates the file at path with the data written by fn. The data is first written to a temporary file next
// to path, which replaces path only once fn and all writes succeeded.
func WriteFile(fs afero.Fs, path string, fn func(w io.Writer) error) (err error) {
	e := errors.Template("WriteFile", errors.K.IO, "path", path)
	if err = ensureDir(fs, filepath.Dir(path)); err != nil {
		return e(err)
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err != nil {
		return e(err, "reason", "failed to create temp file")
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpPath)
		}
	}()

	err = fn(tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = e(cerr, "reason", "failed to close temp file")
	}
	if err != nil {
		return err
	}
	return MoveFile(fs, tmpPath, path)
}

func ensureDir(fs afero.Fs, dir string) error {
	stat, err := fs.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.E("ensureDir", errors.K.IO, err, "reason", "failed to stat dir", "dir", dir)
		}
		if err = fs.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.E("ensureDir", errors.K.IO, err, "reason", "failed to create dir", "dir", dir)
		}
		return nil
	}
	if !stat.IsDir() {
		return errors.E("ensureDir", errors.K.Invalid, "reason", "not a directory", "dir", dir)
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	fdSrc, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer errors.Ignore(fdSrc.Close)

	fdDst, err := fs.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(fdDst, fdSrc)
	if cerr := fdDst.Close(); err == nil {
		err = cerr
	}
	return err
}
