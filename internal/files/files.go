// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package files

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

const dirPerm = 0o755

var (
	// ErrNotFile is returned when a path is not an existing regular file.
	ErrNotFile = errors.New("not a file")
	// ErrNotDir is returned when a path is not an existing directory.
	ErrNotDir = errors.New("not a directory")
	// ErrFileExists is returned when a path should not exist but does.
	ErrFileExists = errors.New("file exists")
	// ErrConcatenate is returned when files could not be concatenated.
	ErrConcatenate = errors.New("could not concatenate files")
)

// InitDir creates path and any missing parents.
func InitDir(path string) error {
	return FsFactory().MkdirAll(path, dirPerm)
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := FsFactory().Stat(path)
	return err == nil && !info.IsDir()
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	ok, err := afero.IsDir(FsFactory(), path)
	return err == nil && ok
}

// AssertIsFile returns ErrNotFile unless every path is a file.
func AssertIsFile(paths ...string) error {
	for _, p := range paths {
		if !IsFile(p) {
			return fmt.Errorf("%w: %s", ErrNotFile, p)
		}
	}

	return nil
}

// AssertIsDir returns ErrNotDir unless every path is a directory.
func AssertIsDir(paths ...string) error {
	for _, p := range paths {
		if !IsDir(p) {
			return fmt.Errorf("%w: %s", ErrNotDir, p)
		}
	}

	return nil
}

// AssertIsNotFile returns ErrFileExists if any path is a file.
func AssertIsNotFile(paths ...string) error {
	for _, p := range paths {
		if IsFile(p) {
			return fmt.Errorf("%w: %s", ErrFileExists, p)
		}
	}

	return nil
}

// Concatenate writes srcs to dst in order, streaming each one.
// Compressed members can be concatenated this way: a gzip stream may hold several members.
func Concatenate(dst string, srcs ...string) (err error) {
	if err := AssertIsFile(srcs...); err != nil {
		return errors.Join(ErrConcatenate, err)
	}

	fs := FsFactory()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Join(ErrConcatenate, err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Join(ErrConcatenate, cerr)
		}
	}()

	for _, src := range srcs {
		if err := appendFile(fs, out, src); err != nil {
			return errors.Join(ErrConcatenate, err)
		}
	}

	return nil
}

func appendFile(fs afero.Fs, out io.Writer, src string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	_, err = io.Copy(out, in)

	return err
}
