// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/shell"
	"github.com/matt-FFFFFF/koopa/internal/strutil"
	"github.com/matt-FFFFFF/koopa/internal/which"
	"github.com/spf13/afero"
)

var (
	// ErrDecompress is returned when a file could not be decompressed.
	ErrDecompress = errors.New("could not decompress file")
	// ErrUnsupportedCompression is returned for files without a .gz extension.
	ErrUnsupportedCompression = errors.New("unsupported compression format")
)

// gunzipLookup locates the external gunzip. Tests stub it to force the in-process path.
var gunzipLookup = func() (string, error) {
	return which.Find("gunzip")
}

// Decompress writes the decompressed contents of file next to it, without
// the .gz extension, and returns the new path. The original is kept.
// An existing output is overwritten.
//
// gunzip is run through r when it is on PATH and the filesystem is the
// real one. Otherwise the file is decompressed in-process.
func Decompress(ctx context.Context, r shell.Runner, file string) (string, error) {
	if err := AssertIsFile(file); err != nil {
		return "", errors.Join(ErrDecompress, err)
	}

	if !strings.HasSuffix(file, ".gz") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCompression, file)
	}

	out := strings.TrimSuffix(file, ".gz")

	if _, isOS := FsFactory().(*afero.OsFs); isOS && r != nil {
		if gunzip, err := gunzipLookup(); err == nil {
			ctxlog.Debug(ctx, "decompressing with gunzip", "file", file, "gunzip", gunzip)

			line := strutil.ShellQuote(gunzip) + " -c " + strutil.ShellQuote(file) + " > " + strutil.ShellQuote(out)
			if err := r.Run(ctx, shell.Line(line)); err != nil {
				return "", errors.Join(ErrDecompress, err)
			}

			return out, nil
		}
	}

	ctxlog.Debug(ctx, "decompressing in-process", "file", filepath.Base(file))

	if err := gunzipFile(file, out); err != nil {
		return "", errors.Join(ErrDecompress, err)
	}

	return out, nil
}

func gunzipFile(src, dst string) (err error) {
	fs := FsFactory()

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	zr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close() //nolint:errcheck

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, zr)

	return err
}
