// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/files"
	"github.com/matt-FFFFFF/koopa/internal/shell"
)

// partSuffix marks a file that is still being downloaded.
const partSuffix = ".part"

var (
	// ErrOutputConflict is returned when both an output file and an output directory are given.
	ErrOutputConflict = errors.New("output file and output directory are mutually exclusive")
	// ErrDownloadFailed is returned when the fetch fails.
	ErrDownloadFailed = errors.New("download failed")
	// ErrNoFileName is returned when no output file is given and the URL has no base name.
	ErrNoFileName = errors.New("cannot derive a file name from URL")
)

// Request describes a single download.
type Request struct {
	URL string
	// OutputFile is the destination path. Defaults to the base name of the URL.
	OutputFile string
	// OutputDir places the file, named after the URL, in this directory.
	// It cannot be combined with OutputFile.
	OutputDir string
	// Decompress decompresses the downloaded file and returns the decompressed path.
	Decompress bool
}

// Downloader downloads files with a Fetcher.
type Downloader struct {
	Fetcher Fetcher
	// Runner runs gunzip when decompressing.
	Runner shell.Runner
}

// New returns a Downloader that fetches with curl through r.
func New(r shell.Runner) *Downloader {
	return &Downloader{
		Fetcher: &Curl{Runner: r},
		Runner:  r,
	}
}

// Download fetches req.URL and returns the local path.
// A file that already exists is not fetched again.
func (d *Downloader) Download(ctx context.Context, req Request) (string, error) {
	dst, err := Destination(req)
	if err != nil {
		return "", err
	}

	if files.IsFile(dst) {
		ctxlog.Info(ctx, "file exists, skipping download", "file", dst)
	} else {
		if err := files.InitDir(filepath.Dir(dst)); err != nil {
			return "", errors.Join(ErrDownloadFailed, err)
		}

		ctxlog.Info(ctx, "downloading", "url", req.URL, "file", dst)

		if err := d.fetch(ctx, req.URL, dst); err != nil {
			return "", err
		}
	}

	if !req.Decompress {
		return dst, nil
	}

	return files.Decompress(ctx, d.Runner, dst)
}

// fetch downloads into a partial file and renames it over dst on success,
// so an interrupted fetch never leaves a file that a later run would skip.
func (d *Downloader) fetch(ctx context.Context, url, dst string) error {
	fs := files.FsFactory()
	part := dst + partSuffix

	if err := d.Fetcher.Fetch(ctx, url, part); err != nil {
		if rmErr := fs.Remove(part); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			ctxlog.Warn(ctx, "could not remove partial download", "file", part, "error", rmErr)
		}

		return fmt.Errorf("%w: %s: %w", ErrDownloadFailed, url, err)
	}

	if err := fs.Rename(part, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDownloadFailed, url, err)
	}

	return nil
}

// Destination resolves the local path for req.
func Destination(req Request) (string, error) {
	if req.OutputFile != "" && req.OutputDir != "" {
		return "", ErrOutputConflict
	}

	file := req.OutputFile
	if file == "" {
		name := baseName(req.URL)
		if name == "" {
			return "", fmt.Errorf("%w: %s", ErrNoFileName, req.URL)
		}

		file = name
	}

	dir := req.OutputDir
	if dir == "" {
		dir = filepath.Dir(file)
		file = filepath.Base(file)
	}

	return filepath.Join(dir, file), nil
}

// baseName returns the last path element of a URL, ignoring any query.
func baseName(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}

	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}

	return name
}
