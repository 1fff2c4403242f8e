// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package download

import (
	"context"
	"errors"
	"os"

	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/koopa/internal/shell"
)

// ErrGetterFailed is returned when go-getter could not fetch a URL.
var ErrGetterFailed = errors.New("go-getter failed")

// Fetcher copies the resource at url to the file dst.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst string) error
}

// Curl fetches with the curl executable, following redirects.
type Curl struct {
	Runner shell.Runner
	// Options are passed to every run, e.g. shell.WithStream for progress output.
	Options []shell.Option
}

var _ Fetcher = (*Curl)(nil)

// Fetch runs "curl -L -o dst url".
func (c *Curl) Fetch(ctx context.Context, url, dst string) error {
	r := c.Runner
	if r == nil {
		r = &shell.OSRunner{}
	}

	return r.Run(ctx, shell.Argv("curl", "-L", "-o", dst, url), c.Options...)
}

// Getter fetches in-process with go-getter. Archives are saved as is, not
// unpacked, and symlinks are refused. Local paths and http(s) URLs are
// supported; go-getter has no FTP support.
type Getter struct{}

var _ Fetcher = (*Getter)(nil)

// Fetch implements Fetcher.
func (Getter) Fetch(ctx context.Context, url, dst string) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Join(ErrGetterFailed, err)
	}

	cli := getter.Client{
		// A non-nil empty map turns off decompression by file extension.
		Decompressors:   map[string]getter.Decompressor{},
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
		// Local sources are copied rather than linked.
		Copy: true,
	}

	if _, err := cli.Get(ctx, req); err != nil {
		return errors.Join(ErrGetterFailed, err)
	}

	return nil
}
