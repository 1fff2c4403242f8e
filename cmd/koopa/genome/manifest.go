// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/koopa/cmd/koopa/download"
	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/files"
	"github.com/matt-FFFFFF/koopa/internal/genome"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag      = "file"
	keepGoingFlag = "keep-going"
)

// ErrGetManifest is returned when the manifest cannot be fetched.
var ErrGetManifest = errors.New("failed to get manifest file")

func newManifestCmd() *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Download every genome listed in a YAML manifest",
		Description: `The manifest is a YAML file with a "genomes" list. Each entry has a source
(ensembl or gencode), an output_dir, optional types, decompress and tx2gene
settings, organism/build/release for Ensembl and urls for GENCODE.

Manifest locations use Hashicorp's go-getter syntax, so they can be fetched
from git repositories, HTTP servers or object stores as well as local paths.
See https://github.com/hashicorp/go-getter.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     fileFlag,
				Aliases:  []string{"f"},
				Usage:    "Manifest `URL` or path",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  keepGoingFlag,
				Usage: "Continue after a failed entry and report all failures at the end",
			},
			download.FetcherFlag(),
		},
		Action: manifestAction,
	}
}

func manifestAction(ctx context.Context, cmd *cli.Command) error {
	data, err := getManifest(ctx, cmd.String(fileFlag))
	if err != nil {
		return err
	}

	m, err := genome.ParseManifest(data)
	if err != nil {
		return err
	}

	if cmd.Bool(keepGoingFlag) {
		m.KeepGoing = true
	}

	p, err := planner(cmd)
	if err != nil {
		return err
	}

	return p.RunManifest(ctx, m)
}

// getManifest reads a local manifest directly. Anything else is fetched
// with go-getter into a temporary directory.
func getManifest(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrGetManifest
	}

	if files.IsFile(src) {
		data, err := afero.ReadFile(files.FsFactory(), src)
		if err != nil {
			return nil, errors.Join(ErrGetManifest, err)
		}

		return data, nil
	}

	dirURL, name := splitGetterURL(src)
	if dirURL == "" || name == "" {
		return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetManifest, src)
	}

	tmp, err := os.MkdirTemp("", "koopa-manifest-*")
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}
	defer os.RemoveAll(tmp) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	client := getter.Client{DisableSymlinks: true}

	ctxlog.Debug(ctx, "fetching manifest", "src", dirURL, "file", name)

	// Fetching the parent lets go-getter handle sources that only work in
	// directory mode, such as git.
	res, err := client.Get(ctx, &getter.Request{
		Src:     dirURL,
		Dst:     filepath.Join(tmp, "m"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, name))
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	return data, nil
}

// splitGetterURL separates the file name from a go-getter source, keeping
// any query on the directory part. "git::https://host/repo//dir/genomes.yaml?ref=v1"
// becomes "git::https://host/repo//dir?ref=v1" and "genomes.yaml".
// Sources without a "//" subdirectory are split at the last slash.
func splitGetterURL(src string) (string, string) {
	base, query, _ := strings.Cut(src, "?")

	if strings.HasSuffix(base, "/") {
		return "", ""
	}

	i := strings.LastIndex(base, "/")
	if i < 0 {
		return "", ""
	}

	dir, name := base[:i], base[i+1:]

	// "repo//genomes.yaml" leaves "repo/"; drop the subdirectory separator.
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" || strings.HasSuffix(dir, ":") {
		return "", ""
	}

	if query != "" {
		dir += "?" + query
	}

	return dir, name
}
