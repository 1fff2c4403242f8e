// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package download implements "koopa download".
package download

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/koopa/cmd/koopa/cmdstate"
	"github.com/matt-FFFFFF/koopa/internal/download"
	"github.com/urfave/cli/v3"
)

const (
	outputFileFlag = "output-file"
	outputDirFlag  = "output-dir"
	decompressFlag = "decompress"
	fetcherFlag    = "fetcher"

	fetcherCurl   = "curl"
	fetcherGetter = "getter"
)

var (
	// ErrNoURL is returned when no URL is given.
	ErrNoURL = errors.New("specify exactly one URL")
	// ErrUnknownFetcher is returned for a --fetcher other than curl or getter.
	ErrUnknownFetcher = errors.New("unknown fetcher")
)

// NewCmd returns the command that downloads a single file.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download a file unless it already exists",
		Description: `Download URL to the current directory, to --output-dir, or to --output-file.
A file that already exists is left alone. With --decompress the file is also
decompressed next to the original.`,
		ArgsUsage: "URL",
		Flags:     append(Flags(), FetcherFlag()),
		Action:    actionFunc,
	}
}

// Flags are the output location flags, shared with the genome commands.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      outputFileFlag,
			Aliases:   []string{"o"},
			Usage:     "Write to `FILE`",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      outputDirFlag,
			Aliases:   []string{"d"},
			Usage:     "Write into `DIR`, named after the URL",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:  decompressFlag,
			Usage: "Decompress the downloaded file, keeping the original",
		},
	}
}

// FetcherFlag selects the transfer implementation.
func FetcherFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  fetcherFlag,
		Usage: "Transfer with `NAME`: curl, or getter for an in-process download (no FTP)",
		Value: fetcherCurl,
	}
}

// Downloader builds a downloader from the --fetcher flag. Child output goes to the root error writer.
func Downloader(cmd *cli.Command) (*download.Downloader, error) {
	r := cmdstate.Runner(cmd.Root().ErrWriter)
	d := download.New(r)

	switch name := cmd.String(fetcherFlag); name {
	case fetcherCurl, "":
	case fetcherGetter:
		d.Fetcher = download.Getter{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFetcher, name)
	}

	return d, nil
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return ErrNoURL
	}

	d, err := Downloader(cmd)
	if err != nil {
		return err
	}

	p, err := d.Download(ctx, download.Request{
		URL:        cmd.Args().First(),
		OutputFile: cmd.String(outputFileFlag),
		OutputDir:  cmd.String(outputDirFlag),
		Decompress: cmd.Bool(decompressFlag),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, p) //nolint:errcheck

	return nil
}
