// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package genome implements "koopa genome" and its subcommands.
package genome

import (
	"github.com/matt-FFFFFF/koopa/cmd/koopa/cmdstate"
	"github.com/matt-FFFFFF/koopa/cmd/koopa/download"
	"github.com/matt-FFFFFF/koopa/internal/genome"
	"github.com/urfave/cli/v3"
)

const (
	outputDirFlag  = "output-dir"
	decompressFlag = "decompress"
	typeFlag       = "type"
	tx2geneFlag    = "tx2gene"
)

// NewCmd returns the genome command group.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "genome",
		Usage: "Download reference genome files",
		Commands: []*cli.Command{
			newEnsemblCmd(),
			newGencodeCmd(),
			newManifestCmd(),
			newVersionCmd(),
		},
	}
}

// commonFlags are shared by the ensembl and gencode subcommands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      outputDirFlag,
			Aliases:   []string{"d"},
			Usage:     "Download into `DIR`, one subdirectory per file type",
			Value:     ".",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:  decompressFlag,
			Usage: "Decompress downloaded FASTA and annotation files, keeping the originals",
		},
		&cli.StringSliceFlag{
			Name:    typeFlag,
			Aliases: []string{"t"},
			Usage:   "Download only `TYPE` (genome, transcriptome, gtf, gff). May be repeated",
		},
		&cli.BoolFlag{
			Name:  tx2geneFlag,
			Usage: "Generate transcriptome/tx2gene.csv with the koopa helper after downloading",
		},
		download.FetcherFlag(),
	}
}

// planner builds the genome planner for cmd, streaming child output to the root error writer.
func planner(cmd *cli.Command) (*genome.Planner, error) {
	d, err := download.Downloader(cmd)
	if err != nil {
		return nil, err
	}

	return &genome.Planner{
		Downloader: d,
		Helpers:    &genome.Helpers{Runner: cmdstate.Runner(cmd.Root().ErrWriter)},
	}, nil
}
