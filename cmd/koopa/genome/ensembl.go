// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"

	"github.com/matt-FFFFFF/koopa/internal/genome"
	"github.com/urfave/cli/v3"
)

const (
	organismFlag   = "organism"
	buildFlag      = "build"
	releaseFlag    = "release"
	releaseURLFlag = "release-url"
)

func newEnsemblCmd() *cli.Command {
	return &cli.Command{
		Name:  "ensembl",
		Usage: "Download genome, transcriptome and annotation files from an Ensembl release",
		Description: `Files are fetched from ftp://ftp.ensembl.org/pub/release-RELEASE unless
--release-url is given. Without --release the current release is looked up
with the koopa current-ensembl-version helper.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     organismFlag,
				Usage:    "Ensembl species `NAME`, e.g. Homo_sapiens",
				Required: true,
			},
			&cli.StringFlag{
				Name:     buildFlag,
				Usage:    "Assembly `NAME`, e.g. GRCh38",
				Required: true,
			},
			&cli.StringFlag{
				Name:  releaseFlag,
				Usage: "Ensembl release `NUMBER`",
			},
			&cli.StringFlag{
				Name:  releaseURLFlag,
				Usage: "Fetch from release directory `URL` instead of the Ensembl FTP site",
			},
		}, commonFlags()...),
		Action: ensemblAction,
	}
}

func ensemblAction(ctx context.Context, cmd *cli.Command) error {
	p, err := planner(cmd)
	if err != nil {
		return err
	}

	return p.RunEntry(ctx, genome.Entry{
		Source:     genome.SourceEnsembl,
		Organism:   cmd.String(organismFlag),
		Build:      cmd.String(buildFlag),
		Release:    cmd.String(releaseFlag),
		ReleaseURL: cmd.String(releaseURLFlag),
		Types:      cmd.StringSlice(typeFlag),
		Decompress: cmd.Bool(decompressFlag),
		Tx2Gene:    cmd.Bool(tx2geneFlag),
		OutputDir:  cmd.String(outputDirFlag),
	})
}
