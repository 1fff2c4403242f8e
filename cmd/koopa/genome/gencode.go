// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/koopa/internal/genome"
	"github.com/urfave/cli/v3"
)

const (
	genomeURLFlag        = "genome-url"
	transcriptomeURLFlag = "transcriptome-url"
	gtfURLFlag           = "gtf-url"
	gffURLFlag           = "gff-url"
)

// ErrNoGencodeURLs is returned when no GENCODE URL is given.
var ErrNoGencodeURLs = errors.New("specify at least one of --genome-url, --transcriptome-url, --gtf-url or --gff-url")

func newGencodeCmd() *cli.Command {
	return &cli.Command{
		Name:  "gencode",
		Usage: "Download GENCODE genome, transcriptome and annotation files",
		Description: `Each file type is downloaded from the URL given for it. Without --type,
every type with a URL is downloaded.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: genomeURLFlag, Usage: "Genome FASTA `URL`"},
			&cli.StringFlag{Name: transcriptomeURLFlag, Usage: "Transcriptome FASTA `URL`"},
			&cli.StringFlag{Name: gtfURLFlag, Usage: "GTF annotation `URL`"},
			&cli.StringFlag{Name: gffURLFlag, Usage: "GFF3 annotation `URL`"},
		}, commonFlags()...),
		Action: gencodeAction,
	}
}

func gencodeAction(ctx context.Context, cmd *cli.Command) error {
	urls := genome.URLs{
		Genome:        cmd.String(genomeURLFlag),
		Transcriptome: cmd.String(transcriptomeURLFlag),
		GTF:           cmd.String(gtfURLFlag),
		GFF:           cmd.String(gffURLFlag),
	}

	types := cmd.StringSlice(typeFlag)
	if len(types) == 0 {
		types = typesWithURLs(urls)
		if len(types) == 0 {
			return ErrNoGencodeURLs
		}
	}

	p, err := planner(cmd)
	if err != nil {
		return err
	}

	return p.RunEntry(ctx, genome.Entry{
		Source:     genome.SourceGencode,
		Types:      types,
		Decompress: cmd.Bool(decompressFlag),
		Tx2Gene:    cmd.Bool(tx2geneFlag),
		OutputDir:  cmd.String(outputDirFlag),
		URLs:       urls,
	})
}

func typesWithURLs(u genome.URLs) []string {
	var types []string

	for t, url := range map[genome.Type]string{
		genome.TypeGenome:        u.Genome,
		genome.TypeTranscriptome: u.Transcriptome,
		genome.TypeGTF:           u.GTF,
		genome.TypeGFF:           u.GFF,
	} {
		if url != "" {
			types = append(types, string(t))
		}
	}

	return types
}
