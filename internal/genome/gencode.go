// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matt-FFFFFF/koopa/internal/download"
)

// Gencode downloads files from caller-supplied GENCODE URLs.
type Gencode struct {
	Downloader Downloader

	GenomeURL        string
	TranscriptomeURL string
	GTFURL           string
	GFFURL           string
	OutputDir        string
	Decompress       bool
}

var _ Source = (*Gencode)(nil)

// Genome downloads GenomeURL into <out>/genome.
func (g *Gencode) Genome(ctx context.Context) error {
	return g.fetch(ctx, TypeGenome, g.GenomeURL)
}

// Transcriptome downloads TranscriptomeURL into <out>/transcriptome.
func (g *Gencode) Transcriptome(ctx context.Context) error {
	return g.fetch(ctx, TypeTranscriptome, g.TranscriptomeURL)
}

// GTF downloads GTFURL into <out>/gtf.
func (g *Gencode) GTF(ctx context.Context) error {
	return g.fetch(ctx, TypeGTF, g.GTFURL)
}

// GFF downloads GFFURL into <out>/gff.
func (g *Gencode) GFF(ctx context.Context) error {
	return g.fetch(ctx, TypeGFF, g.GFFURL)
}

func (g *Gencode) fetch(ctx context.Context, t Type, url string) error {
	if url == "" {
		return fmt.Errorf("%w: gencode %s url", ErrMissingField, t)
	}

	_, err := g.Downloader.Download(ctx, download.Request{
		URL:        url,
		OutputDir:  filepath.Join(g.OutputDir, string(t)),
		Decompress: g.Decompress,
	})

	return err
}
