// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGencode(t *testing.T) {
	f := newFake(t)
	g := &Gencode{
		Downloader:       f,
		GenomeURL:        "https://gencode.example/GRCh38.primary_assembly.genome.fa.gz",
		TranscriptomeURL: "https://gencode.example/gencode.v44.transcripts.fa.gz",
		GTFURL:           "https://gencode.example/gencode.v44.annotation.gtf.gz",
		GFFURL:           "https://gencode.example/gencode.v44.annotation.gff3.gz",
		OutputDir:        "/ref",
		Decompress:       true,
	}

	require.NoError(t, Recipe(context.Background(), g))
	require.Len(t, f.reqs, 4)

	wantDirs := []string{"/ref/genome", "/ref/transcriptome", "/ref/gtf", "/ref/gff"}
	for i, r := range f.reqs {
		assert.Equal(t, wantDirs[i], r.OutputDir)
		assert.True(t, r.Decompress)
	}

	assert.Equal(t, g.GTFURL, f.reqs[2].URL)
}

func TestGencode_MissingURL(t *testing.T) {
	f := newFake(t)
	g := &Gencode{Downloader: f, OutputDir: "/ref"}

	require.ErrorIs(t, g.GFF(context.Background()), ErrMissingField)
	assert.Empty(t, f.reqs)
}
