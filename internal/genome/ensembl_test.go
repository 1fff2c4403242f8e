// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const release = "ftp://ftp.ensembl.org/pub/release-110"

func human(d Downloader) *Ensembl {
	return &Ensembl{
		Downloader: d,
		Organism:   "Homo_sapiens",
		Build:      "GRCh38",
		Release:    "110",
		OutputDir:  "/ref",
	}
}

func TestEnsemblReleaseURL(t *testing.T) {
	assert.Equal(t, release, EnsemblReleaseURL("110"))
}

func TestEnsembl_Genome(t *testing.T) {
	tests := []struct {
		organism, build, want string
	}{
		{"Homo_sapiens", "GRCh38", release + "/fasta/homo_sapiens/dna/Homo_sapiens.GRCh38.dna.primary_assembly.fa.gz"},
		{"Mus_musculus", "GRCm39", release + "/fasta/mus_musculus/dna/Mus_musculus.GRCm39.dna.primary_assembly.fa.gz"},
		{"Danio_rerio", "GRCz11", release + "/fasta/danio_rerio/dna/Danio_rerio.GRCz11.dna.toplevel.fa.gz"},
	}

	for _, tc := range tests {
		t.Run(tc.organism, func(t *testing.T) {
			f := newFake(t)
			e := &Ensembl{Downloader: f, Organism: tc.organism, Build: tc.build, Release: "110", OutputDir: "/ref", Decompress: true}

			require.NoError(t, e.Genome(context.Background()))
			require.Len(t, f.reqs, 3)

			base := release + "/fasta/" + strings.ToLower(tc.organism) + "/dna"
			assert.Equal(t, base+"/README", f.reqs[0].URL)
			assert.Equal(t, base+"/CHECKSUMS", f.reqs[1].URL)
			assert.Equal(t, tc.want, f.reqs[2].URL)

			for _, r := range f.reqs {
				assert.Equal(t, "/ref/genome", r.OutputDir)
			}

			assert.False(t, f.reqs[0].Decompress, "metadata is never decompressed")
			assert.True(t, f.reqs[2].Decompress)
		})
	}
}

func TestEnsembl_Transcriptome(t *testing.T) {
	f := newFake(t)
	e := human(f)

	require.NoError(t, e.Transcriptome(context.Background()))

	base := release + "/fasta/homo_sapiens"
	assert.Equal(t, []string{
		base + "/cdna/README",
		base + "/cdna/CHECKSUMS",
		base + "/cdna/Homo_sapiens.GRCh38.cdna.all.fa.gz",
		base + "/ncdna/README",
		base + "/ncdna/CHECKSUMS",
		base + "/ncdna/Homo_sapiens.GRCh38.ncdna.all.fa.gz",
	}, f.urls())

	assert.Equal(t, "/ref/transcriptome/cdna/Homo_sapiens.GRCh38.cdna.all.fa.gz", f.reqs[2].OutputFile)

	merged, err := afero.ReadFile(f.fs, "/ref/transcriptome/transcriptome.fa.gz")
	require.NoError(t, err)
	assert.Equal(t,
		base+"/cdna/Homo_sapiens.GRCh38.cdna.all.fa.gz\n"+base+"/ncdna/Homo_sapiens.GRCh38.ncdna.all.fa.gz\n",
		string(merged))
}

func TestEnsembl_Annotations(t *testing.T) {
	f := newFake(t)
	e := human(f)

	require.NoError(t, e.GTF(context.Background()))
	require.NoError(t, e.GFF(context.Background()))

	assert.Equal(t, []string{
		release + "/gtf/homo_sapiens/README",
		release + "/gtf/homo_sapiens/CHECKSUMS",
		release + "/gtf/homo_sapiens/Homo_sapiens.GRCh38.110.gtf.gz",
		release + "/gtf/homo_sapiens/Homo_sapiens.GRCh38.110.chr_patch_hapl_scaff.gtf.gz",
		release + "/gff3/homo_sapiens/README",
		release + "/gff3/homo_sapiens/CHECKSUMS",
		release + "/gff3/homo_sapiens/Homo_sapiens.GRCh38.110.gff3.gz",
		release + "/gff3/homo_sapiens/Homo_sapiens.GRCh38.110.chr_patch_hapl_scaff.gff3.gz",
	}, f.urls())

	assert.Equal(t, "/ref/gtf", f.reqs[0].OutputDir)
	assert.Equal(t, "/ref/gff", f.reqs[4].OutputDir)
}

func TestEnsembl_AnnotationsWithoutPatches(t *testing.T) {
	f := newFake(t)
	e := &Ensembl{Downloader: f, Organism: "Danio_rerio", Build: "GRCz11", Release: "110", OutputDir: "/ref"}

	require.NoError(t, e.GTF(context.Background()))
	assert.Len(t, f.reqs, 3)
	assert.Equal(t, release+"/gtf/danio_rerio/Danio_rerio.GRCz11.110.gtf.gz", f.reqs[2].URL)
}

func TestEnsembl_ReleaseURLOverride(t *testing.T) {
	f := newFake(t)
	e := human(f)
	e.ReleaseURL = "https://mirror.example/ensembl/release-110/"

	require.NoError(t, e.GTF(context.Background()))
	assert.Equal(t, "https://mirror.example/ensembl/release-110/gtf/homo_sapiens/README", f.reqs[0].URL)
}

func TestEnsembl_Validate(t *testing.T) {
	f := newFake(t)
	e := human(f)
	e.Build = ""

	require.ErrorIs(t, e.Genome(context.Background()), ErrMissingField)
	assert.Empty(t, f.reqs)
}

func TestEnsembl_ReleaseURLWithoutRelease(t *testing.T) {
	f := newFake(t)
	e := human(f)
	e.Release = ""
	e.ReleaseURL = "https://mirror.example/ensembl/release-110/"

	assert.False(t, e.NeedsRelease(TypeGenome, TypeTranscriptome))
	assert.True(t, e.NeedsRelease(TypeGenome, TypeGTF))

	require.NoError(t, e.Genome(context.Background()))
	assert.NotEmpty(t, f.reqs)

	require.ErrorIs(t, e.GTF(context.Background()), ErrMissingField)
}

func TestEnsembl_DownloadFailureStops(t *testing.T) {
	f := newFake(t)
	f.fail = "CHECKSUMS"

	require.Error(t, human(f).Genome(context.Background()))
	assert.Len(t, f.reqs, 2)
}
