// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/matt-FFFFFF/koopa/internal/download"
	"github.com/matt-FFFFFF/koopa/internal/files"
	"github.com/matt-FFFFFF/koopa/internal/shell"
	"github.com/matt-FFFFFF/koopa/internal/strutil"
)

// EnsemblFTP is the root of the Ensembl release directories.
const EnsemblFTP = "ftp://ftp.ensembl.org/pub"

const (
	readme    = "README"
	checksums = "CHECKSUMS"

	transcriptomeFile = "transcriptome.fa.gz"
)

// patchedOrganisms have a primary assembly and separate patch annotations.
var patchedOrganisms = []string{"Homo_sapiens", "Mus_musculus"}

// Ensembl downloads files for one organism from one Ensembl release.
type Ensembl struct {
	Downloader Downloader
	// Runner decompresses the merged transcriptome. It may be nil.
	Runner shell.Runner

	// Organism is the Ensembl species name, e.g. "Homo_sapiens".
	Organism string
	// Build is the assembly name, e.g. "GRCh38".
	Build string
	// Release is the release number, e.g. "110".
	Release string
	// ReleaseURL overrides the release directory. Defaults to EnsemblReleaseURL(Release).
	ReleaseURL string
	OutputDir  string
	Decompress bool
}

var _ Source = (*Ensembl)(nil)

// EnsemblReleaseURL returns the directory of an Ensembl release.
func EnsemblReleaseURL(release string) string {
	return strutil.PasteURL(EnsemblFTP, "release-"+release)
}

// Validate checks that the required fields are set. The release may be
// left out when ReleaseURL is given, as long as no annotation is fetched.
func (e *Ensembl) Validate() error {
	required := []struct{ name, value string }{
		{"organism", e.Organism},
		{"build", e.Build},
	}

	if e.ReleaseURL == "" {
		required = append(required, struct{ name, value string }{"release", e.Release})
	}

	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: ensembl %s", ErrMissingField, f.name)
		}
	}

	return nil
}

// NeedsRelease reports whether fetching types requires a release number.
// Annotation file names embed it; FASTA files only need the release URL.
func (e *Ensembl) NeedsRelease(types ...Type) bool {
	if e.ReleaseURL == "" {
		return true
	}

	return slices.ContainsFunc(types, func(t Type) bool {
		return t == TypeGTF || t == TypeGFF
	})
}

func (e *Ensembl) releaseURL() string {
	if e.ReleaseURL != "" {
		return e.ReleaseURL
	}

	return EnsemblReleaseURL(e.Release)
}

// speciesDir is the lowercase species directory used on the FTP site.
func (e *Ensembl) speciesDir() string {
	return strutil.SnakeCase(e.Organism)
}

func (e *Ensembl) patched() bool {
	return slices.Contains(patchedOrganisms, e.Organism)
}

// Genome downloads the DNA FASTA into <out>/genome.
func (e *Ensembl) Genome(ctx context.Context) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dir := filepath.Join(e.OutputDir, string(TypeGenome))
	base := strutil.PasteURL(e.releaseURL(), "fasta", e.speciesDir(), "dna")

	assembly := "toplevel"
	if e.patched() {
		assembly = "primary_assembly"
	}

	fasta := fmt.Sprintf("%s.%s.dna.%s.fa.gz", e.Organism, e.Build, assembly)

	return e.fetchWithMetadata(ctx, base, dir, fasta)
}

// Transcriptome downloads the cDNA and ncRNA FASTA files into
// <out>/transcriptome/{cdna,ncdna} and concatenates them into
// <out>/transcriptome/transcriptome.fa.gz.
func (e *Ensembl) Transcriptome(ctx context.Context) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dir := filepath.Join(e.OutputDir, string(TypeTranscriptome))
	base := strutil.PasteURL(e.releaseURL(), "fasta", e.speciesDir())

	parts := make([]string, 0, 2)

	for _, kind := range []string{"cdna", "ncdna"} {
		kindDir := filepath.Join(dir, kind)
		kindURL := strutil.PasteURL(base, kind)
		name := fmt.Sprintf("%s.%s.%s.all.fa.gz", e.Organism, e.Build, kind)

		if err := e.metadata(ctx, kindURL, kindDir); err != nil {
			return err
		}

		// The compressed files are merged; each is decompressed separately when requested.
		if _, err := e.Downloader.Download(ctx, download.Request{
			URL:        strutil.PasteURL(kindURL, name),
			OutputFile: filepath.Join(kindDir, name),
			Decompress: e.Decompress,
		}); err != nil {
			return err
		}

		parts = append(parts, filepath.Join(kindDir, name))
	}

	merged := filepath.Join(dir, transcriptomeFile)
	if err := files.Concatenate(merged, parts...); err != nil {
		return err
	}

	if e.Decompress {
		if _, err := files.Decompress(ctx, e.Runner, merged); err != nil {
			return err
		}
	}

	return nil
}

// GTF downloads the GTF annotation into <out>/gtf. Human and mouse also get
// the annotation including patches, haplotypes and scaffolds.
func (e *Ensembl) GTF(ctx context.Context) error {
	return e.annotation(ctx, TypeGTF, "gtf", "gtf")
}

// GFF downloads the GFF3 annotation into <out>/gff, with the same patch
// handling as GTF.
func (e *Ensembl) GFF(ctx context.Context) error {
	return e.annotation(ctx, TypeGFF, "gff3", "gff3")
}

func (e *Ensembl) annotation(ctx context.Context, t Type, remoteDir, ext string) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if e.Release == "" {
		return fmt.Errorf("%w: ensembl release", ErrMissingField)
	}

	dir := filepath.Join(e.OutputDir, string(t))
	base := strutil.PasteURL(e.releaseURL(), remoteDir, e.speciesDir())
	prefix := fmt.Sprintf("%s.%s.%s", e.Organism, e.Build, e.Release)

	names := []string{prefix + "." + ext + ".gz"}
	if e.patched() {
		names = append(names, prefix+".chr_patch_hapl_scaff."+ext+".gz")
	}

	return e.fetchWithMetadata(ctx, base, dir, names...)
}

// fetchWithMetadata downloads README and CHECKSUMS, then names, from base into dir.
func (e *Ensembl) fetchWithMetadata(ctx context.Context, base, dir string, names ...string) error {
	if err := e.metadata(ctx, base, dir); err != nil {
		return err
	}

	for _, name := range names {
		if _, err := e.Downloader.Download(ctx, download.Request{
			URL:        strutil.PasteURL(base, name),
			OutputDir:  dir,
			Decompress: e.Decompress,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (e *Ensembl) metadata(ctx context.Context, base, dir string) error {
	for _, name := range []string{readme, checksums} {
		if _, err := e.Downloader.Download(ctx, download.Request{
			URL:       strutil.PasteURL(base, name),
			OutputDir: dir,
		}); err != nil {
			return err
		}
	}

	return nil
}
