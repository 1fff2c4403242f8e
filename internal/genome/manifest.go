// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/strutil"
)

const (
	SourceEnsembl = "ensembl"
	SourceGencode = "gencode"
)

var (
	// ErrInvalidManifest is returned when a manifest cannot be parsed or fails validation.
	ErrInvalidManifest = errors.New("invalid genome manifest")
	// ErrUnknownSource is returned for a source other than ensembl or gencode.
	ErrUnknownSource = errors.New("unknown genome source")
	// ErrManifestEntry wraps the failure of a single manifest entry.
	ErrManifestEntry = errors.New("manifest entry failed")
)

// Manifest is a batch of genome downloads.
type Manifest struct {
	// KeepGoing runs every entry and reports all failures together.
	// Otherwise the first failure stops the run.
	KeepGoing bool    `yaml:"keep_going"`
	Genomes   []Entry `yaml:"genomes"`
}

// Entry is one genome to download.
type Entry struct {
	Source     string   `yaml:"source"`
	Organism   string   `yaml:"organism"`
	Build      string   `yaml:"build"`
	Release    string   `yaml:"release"`
	ReleaseURL string   `yaml:"release_url"`
	Types      []string `yaml:"types"`
	Decompress bool     `yaml:"decompress"`
	Tx2Gene    bool     `yaml:"tx2gene"`
	// OutputDir defaults to a kebab-case name for Ensembl entries and is
	// required for GENCODE entries.
	OutputDir  string   `yaml:"output_dir"`
	URLs       URLs     `yaml:"urls"`
}

// URLs are the GENCODE file locations.
type URLs struct {
	Genome        string `yaml:"genome"`
	Transcriptome string `yaml:"transcriptome"`
	GTF           string `yaml:"gtf"`
	GFF           string `yaml:"gff"`
}

// Name identifies the entry in logs and errors.
func (e Entry) Name() string {
	parts := []string{e.Source}

	for _, p := range []string{e.Organism, e.Build, e.Release} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if e.OutputDir != "" {
		parts = append(parts, "-> "+e.OutputDir)
	}

	return strings.Join(parts, " ")
}

// ParseManifest decodes and validates a YAML manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if len(m.Genomes) == 0 {
		return nil, fmt.Errorf("%w: no genomes", ErrInvalidManifest)
	}

	var err error

	for i, e := range m.Genomes {
		if verr := e.validate(); verr != nil {
			err = multierror.Append(err, fmt.Errorf("genomes[%d]: %w", i, verr))
		}
	}

	if err != nil {
		return nil, errors.Join(ErrInvalidManifest, err)
	}

	return &m, nil
}

func (e Entry) validate() error {
	if _, err := ParseTypes(e.Types...); err != nil {
		return err
	}

	switch e.Source {
	case SourceEnsembl:
		if e.Organism == "" || e.Build == "" {
			return fmt.Errorf("%w: ensembl entries need organism and build", ErrMissingField)
		}
	case SourceGencode:
		if e.OutputDir == "" {
			return fmt.Errorf("%w: gencode entries need output_dir", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, e.Source)
	}

	return nil
}

// ensemblOutputDir names the directory for an Ensembl entry without
// output_dir, e.g. "homo-sapiens-grch38-ensembl-110".
func ensemblOutputDir(organism, build, release string) string {
	parts := []string{organism, build, SourceEnsembl}
	if release != "" {
		parts = append(parts, release)
	}

	return strutil.KebabCase(strings.Join(parts, "-"))
}

// Planner turns manifest entries into runnable sources.
type Planner struct {
	Downloader Downloader
	Helpers    *Helpers
}

// RunEntry downloads the files selected by e, then builds tx2gene.csv if requested.
// A missing Ensembl release is looked up with the current-ensembl-version
// helper when the selected types need one.
func (p *Planner) RunEntry(ctx context.Context, e Entry) error {
	types, err := ParseTypes(e.Types...)
	if err != nil {
		return err
	}

	var src Source

	outputDir := e.OutputDir

	switch e.Source {
	case SourceEnsembl:
		ens := &Ensembl{
			Downloader: p.Downloader,
			Runner:     p.Helpers.Runner,
			Organism:   e.Organism,
			Build:      e.Build,
			Release:    e.Release,
			ReleaseURL: e.ReleaseURL,
			OutputDir:  e.OutputDir,
			Decompress: e.Decompress,
		}

		if ens.Release == "" && ens.NeedsRelease(types...) {
			if ens.Release, err = p.Helpers.EnsemblVersion(ctx); err != nil {
				return err
			}

			ctxlog.Info(ctx, "using current ensembl release", "release", ens.Release)
		}

		if ens.OutputDir == "" {
			ens.OutputDir = ensemblOutputDir(ens.Organism, ens.Build, ens.Release)
		}

		outputDir = ens.OutputDir
		src = ens
	case SourceGencode:
		src = &Gencode{
			Downloader:       p.Downloader,
			GenomeURL:        e.URLs.Genome,
			TranscriptomeURL: e.URLs.Transcriptome,
			GTFURL:           e.URLs.GTF,
			GFFURL:           e.URLs.GFF,
			OutputDir:        e.OutputDir,
			Decompress:       e.Decompress,
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, e.Source)
	}

	if err := Recipe(ctx, src, types...); err != nil {
		return err
	}

	if !e.Tx2Gene {
		return nil
	}

	_, err = p.Helpers.Tx2Gene(ctx, e.Source, outputDir)

	return err
}

// RunManifest runs the entries of m in order.
func (p *Planner) RunManifest(ctx context.Context, m *Manifest) error {
	var result error

	for _, e := range m.Genomes {
		if ctx.Err() != nil {
			return multierror.Append(result, ctx.Err())
		}

		ctxlog.Info(ctx, "running manifest entry", "entry", e.Name())

		err := p.RunEntry(ctx, e)
		if err == nil {
			continue
		}

		err = fmt.Errorf("%w: %s: %w", ErrManifestEntry, e.Name(), err)
		if !m.KeepGoing {
			return err
		}

		ctxlog.Warn(ctx, "manifest entry failed, continuing", "entry", e.Name(), "error", err)
		result = multierror.Append(result, err)
	}

	return result
}
