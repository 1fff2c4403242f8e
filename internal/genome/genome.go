// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/koopa/internal/download"
)

// Type is a kind of genome file.
type Type string

const (
	TypeGenome        Type = "genome"
	TypeTranscriptome Type = "transcriptome"
	TypeGTF           Type = "gtf"
	TypeGFF           Type = "gff"
)

// AllTypes lists every Type in the order Recipe runs them.
var AllTypes = []Type{TypeGenome, TypeTranscriptome, TypeGTF, TypeGFF}

var (
	// ErrUnknownType is returned for a type that is not one of AllTypes.
	ErrUnknownType = errors.New("unknown genome file type")
	// ErrMissingField is returned when a required recipe field is empty.
	ErrMissingField = errors.New("missing required field")
)

// Downloader is implemented by *download.Downloader.
type Downloader interface {
	Download(ctx context.Context, req download.Request) (string, error)
}

// Source downloads each kind of genome file.
type Source interface {
	Genome(ctx context.Context) error
	Transcriptome(ctx context.Context) error
	GTF(ctx context.Context) error
	GFF(ctx context.Context) error
}

// ParseTypes converts names to types, removing duplicates.
// An empty input selects AllTypes.
func ParseTypes(names ...string) ([]Type, error) {
	if len(names) == 0 {
		return slices.Clone(AllTypes), nil
	}

	types := make([]Type, 0, len(names))

	for _, n := range names {
		t := Type(strings.ToLower(strings.TrimSpace(n)))
		if !slices.Contains(AllTypes, t) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, n)
		}

		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}

	return types, nil
}

// Recipe downloads the given types from src in the order of AllTypes,
// stopping at the first failure. No types means all of them.
func Recipe(ctx context.Context, src Source, types ...Type) error {
	if len(types) == 0 {
		types = AllTypes
	}

	for _, t := range types {
		if !slices.Contains(AllTypes, t) {
			return fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
	}

	steps := map[Type]func(context.Context) error{
		TypeGenome:        src.Genome,
		TypeTranscriptome: src.Transcriptome,
		TypeGTF:           src.GTF,
		TypeGFF:           src.GFF,
	}

	for _, t := range AllTypes {
		if !slices.Contains(types, t) {
			continue
		}

		if err := steps[t](ctx); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}

	return nil
}
