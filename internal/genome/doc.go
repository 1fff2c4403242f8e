// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package genome downloads reference genome files from Ensembl and GENCODE.
//
// Each source can fetch four kinds of file: the genome FASTA, the
// transcriptome FASTA, and the GTF and GFF3 annotations. Files are laid out
// under an output directory in one subdirectory per kind. Files already
// present are not downloaded again.
package genome
