// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package strutil has small string helpers for building URLs, file names and command lines.
package strutil

import (
	"regexp"
	"strings"
	"unicode"
)

// PasteURL joins parts with "/", trimming slashes from both ends of each part.
// Empty parts are skipped. A scheme such as "ftp://" in the first part is preserved.
func PasteURL(parts ...string) string {
	trimmed := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}

		trimmed = append(trimmed, p)
	}

	return strings.Join(trimmed, "/")
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~':
		return true
	}

	return false
}

// nonAlnum matches the runs that KebabCase and SnakeCase replace.
var nonAlnum = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// KebabCase replaces each run of characters other than ASCII letters and
// digits with "-" and lowercases the result. Leading and trailing runs are
// replaced too, so "Hello World!" becomes "hello-world-".
func KebabCase(s string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(s, "-"))
}

// SnakeCase is KebabCase with "_" as the separator.
func SnakeCase(s string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(s, "_"))
}

// ShellQuote quotes s for POSIX sh. Words made only of safe characters are returned as is.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}

	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	if r > unicode.MaxASCII {
		return true
	}

	return !isUnreserved(byte(r)) && !strings.ContainsRune("/=:,+@%", r)
}
