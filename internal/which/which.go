// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package which locates executables, either on PATH or in a fixed list of
// well-known install locations.
package which

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned when no executable matches.
var ErrNotFound = errors.New("executable not found")

// Find searches the directories in PATH for an executable named name.
// A name containing a path separator is checked as given, without searching.
func Find(name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		if isExecutable(name) {
			return name, nil
		}

		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// FindFirst returns the first candidate that resolves to an executable.
// Bare names are looked up with Find, paths are checked directly and may
// start with "~/" to refer to the user's home directory.
func FindFirst(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}

		if p, err := Find(expandHome(c)); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(candidates, ", "))
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}

	return filepath.Join(home, p[2:])
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if runtime.GOOS == "windows" {
		return true
	}

	return info.Mode()&0o111 != 0
}
