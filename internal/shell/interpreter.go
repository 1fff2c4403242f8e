// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"errors"
	"sync"

	"github.com/matt-FFFFFF/koopa/internal/which"
)

// bashLocations is searched in order. "bash" is looked up on PATH.
var bashLocations = []string{
	"bash",
	"/usr/local/bin/bash",
	"/usr/bin/bash",
	"/bin/bash",
}

var interpreter struct {
	mu   sync.Mutex
	path string
}

// Interpreter returns the bash used for pipefail lines.
// The first successful lookup is cached for the life of the process;
// failures are not cached. ResetInterpreter clears the cache.
func Interpreter() (string, error) {
	interpreter.mu.Lock()
	defer interpreter.mu.Unlock()

	if interpreter.path != "" {
		return interpreter.path, nil
	}

	p, err := which.FindFirst(bashLocations...)
	if err != nil {
		return "", errors.Join(ErrInterpreterNotFound, err)
	}

	interpreter.path = p

	return p, nil
}

// ResetInterpreter forgets the cached bash location.
func ResetInterpreter() {
	interpreter.mu.Lock()
	defer interpreter.mu.Unlock()

	interpreter.path = ""
}
