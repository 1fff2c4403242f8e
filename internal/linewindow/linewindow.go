// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linewindow keeps the most recent lines of a command's output.
//
// Blank lines are dropped and only the last N lines are retained, so memory
// stays bounded no matter how much a command prints. It is used to attach
// the tail of a failed command's output to its error.
package linewindow

import (
	"strings"
	"sync"
)

// DefaultSize is the number of lines retained by New(0).
const DefaultSize = 100

// Window is a fixed-capacity ring of lines. It is safe for concurrent use.
type Window struct {
	mu    sync.Mutex
	lines []string
	start int // index of the oldest line
	count int
}

// New returns a Window retaining at most size lines. A size < 1 means DefaultSize.
func New(size int) *Window {
	if size < 1 {
		size = DefaultSize
	}

	return &Window{lines: make([]string, size)}
}

// Add appends a single line, discarding the oldest one when the window is full.
// A trailing "\r" is removed and blank lines are ignored.
func (w *Window) Add(line string) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	size := len(w.lines)
	if w.count < size {
		w.lines[(w.start+w.count)%size] = line
		w.count++

		return
	}

	w.lines[w.start] = line
	w.start = (w.start + 1) % size
}

// Lines returns a copy of the retained lines, oldest first.
func (w *Window) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, w.count)
	for i := range w.count {
		out[i] = w.lines[(w.start+i)%len(w.lines)]
	}

	return out
}
