// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/matt-FFFFFF/koopa/internal/linewindow"
)

// DefaultWaitDelay bounds how long Run keeps reading output after the child
// has exited. Output is only still arriving if a grandchild inherited the pipe.
const DefaultWaitDelay = 2 * time.Second

// Settings holds the per-call configuration assembled from Options.
type Settings struct {
	Env       map[string]string
	CleanEnv  bool
	Dir       string
	Streams   []io.Writer
	Signals   <-chan os.Signal
	Window    int
	WaitDelay time.Duration
}

// Option configures a single Run call.
type Option func(*Settings)

// NewSettings applies opts over the defaults.
func NewSettings(opts ...Option) *Settings {
	s := &Settings{
		Window:    linewindow.DefaultSize,
		WaitDelay: DefaultWaitDelay,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// WithEnv sets environment variables for the child, on top of the inherited environment.
// Repeated calls merge; later values win.
func WithEnv(env map[string]string) Option {
	return func(s *Settings) {
		if s.Env == nil {
			s.Env = make(map[string]string, len(env))
		}

		maps.Copy(s.Env, env)
	}
}

// WithCleanEnv starts the child from an empty environment instead of inheriting ours.
// Variables from WithEnv are still applied.
func WithCleanEnv() Option {
	return func(s *Settings) {
		s.CleanEnv = true
	}
}

// WithDir sets the child's working directory.
func WithDir(dir string) Option {
	return func(s *Settings) {
		s.Dir = dir
	}
}

// WithStream copies the merged output to w as it is read.
// It may be given more than once.
func WithStream(w io.Writer) Option {
	return func(s *Settings) {
		if w != nil {
			s.Streams = append(s.Streams, w)
		}
	}
}

// WithSignals forwards signals received on ch to the child.
// A second signal of the same kind kills it.
func WithSignals(ch <-chan os.Signal) Option {
	return func(s *Settings) {
		s.Signals = ch
	}
}

// WithWindow sets how many output lines are retained for error reports.
func WithWindow(lines int) Option {
	return func(s *Settings) {
		s.Window = lines
	}
}

// WithWaitDelay sets how long to keep reading output after the child exits.
func WithWaitDelay(d time.Duration) Option {
	return func(s *Settings) {
		s.WaitDelay = d
	}
}

// Stream returns a writer fanning out to every stream, or nil if there are none.
func (s *Settings) Stream() io.Writer {
	switch len(s.Streams) {
	case 0:
		return nil
	case 1:
		return s.Streams[0]
	default:
		return io.MultiWriter(s.Streams...)
	}
}

// Environ builds the child's environment in KEY=VALUE form.
// Overridden keys replace inherited ones rather than being appended,
// since getenv(3) returns the first match.
func (s *Settings) Environ() []string {
	merged := make(map[string]string)

	if !s.CleanEnv {
		for _, kv := range os.Environ() {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				continue
			}

			merged[k] = v
		}
	}

	maps.Copy(merged, s.Env)

	env := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		env = append(env, k+"="+merged[k])
	}

	return env
}
