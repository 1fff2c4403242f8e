// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	handler := NewPrettyHandler(nil)
	require.NotNil(t, handler)
	assert.NotNil(t, handler.h)
	assert.NotNil(t, handler.b)
	assert.NotNil(t, handler.m)
	assert.NotNil(t, handler.writer)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		handler slog.Level
		want    bool
	}{
		{name: "debug with debug handler", level: slog.LevelDebug, handler: slog.LevelDebug, want: true},
		{name: "debug with info handler", level: slog.LevelDebug, handler: slog.LevelInfo, want: false},
		{name: "error with warn handler", level: slog.LevelError, handler: slog.LevelWarn, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPrettyHandler(&slog.HandlerOptions{Level: tt.handler})
			assert.Equal(t, tt.want, h.Enabled(context.Background(), tt.level))
		})
	}
}

func TestPrettyHandler_WithAttrsSharesState(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{})

	withAttrs, ok := handler.WithAttrs([]slog.Attr{slog.String("k", "v")}).(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, handler.b, withAttrs.b)
	assert.Same(t, handler.m, withAttrs.m)

	withGroup, ok := handler.WithGroup("grp").(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, handler.b, withGroup.b)
	assert.Same(t, handler.m, withGroup.m)
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []any
		options []Option
		expect  []string
	}{
		{
			name:    "info without attributes",
			level:   slog.LevelInfo,
			message: "downloading",
			expect:  []string{"INFO:", "downloading"},
		},
		{
			name:    "debug with attributes",
			level:   slog.LevelDebug,
			message: "process started",
			attrs:   []any{"pid", 42, "command", "curl"},
			expect:  []string{"DEBUG:", "process started", "pid", "42", "curl"},
		},
		{
			name:    "empty attributes printed when asked",
			level:   slog.LevelWarn,
			message: "file exists",
			options: []Option{WithOutputEmptyAttrs()},
			expect:  []string{"WARN:", "file exists", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tt.options...)
			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			record := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			record.Add(tt.attrs...)

			require.NoError(t, handler.Handle(context.Background(), record))

			out := buf.String()
			for _, want := range tt.expect {
				assert.Contains(t, out, want)
			}

			assert.Equal(t, byte('\n'), out[len(out)-1], "output should end with a newline")
		})
	}
}

func TestPrettyHandler_Handle_WithReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	replaceAttr := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}

		if a.Key == "token" {
			return slog.String("token", "[REDACTED]")
		}

		return a
	}

	handler := NewPrettyHandler(&slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	}, WithDestinationWriter(&buf))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "fetch", 0)
	record.Add("token", "hunter2", "url", "https://example.org")

	require.NoError(t, handler.Handle(context.Background(), record))

	out := buf.String()
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "hunter2")
	assert.True(t, strings.HasPrefix(out, "INFO:"), "timestamp should have been removed: %q", out)
}

func TestPrettyHandler_computeAttrs_Error(t *testing.T) {
	handler := &PrettyHandler{
		h: &failingHandler{},
		b: &bytes.Buffer{},
		m: &sync.Mutex{},
	}

	_, err := handler.computeAttrs(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	require.Error(t, err)
}

func TestPrettyHandler_Handle_WriteError(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&failingWriter{}))

	err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	require.ErrorIs(t, err, ErrIoWrite)
}

func TestSuppressDefaults(t *testing.T) {
	next := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == "transform" {
			return slog.String("transform", "transformed")
		}

		return a
	}

	tests := []struct {
		name string
		next func([]string, slog.Attr) slog.Attr
		attr slog.Attr
		want slog.Attr
	}{
		{name: "time suppressed", attr: slog.Time(slog.TimeKey, time.Now()), want: slog.Attr{}},
		{name: "level suppressed", attr: slog.Any(slog.LevelKey, slog.LevelInfo), want: slog.Attr{}},
		{name: "message suppressed", attr: slog.String(slog.MessageKey, "m"), want: slog.Attr{}},
		{name: "custom kept", attr: slog.String("custom", "v"), want: slog.String("custom", "v")},
		{name: "next applied", next: next, attr: slog.String("transform", "x"), want: slog.String("transform", "transformed")},
		{name: "next still suppresses time", next: next, attr: slog.Time(slog.TimeKey, time.Now()), want: slog.Attr{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suppressDefaults(tt.next)(nil, tt.attr)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestLevelColour(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf), WithColour())

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError, slog.LevelError + 2} {
		buf.Reset()
		require.NoError(t, handler.Handle(context.Background(), slog.NewRecord(time.Now(), level, "msg", 0)))
		assert.NotEmpty(t, buf.String(), "no output for level %v", level)
	}
}

type failingHandler struct{}

func (h *failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("failing handler error")
}

func (h *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *failingHandler) WithGroup(string) slog.Handler { return h }

type failingWriter struct{}

func (w *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
