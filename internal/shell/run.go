// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/linewindow"
)

// maxLineLength caps a single retained line. Longer lines are truncated in
// the error report but still copied to streams in full.
const maxLineLength = 64 * 1024

// signalExitBase is added to the signal number for children killed by a signal, as sh does.
const signalExitBase = 128

// Run executes c and waits for it to finish.
//
// It returns nil when the child exits 0 and a *CommandFailedError for any
// other status. When ctx is done first the child is killed and the returned
// error matches ErrCancelled and ctx.Err().
func Run(ctx context.Context, c Command, opts ...Option) error {
	s := NewSettings(opts...)

	inv, err := Normalize(c)
	if err != nil {
		return err
	}

	path, argv, err := inv.process(s.Dir)
	if err != nil {
		return err
	}

	logger := ctxlog.Logger(ctx).With("run", uuid.NewString())
	logger.Debug("starting command", "path", path, "args", argv[1:], "shell", inv.UseShell, "cwd", s.Dir)

	// Both stdout and stderr of the child go to w, giving a single merged stream.
	// os.Pipe sets close-on-exec on both ends.
	r, w, err := os.Pipe()
	if err != nil {
		return errors.Join(ErrFailedToCreatePipe, err)
	}

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   s.Dir,
		Env:   s.Environ(),
		Files: []*os.File{os.Stdin, w, w},
	})

	// The child holds its own copy of the write end. Ours must be closed
	// for the reader to see EOF once the child exits.
	_ = w.Close()

	if err != nil {
		_ = r.Close()
		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	window := linewindow.New(s.Window)
	readDone := make(chan struct{})

	go func() {
		defer close(readDone)
		readLines(r, window, s.Stream())
	}()

	exited := make(chan struct{})
	watchdogDone := make(chan struct{})
	killed := make(chan error, 1)

	go func() {
		defer close(watchdogDone)
		watch(ctx, logger, ps, s.Signals, exited, killed)
	}()

	state, waitErr := ps.Wait()

	close(exited)
	<-watchdogDone

	drain(readDone, r, s.WaitDelay, logger)
	_ = r.Close()

	if waitErr != nil {
		return errors.Join(ErrWaitFailed, waitErr)
	}

	select {
	case err := <-killed:
		return err
	default:
	}

	code := exitCode(state)
	logger.Debug("process finished", "exitCode", code)

	if code == 0 {
		return nil
	}

	return &CommandFailedError{
		Command:  inv.Text(),
		ExitCode: code,
		Output:   window.Lines(),
	}
}

// watch kills the process when ctx is done and forwards signals to it.
// The second signal of a kind kills the process. It returns once exited is closed
// or the process has been killed.
func watch(
	ctx context.Context,
	logger *slog.Logger,
	ps *os.Process,
	sigs <-chan os.Signal,
	exited <-chan struct{},
	killed chan<- error,
) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-exited:
			return

		case <-ctx.Done():
			// select picks at random when both are ready. A process that has
			// already exited keeps its own result.
			select {
			case <-exited:
				return
			default:
			}

			logger.Info("context done, killing process", "pid", ps.Pid)
			kill(logger, ps)

			killed <- fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())

			return

		case sig, ok := <-sigs:
			if !ok {
				sigs = nil
				continue
			}

			if _, dup := seen[sig]; dup {
				logger.Info("received duplicate signal, killing process", "signal", sig.String(), "pid", ps.Pid)
				kill(logger, ps)

				continue
			}

			seen[sig] = struct{}{}

			logger.Info("forwarding signal", "signal", sig.String(), "pid", ps.Pid)

			if err := ps.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
				logger.Warn("failed to forward signal", "signal", sig.String(), "error", err)
			}
		}
	}
}

func kill(logger *slog.Logger, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			logger.Debug("process already done", "pid", ps.Pid)
			return
		}

		logger.Error("process kill error", "pid", ps.Pid, "error", err)
	}
}

// drain waits for the reader to reach EOF. If a grandchild still holds the
// pipe open after delay, the read end is closed to release the reader.
func drain(readDone <-chan struct{}, r *os.File, delay time.Duration, logger *slog.Logger) {
	if delay <= 0 {
		<-readDone
		return
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-readDone:
	case <-timer.C:
		logger.Debug("output still open after process exit, closing pipe", "waitDelay", delay)
		_ = r.Close()
		<-readDone
	}
}

// readLines copies r to stream and records each line in window.
func readLines(r io.Reader, window *linewindow.Window, stream io.Writer) {
	br := bufio.NewReader(r)
	line := make([]byte, 0, 256)

	for {
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			if stream != nil {
				_, _ = stream.Write(chunk)
			}

			if room := maxLineLength - len(line); room > 0 {
				line = append(line, chunk[:min(room, len(chunk))]...)
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if len(line) > 0 {
			window.Add(strings.TrimRight(string(line), "\n"))
			line = line[:0]
		}

		if err != nil {
			return
		}
	}
}

func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}

	return state.ExitCode()
}
