// Package execx runs external helper commands such as notifiers and players.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

const maxStderrLen = 500

// ErrEmptyCommand is returned when there is nothing to execute.
var ErrEmptyCommand = errors.New("empty command")

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs commands.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) error
}

// RealExecutor runs actual processes. Stdout is discarded; on failure the
// first bytes of stderr become part of the error.
type RealExecutor struct{}

// Run executes name with args and waits for it to exit.
func (RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCommand
	}
	c := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	c.Stdout = io.Discard
	c.Stderr = &limitedWriter{buf: &buf, max: maxStderrLen}
	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(buf.String())
		if msg != "" {
			return fmt.Errorf("exec %s: %s: %w", name, msg, err)
		}
		return fmt.Errorf("exec %s: %w", name, err)
	}
	return nil
}

// Split turns a configured command line into a program and its arguments.
func Split(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Name string
	Args []string
}

// RecordingExecutor captures commands for testing.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Errors maps command names to their error.
	Errors map[string]error
}

// Run records the command and returns the configured error.
func (e *RecordingExecutor) Run(_ context.Context, name string, args ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = append(e.Commands, RecordedCommand{Name: name, Args: args})
	if e.Errors != nil {
		return e.Errors[name]
	}
	return nil
}
