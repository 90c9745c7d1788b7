// Package notify emits desktop notifications through platform helpers.
package notify

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/verte-zerg/tomato/internal/execx"
)

// ErrUnsupported is returned when no notification helper is known for the platform.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// Desktop sends notifications with a configured command or the platform default.
type Desktop struct {
	command string
	goos    string
	exec    execx.Executor
}

// Option configures a Desktop.
type Option func(*Desktop)

// WithExecutor replaces the process runner.
func WithExecutor(e execx.Executor) Option {
	return func(d *Desktop) {
		d.exec = e
	}
}

// WithGOOS overrides the detected platform.
func WithGOOS(goos string) Option {
	return func(d *Desktop) {
		d.goos = goos
	}
}

// New returns a Desktop notifier. A non-empty command is invoked with the
// summary and body appended as arguments.
func New(command string, opts ...Option) *Desktop {
	d := &Desktop{
		command: strings.TrimSpace(command),
		goos:    runtime.GOOS,
		exec:    execx.RealExecutor{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify shows summary and body to the user.
func (d *Desktop) Notify(ctx context.Context, summary, body string) error {
	name, args := d.commandFor(summary, body)
	if name == "" {
		return ErrUnsupported
	}
	return d.exec.Run(ctx, name, args...)
}

func (d *Desktop) commandFor(summary, body string) (string, []string) {
	if d.command != "" {
		name, args := execx.Split(d.command)
		return name, append(args, summary, body)
	}
	switch d.goos {
	case "darwin":
		script := "display notification " + appleScriptString(body) + " with title " + appleScriptString(summary)
		return "osascript", []string{"-e", script}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{summary, body}
	default:
		return "", nil
	}
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
