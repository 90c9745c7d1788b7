// Package sound plays the completion sounds.
package sound

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/tomato/internal/execx"
	"github.com/verte-zerg/tomato/internal/logging"
	"github.com/verte-zerg/tomato/internal/timer"
)

const bell = "\a"

// Player runs the configured sound command, or rings the terminal bell.
type Player struct {
	enabled bool
	command string
	out     io.Writer
	exec    execx.Executor
	wait    timer.SleepFunc
}

// Option configures a Player.
type Option func(*Player)

// WithExecutor replaces the process runner.
func WithExecutor(e execx.Executor) Option {
	return func(p *Player) {
		p.exec = e
	}
}

// WithWait replaces the hold after a sound starts.
func WithWait(wait timer.SleepFunc) Option {
	return func(p *Player) {
		p.wait = wait
	}
}

// New returns a Player writing the bell to out when no command is set.
func New(enabled bool, command string, out io.Writer, opts ...Option) *Player {
	p := &Player{
		enabled: enabled,
		command: strings.TrimSpace(command),
		out:     out,
		exec:    execx.RealExecutor{},
		wait:    timer.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play plays the sound called name and holds for d. Failures are logged only.
func (p *Player) Play(ctx context.Context, name string, d time.Duration) {
	if !p.enabled {
		return
	}
	log := logging.Component("sound")

	if p.command != "" {
		prog, args := execx.Split(p.command)
		if err := p.exec.Run(ctx, prog, append(args, name)...); err != nil {
			log.Warn().Err(err).Str("sound", name).Msg("failed to play sound")
		}
	} else if p.out != nil {
		if _, err := io.WriteString(p.out, bell); err != nil {
			log.Debug().Err(err).Msg("failed to ring bell")
		}
	}

	if d <= 0 {
		return
	}
	if err := p.wait(ctx, d); err != nil {
		log.Debug().Err(err).Msg("sound hold interrupted")
	}
}
