package timer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tomato/internal/logging"
	"github.com/verte-zerg/tomato/internal/session"
	"github.com/verte-zerg/tomato/internal/settings"
)

// Sound names passed to the Player.
const (
	SoundWorkDone  = "pomodoro_finish"
	SoundBreakDone = "break_done"
)

const (
	notificationSummary  = "Tomato"
	defaultSoundDuration = 2 * time.Second
)

// ErrDurationTooLong is returned when a phase does not fit a session record.
var ErrDurationTooLong = errors.New("phase duration too long")

// Progress renders a countdown of total ticks, advanced once per tick.
type Progress interface {
	Start(phase Phase, total uint64)
	Advance()
	Finish()
}

// Notifier emits a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
}

// Player plays a named completion sound and holds for d.
type Player interface {
	Play(ctx context.Context, name string, d time.Duration)
}

// Recorder durably stores a completed session before returning.
type Recorder interface {
	Record(s session.Session) error
}

// Pauser blocks between the work and break phases.
type Pauser interface {
	WaitForBreak(ctx context.Context) error
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Runner drives one work phase followed by one break phase.
type Runner struct {
	recorder Recorder
	progress Progress
	notifier Notifier
	player   Player
	pauser   Pauser

	sleep         SleepFunc
	now           func() time.Time
	soundDuration time.Duration

	state Phase
	log   zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithSleep replaces the per-tick sleep.
func WithSleep(fn SleepFunc) Option {
	return func(r *Runner) { r.sleep = fn }
}

// WithClock replaces the clock used to stamp sessions.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithSoundDuration sets how long completion sounds are held.
func WithSoundDuration(d time.Duration) Option {
	return func(r *Runner) { r.soundDuration = d }
}

// WithPauser sets the gate between work and break.
func WithPauser(p Pauser) Option {
	return func(r *Runner) { r.pauser = p }
}

// NewRunner returns a Runner recording into recorder. Nil collaborators are no-ops.
func NewRunner(recorder Recorder, progress Progress, notifier Notifier, player Player, opts ...Option) *Runner {
	r := &Runner{
		recorder:      recorder,
		progress:      progress,
		notifier:      notifier,
		player:        player,
		sleep:         Sleep,
		now:           time.Now,
		soundDuration: defaultSoundDuration,
		state:         Idle,
		log:           logging.Component("timer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.progress == nil {
		r.progress = nopProgress{}
	}
	if r.notifier == nil {
		r.notifier = nopNotifier{}
	}
	if r.player == nil {
		r.player = nopPlayer{}
	}
	if r.pauser == nil {
		r.pauser = nopPauser{}
	}
	return r
}

// State returns the current phase.
func (r *Runner) State() Phase {
	return r.state
}

// RunCycle counts down t.WorkMinutes then t.BreakMinutes and records one
// Session. If ctx ends or a collaborator fails before the break completes,
// nothing is recorded. A recording failure is returned as-is; the caller
// must treat it as fatal.
func (r *Runner) RunCycle(ctx context.Context, t *Timer, n settings.Notifications) (session.Session, error) {
	if t.WorkMinutes > math.MaxUint32 || t.BreakMinutes > math.MaxUint32 {
		return session.Session{}, fmt.Errorf("%w: %d/%d minutes", ErrDurationTooLong, t.WorkMinutes, t.BreakMinutes)
	}
	defer func() { r.state = Idle }()

	r.log.Info().Uint64("work", t.WorkMinutes).Uint64("break", t.BreakMinutes).Msg("cycle started")

	r.state = Working
	if err := r.countdown(ctx, Working, t.WorkMinutes); err != nil {
		return session.Session{}, err
	}
	t.AddWorkedMinutes(t.WorkMinutes)
	r.complete(ctx, n.Enable, n.WorkMsg, SoundWorkDone)

	if err := r.pauser.WaitForBreak(ctx); err != nil {
		return session.Session{}, err
	}

	r.state = Break
	if err := r.countdown(ctx, Break, t.BreakMinutes); err != nil {
		return session.Session{}, err
	}

	s := session.NewAt(r.now(), uint32(t.WorkMinutes), uint32(t.BreakMinutes))
	if err := r.recorder.Record(s); err != nil {
		return session.Session{}, err
	}
	r.log.Info().Uint32("work", s.WorkTime).Uint32("break", s.BreakTime).Msg("session recorded")
	r.complete(ctx, n.Enable, n.BreakMsg, SoundBreakDone)
	return s, nil
}

func (r *Runner) countdown(ctx context.Context, phase Phase, minutes uint64) error {
	total := minutes * 60
	r.progress.Start(phase, total)
	defer r.progress.Finish()
	for i := uint64(0); i < total; i++ {
		if err := r.sleep(ctx, time.Second); err != nil {
			r.log.Info().Str("phase", phase.String()).Uint64("elapsed", i).Msg("countdown interrupted")
			return err
		}
		r.progress.Advance()
	}
	return nil
}

func (r *Runner) complete(ctx context.Context, notify bool, msg, sound string) {
	if notify {
		if err := r.notifier.Notify(ctx, notificationSummary, msg); err != nil {
			r.log.Warn().Err(err).Msg("notification failed")
		}
	}
	r.player.Play(ctx, sound, r.soundDuration)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type nopProgress struct{}

func (nopProgress) Start(Phase, uint64) {}
func (nopProgress) Advance()            {}
func (nopProgress) Finish()             {}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string) error { return nil }

type nopPlayer struct{}

func (nopPlayer) Play(context.Context, string, time.Duration) {}

type nopPauser struct{}

func (nopPauser) WaitForBreak(context.Context) error { return nil }
