// Package app wires settings, the session log and the timer into the
// operations exposed by the CLI and the interactive menu.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tomato/internal/config"
	"github.com/verte-zerg/tomato/internal/logging"
	"github.com/verte-zerg/tomato/internal/migration"
	"github.com/verte-zerg/tomato/internal/session"
	"github.com/verte-zerg/tomato/internal/settings"
	"github.com/verte-zerg/tomato/internal/storage"
	"github.com/verte-zerg/tomato/internal/timer"
)

// LogFileName is the log file kept next to the settings when none is configured.
const LogFileName = "tomato.log"

// Deps are the collaborators an App is built from. Nil side-effect
// collaborators are replaced with no-ops.
type Deps struct {
	Home     config.HomeFunc
	Config   config.App
	Out      io.Writer
	Progress timer.Progress
	Notifier timer.Notifier
	Player   timer.Player
	Prompter Prompter
	Sleep    timer.SleepFunc
	Now      func() time.Time
}

// App holds the loaded state of one tomato process.
type App struct {
	Settings settings.Settings
	Timer    *timer.Timer

	home          config.HomeFunc
	cfg           config.App
	out           io.Writer
	settingsStore *settings.Store
	sessions      *session.Log
	runner        *timer.Runner
	prompter      Prompter
	now           func() time.Time
	log           zerolog.Logger
}

// New loads settings, migrating them when needed, and the session log, and
// seeds the timer with the stored defaults and the worked total.
func New(d Deps) (*App, error) {
	if d.Home == nil {
		d.Home = config.UserHome
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Config.Folder == "" {
		d.Config.Folder = config.DefaultFolder
	}

	settingsStore := settings.NewStore(storage.New(d.Home, d.Config.Folder, settings.FileName))
	loaded, err := LoadSettings(settingsStore)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	sessions := session.OpenLog(session.NewStore(storage.New(d.Home, d.Config.Folder, session.FileName)))

	opts := []timer.Option{
		timer.WithClock(d.Now),
		timer.WithSoundDuration(d.Config.SoundDuration),
	}
	if d.Sleep != nil {
		opts = append(opts, timer.WithSleep(d.Sleep))
	}
	if d.Prompter != nil {
		opts = append(opts, timer.WithPauser(d.Prompter))
	}

	a := &App{
		Settings:      loaded,
		Timer:         timer.New(loaded.WorkTime, loaded.BreakTime, sessions.TotalWorkMinutes()),
		home:          d.Home,
		cfg:           d.Config,
		out:           d.Out,
		settingsStore: settingsStore,
		sessions:      sessions,
		runner:        timer.NewRunner(sessions, d.Progress, d.Notifier, d.Player, opts...),
		prompter:      d.Prompter,
		now:           d.Now,
		log:           logging.Component("app"),
	}
	a.log.Debug().
		Str("version", loaded.Version).
		Int("sessions", sessions.List().Len()).
		Uint64("total", a.Timer.TotalWorkedMinutes).
		Msg("state loaded")
	return a, nil
}

// LoadSettings returns the current settings, running the migration engine
// first when the stored file carries an older version.
func LoadSettings(store *settings.Store) (settings.Settings, error) {
	raw, err := store.Raw()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return store.Load()
		}
		return settings.Settings{}, err
	}
	if settings.IsBlank(raw) || migration.IsCurrent(raw, settings.CurrentVersion) {
		return store.Load()
	}
	log := logging.Component("app")
	log.Info().
		Str("from", migration.DetectVersion(raw)).
		Str("to", settings.CurrentVersion).
		Msg("migrating settings")
	return migration.New(store).Migrate(raw)
}

// LogFile returns the configured log path, defaulting to the data folder.
func LogFile(home config.HomeFunc, cfg config.App) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	dir, err := config.DataDir(home, cfg.Folder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data dir: %w", err)
	}
	return filepath.Join(dir, LogFileName), nil
}

// Sessions returns a snapshot of the session log.
func (a *App) Sessions() session.List {
	return a.sessions.List()
}

// Override changes the durations of the next cycles without persisting them.
func (a *App) Override(workMinutes, breakMinutes uint64) {
	a.Timer.SetWorkMinutes(workMinutes)
	a.Timer.SetBreakMinutes(breakMinutes)
}

// RunCycle runs one work phase and one break phase. An interrupted cycle
// records nothing and is not an error.
func (a *App) RunCycle(ctx context.Context) error {
	a.printf("Work: %dm, Break: %dm\n", a.Timer.WorkMinutes, a.Timer.BreakMinutes)
	s, err := a.runner.RunCycle(ctx, a.Timer, a.Settings.Notification)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			a.printf("Cycle interrupted, nothing recorded.\n")
			return nil
		}
		return fmt.Errorf("failed to run cycle: %w", err)
	}
	a.printf("Session recorded: %dm work, %dm break.\n", s.WorkTime, s.BreakTime)
	return nil
}

// SetDefaults persists new default durations and applies them to the timer.
func (a *App) SetDefaults(workMinutes, breakMinutes uint64) error {
	if err := a.settingsStore.SetDurations(&a.Settings, workMinutes, breakMinutes); err != nil {
		return err
	}
	a.Override(workMinutes, breakMinutes)
	return nil
}

// SetMessages persists new notification bodies.
func (a *App) SetMessages(workMsg, breakMsg string) error {
	return a.settingsStore.SetMessages(&a.Settings, workMsg, breakMsg)
}

// SetNotifications persists the notification switch.
func (a *App) SetNotifications(enable bool) error {
	return a.settingsStore.SetNotificationsEnabled(&a.Settings, enable)
}

// ToggleNotifications flips the notification switch and persists it.
func (a *App) ToggleNotifications() error {
	return a.SetNotifications(!a.Settings.Notification.Enable)
}

// NotificationStatus describes the notification preferences.
func (a *App) NotificationStatus() string {
	n := a.Settings.Notification
	state := "disabled"
	if n.Enable {
		state = "enabled"
	}
	return fmt.Sprintf("Notifications %s\nWork message: %s\nBreak message: %s", state, n.WorkMsg, n.BreakMsg)
}

func (a *App) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		// Best-effort output.
		_ = err
	}
}
