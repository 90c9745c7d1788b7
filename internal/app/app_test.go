package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tomato/internal/config"
	"github.com/verte-zerg/tomato/internal/migration"
	"github.com/verte-zerg/tomato/internal/model"
	"github.com/verte-zerg/tomato/internal/session"
	"github.com/verte-zerg/tomato/internal/settings"
	"github.com/verte-zerg/tomato/internal/store"
	"github.com/verte-zerg/tomato/internal/tui"
)

var fixedNow = time.Date(2025, 1, 11, 20, 43, 50, 0, time.UTC)

type fakePrompter struct {
	choices   []tui.MenuChoice
	durations [][2]uint64
	messages  [][2]string
	pauses    int
	menuWaits int
}

func (f *fakePrompter) Menu(string, bool) (tui.MenuChoice, error) {
	if len(f.choices) == 0 {
		return tui.ChoiceExit, tui.ErrAborted
	}
	c := f.choices[0]
	f.choices = f.choices[1:]
	return c, nil
}

func (f *fakePrompter) Durations(uint64, uint64) (uint64, uint64, error) {
	d := f.durations[0]
	f.durations = f.durations[1:]
	return d[0], d[1], nil
}

func (f *fakePrompter) Messages(settings.Notifications) (string, string, error) {
	m := f.messages[0]
	f.messages = f.messages[1:]
	return m[0], m[1], nil
}

func (f *fakePrompter) WaitForBreak(context.Context) error {
	f.pauses++
	return nil
}

func (f *fakePrompter) WaitForMenu(context.Context) error {
	f.menuWaits++
	return nil
}

type env struct {
	home string
	out  *bytes.Buffer
	p    *fakePrompter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return &env{home: t.TempDir(), out: &bytes.Buffer{}, p: &fakePrompter{}}
}

func (e *env) path(name string) string {
	return filepath.Join(e.home, config.DefaultFolder, name)
}

func (e *env) write(t *testing.T, name, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(e.home, config.DefaultFolder), 0o755))
	require.NoError(t, os.WriteFile(e.path(name), []byte(text), 0o644))
}

func (e *env) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(e.path(name))
	require.NoError(t, err)
	return string(data)
}

func (e *env) open(t *testing.T) *App {
	t.Helper()
	a, err := New(Deps{
		Home:     config.StaticHome(e.home),
		Config:   config.Defaults(),
		Out:      e.out,
		Prompter: e.p,
		Sleep:    func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return a
}

func TestFirstRunWritesDefaults(t *testing.T) {
	e := newEnv(t)
	a := e.open(t)

	assert.Equal(t, settings.Default(), a.Settings)
	assert.Equal(t, uint64(25), a.Timer.WorkMinutes)
	assert.Equal(t, uint64(5), a.Timer.BreakMinutes)
	assert.Zero(t, a.Timer.TotalWorkedMinutes)
	assert.True(t, migration.IsCurrent(e.read(t, settings.FileName), settings.CurrentVersion))
	assert.NoFileExists(t, e.path(session.FileName))
}

func TestLegacySettingsMigrateOnce(t *testing.T) {
	e := newEnv(t)
	e.write(t, settings.FileName, `{"version":"0.1","work_time":40,"break_time":10}`)

	a := e.open(t)
	assert.Equal(t, settings.New(40, 10, settings.DefaultNotifications()), a.Settings)

	migrated := e.read(t, settings.FileName)
	assert.Equal(t, settings.CurrentVersion, migration.DetectVersion(migrated))

	b := e.open(t)
	assert.Equal(t, a.Settings, b.Settings)
	assert.Equal(t, migrated, e.read(t, settings.FileName), "second load must not rewrite settings")
}

func TestCorruptSettingsAreFatal(t *testing.T) {
	e := newEnv(t)
	e.write(t, settings.FileName, `{"version":"0.2","work_time":"lots"}`)

	_, err := New(Deps{Home: config.StaticHome(e.home), Config: config.Defaults()})
	require.ErrorIs(t, err, settings.ErrCorrupt)
	assert.Equal(t, `{"version":"0.2","work_time":"lots"}`, e.read(t, settings.FileName))
}

func TestUnknownVersionIsFatal(t *testing.T) {
	e := newEnv(t)
	e.write(t, settings.FileName, `{"version":"9.9","work_time":25,"break_time":5}`)

	_, err := New(Deps{Home: config.StaticHome(e.home), Config: config.Defaults()})
	require.ErrorIs(t, err, migration.ErrUnknownVersion)
}

func TestTimerSeededWithLoggedTotal(t *testing.T) {
	e := newEnv(t)
	e.write(t, session.FileName, `{"sessions":[{"timestamp":1736628230,"work_time":25,"break_time":5},{"timestamp":1736628230,"work_time":35,"break_time":5},{"timestamp":1736628230,"work_time":100,"break_time":5}]}`)

	a := e.open(t)
	assert.Equal(t, uint64(160), a.Timer.TotalWorkedMinutes)
}

func TestCorruptSessionsStartEmpty(t *testing.T) {
	e := newEnv(t)
	e.write(t, session.FileName, `not json`)

	a := e.open(t)
	assert.Zero(t, a.Timer.TotalWorkedMinutes)
	assert.Zero(t, a.Sessions().Len())
}

func TestZeroCycleRecordsOneSession(t *testing.T) {
	e := newEnv(t)
	a := e.open(t)
	a.Override(0, 0)

	require.NoError(t, a.RunCycle(context.Background()))

	assert.Zero(t, a.Timer.TotalWorkedMinutes)
	assert.Equal(t, 1, a.Sessions().Len())
	assert.Equal(t, 1, e.p.pauses)

	var persisted session.List
	require.NoError(t, json.Unmarshal([]byte(e.read(t, session.FileName)), &persisted))
	assert.Equal(t, []session.Session{session.NewAt(fixedNow, 0, 0)}, persisted.Sessions)
}

func TestCycleAddsToTotalAndPersists(t *testing.T) {
	e := newEnv(t)
	a := e.open(t)
	a.Override(1, 1)

	require.NoError(t, a.RunCycle(context.Background()))
	assert.Equal(t, uint64(1), a.Timer.TotalWorkedMinutes)
	assert.Contains(t, e.out.String(), "Session recorded")

	reopened := e.open(t)
	assert.Equal(t, uint64(1), reopened.Timer.TotalWorkedMinutes)
	assert.Equal(t, uint64(25), reopened.Timer.WorkMinutes, "override is not persisted")
}

func TestInterruptedCycleRecordsNothing(t *testing.T) {
	e := newEnv(t)
	a := e.open(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, a.RunCycle(ctx))
	assert.Contains(t, e.out.String(), "nothing recorded")
	assert.Zero(t, a.Sessions().Len())
	assert.NoFileExists(t, e.path(session.FileName))
}

func TestMenuPersistsChanges(t *testing.T) {
	e := newEnv(t)
	e.p.choices = []tui.MenuChoice{tui.ChoiceSetTimes, tui.ChoiceMessages, tui.ChoiceNotifications, tui.ChoiceStats, tui.ChoiceExit}
	e.p.durations = [][2]uint64{{30, 10}}
	e.p.messages = [][2]string{{"stop", "go"}}
	a := e.open(t)

	require.NoError(t, a.Menu(context.Background()))

	want := settings.New(30, 10, settings.Notifications{Enable: false, WorkMsg: "stop", BreakMsg: "go"})
	assert.Equal(t, want, a.Settings)
	assert.Equal(t, uint64(30), a.Timer.WorkMinutes)
	assert.Equal(t, 2, e.p.menuWaits, "set times and stats both wait before the menu returns")
	assert.Contains(t, e.out.String(), "Total time worked: 0 days, 0 hours, 0 minutes")

	assert.Equal(t, want, e.open(t).Settings)
}

func TestMenuStartRunsCycle(t *testing.T) {
	e := newEnv(t)
	e.p.choices = []tui.MenuChoice{tui.ChoiceSetTimes, tui.ChoiceStart}
	e.p.durations = [][2]uint64{{1, 1}}
	a := e.open(t)

	require.NoError(t, a.Menu(context.Background()))
	assert.Equal(t, 1, a.Sessions().Len())
	assert.Equal(t, uint64(1), a.Timer.TotalWorkedMinutes)
	assert.Equal(t, 2, e.p.menuWaits, "the recorded session stays visible until the user continues")
	assert.Contains(t, e.out.String(), "Session recorded")
}

func TestMenuWithoutPrompter(t *testing.T) {
	e := newEnv(t)
	a, err := New(Deps{Home: config.StaticHome(e.home), Config: config.Defaults()})
	require.NoError(t, err)
	assert.ErrorIs(t, a.Menu(context.Background()), ErrNoPrompter)
}

func TestExport(t *testing.T) {
	e := newEnv(t)
	a := e.open(t)
	a.Override(0, 0)
	require.NoError(t, a.RunCycle(context.Background()))
	require.NoError(t, a.RunCycle(context.Background()))

	dbPath := filepath.Join(t.TempDir(), "archive.db")
	res, err := a.Export(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sessions)
	assert.Equal(t, []model.DayTotal{{Date: "2025-01-11", Sessions: 2}}, res.Days)

	st, err := store.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	got, err := st.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.Sessions().Sessions, got)
}

func TestLogFile(t *testing.T) {
	cfg := config.Defaults()
	path, err := LogFile(config.StaticHome("/home/u"), cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".tomato", LogFileName), path)

	cfg.LogFile = "/tmp/t.log"
	path, err = LogFile(config.StaticHome("/home/u"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/t.log", path)
}

func TestNotificationStatus(t *testing.T) {
	e := newEnv(t)
	a := e.open(t)
	require.NoError(t, a.SetNotifications(false))
	assert.Contains(t, a.NotificationStatus(), "Notifications disabled")
}
