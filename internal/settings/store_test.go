package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tomato/internal/codec"
	"github.com/verte-zerg/tomato/internal/config"
	"github.com/verte-zerg/tomato/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(storage.New(config.StaticHome(t.TempDir()), ".tomato", FileName))
}

func TestSettingsRoundTrip(t *testing.T) {
	in := New(50, 10, Notifications{Enable: false, WorkMsg: "done", BreakMsg: "back"})

	text, err := codec.Encode(in)
	require.NoError(t, err)
	out, ok := codec.Decode[Settings](text)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestEncodedFieldNames(t *testing.T) {
	text, err := codec.Encode(Default())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "0.2",
		"work_time": 25,
		"break_time": 5,
		"notification": {
			"enable": true,
			"work_msg": "Good job your work is done. Take a break",
			"break_msg": "Break is done. Get back to work"
		}
	}`, text)
}

func TestLoadMissingWritesDefaults(t *testing.T) {
	st := newTestStore(t)

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), got)

	raw, err := st.Raw()
	require.NoError(t, err)
	persisted, ok := codec.Decode[Settings](raw)
	require.True(t, ok)
	assert.Equal(t, Default(), persisted)
}

func TestLoadBlankFallsBackToDefaults(t *testing.T) {
	for _, contents := range []string{"", "{}", "  {}\n"} {
		st := newTestStore(t)
		require.NoError(t, st.Storage().Write(contents))

		got, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), got)
	}
}

func TestLoadCorruptIsAnError(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Storage().Write(`{"version":"0.2","work_time":"twenty"`))

	_, err := st.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))

	raw, err := st.Raw()
	require.NoError(t, err)
	assert.Equal(t, `{"version":"0.2","work_time":"twenty"`, raw, "corrupt file must not be rewritten")
}

func TestLoadStaleVersion(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Storage().Write(`{"version":"0.1","work_time":25,"break_time":5}`))

	_, err := st.Load()
	assert.True(t, errors.Is(err, ErrStaleVersion))
}

func TestMutatorsPersist(t *testing.T) {
	st := newTestStore(t)
	s, err := st.Load()
	require.NoError(t, err)

	require.NoError(t, st.SetDurations(&s, 45, 15))
	require.NoError(t, st.SetMessages(&s, "work over", "break over"))
	require.NoError(t, st.SetNotificationsEnabled(&s, false))

	reloaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, s, reloaded)
	assert.Equal(t, uint64(45), reloaded.WorkTime)
	assert.Equal(t, uint64(15), reloaded.BreakTime)
	assert.Equal(t, "work over", reloaded.Notification.WorkMsg)
	assert.Equal(t, "break over", reloaded.Notification.BreakMsg)
	assert.False(t, reloaded.Notification.Enable)
}
