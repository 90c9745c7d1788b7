package session

import (
	"testing"
	"time"

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

func TestSessionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		session Session
	}{
		{name: "with timestamp", session: NewAt(time.Date(2012, 1, 19, 0, 0, 0, 0, time.UTC), 25, 5)},
		{name: "epoch sentinel", session: New(25, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := codec.Encode(tt.session)
			require.NoError(t, err)
			out, ok := codec.Decode[Session](text)
			require.True(t, ok)
			assert.Equal(t, tt.session, out)
		})
	}
}

func TestSessionWireFormat(t *testing.T) {
	s := NewAt(time.Date(2025, 1, 11, 20, 43, 50, 0, time.UTC), 1, 2)

	text, err := codec.Encode(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":1736628230,"work_time":1,"break_time":2}`, text)
}

func TestNewAtNormalizesToUTCSeconds(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	s := NewAt(time.Date(2024, 3, 1, 12, 0, 0, 999, loc), 25, 5)

	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), s.Timestamp)
}

func TestSessionListRoundTrip(t *testing.T) {
	list := NewList([]Session{
		New(25, 5),
		NewAt(time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), 10, 5),
		NewAt(time.Date(2025, 1, 11, 20, 43, 50, 0, time.UTC), 1, 1),
	})

	text, err := codec.Encode(list)
	require.NoError(t, err)
	out, ok := codec.Decode[List](text)
	require.True(t, ok)
	assert.Equal(t, list, out)
}

func TestEmptyListEncodesArray(t *testing.T) {
	text, err := codec.Encode(NewList(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessions":[]}`, text)
}

func TestTotalWorkMinutes(t *testing.T) {
	assert.Equal(t, uint64(0), NewList(nil).TotalWorkMinutes())

	list := NewList([]Session{New(25, 5), New(35, 5), New(100, 20)})
	assert.Equal(t, uint64(160), list.TotalWorkMinutes())
}

func TestAppendKeepsOrder(t *testing.T) {
	a := NewAt(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 25, 5)
	b := NewAt(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 50, 10)

	list := NewList([]Session{a})
	list.Append(b)

	assert.Equal(t, []Session{a, b}, list.Sessions)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	list := newTestStore(t).Load()

	assert.Equal(t, 0, list.Len())
	assert.NotNil(t, list.Sessions)
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	st := storage.New(config.StaticHome(t.TempDir()), ".tomato", FileName)
	require.NoError(t, st.Write(`{"sessions":[{"timestamp":"yesterday"}]`))

	list := NewStore(st).Load()
	assert.Equal(t, 0, list.Len())
	assert.True(t, st.Exists(), "corrupt file is left in place")
}

func TestAppendAndPersist(t *testing.T) {
	store := newTestStore(t)
	a := NewAt(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), 25, 5)
	b := NewAt(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), 30, 10)

	list := store.Load()
	require.NoError(t, store.AppendAndPersist(&list, a))
	require.NoError(t, store.AppendAndPersist(&list, b))

	reloaded := store.Load()
	assert.Equal(t, []Session{a, b}, reloaded.Sessions)
	assert.Equal(t, uint64(55), reloaded.TotalWorkMinutes())
}

func TestAppendAndPersistWriteFailure(t *testing.T) {
	failing := storage.New(func() (string, error) { return "/dev/null", nil }, "nested", FileName)
	store := NewStore(failing)

	list := NewList(nil)
	err := store.AppendAndPersist(&list, New(25, 5))
	assert.Error(t, err)
}

func TestLogRecord(t *testing.T) {
	store := newTestStore(t)
	existing := New(40, 5)
	list := store.Load()
	require.NoError(t, store.AppendAndPersist(&list, existing))

	log := OpenLog(store)
	assert.Equal(t, uint64(40), log.TotalWorkMinutes())

	next := NewAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 25, 5)
	require.NoError(t, log.Record(next))

	assert.Equal(t, []Session{existing, next}, log.List().Sessions)
	assert.Equal(t, []Session{existing, next}, store.Load().Sessions)
	assert.Equal(t, uint64(65), log.TotalWorkMinutes())
}
