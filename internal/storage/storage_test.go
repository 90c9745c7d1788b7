package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tomato/internal/config"
)

func TestWriteCreatesFolder(t *testing.T) {
	home := t.TempDir()
	st := New(config.StaticHome(home), ".tomato", "settings.json")

	_, err := os.Stat(filepath.Join(home, ".tomato"))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, st.Write(`{"a":1}`))

	info, err := os.Stat(filepath.Join(home, ".tomato"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, st.Exists())
}

func TestReadReturnsContentsVerbatim(t *testing.T) {
	st := New(config.StaticHome(t.TempDir()), "data", "notes.txt")
	text := "first line\n  second line with ünïcode\n"

	require.NoError(t, st.Write(text))
	got, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestWriteTruncates(t *testing.T) {
	st := New(config.StaticHome(t.TempDir()), "data", "file.txt")

	require.NoError(t, st.Write("a much longer piece of text"))
	require.NoError(t, st.Write("short"))

	got, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestReadMissingFile(t *testing.T) {
	st := New(config.StaticHome(t.TempDir()), "data", "missing.json")

	_, err := st.Read()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, st.Exists())
}

func TestWriteFailsWhenFolderIsAFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "blocked"), []byte("x"), 0o644))
	st := New(config.StaticHome(home), "blocked", "settings.json")

	err := st.Write("{}")
	assert.Error(t, err)
}

func TestHomeResolverError(t *testing.T) {
	st := New(func() (string, error) { return "", errors.New("no home") }, "data", "f")

	_, err := st.Read()
	assert.Error(t, err)
	assert.Error(t, st.Write("x"))
}

func TestPathDefaults(t *testing.T) {
	st := New(config.StaticHome("/home/user"), "", "sessions.json")

	path, err := st.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/user", config.DefaultFolder, "sessions.json"), path)
}

type shortWriter struct {
	limit int
}

func (w shortWriter) Write(p []byte) (int, error) {
	return min(len(p), w.limit), nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteAllReportsShortWrite(t *testing.T) {
	err := writeAll(shortWriter{limit: 3}, `{"sessions":[]}`)
	require.ErrorIs(t, err, ErrShortWrite)
	assert.Contains(t, err.Error(), "wrote 3 of 15 bytes")

	assert.NoError(t, writeAll(shortWriter{limit: 100}, `{}`))
	assert.EqualError(t, writeAll(failingWriter{}, `{}`), "disk full")
}
