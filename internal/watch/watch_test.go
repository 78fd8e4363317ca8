package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wait = 3 * time.Second

func nextEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name, ok := <-w.Events:
		require.True(t, ok, "канал событий закрыт")
		return name
	case err := <-w.Errors:
		t.Fatalf("ошибка наблюдателя: %v", err)
	case <-time.After(wait):
		t.Fatal("событие не пришло")
	}
	return ""
}

func assertQuiet(t *testing.T, w *Watcher, d time.Duration) {
	t.Helper()
	select {
	case name := <-w.Events:
		t.Fatalf("неожиданное событие %s", name)
	case <-time.After(d):
	}
}

func TestWatcher_DirectoryDebounce(t *testing.T) {
	dir := t.TempDir()
	w, err := New(50*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "gameconf.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	}

	assert.Equal(t, path, nextEvent(t, w))
	assertQuiet(t, w, 200*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	assertQuiet(t, w, 200*time.Millisecond)
}

func TestWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sbardef.json")
	other := filepath.Join(dir, "skydefs.json")
	require.NoError(t, os.WriteFile(target, []byte(`{}`), 0o644))

	w, err := New(20*time.Millisecond, target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte(`{}`), 0o644))
	assertQuiet(t, w, 200*time.Millisecond)

	require.NoError(t, os.WriteFile(target, []byte(`{"a":1}`), 0o644))
	assert.Equal(t, target, nextEvent(t, w))
}

func TestWatcher_Close(t *testing.T) {
	w, err := New(10*time.Millisecond, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestNew_MissingPath(t *testing.T) {
	_, err := New(time.Millisecond, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestIsWatched(t *testing.T) {
	for path, want := range map[string]bool{
		"gameconf.json": true,
		"preset.TOML":   true,
		"preset.yml":    true,
		"preset.yaml":   true,
		"readme.md":     false,
		"noext":         false,
	} {
		assert.Equal(t, want, IsWatched(path), path)
	}
}
