package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, opts Options) *Watcher {
	t.Helper()

	w, err := New(nil, opts)
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx) //nolint:errcheck // returns only nil

	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(nil, Options{})
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w, err := New(nil, Options{})
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // test cleanup

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
}

func TestWatcher_FileCreation(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, Options{Settle: 50 * time.Millisecond})

	path := filepath.Join(dir, "privacy.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>Privacy</h1>"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, OpCreated, ev.Op)
	assert.Equal(t, path, ev.Path)
	assert.Equal(t, int64(len("<h1>Privacy</h1>")), ev.Size)
}

func TestWatcher_ExistingFileIsModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terms.html")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w := startWatcher(t, dir, Options{Settle: 50 * time.Millisecond})

	require.NoError(t, os.WriteFile(path, []byte("version two"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, OpChanged, ev.Op)
	assert.Equal(t, path, ev.Path)
}

func TestWatcher_FileDeletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refunds.html")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	w := startWatcher(t, dir, Options{Settle: 50 * time.Millisecond})

	require.NoError(t, os.Remove(path))

	ev := waitEvent(t, w)
	assert.Equal(t, OpRemoved, ev.Op)
	assert.Equal(t, path, ev.Path)
}

func TestWatcher_IgnoresFilteredFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir, Options{
		Settle: 50 * time.Millisecond,
		Extensions:  []string{".html"},
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.html"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.html"), []byte("x"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, filepath.Join(dir, "contact.html"), ev.Path)
}

func TestOptions_Ignores(t *testing.T) {
	opts := Options{Extensions: []string{".html"}, Skip: []string{"draft-*"}}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"hidden file", "/pages/.privacy.html", true},
		{"tmp file", "/pages/privacy.tmp", true},
		{"editor backup", "/pages/privacy.html~", true},
		{"extra pattern", "/pages/draft-terms.html", true},
		{"other extension", "/pages/notes.txt", true},
		{"page", "/pages/privacy.html", false},
		{"upper case extension", "/pages/TERMS.HTML", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, opts.ignores(tt.path))
		})
	}

	assert.False(t, Options{KeepHidden: true}.ignores("/pages/.well-known"))
	assert.Equal(t, defaultSettle, Options{}.settle())
}
