package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

func newTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(filepath.Join(t.TempDir(), "pomodoro", settingsFileName), logging.Nop())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)
	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	store := newTestStore(t)
	want := model.Settings{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 30, SessionsBeforeLongBreak: 2}

	require.NoError(t, store.Save(want))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "work_minutes: 50")
	assert.Contains(t, string(data), "sessions_before_long_break: 2")

	got, err := NewSettingsStore(store.Path(), logging.Nop()).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveRefusesInvalidSettings(t *testing.T) {
	store := newTestStore(t)
	err := store.Save(model.Settings{WorkMinutes: 0, ShortBreakMinutes: 5, LongBreakMinutes: 15, SessionsBeforeLongBreak: 4})
	assert.True(t, errors.Is(err, model.ErrInvalidSettings))
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	store := newTestStore(t)
	writeFile(t, store.Path(), "work_minutes: 45\n")

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 45, settings.WorkMinutes)
	assert.Equal(t, 5, settings.ShortBreakMinutes)
	assert.Equal(t, 15, settings.LongBreakMinutes)
	assert.Equal(t, 4, settings.SessionsBeforeLongBreak)
}

func TestLoadRejectsNonPositiveValues(t *testing.T) {
	store := newTestStore(t)
	writeFile(t, store.Path(), "work_minutes: 0\nshort_break_minutes: 5\n")

	settings, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidSettings))
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	store := newTestStore(t)
	writeFile(t, store.Path(), "work_minutes: [oops\n")

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
}

func TestWatchPublishesExternalEdits(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.DefaultSettings()))

	changes := make(chan model.Settings, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- store.watch(ctx, 20*time.Millisecond, func(settings model.Settings) { changes <- settings })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, store.Path(), "work_minutes: 0\n")
	writeFile(t, store.Path(), "work_minutes: 40\nshort_break_minutes: 8\nlong_break_minutes: 20\nsessions_before_long_break: 3\n")

	select {
	case settings := <-changes:
		assert.Equal(t, model.Settings{WorkMinutes: 40, ShortBreakMinutes: 8, LongBreakMinutes: 20, SessionsBeforeLongBreak: 3}, settings)
	case <-time.After(3 * time.Second):
		t.Fatal("no settings change observed")
	}
}

func TestWatchSkipsOwnSaves(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.DefaultSettings()))

	changes := make(chan model.Settings, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- store.watch(ctx, 20*time.Millisecond, func(settings model.Settings) { changes <- settings })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, store.Save(model.Settings{WorkMinutes: 30, ShortBreakMinutes: 5, LongBreakMinutes: 15, SessionsBeforeLongBreak: 4}))

	select {
	case settings := <-changes:
		t.Fatalf("unexpected change published: %+v", settings)
	case <-time.After(300 * time.Millisecond):
	}
}
