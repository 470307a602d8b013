package storage

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

const (
	defaultDebounce    = 250 * time.Millisecond
	restartBackoffBase = 250 * time.Millisecond
	restartBackoffMax  = 5 * time.Second
)

// Watch follows external edits of the settings file until ctx is done.
//
// Writes are debounced, unchanged content is skipped and invalid content is
// logged and dropped, so onChange only ever sees valid settings that differ
// from the last ones loaded or saved through this store.
func (store *SettingsStore) Watch(ctx context.Context, onChange func(model.Settings)) error {
	return store.watch(ctx, defaultDebounce, onChange)
}

func (store *SettingsStore) watch(ctx context.Context, debounceDelay time.Duration, onChange func(model.Settings)) error {
	dir := filepath.Dir(store.path)
	file := filepath.Base(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	backoff := restartBackoffBase
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	reload := func() {
		if ctx.Err() != nil {
			return
		}
		settings, err := store.parse()
		if err != nil {
			store.log.Warn("settings reload rejected", logging.String("path", store.path), logging.Err(err))
			return
		}
		if !store.changed(settings) {
			store.log.Debug("settings unchanged; skipping", logging.String("path", store.path))
			return
		}
		store.remember(settings)
		store.log.Info("settings file changed", logging.String("path", store.path))
		onChange(settings)
	}
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, reload)
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	nextWait := func() time.Duration {
		wait := backoff + time.Duration(rng.Int63n(int64(backoff/2)+1))
		if backoff < restartBackoffMax {
			backoff *= 2
			if backoff > restartBackoffMax {
				backoff = restartBackoffMax
			}
		}
		return wait
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		watcher, err := fsnotify.NewWatcher()
		if err == nil {
			if err = watcher.Add(dir); err != nil {
				_ = watcher.Close()
			}
		}
		if err != nil {
			store.log.Warn("settings watch init failed", logging.Err(err), logging.String("dir", dir))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(nextWait()):
				continue
			}
		}

		backoff = restartBackoffBase
		store.log.Debug("settings watcher started", logging.String("dir", dir), logging.String("file", file))

		broken := false
		for !broken {
			select {
			case <-ctx.Done():
				_ = watcher.Close()
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					broken = true
					break
				}
				if strings.EqualFold(filepath.Base(event.Name), file) &&
					event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debounce()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					broken = true
					break
				}
				store.log.Warn("settings watch error", logging.Err(err), logging.String("dir", dir))
			}
		}

		_ = watcher.Close()
		wait := nextWait()
		store.log.Warn("settings watcher stopped; restarting", logging.Duration("backoff", wait))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}
