package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes             *int `yaml:"work_minutes"`
	ShortBreakMinutes       *int `yaml:"short_break_minutes"`
	LongBreakMinutes        *int `yaml:"long_break_minutes"`
	SessionsBeforeLongBreak *int `yaml:"sessions_before_long_break"`
}

// SettingsStore reads and writes timer settings as YAML.
type SettingsStore struct {
	path string
	log  logging.Logger

	mu   sync.Mutex
	last model.Settings
}

// NewSettingsStore returns a store for path.
func NewSettingsStore(path string, log logging.Logger) *SettingsStore {
	return &SettingsStore{path: path, log: log}
}

// SettingsPath returns the settings file inside appDir.
func SettingsPath(appDir string) string {
	return filepath.Join(appDir, settingsFileName)
}

// Path returns the backing file path.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads settings from disk. A missing file or missing keys yield the
// defaults. Present but non-positive values fail with model.ErrInvalidSettings
// and the defaults are returned alongside the error.
func (store *SettingsStore) Load() (model.Settings, error) {
	settings, err := store.parse()
	if err != nil {
		return settings, err
	}
	store.remember(settings)
	return settings, nil
}

// Save writes settings to disk. Invalid settings are refused.
func (store *SettingsStore) Save(settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		WorkMinutes:             &settings.WorkMinutes,
		ShortBreakMinutes:       &settings.ShortBreakMinutes,
		LongBreakMinutes:        &settings.LongBreakMinutes,
		SessionsBeforeLongBreak: &settings.SessionsBeforeLongBreak,
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	store.remember(settings)
	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	store.log.Debug("settings saved", logging.String("path", store.path))
	return nil
}

func (store *SettingsStore) parse() (model.Settings, error) {
	settings := model.DefaultSettings()
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}
	parsed := settings
	applyYamlSettings(&parsed, fileData)
	if err := parsed.Validate(); err != nil {
		return settings, fmt.Errorf("%s: %w", store.path, err)
	}
	return parsed, nil
}

func (store *SettingsStore) remember(settings model.Settings) {
	store.mu.Lock()
	store.last = settings
	store.mu.Unlock()
}

// changed reports whether settings differ from what was last loaded or saved.
func (store *SettingsStore) changed(settings model.Settings) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.last != settings
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes != nil {
		settings.WorkMinutes = *fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes != nil {
		settings.ShortBreakMinutes = *fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes != nil {
		settings.LongBreakMinutes = *fileData.LongBreakMinutes
	}
	if fileData.SessionsBeforeLongBreak != nil {
		settings.SessionsBeforeLongBreak = *fileData.SessionsBeforeLongBreak
	}
}
