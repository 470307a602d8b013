// Package config loads application options (logging, alert channels, file
// locations) with viper. Timer durations live in the separate settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"pomodoro/internal/platform"
)

const (
	// AppName names the config directory and the single-instance lock.
	AppName   = "pomodoro"
	envPrefix = "POMODORO"
)

// LogConfig controls the zerolog sinks.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// AlertConfig toggles the end-of-session channels.
type AlertConfig struct {
	Sound        bool `mapstructure:"sound"`
	Notification bool `mapstructure:"notification"`
	Flash        bool `mapstructure:"flash"`
}

// Config is the application configuration.
type Config struct {
	Log          LogConfig   `mapstructure:"log"`
	Alerts       AlertConfig `mapstructure:"alerts"`
	SettingsFile string      `mapstructure:"settings_file"`
	StartHidden  bool        `mapstructure:"start_hidden"`
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
		Alerts: AlertConfig{
			Sound:        true,
			Notification: true,
			Flash:        true,
		},
	}
}

// Dir returns <config dir>/pomodoro, the home of config.yaml and settings.yaml.
func Dir(service platform.Service) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// DefaultPath returns <config dir>/pomodoro/config.yaml.
func DefaultPath(service platform.Service) (string, error) {
	dir, err := Dir(service)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// New returns a viper instance with defaults and POMODORO_ env bindings applied.
func New() *viper.Viper {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.console", defaults.Log.Console)
	v.SetDefault("alerts.sound", defaults.Alerts.Sound)
	v.SetDefault("alerts.notification", defaults.Alerts.Notification)
	v.SetDefault("alerts.flash", defaults.Alerts.Flash)
	v.SetDefault("settings_file", defaults.SettingsFile)
	v.SetDefault("start_hidden", defaults.StartHidden)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or the default location when empty) into a Config.
// A missing default file is not an error; a missing explicit file or a
// malformed one is.
func Load(v *viper.Viper, service platform.Service, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath(service)
		if err != nil {
			return Defaults(), fmt.Errorf("resolve config path: %w", err)
		}
		path = defaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			if explicit {
				return Defaults(), fmt.Errorf("read config %s: %w", path, err)
			}
		default:
			return Defaults(), fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Defaults(), fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
