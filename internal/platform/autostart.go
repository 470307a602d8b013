package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrAutostartUnsupported indicates the OS has no supported login-item mechanism.
var ErrAutostartUnsupported = errors.New("autostart unsupported on this platform")

// Entry describes the command launched at login.
type Entry struct {
	AppName  string
	ExecPath string
	Args     []string
}

func (entry Entry) validate(action string) error {
	if strings.TrimSpace(entry.AppName) == "" {
		return fmt.Errorf("%s autostart: app name is empty", action)
	}
	if action == "enable" && strings.TrimSpace(entry.ExecPath) == "" {
		return fmt.Errorf("%s autostart: exec path is empty", action)
	}
	return nil
}

// slug lowercases the app name and replaces spaces for file and label names.
func (entry Entry) slug() string {
	name := strings.ToLower(strings.TrimSpace(entry.AppName))
	if name == "" {
		name = "pomodoro"
	}
	return strings.ReplaceAll(name, " ", "-")
}

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(entry Entry) error
	DisableAutostart(appName string) error
}

type platformService struct {
	configDir func() (string, error)
	homeDir   func() (string, error)
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{
		configDir: os.UserConfigDir,
		homeDir:   os.UserHomeDir,
	}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := service.configDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := service.homeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}
