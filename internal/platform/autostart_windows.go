//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(entry Entry) error {
	if err := entry.validate("enable"); err != nil {
		return err
	}

	command := exec.Command(
		"reg",
		"add",
		registryRunKey,
		"/v",
		entry.AppName,
		"/t",
		"REG_SZ",
		"/d",
		windowsCommandLine(entry),
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := (Entry{AppName: appName}).validate("disable"); err != nil {
		return err
	}

	command := exec.Command("reg", "delete", registryRunKey, "/v", appName, "/f")
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func windowsCommandLine(entry Entry) string {
	parts := []string{fmt.Sprintf(`"%s"`, strings.Trim(entry.ExecPath, `"`))}
	for _, argument := range entry.Args {
		if strings.ContainsAny(argument, " \t") {
			argument = fmt.Sprintf(`"%s"`, argument)
		}
		parts = append(parts, argument)
	}
	return strings.Join(parts, " ")
}
