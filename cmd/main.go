package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
)

const displayName = "Pomodoro"

var version = "dev"

type rootOptions struct {
	configFile   string
	settingsFile string
	logLevel     string
	phase        string
}

// environment is the resolved configuration shared by every subcommand.
type environment struct {
	cfg          config.Config
	log          logging.Logger
	closeLog     func() error
	service      platform.Service
	settingsPath string
	phase        model.Phase
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pomodoro:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Pomodoro work/break timer",
		Long:          "A Pomodoro timer cycling work sessions with short and long breaks, as a desktop app or in the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: <config dir>/pomodoro/config.yaml)")
	root.PersistentFlags().StringVar(&opts.settingsFile, "settings", "",
		"timer settings file (default: <config dir>/pomodoro/settings.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.phase, "phase", "",
		"phase to start in: work, short-break, long-break")

	gui := newGUICmd(opts)
	root.RunE = gui.RunE
	root.Flags().AddFlagSet(gui.Flags())

	root.AddCommand(gui)
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newAutostartCmd(opts))
	return root
}

// setup loads config.yaml, applies flag overrides and opens the log sinks.
// Terminal mode never logs to the console.
func setup(opts *rootOptions, terminal bool) (*environment, error) {
	phase := model.PhaseWork
	if opts.phase != "" {
		parsed, err := model.ParsePhase(opts.phase)
		if err != nil {
			return nil, err
		}
		phase = parsed
	}

	service := platform.NewService()

	v := config.New()
	if opts.logLevel != "" {
		v.Set("log.level", opts.logLevel)
	}
	cfg, err := config.Load(v, service, opts.configFile)
	if err != nil {
		return nil, err
	}

	appDir, err := config.Dir(service)
	if err != nil {
		return nil, err
	}
	settingsPath := cfg.SettingsFile
	if opts.settingsFile != "" {
		settingsPath = opts.settingsFile
	}
	if settingsPath == "" {
		settingsPath = storage.SettingsPath(appDir)
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Console: cfg.Log.Console, File: cfg.Log.File}
	if terminal {
		logCfg.Console = false
		if logCfg.File == "" {
			logCfg.File = filepath.Join(appDir, "pomodoro.log")
		}
	}
	log, closeLog, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	log.Debug("configuration loaded",
		logging.String("settings", settingsPath),
		logging.Stringer("phase", phase),
		logging.String("log_level", cfg.Log.Level),
		logging.Bool("sound", cfg.Alerts.Sound),
		logging.Bool("notification", cfg.Alerts.Notification),
		logging.Bool("flash", cfg.Alerts.Flash))

	return &environment{
		cfg:          cfg,
		log:          log,
		closeLog:     closeLog,
		service:      service,
		settingsPath: settingsPath,
		phase:        phase,
	}, nil
}

func (rt *environment) close() {
	if rt.closeLog != nil {
		_ = rt.closeLog()
	}
}
