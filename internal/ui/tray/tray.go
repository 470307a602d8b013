package tray

import (
	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/display"
	"pomodoro/resources"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func(model.Phase)
	OnShowWindow  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager mirrors the scheduler in the system tray. It implements the
// render half of scheduler.Presenter; confirmation is left to the window.
type Manager struct {
	app        App
	callbacks  Callbacks
	dispatch   func(func())
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	modeItems  map[model.Phase]*fyne.MenuItem
	menu       *fyne.Menu

	phase     model.Phase
	running   bool
	remaining int
	icon      fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		dispatch:  fyne.Do,
		modeItems: make(map[model.Phase]*fyne.MenuItem, len(model.Phases)),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	switchItems := make([]*fyne.MenuItem, 0, len(model.Phases))
	for _, phase := range model.Phases {
		phase := phase
		item := fyne.NewMenuItem(phase.Label(), func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(phase)
			}
		})
		manager.modeItems[phase] = item
		switchItems = append(switchItems, item)
	}
	switchTo := fyne.NewMenuItem("Switch to", nil)
	switchTo.ChildMenu = fyne.NewMenu("", switchItems...)

	show := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShowWindow != nil {
			manager.callbacks.OnShowWindow()
		}
	})
	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(display.AppTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		switchTo,
		fyne.NewMenuItemSeparator(),
		show,
		preferences,
		quit,
	)
	app.SetSystemTrayMenu(manager.menu)
	manager.setIcon()

	return manager
}

func (manager *Manager) RenderTime(remainingSeconds, _ int, phase model.Phase) {
	manager.dispatch(func() {
		manager.remaining = remainingSeconds
		manager.phase = phase
		manager.refreshStatus()
	})
}

func (manager *Manager) RenderRunningState(running bool) {
	manager.dispatch(func() {
		manager.running = running
		if running {
			manager.toggleItem.Label = "Pause"
		} else {
			manager.toggleItem.Label = "Start"
		}
		manager.setIcon()
		manager.refreshStatus()
	})
}

func (manager *Manager) RenderActiveMode(phase model.Phase) {
	manager.dispatch(func() {
		manager.phase = phase
		for candidate, item := range manager.modeItems {
			item.Checked = candidate == phase
		}
		manager.setIcon()
		manager.refreshStatus()
	})
}

// RenderSessionCounts is a no-op; the tray only shows phase and time.
func (manager *Manager) RenderSessionCounts(int, int) {}

// ConfirmInterrupt always agrees; the main window owns the question.
func (manager *Manager) ConfirmInterrupt() bool { return true }

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = "Status: " + display.Status(manager.remaining, manager.phase, manager.running)
	manager.refreshMenu()
}

func (manager *Manager) setIcon() {
	icon := resources.IconFor(manager.phase, manager.running)
	if icon == manager.icon {
		return
	}
	manager.icon = icon
	manager.app.SetSystemTrayIcon(icon)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
