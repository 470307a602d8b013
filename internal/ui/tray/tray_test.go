package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/resources"
)

type fakeTrayApp struct {
	menu  *fyne.Menu
	icons []fyne.Resource
}

func (app *fakeTrayApp) SetSystemTrayMenu(menu *fyne.Menu)    { app.menu = menu }
func (app *fakeTrayApp) SetSystemTrayIcon(icon fyne.Resource) { app.icons = append(app.icons, icon) }

func newTestManager(callbacks Callbacks) (*Manager, *fakeTrayApp) {
	app := &fakeTrayApp{}
	manager := New(app, callbacks)
	manager.dispatch = func(fn func()) { fn() }
	return manager, app
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
		if item.ChildMenu != nil {
			for _, child := range item.ChildMenu.Items {
				if child.Label == label {
					return child
				}
			}
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestStatusFollowsRenders(t *testing.T) {
	manager, app := newTestManager(Callbacks{})
	require.NotNil(t, app.menu)

	manager.RenderActiveMode(model.PhaseWork)
	manager.RenderTime(754, 1500, model.PhaseWork)
	assert.Equal(t, "Status: Work 12:34 (paused)", manager.Status())

	manager.RenderRunningState(true)
	assert.Equal(t, "Status: Work 12:34", manager.Status())
	assert.Equal(t, "Pause", manager.toggleItem.Label)

	manager.RenderActiveMode(model.PhaseShortBreak)
	assert.True(t, manager.modeItems[model.PhaseShortBreak].Checked)
	assert.False(t, manager.modeItems[model.PhaseWork].Checked)
}

func TestIconTracksState(t *testing.T) {
	manager, app := newTestManager(Callbacks{})
	require.NotEmpty(t, app.icons)
	assert.Equal(t, resources.MustLogo(resources.LogoPaused), app.icons[len(app.icons)-1])

	manager.RenderRunningState(true)
	assert.Equal(t, resources.MustLogo(resources.LogoActive), app.icons[len(app.icons)-1])

	manager.RenderActiveMode(model.PhaseLongBreak)
	assert.Equal(t, resources.MustLogo(resources.LogoBreak), app.icons[len(app.icons)-1])

	count := len(app.icons)
	manager.RenderTime(10, 900, model.PhaseLongBreak)
	assert.Len(t, app.icons, count, "unchanged icon is not re-sent")
}

func TestMenuActions(t *testing.T) {
	var actions []string
	var switched []model.Phase
	manager, app := newTestManager(Callbacks{
		OnToggle:      func() { actions = append(actions, "toggle") },
		OnReset:       func() { actions = append(actions, "reset") },
		OnSwitchMode:  func(phase model.Phase) { switched = append(switched, phase) },
		OnShowWindow:  func() { actions = append(actions, "show") },
		OnPreferences: func() { actions = append(actions, "preferences") },
		OnQuit:        func() { actions = append(actions, "quit") },
	})

	for _, label := range []string{"Start", "Reset", "Show timer", "Preferences", "Quit"} {
		findItem(t, app.menu, label).Action()
	}
	findItem(t, app.menu, "Long Break").Action()

	assert.Equal(t, []string{"toggle", "reset", "show", "preferences", "quit"}, actions)
	assert.Equal(t, []model.Phase{model.PhaseLongBreak}, switched)
	assert.True(t, manager.ConfirmInterrupt())
}
