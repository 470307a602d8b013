package overlay

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/model"
)

func newTestPopup(t *testing.T, config Config) *Window {
	t.Helper()
	popup := New(test.NewTempApp(t), config)
	popup.dispatch = func(fn func()) { fn() }
	return popup
}

func TestShowDisplaysMessage(t *testing.T) {
	popup := newTestPopup(t, Config{Opacity: 255})
	message := alert.MessageFor(model.PhaseWork)

	popup.Show(message)

	assert.Equal(t, message.Body, popup.Message())
	assert.Equal(t, alert.Title, popup.titleLabel.Text)
}

func TestOKHidesAndStopsTimer(t *testing.T) {
	popup := newTestPopup(t, Config{Opacity: 255, AutoHide: time.Hour})
	popup.Show(alert.MessageFor(model.PhaseShortBreak))

	popup.mu.Lock()
	require.NotNil(t, popup.hideTimer)
	popup.mu.Unlock()

	test.Tap(popup.okButton)

	popup.mu.Lock()
	defer popup.mu.Unlock()
	assert.Nil(t, popup.hideTimer)
}

func TestAutoHide(t *testing.T) {
	popup := newTestPopup(t, Config{Opacity: 255, AutoHide: 10 * time.Millisecond})
	popup.Show(alert.MessageFor(model.PhaseLongBreak))

	assert.Eventually(t, func() bool {
		popup.mu.Lock()
		defer popup.mu.Unlock()
		return popup.hideTimer == nil
	}, 2*time.Second, 5*time.Millisecond)
}
