package alert

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
)

// ErrNoNotifier is returned when the desktop channel has no app to send through.
var ErrNoNotifier = errors.New("desktop notifications unavailable")

// Player plays an in-memory WAV file.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// Sound plays the completion tone.
type Sound struct {
	player Player
	wav    []byte
}

// NewSound renders tone once and plays it through player on every delivery.
func NewSound(player Player, tone Tone) *Sound {
	return &Sound{player: player, wav: tone.WAV()}
}

func (sound *Sound) Name() string { return "sound" }

func (sound *Sound) Deliver(ctx context.Context, _ Message) error {
	return sound.player.Play(ctx, sound.wav)
}

// Desktop sends a system notification through fyne.
type Desktop struct {
	app fyne.App
}

// NewDesktop returns a notification channel bound to app.
func NewDesktop(app fyne.App) *Desktop {
	return &Desktop{app: app}
}

func (desktop *Desktop) Name() string { return "notification" }

// Deliver does nothing once ctx is done.
func (desktop *Desktop) Deliver(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if desktop.app == nil {
		return ErrNoNotifier
	}
	notification := fyne.NewNotification(message.Title, message.Body)
	fyne.Do(func() {
		desktop.app.SendNotification(notification)
	})
	return nil
}

// Flasher shows a short visual cue.
type Flasher interface {
	Flash(message Message)
}

// FlasherFunc adapts a function to Flasher.
type FlasherFunc func(Message)

func (fn FlasherFunc) Flash(message Message) { fn(message) }

// Flash forwards to a UI flasher.
type Flash struct {
	flasher Flasher
}

// NewFlash wraps flasher as a Channel.
func NewFlash(flasher Flasher) *Flash {
	return &Flash{flasher: flasher}
}

func (flash *Flash) Name() string { return "flash" }

func (flash *Flash) Deliver(_ context.Context, message Message) error {
	flash.flasher.Flash(message)
	return nil
}
