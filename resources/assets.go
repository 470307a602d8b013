package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
)

const logoDir = "logo/"

// Logo file names.
const (
	LogoActive = "tomato_active.svg"
	LogoBreak  = "tomato_break.svg"
	LogoPaused = "tomato_paused.svg"
)

//go:embed logo/*.svg
var logoFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// IconFor picks the tray/window icon for a phase and running state.
func IconFor(phase model.Phase, running bool) fyne.Resource {
	switch {
	case !running:
		return MustLogo(LogoPaused)
	case phase.IsBreak():
		return MustLogo(LogoBreak)
	default:
		return MustLogo(LogoActive)
	}
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
