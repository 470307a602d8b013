//go:build !windows

package overlay

func (popup *Window) applyNativeOpacity(uint8) {}
