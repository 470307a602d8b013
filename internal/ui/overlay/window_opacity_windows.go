//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2
)

var (
	user32                  = syscall.NewLazyDLL("user32.dll")
	getWindowLongPtr        = user32.NewProc("GetWindowLongPtrW")
	setWindowLongPtr        = user32.NewProc("SetWindowLongPtrW")
	setLayeredWindowAttribs = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the popup translucent through a layered window.
func (popup *Window) applyNativeOpacity(alpha uint8) {
	nativeWindow, ok := popup.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}

		if alpha == 255 {
			return
		}
		style, _, _ := getWindowLongPtr.Call(hwnd, signedIndex(gwlExStyle))
		if style&wsExLayered == 0 {
			setWindowLongPtr.Call(hwnd, signedIndex(gwlExStyle), style|wsExLayered)
		}
		setLayeredWindowAttribs.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

func signedIndex(value int32) uintptr {
	return uintptr(int(value))
}
