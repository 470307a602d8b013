//go:build windows

package platform

import (
	"context"
	"fmt"
	"syscall"
	"unsafe"
)

const (
	sndSync      = 0x0000
	sndMemory    = 0x0004
	sndNoDefault = 0x0002
)

var procPlaySound = syscall.NewLazyDLL("winmm.dll").NewProc("PlaySoundW")

func soundCommands() [][]string { return nil }

// Play hands wav to winmm directly; no temp file is needed.
func (player *SoundPlayer) Play(ctx context.Context, wav []byte) error {
	if len(wav) == 0 {
		return nil
	}
	if err := procPlaySound.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrSoundUnsupported, err)
	}

	done := make(chan error, 1)
	go func() {
		ok, _, callErr := procPlaySound.Call(
			uintptr(unsafe.Pointer(&wav[0])),
			0,
			uintptr(sndMemory|sndSync|sndNoDefault),
		)
		if ok == 0 {
			done <- fmt.Errorf("play sound: PlaySoundW: %v", callErr)
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		procPlaySound.Call(0, 0, 0)
		return ctx.Err()
	}
}
