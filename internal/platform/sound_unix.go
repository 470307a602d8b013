//go:build !windows

package platform

import (
	"context"
	"runtime"
)

func soundCommands() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"afplay"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return [][]string{{"paplay"}, {"pw-play"}, {"aplay", "-q"}}
	}
	return nil
}

// Play writes wav to a temporary file and runs the first available player.
func (player *SoundPlayer) Play(ctx context.Context, wav []byte) error {
	return playFile(ctx, player, wav)
}
