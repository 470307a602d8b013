package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrSoundUnsupported is returned when no audio backend is available.
var ErrSoundUnsupported = errors.New("audio playback unsupported on this platform")

// SoundPlayer plays in-memory WAV data through the OS audio stack.
type SoundPlayer struct {
	candidates [][]string
	lookPath   func(string) (string, error)
}

// NewSoundPlayer returns a player using the platform's command-line players.
func NewSoundPlayer() *SoundPlayer {
	return &SoundPlayer{
		candidates: soundCommands(),
		lookPath:   exec.LookPath,
	}
}

// command returns the first available player and its arguments.
func (player *SoundPlayer) command() (string, []string, error) {
	for _, candidate := range player.candidates {
		if len(candidate) == 0 {
			continue
		}
		path, err := player.lookPath(candidate[0])
		if err == nil {
			return path, candidate[1:], nil
		}
	}
	return "", nil, ErrSoundUnsupported
}

func playFile(ctx context.Context, player *SoundPlayer, wav []byte) error {
	path, args, err := player.command()
	if err != nil {
		return err
	}

	file, err := os.CreateTemp("", "pomodoro-*.wav")
	if err != nil {
		return fmt.Errorf("play sound: create temp file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.Write(wav); err != nil {
		_ = file.Close()
		return fmt.Errorf("play sound: write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("play sound: close temp file: %w", err)
	}

	output, err := exec.CommandContext(ctx, path, append(args, file.Name())...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("play sound: %s: %w: %s", path, err, output)
	}
	return nil
}
