package player

import (
	"errors"
	"io"
)

// Errors reported by the playback layer.
var (
	// ErrEmptyBuffer rejects playback of zero samples.
	ErrEmptyBuffer = errors.New("empty audio buffer")

	// ErrDeviceClosed means the audio device is no longer usable.
	ErrDeviceClosed = errors.New("audio device closed")
)

// Device mints device-level players. Implementations pull from the reader
// on their own schedule until EOF.
type Device interface {
	NewPlayer(r io.Reader) (DevicePlayer, error)
	Close() error
}

// DevicePlayer is one device-level playback stream.
type DevicePlayer interface {
	// Play starts or resumes pulling from the reader.
	Play()

	// Pause halts playback without releasing the stream.
	Pause()

	// IsPlaying reports whether the device is still producing sound. It
	// turns false only once buffered audio has drained.
	IsPlaying() bool

	// SetVolume scales output; 0 is silent, 1 is full scale.
	SetVolume(volume float64)

	// Close releases the stream.
	Close() error
}
