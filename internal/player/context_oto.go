package player

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// oto allows exactly one context per process; create it once and share it
// across OtoDevice values.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// OtoDevice plays through the OS audio device via oto. Streams are
// little-endian float32 frames at the rate the device was opened with.
type OtoDevice struct {
	closed bool
	mu     sync.Mutex
}

// NewOtoDevice opens (or reuses) the process-wide audio context at the
// given sample rate and channel count.
func NewOtoDevice(rate, channels int) (*OtoDevice, error) {
	otoOnce.Do(func() {
		opts := &oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		}
		switch runtime.GOOS {
		case "darwin":
			// CoreAudio stutters with small buffers.
			opts.BufferSize = 100 * time.Millisecond
		case "windows":
			opts.BufferSize = 80 * time.Millisecond
		default:
			opts.BufferSize = 50 * time.Millisecond
		}

		ctx, ready, err := oto.NewContext(opts)
		if err != nil {
			otoErr = fmt.Errorf("create audio context: %w", err)
			return
		}
		select {
		case <-ready:
			otoCtx = ctx
			log.Debug("audio context ready", "rate", rate, "channels", channels, "buffer", opts.BufferSize)
		case <-time.After(5 * time.Second):
			otoErr = fmt.Errorf("audio context not ready after 5s")
		}
	})
	if otoErr != nil {
		return nil, otoErr
	}
	return &OtoDevice{}, nil
}

// NewPlayer wraps an oto player around the stream.
func (d *OtoDevice) NewPlayer(r io.Reader) (DevicePlayer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || otoCtx == nil {
		return nil, ErrDeviceClosed
	}
	return otoCtx.NewPlayer(r), nil
}

// Close marks the device unusable. The underlying oto context has no close
// in v3; it lives until the process exits.
func (d *OtoDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
