package player

import (
	"io"
	"sync"
	"time"
)

// MockDevice simulates an audio device for tests. Its players consume
// streams in 4 KiB chunks, optionally sleeping between chunks so tests can
// observe playback in flight.
type MockDevice struct {
	mu         sync.Mutex
	chunkDelay time.Duration
	created    int
	closed     bool
}

// NewMockDevice returns a device whose players drain streams instantly.
func NewMockDevice() *MockDevice {
	return &MockDevice{}
}

// SetChunkDelay paces simulated consumption: players sleep d between
// successive chunk reads. Zero restores instant draining.
func (d *MockDevice) SetChunkDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chunkDelay = delay
}

// PlayersCreated reports how many players this device has minted.
func (d *MockDevice) PlayersCreated() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// NewPlayer returns a mock player over the stream.
func (d *MockDevice) NewPlayer(r io.Reader) (DevicePlayer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	d.created++
	return &MockPlayer{r: r, chunkDelay: d.chunkDelay}, nil
}

// Close shuts the device; subsequent NewPlayer calls fail.
func (d *MockDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// MockPlayer consumes its stream on a background goroutine, mimicking how
// the real device pulls audio until EOF.
type MockPlayer struct {
	r          io.Reader
	chunkDelay time.Duration

	mu      sync.Mutex
	started bool
	playing bool
	paused  bool
	closed  bool
	drained bool
	volume  float64
}

// Play starts consumption, or resumes it after Pause.
func (p *MockPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.started {
		p.paused = false
		return
	}
	p.started = true
	p.playing = true
	go p.drain()
}

func (p *MockPlayer) drain() {
	buf := make([]byte, 4096)
	for {
		p.mu.Lock()
		if p.closed {
			p.playing = false
			p.mu.Unlock()
			return
		}
		if p.paused {
			p.mu.Unlock()
			time.Sleep(time.Millisecond)
			continue
		}
		r := p.r
		delay := p.chunkDelay
		p.mu.Unlock()

		if _, err := r.Read(buf); err != nil {
			p.mu.Lock()
			p.drained = true
			p.playing = false
			p.mu.Unlock()
			return
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
}

// Pause halts consumption without releasing the stream.
func (p *MockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// IsPlaying reports whether the player is still consuming.
func (p *MockPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing && !p.paused
}

// SetVolume records the requested volume.
func (p *MockPlayer) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
}

// Volume reports the last volume set.
func (p *MockPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Drained reports whether the stream was consumed to EOF.
func (p *MockPlayer) Drained() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drained
}

// Close stops consumption and releases the stream.
func (p *MockPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.playing = false
	return nil
}
