package player

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/utter-tts/utter/internal/analyzer"
)

const bytesPerFrame = 4 // one float32 sample

// monitorInterval is how often a session checks the device for completion.
const monitorInterval = 50 * time.Millisecond

// trackingReader hands the device float32-LE frames while recording how far
// playback has pulled, which anchors the spectrum window and the position
// readout.
type trackingReader struct {
	mu  sync.Mutex
	r   *bytes.Reader
	pos int64
}

func (t *trackingReader) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, err := t.r.Read(p)
	t.pos += int64(n)
	return n, err
}

func (t *trackingReader) position() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// Session is one playback run of one sample buffer.
type Session struct {
	samples []float32
	rate    int
	total   int64 // stream length in bytes
	reader  *trackingReader
	dev     DevicePlayer
	spec    *analyzer.Analyzer

	mu     sync.Mutex
	onDone func()

	finished atomic.Bool
	closed   atomic.Bool
	closedCh chan struct{}
}

func newSession(device Device, samples []float32, rate int, volume float64, onDone func()) (*Session, error) {
	stream := frameBytes(samples)
	reader := &trackingReader{r: bytes.NewReader(stream)}

	dev, err := device.NewPlayer(reader)
	if err != nil {
		return nil, fmt.Errorf("open device player: %w", err)
	}
	dev.SetVolume(volume)

	s := &Session{
		samples:  samples,
		rate:     rate,
		total:    int64(len(stream)),
		reader:   reader,
		dev:      dev,
		spec:     analyzer.New(),
		onDone:   onDone,
		closedCh: make(chan struct{}),
	}

	dev.Play()
	go s.monitor()

	log.Debug("playback session started", "samples", len(samples), "duration", s.Duration())
	return s, nil
}

// monitor polls the device until the stream is both fully pulled and
// drained out of the device buffer, then reports completion. The device
// reads ahead of audible playout, so the position check alone is not
// enough.
func (s *Session) monitor() {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.closedCh:
			return
		case <-ticker.C:
			if s.reader.position() >= s.total && !s.dev.IsPlaying() {
				s.complete()
				return
			}
		}
	}
}

// complete fires the completion callback exactly once, then releases the
// session. Torn-down sessions never get here with a callback attached.
func (s *Session) complete() {
	if !s.finished.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	done := s.onDone
	s.onDone = nil
	s.mu.Unlock()

	if done != nil {
		done()
	}
	s.shutdown()
	log.Debug("playback session finished", "samples", len(s.samples))
}

// teardown detaches the completion callback and releases the session. It is
// idempotent; a torn-down session never reports completion.
func (s *Session) teardown() {
	s.mu.Lock()
	s.onDone = nil
	s.mu.Unlock()
	s.shutdown()
}

func (s *Session) shutdown() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.closedCh)
	s.dev.Pause()
	_ = s.dev.Close()
}

// Done reports whether the session has ended, naturally or by teardown.
// It is true from the moment the completion callback is chosen, before the
// callback returns.
func (s *Session) Done() bool {
	return s.finished.Load() || s.closed.Load()
}

// Closed is closed once the session has ended for any reason. A natural
// completion invokes the callback before this unblocks.
func (s *Session) Closed() <-chan struct{} {
	return s.closedCh
}

// Spectrum returns the byte-magnitude spectrum at the playhead, or nil once
// the session has ended. It is meant to be called from a single render
// loop; the returned slice is reused between calls.
func (s *Session) Spectrum() []byte {
	if s.Done() {
		return nil
	}
	pos := int(s.reader.position() / bytesPerFrame)
	return s.spec.Snapshot(s.samples, pos)
}

// Position reports how far the device has pulled into the buffer.
func (s *Session) Position() time.Duration {
	if s.rate <= 0 {
		return 0
	}
	frames := s.reader.position() / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(s.rate)
}

// Duration is the full playback length of the session's buffer.
func (s *Session) Duration() time.Duration {
	if s.rate <= 0 {
		return 0
	}
	return time.Duration(len(s.samples)) * time.Second / time.Duration(s.rate)
}

// SetVolume adjusts the session's output level.
func (s *Session) SetVolume(volume float64) {
	s.dev.SetVolume(volume)
}

// frameBytes lays samples out as little-endian float32 frames for the
// device.
func frameBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*bytesPerFrame)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[i*bytesPerFrame:], math.Float32bits(v))
	}
	return out
}
