package player_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/utter-tts/utter/internal/analyzer"
	"github.com/utter-tts/utter/internal/player"
)

const testRate = 24000

// halfSecond is 0.5s of silence at the test rate.
func halfSecond() []float32 {
	return make([]float32, testRate/2)
}

func waitSignal(t *testing.T, ch <-chan struct{}, d time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(d):
		t.Fatal("timed out waiting for playback completion")
	}
}

func TestPlayCompletesExactlyOnce(t *testing.T) {
	p := player.New(player.NewMockDevice(), testRate)

	var fired atomic.Int32
	done := make(chan struct{})
	s, err := p.Play(halfSecond(), func() {
		fired.Add(1)
		close(done)
	})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if got := s.Duration(); got != 500*time.Millisecond {
		t.Errorf("session duration = %v, want 500ms", got)
	}

	waitSignal(t, done, 2*time.Second)

	// Give a spurious second completion time to appear.
	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("completion fired %d times, want exactly 1", got)
	}
	if p.State() != player.StateIdle {
		t.Errorf("state after completion = %v, want idle", p.State())
	}
}

func TestStopWhenIdleIsNoOp(t *testing.T) {
	p := player.New(player.NewMockDevice(), testRate)

	if p.State() != player.StateIdle {
		t.Fatalf("fresh player state = %v, want idle", p.State())
	}
	p.Stop()
	p.Stop()
	if p.State() != player.StateIdle {
		t.Errorf("state after idle Stop = %v, want idle", p.State())
	}
}

func TestStopSuppressesCompletion(t *testing.T) {
	dev := player.NewMockDevice()
	dev.SetChunkDelay(50 * time.Millisecond)
	p := player.New(dev, testRate)

	var fired atomic.Int32
	s, err := p.Play(halfSecond(), func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	time.Sleep(80 * time.Millisecond) // mid-flight
	p.Stop()

	if p.State() != player.StateIdle {
		t.Errorf("state after Stop = %v, want idle", p.State())
	}
	if !s.Done() {
		t.Error("session not done after Stop")
	}

	time.Sleep(400 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("completion fired %d times after explicit stop, want 0", got)
	}
}

func TestPlaySupersedesActiveSession(t *testing.T) {
	dev := player.NewMockDevice()
	dev.SetChunkDelay(30 * time.Millisecond)
	p := player.New(dev, testRate)

	var aFired, bFired atomic.Int32
	bDone := make(chan struct{})

	if _, err := p.Play(halfSecond(), func() { aFired.Add(1) }); err != nil {
		t.Fatalf("Play(A) error = %v", err)
	}
	time.Sleep(50 * time.Millisecond) // A is mid-flight

	dev.SetChunkDelay(0)
	if _, err := p.Play(halfSecond(), func() {
		bFired.Add(1)
		close(bDone)
	}); err != nil {
		t.Fatalf("Play(B) error = %v", err)
	}

	waitSignal(t, bDone, 2*time.Second)
	time.Sleep(150 * time.Millisecond)

	if got := aFired.Load(); got != 0 {
		t.Errorf("superseded session completed %d times, want 0", got)
	}
	if got := bFired.Load(); got != 1 {
		t.Errorf("second session completed %d times, want 1", got)
	}
	if got := dev.PlayersCreated(); got != 2 {
		t.Errorf("device players created = %d, want 2", got)
	}
}

func TestPlayRejectsEmptyBuffer(t *testing.T) {
	p := player.New(player.NewMockDevice(), testRate)

	if _, err := p.Play(nil, nil); err != player.ErrEmptyBuffer {
		t.Errorf("Play(nil) error = %v, want ErrEmptyBuffer", err)
	}
	if _, err := p.Play([]float32{}, nil); err != player.ErrEmptyBuffer {
		t.Errorf("Play(empty) error = %v, want ErrEmptyBuffer", err)
	}
}

func TestSpectrumDuringAndAfterPlayback(t *testing.T) {
	dev := player.NewMockDevice()
	dev.SetChunkDelay(40 * time.Millisecond)
	p := player.New(dev, testRate)

	done := make(chan struct{})
	s, err := p.Play(halfSecond(), func() { close(done) })
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	spec := s.Spectrum()
	if len(spec) != analyzer.BinCount {
		t.Errorf("mid-flight spectrum length = %d, want %d", len(spec), analyzer.BinCount)
	}

	dev.SetChunkDelay(0)
	waitSignal(t, done, 2*time.Second)
	if got := s.Spectrum(); got != nil {
		t.Error("spectrum after completion should be nil")
	}
}

func TestSetVolumeClampsAndApplies(t *testing.T) {
	p := player.New(player.NewMockDevice(), testRate)

	p.SetVolume(1.7)
	if got := p.Volume(); got != 1.0 {
		t.Errorf("volume = %v, want clamp to 1.0", got)
	}
	p.SetVolume(-0.5)
	if got := p.Volume(); got != 0 {
		t.Errorf("volume = %v, want clamp to 0", got)
	}
}

func TestPositionWithinDuration(t *testing.T) {
	dev := player.NewMockDevice()
	dev.SetChunkDelay(30 * time.Millisecond)
	p := player.New(dev, testRate)

	s, err := p.Play(halfSecond(), nil)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	pos := s.Position()
	if pos < 0 || pos > s.Duration() {
		t.Errorf("position %v outside [0, %v]", pos, s.Duration())
	}
	p.Stop()
}
