package player

import "sync"

// State of the playback controller. There is no paused state; playback
// either runs or it does not.
type State int

const (
	StateIdle State = iota
	StatePlaying
)

// String renders the state for logs.
func (s State) String() string {
	if s == StatePlaying {
		return "playing"
	}
	return "idle"
}

// Player drives at most one playback session at a time.
type Player struct {
	device Device
	rate   int

	mu     sync.Mutex
	active *Session
	volume float64
}

// New returns a Player producing sessions at the given sample rate.
func New(device Device, rate int) *Player {
	return &Player{device: device, rate: rate, volume: 1.0}
}

// Play starts a session for the samples, superseding any active session.
// The superseded session is torn down first and never reports completion.
// onDone fires exactly once if and when the new session plays to the
// natural end of the buffer; it runs on the session's monitor goroutine.
func (p *Player) Play(samples []float32, onDone func()) (*Session, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyBuffer
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active != nil {
		p.active.teardown()
		p.active = nil
	}

	s, err := newSession(p.device, samples, p.rate, p.volume, onDone)
	if err != nil {
		return nil, err
	}
	p.active = s
	return s, nil
}

// Stop tears down the active session, if any. It returns once the
// controller is idle; the session's completion callback will not run.
// Stopping an idle player is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return
	}
	p.active.teardown()
	p.active = nil
}

// State reports whether a session is currently running.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil && !p.active.Done() {
		return StatePlaying
	}
	return StateIdle
}

// Session returns the active session, or nil when idle or finished.
func (p *Player) Session() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil || p.active.Done() {
		return nil
	}
	return p.active
}

// SetVolume clamps v to [0, 1], applies it to the active session and
// remembers it for future ones.
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	if p.active != nil && !p.active.Done() {
		p.active.SetVolume(v)
	}
}

// Volume reports the configured output level.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}
