// Package mock provides an offline Synthesizer for tests and demos. It
// fabricates payloads locally in the exact service wire format, so the
// whole decode and playback pipeline can run without credentials.
package mock

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/utter-tts/utter/speech"
	"github.com/utter-tts/utter/speech/synth"
)

// Speaking rate used to size fabricated audio from the prompt.
const wordsPerMinute = 150

// Engine fabricates speech payloads. The waveform is a quiet tone by
// default so playback is audible; SetTone(0) yields silence.
type Engine struct {
	mu       sync.Mutex
	delay    time.Duration
	failErr  error
	calls    int
	toneHz   float64
	fixedDur time.Duration // overrides word-count sizing when set
}

// New returns a mock engine producing a 220 Hz tone.
func New() *Engine {
	return &Engine{toneHz: 220}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "mock" }

// Validate always succeeds; the mock needs no credentials.
func (e *Engine) Validate() error { return nil }

// Synthesize fabricates a payload sized from the prompt's word count.
func (e *Engine) Synthesize(ctx context.Context, req synth.Request) (*synth.Result, error) {
	e.mu.Lock()
	e.calls++
	delay, failErr, tone, fixed := e.delay, e.failErr, e.toneHz, e.fixedDur
	e.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failErr != nil {
		return nil, &synth.Error{Engine: e.Name(), Message: failErr.Error(), Err: failErr}
	}

	dur := fixed
	if dur == 0 {
		dur = estimateDuration(req.Text)
	}

	return &synth.Result{
		Audio:  base64.StdEncoding.EncodeToString(tonePCM(dur, tone)),
		MIME:   "audio/L16;codec=pcm;rate=24000",
		Engine: e.Name(),
	}, nil
}

// SetDelay makes subsequent calls block for d before answering.
func (e *Engine) SetDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delay = d
}

// SetFailure makes subsequent calls fail with err.
func (e *Engine) SetFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failErr = err
}

// ClearFailure restores normal operation.
func (e *Engine) ClearFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failErr = nil
}

// SetTone sets the fabricated waveform's frequency in Hz; 0 means silence.
func (e *Engine) SetTone(hz float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toneHz = hz
}

// SetFixedDuration pins the fabricated audio length regardless of prompt
// size; 0 restores word-count sizing.
func (e *Engine) SetFixedDuration(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixedDur = d
}

// CallCount reports how many synthesis calls reached the engine.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// estimateDuration sizes audio from the word count at the speaking rate,
// clamped to keep fabricated payloads reasonable.
func estimateDuration(text string) time.Duration {
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	d := time.Duration(float64(words) / wordsPerMinute * float64(time.Minute))
	if d < 200*time.Millisecond {
		d = 200 * time.Millisecond
	}
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}

// tonePCM renders d of a sine tone (or silence for hz <= 0) as raw s16le
// frames in the service format.
func tonePCM(d time.Duration, hz float64) []byte {
	n := int(d.Seconds() * speech.SampleRate)
	raw := make([]byte, n*speech.BytesPerSample)
	if hz <= 0 {
		return raw
	}
	for i := 0; i < n; i++ {
		s := int16(0.25 * math.MaxInt16 * math.Sin(2*math.Pi*hz*float64(i)/speech.SampleRate))
		binary.LittleEndian.PutUint16(raw[i*speech.BytesPerSample:], uint16(s))
	}
	return raw
}
