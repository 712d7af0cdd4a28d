package speech

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/utter-tts/utter/internal/cache"
	"github.com/utter-tts/utter/internal/player"
	"github.com/utter-tts/utter/speech/synth"
)

// Take is one synthesized result, decoded and ready for playback.
type Take struct {
	Buffer *Buffer
	Text   string
	Voice  string
	Engine string
	// MIME is the payload type reported by the engine; empty when the
	// payload was replayed from the cache.
	MIME      string
	Cached    bool
	CreatedAt time.Time
}

// Controller coordinates synthesis, decoding, caching and playback. The
// stored take is replaced only by a successful synthesis, so a failed retry
// keeps the previous audio playable.
type Controller struct {
	engine synth.Synthesizer
	cache  *cache.Cache
	player *player.Player

	mu     sync.Mutex
	take   *Take
	played bool
}

// NewController wires an engine, an optional payload cache and a player.
func NewController(engine synth.Synthesizer, c *cache.Cache, p *player.Player) *Controller {
	return &Controller{engine: engine, cache: c, player: p}
}

// Synthesize runs the full pipeline: validate the prompt, consult the
// cache, call the engine, decode the payload and store the take. Empty or
// whitespace-only text fails locally; the engine is never called for it.
func (c *Controller) Synthesize(ctx context.Context, req synth.Request) (*Take, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return nil, ErrEmptyText
	}
	if c.engine == nil {
		return nil, ErrNoEngine
	}
	if req.Voice == "" {
		req.Voice = DefaultVoice
	}

	key := cache.Key(c.engine.Name(), req.Model, req.Voice, req.Text)

	var payload, mime string
	var cached bool
	if c.cache != nil {
		if b, ok := c.cache.Get(key); ok {
			payload = string(b)
			cached = true
			log.Debug("payload cache hit", "voice", req.Voice, "chars", len(req.Text))
		}
	}

	if !cached {
		res, err := c.engine.Synthesize(ctx, req)
		if err != nil {
			return nil, err
		}
		payload, mime = res.Audio, res.MIME
		if c.cache != nil {
			if err := c.cache.Put(key, []byte(payload)); err != nil {
				log.Debug("payload not cached", "err", err)
			}
		}
	}

	buf, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	take := &Take{
		Buffer:    buf,
		Text:      req.Text,
		Voice:     req.Voice,
		Engine:    c.engine.Name(),
		MIME:      mime,
		Cached:    cached,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.take = take
	c.played = false
	c.mu.Unlock()

	log.Info("synthesis complete",
		"voice", req.Voice,
		"samples", buf.Len(),
		"duration", buf.Duration(),
		"cached", cached)
	return take, nil
}

// Take returns the stored take, or nil before the first success.
func (c *Controller) Take() *Take {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.take
}

// Unplayed reports whether the stored take has audio nobody has played yet.
func (c *Controller) Unplayed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.take != nil && !c.played
}

// Play hands the stored take to the playback controller, superseding any
// active session. The unplayed flag clears as soon as playback initiates.
// onDone fires exactly once if the session reaches the end of the buffer.
func (c *Controller) Play(onDone func()) (*player.Session, error) {
	c.mu.Lock()
	take := c.take
	c.mu.Unlock()

	if take == nil || take.Buffer.Empty() {
		return nil, ErrNoAudio
	}
	if c.player == nil {
		return nil, ErrNoPlayer
	}

	s, err := c.player.Play(take.Buffer.Samples, onDone)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.played = true
	c.mu.Unlock()

	log.Debug("playback started", "voice", take.Voice, "duration", take.Buffer.Duration())
	return s, nil
}

// Stop halts playback synchronously; a no-op when idle.
func (c *Controller) Stop() {
	if c.player != nil {
		c.player.Stop()
	}
}

// Playing reports whether a playback session is active.
func (c *Controller) Playing() bool {
	return c.player != nil && c.player.State() == player.StatePlaying
}

// Session returns the active playback session, or nil when idle.
func (c *Controller) Session() *player.Session {
	if c.player == nil {
		return nil
	}
	return c.player.Session()
}

// SetVolume adjusts playback volume, clamped to [0, 1].
func (c *Controller) SetVolume(v float64) {
	if c.player != nil {
		c.player.SetVolume(v)
	}
}

// Volume reports the configured playback volume.
func (c *Controller) Volume() float64 {
	if c.player == nil {
		return 0
	}
	return c.player.Volume()
}

// EngineName identifies the configured engine for status surfaces.
func (c *Controller) EngineName() string {
	if c.engine == nil {
		return ""
	}
	return c.engine.Name()
}

// CacheStats reports payload cache counters; zero-valued without a cache.
func (c *Controller) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.Stats()
}
