package speech

import "errors"

// Errors surfaced by the synthesis flow.
var (
	// ErrEmptyText rejects prompts with no speakable content. It is raised
	// locally; the synthesis service is never called for it.
	ErrEmptyText = errors.New("cannot synthesize empty text")

	// ErrNoAudio means playback was requested with no take stored.
	ErrNoAudio = errors.New("no synthesized audio to play")

	// ErrNoEngine means the controller was built without a synthesizer.
	ErrNoEngine = errors.New("no synthesis engine configured")

	// ErrNoPlayer means playback was requested but no audio device was set up.
	ErrNoPlayer = errors.New("no audio player configured")
)
