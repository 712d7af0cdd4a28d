// Package synth defines the remote text-to-speech boundary: one blocking
// request per synthesis, returning the vendor payload as it travels on the
// wire (base64 PCM in the service format).
package synth

import "context"

// Request is one synthesis round trip.
type Request struct {
	// Text is the prompt to speak. Callers trim it; engines may assume it
	// is non-empty.
	Text string
	// Voice is the persona ID (the wire-level voice name).
	Voice string
	// Model overrides the engine's default model, if set.
	Model string
}

// Result carries the synthesized audio exactly as the service wire format
// does: a base64 string of raw PCM frames plus its MIME type.
type Result struct {
	Audio  string
	MIME   string
	Engine string
}

// Synthesizer turns text into a speech payload with a single blocking
// request. Implementations must honor ctx cancellation.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Result, error)

	// Name identifies the engine in logs and results.
	Name() string

	// Validate fails fast when the engine is not usable (missing
	// credentials, unreachable backend).
	Validate() error
}
