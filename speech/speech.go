// Package speech holds the synthesized-audio domain: the wire format of the
// synthesis service, payload decoding into playable buffers, the voice
// persona catalog, and the controller that ties synthesis to playback.
package speech

// PCM format of the synthesis service. These values are part of the remote
// API contract: payloads carry raw signed 16-bit little-endian mono frames
// at 24 kHz with no header, so the format is never inferred from the data.
const (
	SampleRate     = 24000
	Channels       = 1
	BitDepth       = 16
	BytesPerSample = BitDepth / 8
)
