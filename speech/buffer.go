package speech

import "time"

// Buffer is decoded audio ready for playback: normalized float samples in
// [-1, 1] in the fixed service format. Buffers are not mutated after decode.
type Buffer struct {
	Samples  []float32
	Rate     int
	Channels int
}

// NewBuffer wraps samples in a Buffer using the service format.
func NewBuffer(samples []float32) *Buffer {
	return &Buffer{
		Samples:  samples,
		Rate:     SampleRate,
		Channels: Channels,
	}
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Samples)
}

// Empty reports whether the buffer holds no samples.
func (b *Buffer) Empty() bool {
	return b.Len() == 0
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.Rate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.Rate)
}
