package speech

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// DecodeError reports a payload that could not be base64-decoded.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode audio payload: %v", e.Err)
}

// Unwrap returns the underlying base64 error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodePayload turns a base64 payload from the synthesis service into a
// playable Buffer. An empty payload decodes to an empty, valid buffer; a
// payload that is not valid base64 yields a *DecodeError.
func DecodePayload(payload string) (*Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return NewBuffer(DecodePCM(raw)), nil
}

// DecodePCM converts raw little-endian int16 frames to normalized float
// samples. Each sample maps to value/32768, so the result lies in [-1, 1).
// A trailing odd byte is not a complete frame and is ignored.
func DecodePCM(raw []byte) []float32 {
	n := len(raw) / BytesPerSample
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*BytesPerSample:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples
}
