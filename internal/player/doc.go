// Package player drives single-session PCM playback through an audio
// device. At most one session is active at a time: starting a new one
// supersedes the old, which is torn down without ever reporting
// completion. A session's completion callback fires exactly once, and only
// when the buffer plays to its natural end.
//
// The Device interface decouples sessions from the OS audio stack: OtoDevice
// plays through oto, MockDevice simulates consumption for tests.
package player
