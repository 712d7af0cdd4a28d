// Package analyzer derives byte-magnitude frequency spectra from windows of
// PCM samples at the playhead. It feeds the playback visualizer: bin
// amplitudes are mapped from a fixed decibel range onto byte values and
// grouped into four fixed frequency bands.
package analyzer
