package analyzer

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// FFT geometry and the decibel range quantized onto byte magnitudes.
const (
	FFTSize  = 512
	BinCount = FFTSize / 2

	minDB = -100.0
	maxDB = -30.0
)

// Analyzer computes byte spectra over a sliding sample window. Snapshot
// reuses internal buffers, so an Analyzer serves one reader at a time.
type Analyzer struct {
	fft    *fourier.FFT
	frame  []float64
	coeffs []complex128
	out    []byte
}

// New returns an analyzer for the fixed FFT geometry.
func New() *Analyzer {
	return &Analyzer{
		fft:    fourier.NewFFT(FFTSize),
		frame:  make([]float64, FFTSize),
		coeffs: make([]complex128, FFTSize/2+1),
		out:    make([]byte, BinCount),
	}
}

// Snapshot computes the spectrum of the FFTSize samples ending at pos.
// Shorter prefixes are zero-padded on the left, so the start of playback
// fades in rather than spiking. The returned slice is reused between calls.
func (a *Analyzer) Snapshot(samples []float32, pos int) []byte {
	if pos > len(samples) {
		pos = len(samples)
	}
	if pos < 0 {
		pos = 0
	}
	start := pos - FFTSize
	if start < 0 {
		start = 0
	}
	n := pos - start

	for i := range a.frame {
		a.frame[i] = 0
	}
	for i := 0; i < n; i++ {
		a.frame[FFTSize-n+i] = float64(samples[start+i])
	}
	window.Hann(a.frame)

	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)
	for i := 0; i < BinCount; i++ {
		amp := 2 * cmplx.Abs(a.coeffs[i]) / FFTSize
		a.out[i] = byteLevel(amp)
	}
	return a.out
}

// byteLevel maps a linear amplitude onto [minDB, maxDB] scaled to 0..255.
// Silence and anything under the floor read as 0, full scale saturates 255.
func byteLevel(amp float64) byte {
	if amp <= 0 {
		return 0
	}
	db := 20 * math.Log10(amp)
	if db <= minDB {
		return 0
	}
	if db >= maxDB {
		return 255
	}
	return byte(math.Round(255 * (db - minDB) / (maxDB - minDB)))
}
