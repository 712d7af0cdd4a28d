package analyzer

// Band is a contiguous range of FFT bins feeding one visualizer bar.
type Band struct {
	Low  int // first bin, inclusive
	High int // last bin, exclusive
}

// Bands assigns each bar a fixed slice of the spectrum. Start bins and
// widths both grow with the bar index: bar 0 reads a narrow low range,
// bar 3 a wide high one. At 24 kHz with FFTSize 512 one bin spans ~46.9 Hz,
// so the bands cover roughly 47–190, 190–560, 560–1500 and 1500–4500 Hz.
// Bin 0 (DC) is skipped.
var Bands = [4]Band{
	{Low: 1, High: 4},
	{Low: 4, High: 12},
	{Low: 12, High: 32},
	{Low: 32, High: 96},
}

// BandLevels averages the byte magnitudes of each band. Bins beyond the
// spectrum's length count as absent, so a nil spectrum reads as silence.
func BandLevels(spectrum []byte) [4]float64 {
	var levels [4]float64
	for i, b := range Bands {
		var sum float64
		var n int
		for bin := b.Low; bin < b.High && bin < len(spectrum); bin++ {
			sum += float64(spectrum[bin])
			n++
		}
		if n > 0 {
			levels[i] = sum / float64(n)
		}
	}
	return levels
}
