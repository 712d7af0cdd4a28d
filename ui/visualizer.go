package ui

import (
	"math"
	"strings"
	"time"

	"github.com/utter-tts/utter/internal/analyzer"
)

const (
	barCount = 4

	// Bar geometry in terminal cells.
	visRows  = 5
	barWidth = 6
	barGap   = 2

	// Heights are normalized to [0, 1]. The idle shape breathes around the
	// baseline; live band levels scale on top of it.
	idleBaseline = 0.18
	idleAmp      = 0.12
	liveScale    = 0.82

	// Period of the idle sinusoid, in milliseconds of wall time.
	idlePeriodMS = 300
)

var partialBlocks = []rune(" ▁▂▃▄▅▆▇█")

// visMode selects which animation drives the bars.
type visMode int

const (
	visIdle visMode = iota
	visLive
)

// barHeights resolves the normalized height of each bar for one frame. A
// live frame without a spectrum snapshot falls back to the idle animation.
func barHeights(mode visMode, spectrum []byte, now time.Time) [barCount]float64 {
	if mode == visLive && spectrum != nil {
		return liveHeights(spectrum)
	}
	return idleHeights(now)
}

// idleHeights breathes around the baseline on a wall-clock sinusoid, one
// phase step per bar.
func idleHeights(now time.Time) [barCount]float64 {
	var h [barCount]float64
	t := float64(now.UnixMilli())
	for i := range h {
		h[i] = idleBaseline + math.Sin(t/idlePeriodMS+float64(i))*idleAmp
	}
	return h
}

// liveHeights rides each bar on its band's mean byte magnitude, floored at
// the idle baseline.
func liveHeights(spectrum []byte) [barCount]float64 {
	var h [barCount]float64
	levels := analyzer.BandLevels(spectrum)
	for i := range h {
		h[i] = idleBaseline + levels[i]/255*liveScale
		if h[i] > 1 {
			h[i] = 1
		}
	}
	return h
}

// visualizerModel holds the last resolved frame. Heights are recomputed on
// every frame tick, not in View, so rendering stays cheap.
type visualizerModel struct {
	heights [barCount]float64
}

func (v *visualizerModel) frame(at time.Time, mode visMode, spectrum []byte) {
	v.heights = barHeights(mode, spectrum, at)
}

// view renders the bars as columns of block glyphs, bottom-aligned, with a
// partial block resolving the fractional cell at the top of each column.
func (v visualizerModel) view() string {
	rows := make([]string, visRows)
	gap := strings.Repeat(" ", barGap)

	for r := 0; r < visRows; r++ {
		var b strings.Builder
		fromBottom := visRows - r - 1

		for i, h := range v.heights {
			if i > 0 {
				b.WriteString(gap)
			}
			cells := h * visRows
			var glyph rune
			switch {
			case cells >= float64(fromBottom+1):
				glyph = partialBlocks[len(partialBlocks)-1]
			case cells > float64(fromBottom):
				frac := cells - float64(fromBottom)
				idx := int(frac * float64(len(partialBlocks)-1))
				if idx < 1 {
					idx = 1
				}
				glyph = partialBlocks[idx]
			default:
				glyph = ' '
			}
			b.WriteString(barStyles[i].Render(strings.Repeat(string(glyph), barWidth)))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}
