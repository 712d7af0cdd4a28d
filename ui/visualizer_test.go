package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/utter-tts/utter/internal/analyzer"
)

func TestBarHeightsIdleDeterministic(t *testing.T) {
	at := time.UnixMilli(1723456789000)

	first := barHeights(visIdle, nil, at)
	second := barHeights(visIdle, nil, at)
	if first != second {
		t.Errorf("idle heights not reproducible: %v vs %v", first, second)
	}

	later := barHeights(visIdle, nil, at.Add(137*time.Millisecond))
	if first == later {
		t.Error("idle heights did not move with the clock")
	}
}

func TestBarHeightsIdleShape(t *testing.T) {
	at := time.UnixMilli(98765432100)
	heights := barHeights(visIdle, nil, at)

	tms := float64(at.UnixMilli())
	for i, h := range heights {
		want := idleBaseline + math.Sin(tms/idlePeriodMS+float64(i))*idleAmp
		if math.Abs(h-want) > 1e-9 {
			t.Errorf("bar %d height = %v, want %v", i, h, want)
		}
		if h <= 0 || h > 1 {
			t.Errorf("bar %d height %v out of range", i, h)
		}
	}
}

func TestBarHeightsLiveWithoutTapFallsBackToIdle(t *testing.T) {
	at := time.UnixMilli(55555555555)
	if got, want := barHeights(visLive, nil, at), idleHeights(at); got != want {
		t.Errorf("live heights with nil tap = %v, want idle shape %v", got, want)
	}
}

func TestBarHeightsSilenceSitsOnBaseline(t *testing.T) {
	spectrum := make([]byte, analyzer.BinCount)
	for i, h := range barHeights(visLive, spectrum, time.Now()) {
		if h != idleBaseline {
			t.Errorf("bar %d height = %v over silence, want baseline %v", i, h, idleBaseline)
		}
	}
}

func TestBarHeightsTrackBandLevels(t *testing.T) {
	quiet := make([]byte, analyzer.BinCount)
	loud := make([]byte, analyzer.BinCount)
	for i := range loud {
		quiet[i] = 40
		loud[i] = 255
	}

	quietHeights := barHeights(visLive, quiet, time.Now())
	loudHeights := barHeights(visLive, loud, time.Now())

	for i := range loudHeights {
		if loudHeights[i] <= quietHeights[i] {
			t.Errorf("bar %d did not grow with level: quiet %v, loud %v",
				i, quietHeights[i], loudHeights[i])
		}
		if loudHeights[i] > 1 {
			t.Errorf("bar %d height %v exceeds 1", i, loudHeights[i])
		}
	}
}

func TestBarHeightsSingleBandIsolated(t *testing.T) {
	// Energy in band 2's bins must not move the other bars.
	spectrum := make([]byte, analyzer.BinCount)
	band := analyzer.Bands[2]
	for bin := band.Low; bin < band.High; bin++ {
		spectrum[bin] = 200
	}

	heights := barHeights(visLive, spectrum, time.Now())
	for i, h := range heights {
		if i == 2 {
			if h <= idleBaseline {
				t.Errorf("bar 2 height = %v, want above baseline", h)
			}
			continue
		}
		if h != idleBaseline {
			t.Errorf("bar %d height = %v, want baseline (no energy in its band)", i, h)
		}
	}
}

func TestVisualizerViewGeometry(t *testing.T) {
	var v visualizerModel
	v.frame(time.Now(), visIdle, nil)

	lines := strings.Split(v.view(), "\n")
	if len(lines) != visRows {
		t.Fatalf("view has %d rows, want %d", len(lines), visRows)
	}
}
