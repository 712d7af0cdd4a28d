package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

var stateIcons = map[state]string{
	stateCompose:      "●",
	stateSynthesizing: "⟳",
	stateReady:        "■",
	statePlaying:      "▶",
}

var stateLabels = map[state]string{
	stateCompose:      "compose",
	stateSynthesizing: "synthesizing",
	stateReady:        "ready",
	statePlaying:      "playing",
}

// statusView renders the one-line status bar: state icon, persona,
// position/duration and volume, truncated to the window width.
func (m model) statusView() string {
	var parts []string

	icon := stateIcons[m.state]
	label := stateLabels[m.state]
	style := statusIconStyles[m.state]
	if m.err != nil {
		icon = "✗"
		label = m.err.Error()
		style = errorStyle
	}
	parts = append(parts, style.Render(icon+" "+label))

	parts = append(parts, voiceNameStyle.Render(m.voice))

	switch m.state {
	case statePlaying:
		if s := m.session; s != nil {
			parts = append(parts, fmt.Sprintf("%s / %s",
				formatDuration(s.Position()), formatDuration(s.Duration())))
		}
	case stateReady:
		if take := m.ctrl.Take(); take != nil {
			parts = append(parts, formatDuration(take.Buffer.Duration()))
		}
	}

	// Clears the moment playback starts.
	if m.state != stateSynthesizing && m.ctrl.Unplayed() {
		parts = append(parts, accentStyle.Render("● unplayed"))
	}

	parts = append(parts, fmt.Sprintf("vol %d%%", int(m.ctrl.Volume()*100+0.5)))

	line := strings.Join(parts, subtleStyle.Render(" · "))
	if m.width > 0 {
		line = truncate.StringWithTail(line, uint(m.width), ellipsis)
	}
	return line
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "0:00"
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
