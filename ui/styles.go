package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var hasDarkBackground = termenv.HasDarkBackground()

var (
	subtleColor = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	accentColor = lipgloss.AdaptiveColor{Light: "#8851E0", Dark: "#AF87FF"}
	errorColor  = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	subtleStyle = lipgloss.NewStyle().Foreground(subtleColor)
	accentStyle = lipgloss.NewStyle().Foreground(accentColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)

	promptFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(subtleColor).
				Padding(0, 1)

	promptFocusFrameStyle = promptFrameStyle.
				BorderForeground(accentColor)

	voiceLabelStyle = subtleStyle
	voiceNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	spinnerStyle = accentStyle

	consoleTimeStyle  = subtleStyle
	consoleInfoStyle  = subtleStyle
	consoleErrorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	pickerCursorStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	pickerGenderStyle  = subtleStyle
	pickerCurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))

	statusIconStyles = map[state]lipgloss.Style{
		stateCompose:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")),
		stateSynthesizing: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")),
		stateReady:        lipgloss.NewStyle().Foreground(lipgloss.Color("#87D787")),
		statePlaying:      lipgloss.NewStyle().Foreground(lipgloss.Color("#87D787")).Bold(true),
	}
)

// One hue per bar, low frequencies first.
var barStyles = [barCount]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")),
}

// progressColors picks gradient endpoints that read well against the
// detected terminal background.
func progressColors() (string, string) {
	if hasDarkBackground {
		return "#5FAFFF", "#AF87FF"
	}
	return "#0087D7", "#8851E0"
}
