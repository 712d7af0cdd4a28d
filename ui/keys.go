package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Synthesize key.Binding
	Play       key.Binding
	Stop       key.Binding
	Edit       key.Binding
	Picker     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	ClearLog   key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Synthesize: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "synthesize"),
		),
		Play: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit"),
		),
		Picker: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "voices"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "louder"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "softer"),
		),
		ClearLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp is part of help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Synthesize, k.Play, k.Stop, k.Picker, k.VolumeUp, k.Quit}
}

// FullHelp is part of help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Synthesize, k.Play, k.Stop, k.Edit},
		{k.Picker, k.Confirm, k.Cancel},
		{k.VolumeUp, k.VolumeDown, k.ClearLog},
		{k.Quit, k.ForceQuit},
	}
}
