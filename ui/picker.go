package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/utter-tts/utter/speech"
)

// voiceSource adapts the persona catalog to fuzzy.Source.
type voiceSource []speech.Voice

func (s voiceSource) String(i int) string { return s[i].ID + " " + s[i].Description }
func (s voiceSource) Len() int            { return len(s) }

// pickerModel is the fuzzy-filtered voice persona picker.
type pickerModel struct {
	input   textinput.Model
	voices  []speech.Voice
	matches []int
	cursor  int
	current string
}

func newPicker() pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter voices"
	ti.Prompt = "/ "
	ti.CharLimit = 32

	p := pickerModel{
		input:  ti,
		voices: speech.Voices(),
	}
	p.refilter()
	return p
}

// open resets the filter and moves the cursor to the active persona.
func (p *pickerModel) open(current string) tea.Cmd {
	p.current = current
	p.input.SetValue("")
	p.refilter()
	for i, vi := range p.matches {
		if strings.EqualFold(p.voices[vi].ID, current) {
			p.cursor = i
			break
		}
	}
	return p.input.Focus()
}

func (p *pickerModel) close() {
	p.input.Blur()
}

func (p *pickerModel) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "ctrl+k":
			if p.cursor > 0 {
				p.cursor--
			}
			return nil
		case "down", "ctrl+j":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return cmd
}

func (p *pickerModel) refilter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = make([]int, len(p.voices))
		for i := range p.voices {
			p.matches[i] = i
		}
	} else {
		results := fuzzy.FindFrom(query, voiceSource(p.voices))
		p.matches = make([]int, len(results))
		for i, r := range results {
			p.matches[i] = r.Index
		}
	}

	if p.cursor >= len(p.matches) {
		p.cursor = len(p.matches) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// selected returns the persona under the cursor.
func (p pickerModel) selected() (speech.Voice, bool) {
	if len(p.matches) == 0 {
		return speech.Voice{}, false
	}
	return p.voices[p.matches[p.cursor]], true
}

func (p pickerModel) view() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")

	if len(p.matches) == 0 {
		b.WriteString(subtleStyle.Render("  no matching voice"))
		return b.String()
	}

	for i, vi := range p.matches {
		v := p.voices[vi]
		cursor := "  "
		name := v.ID
		if i == p.cursor {
			cursor = pickerCursorStyle.Render("> ")
			name = pickerCursorStyle.Render(v.ID)
		}
		if strings.EqualFold(v.ID, p.current) {
			name += pickerCurrentStyle.Render(" *")
		}

		b.WriteString(cursor)
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(pickerGenderStyle.Render(v.Gender + " · " + v.Description))
		if i < len(p.matches)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
