package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"
)

const consoleMaxEntries = 200

type entryLevel int

const (
	entryInfo entryLevel = iota
	entryError
)

type consoleEntry struct {
	at    time.Time
	level entryLevel
	text  string
}

// consoleModel is the in-TUI activity log: an append-only run of entries
// rendered in a viewport, cleared at the start of each synthesis run.
type consoleModel struct {
	vp      viewport.Model
	entries []consoleEntry
	width   int
	ready   bool
}

func (c *consoleModel) setSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if !c.ready {
		c.vp = viewport.New(width, height)
		c.ready = true
	} else {
		c.vp.Width = width
		c.vp.Height = height
	}
	c.width = width
	c.refresh()
}

func (c *consoleModel) info(text string) {
	c.push(entryInfo, text)
}

func (c *consoleModel) error(text string) {
	c.push(entryError, text)
}

func (c *consoleModel) push(level entryLevel, text string) {
	c.entries = append(c.entries, consoleEntry{at: time.Now(), level: level, text: text})
	if len(c.entries) > consoleMaxEntries {
		c.entries = c.entries[len(c.entries)-consoleMaxEntries:]
	}
	c.refresh()
}

func (c *consoleModel) clear() {
	c.entries = nil
	c.refresh()
}

func (c *consoleModel) refresh() {
	if !c.ready {
		return
	}
	c.vp.SetContent(c.render())
	c.vp.GotoBottom()
}

// hasError reports whether any entry of the current run is error-marked.
func (c consoleModel) hasError() bool {
	for _, e := range c.entries {
		if e.level == entryError {
			return true
		}
	}
	return false
}

func (c consoleModel) render() string {
	var b strings.Builder
	for i, e := range c.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := consoleInfoStyle.Render("•")
		if e.level == entryError {
			marker = consoleErrorStyle.Render("✗")
		}

		text := e.text
		if c.width > 14 {
			text = wordwrap.String(text, c.width-11)
			text = strings.ReplaceAll(text, "\n", "\n           ")
		}

		b.WriteString(consoleTimeStyle.Render(e.at.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(text)
	}
	return b.String()
}

func (c consoleModel) view() string {
	if !c.ready {
		return ""
	}
	return c.vp.View()
}
