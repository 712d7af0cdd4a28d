// Package ui provides the main UI for the utter application.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/utter-tts/utter/internal/player"
	"github.com/utter-tts/utter/speech"
	"github.com/utter-tts/utter/speech/synth"
)

const promptHeight = 3

// state is the top-level application state.
type state int

const (
	stateCompose state = iota
	stateSynthesizing
	stateReady
	statePlaying
)

func (s state) String() string {
	return map[state]string{
		stateCompose:      "composing",
		stateSynthesizing: "synthesizing",
		stateReady:        "ready",
		statePlaying:      "playing",
	}[s]
}

// NewProgram returns a new Tea program.
func NewProgram(cfg Config, ctrl *speech.Controller) *tea.Program {
	log.Debug(
		"starting utter",
		"engine", ctrl.EngineName(),
		"voice", cfg.Voice,
		"fps", cfg.FrameRate,
	)
	return tea.NewProgram(newModel(cfg, ctrl), tea.WithAltScreen())
}

type model struct {
	cfg  Config
	ctrl *speech.Controller
	keys keyMap

	prompt  textarea.Model
	picker  pickerModel
	bar     progress.Model
	spin    spinner.Model
	console consoleModel
	vis     visualizerModel
	help    help.Model

	state      state
	showPicker bool
	voice      string
	gen        int
	progressAt float64
	session    *player.Session
	err        error

	width    int
	height   int
	quitting bool
}

func newModel(cfg Config, ctrl *speech.Controller) model {
	ta := textarea.New()
	ta.Placeholder = "Type something to say…"
	ta.ShowLineNumbers = false
	ta.SetHeight(promptHeight)
	ta.CharLimit = 4000
	ta.Focus()
	if cfg.Prefill != "" {
		ta.SetValue(cfg.Prefill)
	}

	voice := cfg.Voice
	if _, ok := speech.LookupVoice(voice); !ok {
		if voice != "" {
			log.Warn("unknown voice, using default", "voice", voice, "default", speech.DefaultVoice)
		}
		voice = speech.DefaultVoice
	}

	if cfg.Volume > 0 {
		ctrl.SetVolume(cfg.Volume)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	from, to := progressColors()
	return model{
		cfg:    cfg,
		ctrl:   ctrl,
		keys:   defaultKeyMap(),
		prompt: ta,
		picker: newPicker(),
		bar:    progress.New(progress.WithGradient(from, to), progress.WithoutPercentage()),
		spin:   sp,
		help:   help.New(),
		voice:  voice,
		state:  stateCompose,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, frameTick(m.cfg.FrameRate))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Ctrl+C always quits no matter where in the application you are.
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}

		if m.showPicker {
			return m.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Synthesize):
			return m.submit()

		case key.Matches(msg, m.keys.Picker):
			if m.state == stateSynthesizing {
				return m, nil
			}
			m.showPicker = true
			return m, m.picker.open(m.voice)

		case key.Matches(msg, m.keys.ClearLog):
			m.console.clear()
			return m, nil
		}

		if m.state == stateCompose {
			if key.Matches(msg, m.keys.Cancel) && m.ctrl.Take() != nil {
				m.prompt.Blur()
				m.state = stateReady
				return m, nil
			}
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}

		// Transport keys, active while ready or playing.
		switch {
		case key.Matches(msg, m.keys.Play):
			if m.state == stateReady || m.state == statePlaying {
				return m, playCmd(m.ctrl)
			}

		case key.Matches(msg, m.keys.Stop):
			return m.stop()

		case key.Matches(msg, m.keys.Edit):
			if m.state == stateReady {
				m.state = stateCompose
				return m, m.prompt.Focus()
			}

		case key.Matches(msg, m.keys.VolumeUp):
			m.ctrl.SetVolume(m.ctrl.Volume() + 0.05)
			log.Debug("volume changed", "volume", m.ctrl.Volume())

		case key.Matches(msg, m.keys.VolumeDown):
			m.ctrl.SetVolume(m.ctrl.Volume() - 0.05)
			log.Debug("volume changed", "volume", m.ctrl.Volume())

		case key.Matches(msg, m.keys.Quit):
			if m.state != stateSynthesizing {
				return m.quit()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		m.vis.frame(msg.at, m.visMode(), m.spectrum())
		return m, frameTick(m.cfg.FrameRate)

	case progressTickMsg:
		if msg.gen != m.gen || m.state != stateSynthesizing {
			return m, nil
		}
		m.progressAt = advanceProgress(m.progressAt)
		return m, progressTick(msg.gen)

	case spinner.TickMsg:
		// Keep the spinner alive only while a request is in flight.
		if m.state != stateSynthesizing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case synthDoneMsg:
		return m.finishSynthesis(msg)

	case playStartedMsg:
		m.session = msg.session
		m.state = statePlaying
		m.err = nil
		log.Debug("playback started", "duration", msg.session.Duration())
		return m, awaitPlayback(msg.session, msg.done)

	case playbackDoneMsg:
		if msg.session != m.session {
			return m, nil // a newer session owns the transport
		}
		m.session = nil
		m.console.info("playback finished")
		// A resubmission may already be in flight; leave its state alone.
		if m.state == statePlaying {
			m.state = stateReady
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.console.error(msg.err.Error())
		if m.state == statePlaying {
			m.state = stateReady
		}
		log.Error("ui error", "error", msg.err)
		return m, nil
	}

	// Everything else feeds the focused input (cursor blink and friends).
	if m.showPicker {
		return m, m.picker.update(msg)
	}
	if m.state == stateCompose {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if v, ok := m.picker.selected(); ok && !strings.EqualFold(v.ID, m.voice) {
			m.voice = v.ID
			m.console.info("voice set to " + v.ID)
			log.Debug("voice changed", "voice", v.ID)
		}
		fallthrough

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Picker):
		m.showPicker = false
		m.picker.close()
		if m.state == stateCompose {
			return m, textarea.Blink
		}
		return m, nil
	}
	return m, m.picker.update(msg)
}

// submit starts one synthesis run. Empty input fails locally; a request in
// flight blocks resubmission.
func (m model) submit() (tea.Model, tea.Cmd) {
	if m.state == stateSynthesizing {
		return m, nil
	}

	text := strings.TrimSpace(m.prompt.Value())
	if text == "" {
		m.err = speech.ErrEmptyText
		m.console.error("nothing to synthesize: the prompt is empty")
		return m, nil
	}

	m.gen++
	m.err = nil
	m.progressAt = 0
	m.state = stateSynthesizing
	m.prompt.Blur()
	m.console.clear()

	id := uuid.NewString()[:8]
	m.console.info(fmt.Sprintf("request %s: %d chars as %s", id, len(text), m.voice))
	log.Info("synthesis requested", "id", id, "voice", m.voice, "chars", len(text))

	req := synth.Request{Text: text, Voice: m.voice, Model: m.cfg.Model}
	return m, tea.Batch(
		synthesizeCmd(m.ctrl, req, m.gen, m.cfg.SynthTimeout),
		progressTick(m.gen),
		m.spin.Tick,
	)
}

func (m model) finishSynthesis(msg synthDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != stateSynthesizing {
		log.Debug("dropping stale synthesis result", "gen", msg.gen, "current", m.gen)
		return m, nil
	}

	if msg.err != nil {
		m.progressAt = 0
		m.err = msg.err
		m.state = stateCompose
		m.console.error(describeError(msg.err))
		log.Error("synthesis failed", "error", msg.err)
		return m, m.prompt.Focus()
	}

	take := msg.take
	m.progressAt = 1
	m.err = nil
	m.state = stateReady
	m.prompt.Blur()

	size := uint64(take.Buffer.Len() * speech.BytesPerSample)
	line := fmt.Sprintf("received %s of audio (%s)",
		take.Buffer.Duration().Round(10*time.Millisecond),
		humanize.Bytes(size))
	if take.Cached {
		line += " from cache"
	}
	m.console.info(line)
	m.console.info("press space to play")
	return m, nil
}

func (m model) stop() (tea.Model, tea.Cmd) {
	if m.state != statePlaying {
		return m, nil
	}
	m.ctrl.Stop()
	m.session = nil
	m.state = stateReady
	m.console.info("playback stopped")
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Stop()
	log.Debug("shutting down")
	return m, tea.Quit
}

// visMode tags the frame with the playback controller's state, so the bars
// stay live whenever audio is audible, whatever the orchestrator is doing.
func (m model) visMode() visMode {
	if m.ctrl.Playing() {
		return visLive
	}
	return visIdle
}

// spectrum returns the live frequency tap, or nil when nothing plays.
func (m model) spectrum() []byte {
	if s := m.ctrl.Session(); s != nil {
		return s.Spectrum()
	}
	return nil
}

func (m *model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	m.prompt.SetWidth(inner)
	m.bar.Width = inner

	fixed := promptHeight + 15
	consoleHeight := height - fixed
	if consoleHeight < 3 {
		consoleHeight = 3
	}
	m.console.setSize(inner, consoleHeight)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("utter"))
	b.WriteString(subtleStyle.Render("  say it out loud"))
	b.WriteString("\n\n")

	frame := promptFrameStyle
	if m.state == stateCompose && !m.showPicker {
		frame = promptFocusFrameStyle
	}
	b.WriteString(frame.Render(m.prompt.View()))
	b.WriteString("\n")

	b.WriteString(voiceLabelStyle.Render(" voice "))
	b.WriteString(voiceNameStyle.Render(m.voice))
	b.WriteString(subtleStyle.Render(" ▾"))
	b.WriteString("\n")

	if m.state == stateSynthesizing {
		b.WriteString(" " + m.spin.View() + m.bar.ViewAs(m.progressAt))
	}
	b.WriteString("\n\n")

	b.WriteString(m.vis.view())
	b.WriteString("\n\n")

	if m.showPicker {
		b.WriteString(m.picker.view())
	} else {
		b.WriteString(m.console.view())
	}
	b.WriteString("\n")

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// describeError maps the error taxonomy onto console lines.
func describeError(err error) string {
	var synthErr *synth.Error
	var decodeErr *speech.DecodeError
	switch {
	case errors.Is(err, speech.ErrEmptyText):
		return "nothing to synthesize: the prompt is empty"
	case errors.As(err, &synthErr):
		return "synthesis failed: " + synthErr.Error()
	case errors.As(err, &decodeErr):
		return "could not decode the audio payload: " + decodeErr.Error()
	default:
		return err.Error()
	}
}
