package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/utter-tts/utter/internal/cache"
	"github.com/utter-tts/utter/internal/player"
	"github.com/utter-tts/utter/speech"
	"github.com/utter-tts/utter/speech/synth"
	"github.com/utter-tts/utter/speech/synth/mock"
)

func newTestModel(t *testing.T) (model, *mock.Engine) {
	t.Helper()

	engine := mock.New()
	engine.SetTone(0)
	engine.SetFixedDuration(500 * time.Millisecond)

	p := player.New(player.NewMockDevice(), speech.SampleRate)
	ctrl := speech.NewController(engine, cache.New(1<<20), p)

	cfg := Config{
		SynthTimeout: 5 * time.Second,
		FrameRate:    30,
		Voice:        "Kore",
		Volume:       1,
	}
	m := newModel(cfg, ctrl)
	m.setSize(100, 40)
	return m, engine
}

// drainBatch executes every command in a (possibly batched) tea.Cmd and
// returns the produced messages.
func drainBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c == nil {
				continue
			}
			if m := c(); m != nil {
				msgs = append(msgs, m)
			}
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestSubmitEmptyPromptNeverCallsEngine(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{name: "empty", prompt: ""},
		{name: "spaces", prompt: "    "},
		{name: "newlines", prompt: "\n\n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, engine := newTestModel(t)
			m.prompt.SetValue(tt.prompt)

			updated, cmd := m.submit()
			m = updated.(model)

			if cmd != nil {
				t.Error("empty submit produced a command")
			}
			if got := engine.CallCount(); got != 0 {
				t.Errorf("engine called %d times, want 0", got)
			}
			if m.state != stateCompose {
				t.Errorf("state = %v, want composing", m.state)
			}
			if !errors.Is(m.err, speech.ErrEmptyText) {
				t.Errorf("err = %v, want ErrEmptyText", m.err)
			}
			if !m.console.hasError() {
				t.Error("console has no error entry")
			}
		})
	}
}

func TestSubmitRunsSynthesisPipeline(t *testing.T) {
	m, engine := newTestModel(t)
	m.console.info("leftover from the previous run")
	m.prompt.SetValue("hello there")

	updated, cmd := m.submit()
	m = updated.(model)

	if m.state != stateSynthesizing {
		t.Fatalf("state = %v, want synthesizing", m.state)
	}
	if m.progressAt != 0 {
		t.Errorf("progress = %v after submit, want 0", m.progressAt)
	}
	if len(m.console.entries) != 1 {
		t.Errorf("console has %d entries after new run, want 1 (start entry)", len(m.console.entries))
	}

	var done synthDoneMsg
	found := false
	for _, msg := range drainBatch(t, cmd) {
		if d, ok := msg.(synthDoneMsg); ok {
			done = d
			found = true
		}
	}
	if !found {
		t.Fatal("submit batch produced no synthesis result")
	}
	if got := engine.CallCount(); got != 1 {
		t.Errorf("engine called %d times, want 1", got)
	}

	updated, _ = m.Update(done)
	m = updated.(model)

	if m.state != stateReady {
		t.Errorf("state = %v after success, want ready", m.state)
	}
	if m.progressAt != 1 {
		t.Errorf("progress = %v after success, want 1", m.progressAt)
	}
	if take := m.ctrl.Take(); take == nil || take.Buffer.Len() != 12000 {
		t.Errorf("stored take = %+v, want 12000-sample buffer", take)
	}
}

func TestSynthesisFailureReturnsToCompose(t *testing.T) {
	m, _ := newTestModel(t)
	m.prompt.SetValue("doomed")
	updated, _ := m.submit()
	m = updated.(model)

	failure := &synth.Error{Engine: "mock", Message: "quota exhausted"}
	updated, _ = m.Update(synthDoneMsg{gen: m.gen, err: failure})
	m = updated.(model)

	if m.state != stateCompose {
		t.Errorf("state = %v after failure, want composing", m.state)
	}
	if m.progressAt != 0 {
		t.Errorf("progress = %v after failure, want 0", m.progressAt)
	}
	if !m.console.hasError() {
		t.Error("failure produced no error-marked console entry")
	}
	if m.err == nil {
		t.Error("failure not surfaced in status")
	}
}

func TestResubmissionAfterFailure(t *testing.T) {
	m, engine := newTestModel(t)

	// First run succeeds and stores a take.
	m.prompt.SetValue("keep this take")
	updated, cmd := m.submit()
	m = updated.(model)
	for _, msg := range drainBatch(t, cmd) {
		if d, ok := msg.(synthDoneMsg); ok {
			updated, _ = m.Update(d)
			m = updated.(model)
		}
	}
	if m.ctrl.Take() == nil {
		t.Fatal("first run stored no take")
	}

	// Second run fails.
	engine.SetFailure(&synth.Error{Engine: "mock", Message: "quota exhausted"})
	m.prompt.SetValue("doomed")
	updated, cmd = m.submit()
	m = updated.(model)
	for _, msg := range drainBatch(t, cmd) {
		if d, ok := msg.(synthDoneMsg); ok {
			updated, _ = m.Update(d)
			m = updated.(model)
		}
	}

	if m.state != stateCompose {
		t.Fatalf("state = %v after failure, want composing", m.state)
	}
	if take := m.ctrl.Take(); take == nil {
		t.Error("failed run discarded the previous take")
	}

	// A third submission is accepted as if nothing happened.
	engine.ClearFailure()
	calls := engine.CallCount()
	m.prompt.SetValue("try again")
	updated, cmd = m.submit()
	m = updated.(model)

	if m.state != stateSynthesizing {
		t.Errorf("state = %v after resubmit, want synthesizing", m.state)
	}
	drainBatch(t, cmd)
	if got := engine.CallCount(); got != calls+1 {
		t.Errorf("engine called %d times after resubmit, want %d", got, calls+1)
	}
}

func TestStaleSynthesisResultDropped(t *testing.T) {
	m, _ := newTestModel(t)
	m.prompt.SetValue("take two")
	updated, _ := m.submit()
	m = updated.(model)

	stale := synthDoneMsg{gen: m.gen - 1, err: errors.New("old run")}
	updated, _ = m.Update(stale)
	m = updated.(model)

	if m.state != stateSynthesizing {
		t.Errorf("stale result moved state to %v", m.state)
	}
	if m.err != nil {
		t.Errorf("stale result surfaced error %v", m.err)
	}
}

func TestProgressTickAdvancesBelowCap(t *testing.T) {
	m, _ := newTestModel(t)
	m.prompt.SetValue("slow request")
	updated, _ := m.submit()
	m = updated.(model)

	var last float64
	for i := 0; i < 200; i++ {
		updated, cmd := m.Update(progressTickMsg{gen: m.gen, at: time.Now()})
		m = updated.(model)
		if cmd == nil {
			t.Fatal("live progress tick was not re-armed")
		}
		if m.progressAt < last {
			t.Fatalf("progress went backwards: %v -> %v", last, m.progressAt)
		}
		if m.progressAt > progressCap {
			t.Fatalf("progress %v exceeded cap %v", m.progressAt, progressCap)
		}
		last = m.progressAt
	}
	if last == 0 {
		t.Error("progress never advanced")
	}
}

func TestStaleProgressTickIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m.prompt.SetValue("fresh run")
	updated, _ := m.submit()
	m = updated.(model)

	before := m.progressAt
	updated, cmd := m.Update(progressTickMsg{gen: m.gen - 1, at: time.Now()})
	m = updated.(model)

	if m.progressAt != before {
		t.Errorf("stale tick moved progress %v -> %v", before, m.progressAt)
	}
	if cmd != nil {
		t.Error("stale tick was re-armed")
	}
}

func TestAdvanceProgressConverges(t *testing.T) {
	p := 0.0
	for i := 0; i < 1000; i++ {
		next := advanceProgress(p)
		if next < p {
			t.Fatalf("iteration %d: progress decreased %v -> %v", i, p, next)
		}
		if next > progressCap {
			t.Fatalf("iteration %d: progress %v exceeded cap", i, next)
		}
		p = next
	}
	if p < progressCap-0.01 {
		t.Errorf("progress stalled at %v, want near %v", p, progressCap)
	}
}

func TestPlaybackRoundTrip(t *testing.T) {
	m, _ := newTestModel(t)
	m.prompt.SetValue("play this back")
	updated, cmd := m.submit()
	m = updated.(model)

	for _, msg := range drainBatch(t, cmd) {
		if d, ok := msg.(synthDoneMsg); ok {
			updated, _ = m.Update(d)
			m = updated.(model)
		}
	}
	if m.state != stateReady {
		t.Fatalf("state = %v, want ready", m.state)
	}

	msg := playCmd(m.ctrl)()
	started, ok := msg.(playStartedMsg)
	if !ok {
		t.Fatalf("playCmd returned %T, want playStartedMsg", msg)
	}

	updated, wait := m.Update(started)
	m = updated.(model)
	if m.state != statePlaying {
		t.Fatalf("state = %v after play, want playing", m.state)
	}

	doneMsg := wait()
	donePlaying, ok := doneMsg.(playbackDoneMsg)
	if !ok {
		t.Fatalf("awaitPlayback returned %T, want playbackDoneMsg", doneMsg)
	}

	updated, _ = m.Update(donePlaying)
	m = updated.(model)
	if m.state != stateReady {
		t.Errorf("state = %v after completion, want ready", m.state)
	}
	if m.session != nil {
		t.Error("session still attached after completion")
	}
}

func TestStopWhileIdleDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = stateReady

	updated, cmd := m.stop()
	m = updated.(model)

	if cmd != nil {
		t.Error("idle stop produced a command")
	}
	if m.state != stateReady {
		t.Errorf("idle stop moved state to %v", m.state)
	}
	if len(m.console.entries) != 0 {
		t.Error("idle stop logged a console entry")
	}
}

func TestVoicePickerSelection(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(model)
	if !m.showPicker {
		t.Fatal("tab did not open the voice picker")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if m.showPicker {
		t.Error("enter did not close the picker")
	}
	if m.voice == "Kore" {
		t.Error("selection did not change the voice")
	}
	if _, ok := speech.LookupVoice(m.voice); !ok {
		t.Errorf("selected voice %q not in catalog", m.voice)
	}
}

func TestClearConsoleKey(t *testing.T) {
	m, _ := newTestModel(t)
	m.console.info("one")
	m.console.info("two")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(model)

	if len(m.console.entries) != 0 {
		t.Errorf("console has %d entries after clear, want 0", len(m.console.entries))
	}
}

func TestFrameTickStopsOnQuit(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(frameMsg{at: time.Now()})
	m = updated.(model)
	if cmd == nil {
		t.Fatal("frame tick was not re-armed while running")
	}

	updated, _ = m.quit()
	m = updated.(model)
	_, cmd = m.Update(frameMsg{at: time.Now()})
	if cmd != nil {
		t.Error("frame tick re-armed after quit")
	}
}
