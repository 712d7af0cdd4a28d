package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/utter-tts/utter/internal/player"
	"github.com/utter-tts/utter/speech"
	"github.com/utter-tts/utter/speech/synth"
)

// Cosmetic progress: advance toward the cap on a fixed tick, decelerating
// as it closes in. The cap is only crossed by a real result.
const (
	progressCap      = 0.90
	progressRate     = 0.08
	progressInterval = 100 * time.Millisecond
)

// synthDoneMsg reports the outcome of one synthesis run. The generation
// token identifies the run; stale generations are dropped by Update.
type synthDoneMsg struct {
	gen  int
	take *speech.Take
	err  error
}

// progressTickMsg advances the cosmetic progress bar for one generation.
type progressTickMsg struct {
	gen int
	at  time.Time
}

// frameMsg drives the visualizer redraw.
type frameMsg struct {
	at time.Time
}

// playStartedMsg is sent once playback has been handed to the device.
type playStartedMsg struct {
	session *player.Session
	done    chan struct{}
}

// playbackDoneMsg is sent when a session reaches the natural end of its
// buffer. Stopped or superseded sessions never produce one.
type playbackDoneMsg struct {
	session *player.Session
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// synthesizeCmd runs one blocking synthesis round trip.
func synthesizeCmd(ctrl *speech.Controller, req synth.Request, gen int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		take, err := ctrl.Synthesize(ctx, req)
		return synthDoneMsg{gen: gen, take: take, err: err}
	}
}

func progressTick(gen int) tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return progressTickMsg{gen: gen, at: t}
	})
}

func frameTick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

// playCmd starts playback of the stored take. The done channel is buffered
// so the player's completion callback never blocks on the UI.
func playCmd(ctrl *speech.Controller) tea.Cmd {
	return func() tea.Msg {
		done := make(chan struct{}, 1)
		session, err := ctrl.Play(func() { done <- struct{}{} })
		if err != nil {
			return errMsg{err}
		}
		return playStartedMsg{session: session, done: done}
	}
}

// awaitPlayback blocks until the session completes naturally or is torn
// down. Teardown without completion (stop, supersede) yields no message.
func awaitPlayback(session *player.Session, done chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-done:
			return playbackDoneMsg{session: session}
		case <-session.Closed():
			// A completion may have raced teardown; prefer it.
			select {
			case <-done:
				return playbackDoneMsg{session: session}
			default:
				return nil
			}
		}
	}
}

// advanceProgress moves cosmetic progress one tick toward the cap.
func advanceProgress(p float64) float64 {
	next := p + (progressCap-p)*progressRate
	if next > progressCap {
		next = progressCap
	}
	if next < p {
		next = p
	}
	return next
}
