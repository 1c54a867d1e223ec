// Package app contains the bubbletea model driving the now-playing screen.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/nowplaying/internal/playback"
)

// Message category interfaces for type-based routing in Update().
// External messages (key presses, window size, spinner ticks) cannot
// implement these interfaces, so they are handled separately.

// PlaybackMessage is implemented by messages related to playback state.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// CallbackMsg carries a scheduled playback callback onto the event loop.
type CallbackMsg struct {
	run func()
}

func (CallbackMsg) playbackMessage() {}

// StateChangedMsg is sent when the playback controller state changes.
type StateChangedMsg struct {
	Previous, Current playback.Phase
	State             playback.State
}

func (StateChangedMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the playback controller is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// coverFlushedMsg marks the cover uploads queued up to gen as written to
// the terminal.
type coverFlushedMsg struct {
	gen int
}
