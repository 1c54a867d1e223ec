package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/errmsg"
	"github.com/llehouerou/nowplaying/internal/keymap"
	"github.com/llehouerou/nowplaying/internal/playback"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if !m.quitting && m.queueCover() {
		cmd = tea.Batch(cmd, m.flushCoverCmd())
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case coverFlushedMsg:
		// A later upload keeps its own flush pending.
		if msg.gen == m.coverGen {
			m.coverTransmit = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.Playback.State().IsShowingLoader() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePlaybackMsg(msg PlaybackMessage) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CallbackMsg:
		if msg.run != nil {
			msg.run()
		}
		return m, nil

	case StateChangedMsg:
		cmds := []tea.Cmd{m.WatchServiceEvents()}
		if msg.PhaseChanged() && msg.Current == playback.PhaseLoading {
			cmds = append(cmds, m.Spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case ServiceClosedMsg:
		m.sub = nil
		return m, nil
	}
	return m, nil
}

// PhaseChanged reports whether the change moved the playback phase.
func (msg StateChangedMsg) PhaseChanged() bool {
	return msg.Previous != msg.Current
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	action := m.Keys.ResolveMsg(msg)

	// The help popup is modal; only ctrl+c reaches the key map.
	if m.showHelp && msg.Type != tea.KeyCtrlC {
		var closed bool
		m.help, closed = m.help.Update(msg)
		m.showHelp = !closed
		return m, nil
	}

	switch action {
	case keymap.ActionQuit:
		m.quitting = true
		if m.sub != nil {
			m.sub.Close()
			m.sub = nil
		}
		if err := m.Playback.Close(); err != nil {
			m.log.Warn("closing playback", zap.Error(err))
		}
		return m, tea.Quit

	case keymap.ActionHelp:
		m.showHelp = true
		m.help.SetSize(m.Width, m.Height)
	case keymap.ActionPlayPause:
		m.Playback.TogglePlayback()
		if m.Playback.State().IsShowingLoader() {
			return m, m.Spinner.Tick
		}
	case keymap.ActionSkipForward:
		m.Playback.SkipForward()
	case keymap.ActionSkipBackward:
		m.Playback.SkipBackward()
	case keymap.ActionToggleShuffle:
		m.Playback.ToggleShuffle()
	case keymap.ActionToggleRepeat:
		m.Playback.ToggleRepeat()
	case keymap.ActionSelectHome:
		m.Playback.SelectTab(playback.TabHome)
	case keymap.ActionSelectMusic:
		m.Playback.SelectTab(playback.TabMusic)
	case keymap.ActionSelectFavorite:
		m.Playback.SelectTab(playback.TabFavorite)
	case "":
		return m, nil
	}

	m.log.Debug("key handled", zap.String("key", msg.String()), zap.String("action", string(action)))
	return m, nil
}

// queueCover adds the upload for the current target size to the pending
// uploads the first time that size is needed. It reports whether
// anything was queued.
func (m *Model) queueCover() bool {
	seq, err := m.Cover.Prepare(m.Playback.State().CoverTargetSize())
	if err != nil {
		m.log.Warn("preparing cover art", zap.Error(err))
		m.ErrorMsg = errmsg.Format(errmsg.OpCoverLoad, err)
		return false
	}
	if seq == "" {
		return false
	}
	m.coverTransmit += seq
	m.coverGen++
	return true
}

// flushCoverCmd clears the pending uploads once they have been drawn.
func (m Model) flushCoverCmd() tea.Cmd {
	gen := m.coverGen
	return tea.Tick(coverFlushDelay, func(time.Time) tea.Msg {
		return coverFlushedMsg{gen: gen}
	})
}
