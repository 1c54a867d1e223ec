package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// WatchServiceEvents returns a command that waits for the next playback
// state change and converts it to a tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg{
				Previous: e.Previous,
				Current:  e.Current,
				State:    e.State,
			}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}
