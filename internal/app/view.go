package app

import (
	"strings"

	"github.com/llehouerou/nowplaying/internal/ui/help"
	"github.com/llehouerou/nowplaying/internal/ui/playerbar"
)

// View renders the current model state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Playback.State()
	size := st.CoverTargetSize()

	view, layout := playerbar.Render(playerbar.State{
		Playback: st,
		Track:    m.Track,
		Position: m.Playback.Position(),
		Duration: m.Playback.NominalDuration(),
		Cover:    m.Cover.Block(size),
		Spinner:  m.Spinner.View(),
		Error:    m.ErrorMsg,
		Help:     m.helpLine(),
	}, m.Width, m.Height)

	// Prepend pending album art uploads until a frame has carried them
	view = m.coverTransmit + view

	if m.showHelp {
		// Images are drawn above text, so take them down under the popup
		return help.Overlay(view, m.help.View(), m.Width, m.Height) + m.Cover.Hide()
	}

	// Append album art placement command (Kitty graphics protocol)
	return view + m.Cover.Placement(layout.Cover, layout.CoverRow, layout.CoverCol)
}

func (m Model) helpLine() string {
	var parts []string
	for _, ctx := range []string{"global", "playback"} {
		if line := m.Keys.HelpLine(ctx); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " · ")
}
