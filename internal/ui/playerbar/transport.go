package playerbar

import (
	"strings"

	"github.com/llehouerou/nowplaying/internal/icons"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

// RenderTransport renders the control row:
// shuffle, skip backward, play/pause, skip forward, repeat.
func RenderTransport(st playback.State) string {
	s := styles.T().S()

	toggle := func(icon string, on bool) string {
		if on {
			return s.Active.Render(icon)
		}
		return s.Subtle.Render(icon)
	}

	parts := []string{
		toggle(icons.Shuffle(), st.Shuffle()),
		s.Base.Render(icons.Previous()),
		s.Control.Render(icons.PlayPause(st.IsPlaying())),
		s.Base.Render(icons.Next()),
		toggle(icons.Repeat(), st.Repeat()),
	}
	return strings.Join(parts, "   ")
}
