// Package playerbar renders the now-playing screen.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/ui/render"
	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

const (
	unknownTitle     = "Unknown Track"
	loaderText       = "Buffering"
	maxProgressWidth = 60
	sidePadding      = 2
)

// State holds everything needed to render the screen.
type State struct {
	Playback playback.State
	Track    playback.Track
	Position time.Duration
	Duration time.Duration

	Cover   string // cover block sized to Playback.CoverTargetSize()
	Spinner string // current spinner frame
	Error   string
	Help    string
}

// Layout reports where the cover block landed, in 1-based terminal
// coordinates, so an image can be placed over it.
type Layout struct {
	CoverRow int
	CoverCol int
	Cover    playback.Size
}

// Render returns the screen for the given terminal size and the cover
// position. A zero height renders the content without vertical padding.
func Render(s State, width, height int) (string, Layout) {
	size := s.Playback.CoverTargetSize()
	inner := max(width-2*sidePadding, 0)

	body := make([]string, 0, size.Rows+10)
	body = append(body, strings.Split(s.Cover, "\n")...)
	body = append(body, "", renderLoader(s))
	body = append(body, renderLabels(s.Track, inner)...)
	body = append(body, "",
		RenderProgressBar(s.Playback.Progress(), s.Position, s.Duration, min(inner, maxProgressWidth)),
		RenderTransport(s.Playback),
		"",
		renderError(s.Error, inner),
	)

	footer := []string{RenderTabBar(s.Playback)}
	if s.Help != "" {
		footer = append(footer, styles.T().S().Subtle.Render(render.Truncate(s.Help, inner)))
	}

	top := 0
	if height > 0 {
		free := height - len(body) - len(footer)
		top = max(free/2, 0)
	}

	lines := make([]string, 0, max(height, len(body)+len(footer)))
	for range top {
		lines = append(lines, "")
	}
	lines = append(lines, body...)
	for height > 0 && len(lines)+len(footer) < height {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)

	for i, l := range lines {
		lines[i] = render.Center(l, width)
	}

	coverWidth := size.Cols
	if first, _, ok := strings.Cut(s.Cover, "\n"); ok || first != "" {
		coverWidth = lipgloss.Width(first)
	}
	layout := Layout{
		CoverRow: top + 1,
		CoverCol: render.CenterOffset(coverWidth, width) + 1,
		Cover:    size,
	}
	return strings.Join(lines, "\n"), layout
}

func renderLoader(s State) string {
	if !s.Playback.IsShowingLoader() {
		return ""
	}
	return styles.T().S().Loader.Render(s.Spinner + " " + loaderText)
}

func renderLabels(t playback.Track, width int) []string {
	title := t.Title
	if title == "" {
		title = unknownTitle
	}
	lines := []string{styles.TitleGradient(render.Truncate(title, width))}

	artist := t.Artist
	if t.Album != "" {
		if artist != "" {
			artist += " · "
		}
		artist += t.Album
	}
	lines = append(lines, styles.T().S().Muted.Render(render.Truncate(artist, width)))
	return lines
}

func renderError(msg string, width int) string {
	if msg == "" {
		return ""
	}
	return styles.T().S().Error.Render(render.Truncate(msg, width))
}
