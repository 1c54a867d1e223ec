package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: 1:23  ▓▓▓▓▓░░░░░  1:40
func RenderProgressBar(progress float64, position, duration time.Duration, width int) string {
	s := styles.T().S()
	posStr := formatDuration(position)
	durStr := formatDuration(duration)

	fixedWidth := lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return s.Muted.Render(posStr + " / " + durStr)
	}

	progress = min(max(progress, 0), 1)
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := s.Active.Render(strings.Repeat(filledBlock, filled)) +
		s.Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return s.Muted.Render(posStr) + "  " + bar + "  " + s.Muted.Render(durStr)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}
