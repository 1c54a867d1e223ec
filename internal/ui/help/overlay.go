package help

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws box centered on top of base. Base lines are padded to
// width where the box covers them. ANSI styling on both sides is kept.
func Overlay(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	boxWidth := 0
	for _, l := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(l))
	}
	left := max(width-boxWidth, 0) / 2
	top := max(height-len(boxLines), 0) / 2

	for i, boxLine := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}

		baseLine := baseLines[row]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		end := left + ansi.StringWidth(boxLine)
		result := ansi.Cut(baseLine, 0, left) + boxLine
		if end < width {
			result += ansi.Cut(baseLine, end, width)
		}
		baseLines[row] = result
	}

	return strings.Join(baseLines, "\n")
}
