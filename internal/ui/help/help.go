// Package help provides a scrollable popup listing the key bindings.
package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/nowplaying/internal/keymap"
	"github.com/llehouerou/nowplaying/internal/ui/render"
	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"global", "playback", "navigation"}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":     "Global",
	"playback":   "Playback",
	"navigation": "Navigation Bar",
}

// popupChrome is the number of lines the border, title and footer take.
const popupChrome = 6

// Model holds the state for the help popup.
type Model struct {
	bindings     []keymap.Binding
	width        int
	height       int
	scrollOffset int
}

// New creates a help popup for bindings, grouped by context.
func New(bindings []keymap.Binding) Model {
	var ordered []keymap.Binding
	for _, ctx := range categoryOrder {
		for _, b := range bindings {
			if b.Context == ctx {
				ordered = append(ordered, b)
			}
		}
	}
	return Model{bindings: ordered}
}

// SetSize sets the terminal dimensions the popup is drawn in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollOffset = min(m.scrollOffset, m.maxScroll())
}

// Update handles a key press and reports whether the popup should close.
func (m Model) Update(msg tea.KeyMsg) (Model, bool) {
	switch msg.String() {
	case "?", "esc", "q":
		return m, true
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, false
}

// View renders the bordered popup, not yet positioned.
func (m Model) View() string {
	lines := m.contentLines()
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	visible := lines[min(m.scrollOffset, len(lines)):min(m.scrollOffset+m.visibleHeight(), len(lines))]
	for i, line := range visible {
		visible[i] = render.Pad(line, maxWidth)
	}

	s := styles.T().S()
	var sb strings.Builder
	sb.WriteString(s.Active.Render("Help"))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(visible, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(s.Subtle.Render(m.footer()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(0, 1).
		Render(sb.String())
}

func (m Model) contentLines() []string {
	s := styles.T().S()

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(keyList(b.Keys)))
	}

	var lines []string
	context := ""
	for _, b := range m.bindings {
		if b.Context != context {
			if context != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines,
				s.Control.Render(label),
				s.Subtle.Render(strings.Repeat("─", keyWidth+15)))
			context = b.Context
		}
		keys := render.Pad(keyList(b.Keys), keyWidth)
		lines = append(lines, s.Active.Render(keys)+"  "+s.Base.Render(b.Description))
	}
	return lines
}

func keyList(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, ", ")
}

func (m Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	if m.height == 0 {
		return len(m.contentLines())
	}
	return max(m.height-popupChrome, 3)
}

func (m Model) maxScroll() int {
	return max(len(m.contentLines())-m.visibleHeight(), 0)
}
