package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the screen.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - active controls, selected tab
	Secondary lipgloss.Color // Gold - gradient end, loader

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgSelected lipgloss.Color // Selected tab background

	Border lipgloss.Color // Cover frame

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the now-playing screen.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style // Artist, time labels
	Subtle      lipgloss.Style // Inactive toggles, help line
	Active      lipgloss.Style // Shuffle/repeat when on
	Control     lipgloss.Style // Play/pause button
	Loader      lipgloss.Style
	Tab         lipgloss.Style
	TabSelected lipgloss.Style
	CoverFrame  lipgloss.Style // Placeholder when no image is shown
	Error       lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgSelected: lipgloss.Color("#303030"),

	Border: lipgloss.Color("#585858"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Active:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Control: base.Bold(true),
		Loader:  lipgloss.NewStyle().Foreground(t.Secondary),
		Tab:     lipgloss.NewStyle().Foreground(t.FgMuted),
		TabSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.BgSelected).
			Bold(true),
		CoverFrame: lipgloss.NewStyle().Foreground(t.Border),
		Error:      lipgloss.NewStyle().Foreground(t.Error),
	}
}
