// internal/playback/state.go
package playback

import "math"

// Phase represents the playback phase derived from State.
type Phase int

const (
	PhaseStopped Phase = iota
	PhaseLoading
	PhasePlaying
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "Stopped"
	case PhaseLoading:
		return "Loading"
	case PhasePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (loading or playing).
func (p Phase) IsActive() bool {
	return p == PhaseLoading || p == PhasePlaying
}

// Tab identifies a navigation bar tab.
type Tab int

// TabNone means no tab is selected.
const TabNone Tab = -1

const (
	TabHome Tab = iota
	TabMusic
	TabFavorite
)

// Tabs lists the navigation bar tabs in display order.
var Tabs = []Tab{TabHome, TabMusic, TabFavorite}

// String returns the tab name.
func (t Tab) String() string {
	switch t {
	case TabNone:
		return "None"
	case TabHome:
		return "Home"
	case TabMusic:
		return "Music"
	case TabFavorite:
		return "Favorite"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the navigation bar tabs.
func (t Tab) Valid() bool {
	return t >= TabHome && t <= TabFavorite
}

// Size is a cover art size in terminal cells.
type Size struct {
	Cols int
	Rows int
}

// Scaled returns the size scaled by factor, rounded to whole cells.
func (s Size) Scaled(factor float64) Size {
	return Size{
		Cols: int(math.Round(float64(s.Cols) * factor)),
		Rows: int(math.Round(float64(s.Rows) * factor)),
	}
}

// Cover sizes. The collapsed size is the expanded one scaled by 0.7.
var (
	CoverExpanded  = Size{Cols: 20, Rows: 10}
	CoverCollapsed = CoverExpanded.Scaled(coverCollapsedScale)
)

const (
	coverExpandedScale  = 1.0
	coverCollapsedScale = 0.7

	selectedTabScale = 1.2
	defaultTabScale  = 1.0
)

// stepsPerTrack is the number of progress steps from 0 to 1.
const stepsPerTrack = 100

// ProgressStep is the progress added by a single tick.
const ProgressStep = 1.0 / stepsPerTrack

// State is the playback view-model state. Observers receive it by value
// through Controller.State, so only the controller can mutate it.
type State struct {
	playing     bool
	steps       int
	loader      bool
	selectedTab Tab
	shuffle     bool
	repeat      bool
}

// NewState returns a stopped state with no tab selected.
func NewState() State {
	return State{selectedTab: TabNone}
}

// IsPlaying reports whether playback is logically active.
func (s State) IsPlaying() bool { return s.playing }

// IsShowingLoader reports whether the buffering indicator is shown.
func (s State) IsShowingLoader() bool { return s.loader }

// SelectedTab returns the highlighted tab, or TabNone.
func (s State) SelectedTab() Tab { return s.selectedTab }

// Shuffle reports whether the shuffle affordance is on.
func (s State) Shuffle() bool { return s.shuffle }

// Repeat reports whether the repeat affordance is on.
func (s State) Repeat() bool { return s.repeat }

// Progress returns the fractional track position in [0,1].
func (s State) Progress() float64 {
	p := float64(s.steps) / stepsPerTrack
	return min(max(p, 0), 1)
}

// Phase returns the playback phase.
func (s State) Phase() Phase {
	switch {
	case !s.playing:
		return PhaseStopped
	case s.loader:
		return PhaseLoading
	default:
		return PhasePlaying
	}
}

// CoverTargetSize returns the size the cover art should settle at.
func (s State) CoverTargetSize() Size {
	return CoverExpanded.Scaled(s.CoverScale())
}

// CoverScale returns the cover scale factor matching CoverTargetSize.
func (s State) CoverScale() float64 {
	if s.coverExpanded() {
		return coverExpandedScale
	}
	return coverCollapsedScale
}

func (s State) coverExpanded() bool {
	return s.playing && !s.loader
}

// IsTabSelected reports whether tab is the highlighted tab.
func (s State) IsTabSelected(tab Tab) bool {
	return s.selectedTab != TabNone && s.selectedTab == tab
}

// TabScale returns the display scale for tab.
func (s State) TabScale(tab Tab) float64 {
	if s.IsTabSelected(tab) {
		return selectedTabScale
	}
	return defaultTabScale
}

// togglePlaying flips the playing flag and returns the new value.
// Stopping always clears the loader.
func (s *State) togglePlaying() bool {
	s.playing = !s.playing
	if !s.playing {
		s.loader = false
	}
	return s.playing
}

func (s *State) setLoader(on bool) {
	s.loader = on && s.playing
}

// advance adds one progress step. When the track completes, progress is
// reset and playback stops; advance then returns true.
func (s *State) advance() bool {
	s.steps++
	if s.steps < stepsPerTrack {
		return false
	}
	s.steps = 0
	s.playing = false
	s.loader = false
	return true
}

// toggleTab selects tab, or clears the selection if tab is already selected.
func (s *State) toggleTab(tab Tab) {
	if s.selectedTab == tab {
		s.selectedTab = TabNone
		return
	}
	s.selectedTab = tab
}

func (s *State) toggleShuffle() bool {
	s.shuffle = !s.shuffle
	return s.shuffle
}

func (s *State) toggleRepeat() bool {
	s.repeat = !s.repeat
	return s.repeat
}
