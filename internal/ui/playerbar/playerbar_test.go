package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/nowplaying/internal/icons"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/ui/kittyimg"
	"github.com/llehouerou/nowplaying/internal/ui/render"
	"github.com/llehouerou/nowplaying/internal/ui/testutil"
)

func init() {
	icons.Init("none")
}

// stateAfter returns the controller state after applying ops, with timers
// that never fire during a test.
func stateAfter(t *testing.T, ops ...func(*playback.Controller)) playback.State {
	t.Helper()
	c := playback.NewController(playback.Options{TickInterval: time.Hour, LoaderWindow: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	for _, op := range ops {
		op(c)
	}
	return c.State()
}

func TestRenderProgressBar(t *testing.T) {
	bar := testutil.StripANSI(RenderProgressBar(0.5, 50*time.Second, 100*time.Second, 30))

	assert.True(t, strings.HasPrefix(bar, "0:50  "))
	assert.True(t, strings.HasSuffix(bar, "  1:40"))
	assert.Equal(t, 30, testutil.MeasureWidth(bar))
	// 30 - "0:50" - "1:40" - 4 spaces = 18 cells, half filled
	assert.Equal(t, 9, strings.Count(bar, filledBlock))
	assert.Equal(t, 9, strings.Count(bar, emptyBlock))
}

func TestRenderProgressBar_OddWidth(t *testing.T) {
	bar := testutil.StripANSI(RenderProgressBar(0.5, 50*time.Second, 100*time.Second, 31))

	assert.Equal(t, 31, testutil.MeasureWidth(bar))
	// 19 cells, the filled part rounds down
	assert.Equal(t, 9, strings.Count(bar, filledBlock))
	assert.Equal(t, 10, strings.Count(bar, emptyBlock))
}

func TestRenderProgressBar_Clamped(t *testing.T) {
	full := testutil.StripANSI(RenderProgressBar(1.7, 0, 0, 20))
	assert.Zero(t, strings.Count(full, emptyBlock))

	empty := testutil.StripANSI(RenderProgressBar(-1, 0, 0, 20))
	assert.Zero(t, strings.Count(empty, filledBlock))
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	bar := testutil.StripANSI(RenderProgressBar(0.3, 30*time.Second, 100*time.Second, 12))
	assert.Equal(t, "0:30 / 1:40", bar)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{100 * time.Second, "1:40"},
		{61*time.Minute + 5*time.Second, "61:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRenderTransport(t *testing.T) {
	stopped := testutil.StripANSI(RenderTransport(stateAfter(t)))
	assert.Equal(t, "[S]   <<   >   >>   [R]", stopped)

	playing := testutil.StripANSI(RenderTransport(stateAfter(t, (*playback.Controller).TogglePlayback)))
	assert.Equal(t, "[S]   <<   ||   >>   [R]", playing)
}

func TestRenderTransport_FlagsStyled(t *testing.T) {
	off := RenderTransport(stateAfter(t))
	on := RenderTransport(stateAfter(t,
		(*playback.Controller).ToggleShuffle,
		(*playback.Controller).ToggleRepeat))

	assert.Equal(t, testutil.StripANSI(off), testutil.StripANSI(on), "same glyphs")
}

func TestTabWidth(t *testing.T) {
	none := stateAfter(t)
	for _, tab := range playback.Tabs {
		assert.Equal(t, TabBaseWidth, TabWidth(none, tab))
	}

	music := stateAfter(t, func(c *playback.Controller) { c.SelectTab(playback.TabMusic) })
	assert.Equal(t, 14, TabWidth(music, playback.TabMusic))
	assert.Equal(t, TabBaseWidth, TabWidth(music, playback.TabHome))
}

func TestTabLabel(t *testing.T) {
	assert.Equal(t, "Home", TabLabel(playback.TabHome))
	assert.Equal(t, "Music", TabLabel(playback.TabMusic))
	assert.Equal(t, "* Favorite", TabLabel(playback.TabFavorite))
	assert.Empty(t, TabLabel(playback.TabNone))
}

func TestRenderTabBar(t *testing.T) {
	none := testutil.StripANSI(RenderTabBar(stateAfter(t)))
	assert.Equal(t, 3*TabBaseWidth+2, testutil.MeasureWidth(none))
	assert.Contains(t, none, "Home")
	assert.Contains(t, none, "Music")
	assert.Contains(t, none, "Favorite")

	selected := testutil.StripANSI(RenderTabBar(stateAfter(t, func(c *playback.Controller) {
		c.SelectTab(playback.TabHome)
	})))
	assert.Equal(t, 2*TabBaseWidth+14+2, testutil.MeasureWidth(selected))
}

func renderState(st playback.State, width, height int) (string, Layout) {
	size := st.CoverTargetSize()
	return Render(State{
		Playback: st,
		Track:    playback.Track{Title: "So Long, London", Artist: "Taylor Swift", Album: "TTPD"},
		Duration: 100 * time.Second,
		Cover:    kittyimg.Placeholder(size.Cols, size.Rows),
		Spinner:  "*",
		Help:     "q quit",
	}, width, height)
}

func TestRender_Stopped(t *testing.T) {
	out, layout := renderState(stateAfter(t), 80, 40)
	view := testutil.StripANSI(out)
	lines := strings.Split(view, "\n")

	require.Len(t, lines, 40)
	assert.Contains(t, view, "So Long, London")
	assert.Contains(t, view, "Taylor Swift · TTPD")
	assert.Contains(t, view, "0:00")
	assert.NotContains(t, view, loaderText)
	assert.Contains(t, lines[len(lines)-1], "q quit")
	assert.Contains(t, lines[len(lines)-2], "Home")

	assert.Equal(t, playback.CoverCollapsed, layout.Cover)
	first := lines[layout.CoverRow-1]
	assert.Equal(t, layout.CoverCol-1, strings.Index(first, strings.TrimLeft(first, " ")),
		"cover column matches the first non-space cell")
	for _, l := range lines {
		assert.LessOrEqual(t, testutil.MeasureWidth(l), 80)
	}
}

func TestRender_LoaderKeepsCollapsedCover(t *testing.T) {
	loading := stateAfter(t, (*playback.Controller).TogglePlayback)
	out, layout := renderState(loading, 80, 40)
	assert.Contains(t, testutil.StripANSI(out), "* "+loaderText)
	assert.Equal(t, playback.CoverCollapsed, layout.Cover)
}

func TestRender_NoHeight(t *testing.T) {
	out, layout := renderState(stateAfter(t), 80, 0)
	lines := strings.Split(testutil.StripANSI(out), "\n")

	assert.Equal(t, 1, layout.CoverRow)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "┌"), "cover comes first")
	assert.Equal(t, render.CenterOffset(playback.CoverCollapsed.Cols, 80)+1, layout.CoverCol)
}

func TestRender_UnknownTitleAndError(t *testing.T) {
	out, _ := Render(State{
		Playback: stateAfter(t),
		Error:    "Failed to load cover art: bad data",
	}, 60, 30)
	view := testutil.StripANSI(out)

	assert.Contains(t, view, unknownTitle)
	assert.Contains(t, view, "Failed to load cover art")
}
