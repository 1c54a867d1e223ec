package playerbar

import (
	"strings"

	"github.com/llehouerou/nowplaying/internal/icons"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/ui/render"
	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

// TabBaseWidth is the width of an unselected tab in cells.
const TabBaseWidth = 12

// TabLabel returns the icon and name shown for tab.
func TabLabel(tab playback.Tab) string {
	switch tab {
	case playback.TabHome:
		return icons.FormatTab(icons.Home(), "Home")
	case playback.TabMusic:
		return icons.FormatTab(icons.Music(), "Music")
	case playback.TabFavorite:
		return icons.FormatTab(icons.Favorite(), "Favorite")
	default:
		return ""
	}
}

// TabWidth returns the rendered width of tab, scaled by its selection.
func TabWidth(st playback.State, tab playback.Tab) int {
	return render.Scaled(TabBaseWidth, st.TabScale(tab))
}

// RenderTabBar renders the navigation bar. The selected tab is highlighted
// and widened by its scale.
func RenderTabBar(st playback.State) string {
	s := styles.T().S()

	parts := make([]string, 0, len(playback.Tabs))
	for _, tab := range playback.Tabs {
		style := s.Tab
		if st.IsTabSelected(tab) {
			style = s.TabSelected
		}
		w := TabWidth(st, tab)
		label := render.Center(render.Truncate(TabLabel(tab), w), w)
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}
