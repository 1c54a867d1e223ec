//go:build linux

package mpris

import (
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/nowplaying/internal/playback"
)

func newTestAdapter(t *testing.T, track playback.Track, coverPath string) (*playerAdapter, *playback.Controller) {
	t.Helper()
	// Long intervals keep timers from firing during the test.
	c := playback.NewController(playback.Options{
		TickInterval: time.Hour,
		LoaderWindow: time.Hour,
	})
	t.Cleanup(func() { _ = c.Close() })
	return newPlayerAdapter(c, Options{Track: track, CoverPath: coverPath}), c
}

func TestPlayerAdapter_PlayPauseStop(t *testing.T) {
	p, c := newTestAdapter(t, playback.Track{}, "")

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, status)

	require.NoError(t, p.Play())
	assert.Equal(t, playback.PhaseLoading, c.Phase())
	require.NoError(t, p.Play())
	assert.Equal(t, playback.PhaseLoading, c.Phase(), "Play while playing is a no-op")

	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	require.NoError(t, p.Pause())
	assert.Equal(t, playback.PhaseStopped, c.Phase())
	require.NoError(t, p.Stop())
	assert.Equal(t, playback.PhaseStopped, c.Phase(), "Stop while stopped is a no-op")

	require.NoError(t, p.PlayPause())
	assert.True(t, c.State().IsPlaying())
	require.NoError(t, p.PlayPause())
	assert.False(t, c.State().IsPlaying())
}

func TestPlayerAdapter_SkipIsNoOp(t *testing.T) {
	p, c := newTestAdapter(t, playback.Track{}, "")
	before := c.State()

	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())

	assert.Equal(t, before, c.State())
}

func TestPlayerAdapter_LoopStatus(t *testing.T) {
	p, c := newTestAdapter(t, playback.Track{}, "")

	status, _ := p.LoopStatus()
	assert.Equal(t, types.LoopStatusNone, status)

	require.NoError(t, p.SetLoopStatus(types.LoopStatusPlaylist))
	assert.True(t, c.State().Repeat())
	status, _ = p.LoopStatus()
	assert.Equal(t, types.LoopStatusTrack, status)

	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	assert.True(t, c.State().Repeat(), "already repeating")

	require.NoError(t, p.SetLoopStatus(types.LoopStatusNone))
	assert.False(t, c.State().Repeat())
}

func TestPlayerAdapter_Shuffle(t *testing.T) {
	p, c := newTestAdapter(t, playback.Track{}, "")

	require.NoError(t, p.SetShuffle(true))
	require.NoError(t, p.SetShuffle(true))
	assert.True(t, c.State().Shuffle())

	on, err := p.Shuffle()
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, p.SetShuffle(false))
	assert.False(t, c.State().Shuffle())
}

func TestPlayerAdapter_IntentsGoThroughRun(t *testing.T) {
	c := playback.NewController(playback.Options{TickInterval: time.Hour, LoaderWindow: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	var queued []func()
	p := newPlayerAdapter(c, Options{Run: func(f func()) { queued = append(queued, f) }})

	require.NoError(t, p.Play())
	require.NoError(t, p.Play())
	require.NoError(t, p.SetShuffle(true))
	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	require.NoError(t, p.Next())
	require.Len(t, queued, 5)
	assert.Equal(t, playback.NewState(), c.State(), "nothing runs on the caller")

	for _, f := range queued {
		f()
	}
	st := c.State()
	assert.True(t, st.IsPlaying(), "second Play sees the first one applied")
	assert.True(t, st.Shuffle())
	assert.True(t, st.Repeat())
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	track := playback.Track{
		Path:   "/music/so-long-london.mp3",
		Title:  "So Long, London",
		Artist: "Taylor Swift",
		Album:  "The Tortured Poets Department",
	}
	p, _ := newTestAdapter(t, track, "/art/cover.png")

	meta, err := p.Metadata()
	require.NoError(t, err)

	assert.Equal(t, "So Long, London", meta.Title)
	assert.Equal(t, []string{"Taylor Swift"}, meta.Artist)
	assert.Equal(t, "The Tortured Poets Department", meta.Album)
	assert.Equal(t, "file:///art/cover.png", meta.ArtUrl)
	assert.Equal(t, types.Microseconds((100 * time.Hour).Microseconds()), meta.Length)
	assert.True(t, strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/"))
}

func TestPlayerAdapter_Metadata_NoPath(t *testing.T) {
	p, _ := newTestAdapter(t, playback.Track{Title: "T", Artist: "A"}, "")

	meta, err := p.Metadata()
	require.NoError(t, err)

	assert.Equal(t, formatTrackID("A/T"), string(meta.TrackId))
	assert.Empty(t, meta.ArtUrl)
}

func TestPlayerAdapter_Position(t *testing.T) {
	p, _ := newTestAdapter(t, playback.Track{}, "")

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestFormatTrackID_Stable(t *testing.T) {
	assert.Equal(t, formatTrackID("/a.mp3"), formatTrackID("/a.mp3"))
	assert.NotEqual(t, formatTrackID("/a.mp3"), formatTrackID("/b.mp3"))
}
