package mpris

import (
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/playback"
)

// Player is the playback surface exposed over MPRIS.
// *playback.Controller implements it.
type Player interface {
	State() playback.State
	TogglePlayback()
	SkipForward()
	SkipBackward()
	ToggleShuffle()
	ToggleRepeat()
	Position() time.Duration
	NominalDuration() time.Duration
}

var _ Player = (*playback.Controller)(nil)

// Options configures an Adapter.
type Options struct {
	Track playback.Track
	// CoverPath, when set, is advertised as the art URL instead of a
	// folder image next to the track.
	CoverPath string
	// Run executes player intents coming from D-Bus. nil calls them on
	// the D-Bus goroutine.
	Run    func(func())
	Logger *zap.Logger
}
