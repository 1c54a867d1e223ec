//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/playback"
)

const busName = "nowplaying"

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	log    *zap.Logger
}

// New creates and starts a new MPRIS adapter.
func New(player Player, opts Options) (*Adapter, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	// Probe with a private connection; the server uses the shared one.
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	_ = conn.Close()

	a := &Adapter{log: log}
	a.server = server.NewServer(busName, &rootAdapter{}, newPlayerAdapter(player, opts))

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris server stopped", zap.Error(err))
		}
	}()

	log.Info("mpris server started", zap.String("bus_name", "org.mpris.MediaPlayer2."+busName))
	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // The TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Now Playing", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// loop status and shuffle extensions. Intents go through run, with their
// state checks inside the queued function.
type playerAdapter struct {
	player Player
	track  playback.Track
	artURL string
	run    func(func())
}

func newPlayerAdapter(player Player, opts Options) *playerAdapter {
	art := opts.CoverPath
	if art == "" && opts.Track.Path != "" {
		art = FindAlbumArt(opts.Track.Path)
	}
	p := &playerAdapter{player: player, track: opts.Track, run: opts.Run}
	if p.run == nil {
		p.run = func(f func()) { f() }
	}
	if art != "" {
		p.artURL = "file://" + art
	}
	return p
}

func (p *playerAdapter) Next() error {
	p.run(p.player.SkipForward)
	return nil
}

func (p *playerAdapter) Previous() error {
	p.run(p.player.SkipBackward)
	return nil
}

func (p *playerAdapter) Pause() error {
	p.run(func() {
		if p.player.State().IsPlaying() {
			p.player.TogglePlayback()
		}
	})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.run(p.player.TogglePlayback)
	return nil
}

func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	p.run(func() {
		if !p.player.State().IsPlaying() {
			p.player.TogglePlayback()
		}
	})
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Simulated progress cannot seek
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

// PlaybackStatus reports Paused for a stopped track that kept its progress.
func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	st := p.player.State()
	switch {
	case st.Phase().IsActive():
		return types.PlaybackStatusPlaying, nil
	case st.Progress() > 0:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	id := p.track.Path
	if id == "" {
		id = p.track.Artist + "/" + p.track.Title
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(id)),
		Length:  types.Microseconds(p.player.NominalDuration().Microseconds()),
		Title:   p.track.Title,
		Album:   p.track.Album,
		ArtUrl:  p.artURL,
	}
	if p.track.Artist != "" {
		meta.Artist = []string{p.track.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.player.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// The repeat flag covers the single track.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.player.State().Repeat() {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	want := status != types.LoopStatusNone
	p.run(func() {
		if p.player.State().Repeat() != want {
			p.player.ToggleRepeat()
		}
	})
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.player.State().Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.run(func() {
		if p.player.State().Shuffle() != shuffle {
			p.player.ToggleShuffle()
		}
	})
	return nil
}

func formatTrackID(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
