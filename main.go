package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/app"
	"github.com/llehouerou/nowplaying/internal/config"
	"github.com/llehouerou/nowplaying/internal/errmsg"
	"github.com/llehouerou/nowplaying/internal/icons"
	"github.com/llehouerou/nowplaying/internal/keymap"
	"github.com/llehouerou/nowplaying/internal/logging"
	"github.com/llehouerou/nowplaying/internal/mpris"
	"github.com/llehouerou/nowplaying/internal/notify"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/tags"
	"github.com/llehouerou/nowplaying/internal/ui/cover"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	icons.Init(cfg.Icons)

	log, closeLog, err := logging.New(cfg.GetLogConfig())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	defer closeLog()

	track, startupErr := loadTrack(cfg, log)

	dispatcher := app.NewDispatcher()
	pb := cfg.GetPlaybackConfig()
	controller := playback.NewController(playback.Options{
		Scheduler:    dispatcher,
		Logger:       log.Named("playback"),
		TickInterval: pb.TickInterval(),
		LoaderWindow: pb.LoaderWindow(),
	})
	defer controller.Close()

	coverPath := cfg.CoverPath
	if coverPath == "" && track.Path != "" {
		coverPath = mpris.FindAlbumArt(track.Path)
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(controller, mpris.Options{
			Track:     track,
			CoverPath: coverPath,
			Run:       dispatcher.Do,
			Logger:    log.Named("mpris"),
		})
		if err != nil {
			log.Warn("MPRIS unavailable", zap.String("error", errmsg.Format(errmsg.OpMprisStart, err)))
		} else {
			defer adapter.Close()
		}
	}

	if cfg.Notifications {
		notifier, err := notify.New()
		if err != nil {
			log.Warn("notifications unavailable", zap.Error(err))
		} else {
			announcer := notify.NewAnnouncer(notifier, track, coverPath, log.Named("notify"))
			defer announcer.Close()
			defer announcer.Watch(controller)()
		}
	}

	coverRenderer := cover.New(track.Cover, cover.Options{
		Mode:   cfg.CoverArt,
		Logger: log.Named("cover"),
	})

	m := app.New(app.Options{
		Playback: controller,
		Track:    track,
		Keys:     keymap.Default(),
		Cover:    coverRenderer,
		Logger:   log.Named("app"),
		Error:    startupErr,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	dispatcher.Attach(p)
	defer dispatcher.Detach()

	log.Info("starting",
		zap.String("title", track.Title),
		zap.Bool("kitty", coverRenderer.UsesKitty()))

	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	// Free uploaded cover images once the alt screen is gone
	fmt.Print(coverRenderer.Clear())
	return nil
}

// loadTrack builds the displayed track from the configured file, falling
// back to the configured title and artist. The returned message is shown
// on screen when something could not be read.
func loadTrack(cfg *config.Config, log *zap.Logger) (playback.Track, string) {
	track := playback.Track{Title: cfg.Title, Artist: cfg.Artist}
	var startupErr string

	if cfg.HasTrackFile() {
		read, err := tags.Read(cfg.TrackPath)
		if err != nil {
			log.Warn("reading track", zap.String("path", cfg.TrackPath), zap.Error(err))
			startupErr = errmsg.FormatWith(errmsg.OpTrackLoad, cfg.TrackPath, err)
		} else {
			if read.Title == "" {
				read.Title = cfg.Title
			}
			if read.Artist == "" {
				read.Artist = cfg.Artist
			}
			track = read
		}
		track.Path = cfg.TrackPath
	}

	if cfg.CoverPath != "" {
		data, err := tags.ReadCoverFile(cfg.CoverPath)
		if err != nil {
			log.Warn("reading cover", zap.String("path", cfg.CoverPath), zap.Error(err))
			startupErr = errmsg.FormatWith(errmsg.OpCoverLoad, cfg.CoverPath, err)
		} else {
			track.Cover = data
		}
	}

	return track, startupErr
}
