package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/config"
	"github.com/llehouerou/nowplaying/internal/keymap"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/ui/cover"
	"github.com/llehouerou/nowplaying/internal/ui/help"
	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

// Options configures a Model.
type Options struct {
	Playback *playback.Controller
	Track    playback.Track
	Keys     *keymap.Resolver // nil uses keymap.Default()
	Cover    *cover.Renderer  // nil draws the placeholder only
	Logger   *zap.Logger

	// Error is shown on screen from the start, for problems found
	// before the program ran (unreadable track file, bad cover).
	Error string
}

type Model struct {
	Playback *playback.Controller
	Track    playback.Track
	Keys     *keymap.Resolver
	Cover    *cover.Renderer
	Spinner  spinner.Model
	ErrorMsg string
	Width    int
	Height   int

	help     help.Model
	showHelp bool

	sub           *playback.Subscription
	log           *zap.Logger
	coverTransmit string // pending Kitty uploads, repeated by View until flushed
	coverGen      int
	quitting      bool
}

// coverFlushDelay outlasts a few renderer frames. bubbletea only writes
// the latest view of each frame, so an upload must stay in the view
// until at least one frame has gone out.
const coverFlushDelay = 200 * time.Millisecond

// New creates the model and subscribes it to the controller.
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.T().S().Loader

	m := Model{
		Playback: opts.Playback,
		Track:    opts.Track,
		Keys:     opts.Keys,
		Cover:    opts.Cover,
		Spinner:  s,
		ErrorMsg: opts.Error,
		help:     help.New(keymap.Bindings),
		sub:      opts.Playback.Subscribe(),
		log:      opts.Logger,
	}
	if m.Keys == nil {
		m.Keys = keymap.Default()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.Cover == nil {
		m.Cover = cover.New(nil, cover.Options{Mode: config.CoverArtNone, Logger: m.log})
	}
	m.queueCover()
	return m
}

// Init starts watching the controller.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.WatchServiceEvents()}
	if m.Playback.State().IsShowingLoader() {
		cmds = append(cmds, m.Spinner.Tick)
	}
	if m.coverTransmit != "" {
		cmds = append(cmds, m.flushCoverCmd())
	}
	return tea.Batch(cmds...)
}
