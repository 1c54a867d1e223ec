package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/playback"
)

// Announcer posts a "Now playing" notification each time playback starts.
// Notifications are sent one at a time from a single goroutine, so each
// replaces the one before it.
type Announcer struct {
	notifier Notifier
	msg      Message
	log      *zap.Logger

	mu      sync.Mutex
	active  bool
	closed  bool
	pending chan struct{}
	done    chan struct{}
}

// NewAnnouncer creates an announcer for track. icon is an image path or
// icon name, and may be empty. Close must be called to stop it.
func NewAnnouncer(n Notifier, track playback.Track, icon string, log *zap.Logger) *Announcer {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Announcer{
		notifier: n,
		msg:      Message{Summary: "Now playing", Body: body(track), Icon: icon},
		log:      log,
		pending:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Watch registers the announcer on c and returns a function that
// unregisters it.
func (a *Announcer) Watch(c *playback.Controller) (remove func()) {
	a.mu.Lock()
	a.active = c.Phase().IsActive()
	a.mu.Unlock()

	return c.AddObserver(playback.ObserverFunc(func() {
		a.observe(c.Phase())
	}))
}

func (a *Announcer) observe(p playback.Phase) {
	a.mu.Lock()
	defer a.mu.Unlock()

	started := p.IsActive() && !a.active
	a.active = p.IsActive()
	if !started || a.closed {
		return
	}
	// Starts queued while one is being sent collapse into one more.
	select {
	case a.pending <- struct{}{}:
	default:
	}
}

func (a *Announcer) run() {
	defer close(a.done)
	for range a.pending {
		if err := a.notifier.Show(a.msg); err != nil {
			a.log.Debug("notification failed", zap.Error(err))
		}
	}
}

func body(track playback.Track) string {
	out := track.Title
	artist := track.Artist
	if track.Album != "" {
		if artist != "" {
			artist += " · "
		}
		artist += track.Album
	}
	if artist != "" {
		out += "\n" + artist
	}
	return out
}

// Close sends any queued announcement, stops the announcer and dismisses
// the last notification.
func (a *Announcer) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.pending)
	a.mu.Unlock()

	<-a.done
	return a.notifier.Dismiss()
}
