// internal/playback/controller.go
package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTickInterval is the delay between two progress ticks.
	DefaultTickInterval = time.Second
	// DefaultLoaderWindow is how long the loader stays visible after starting.
	DefaultLoaderWindow = time.Second
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Scheduler    Scheduler
	Logger       *zap.Logger
	TickInterval time.Duration
	LoaderWindow time.Duration
}

// Controller owns the playback state, drives the simulated progress tick
// and the loader window, and notifies observers of every change.
type Controller struct {
	mu sync.RWMutex

	state        State
	sched        Scheduler
	log          *zap.Logger
	tickInterval time.Duration
	loaderWindow time.Duration

	// session identifies the current playback run. Scheduled callbacks
	// capture it and do nothing once it has moved on.
	session uint64
	ticker  Timer
	loader  Timer

	observers observerList
	subs      []*Subscription
	closed    bool
}

// NewController creates a stopped controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		state:        NewState(),
		sched:        opts.Scheduler,
		log:          opts.Logger,
		tickInterval: opts.TickInterval,
		loaderWindow: opts.LoaderWindow,
	}
	if c.sched == nil {
		c.sched = RealTime
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.tickInterval <= 0 {
		c.tickInterval = DefaultTickInterval
	}
	if c.loaderWindow <= 0 {
		c.loaderWindow = DefaultLoaderWindow
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Phase returns the current playback phase.
func (c *Controller) Phase() Phase {
	return c.State().Phase()
}

// NominalDuration is the simulated track length: one tick per progress step.
func (c *Controller) NominalDuration() time.Duration {
	return c.tickInterval * stepsPerTrack
}

// Position is the simulated elapsed time for the current progress.
func (c *Controller) Position() time.Duration {
	st := c.State()
	return time.Duration(min(max(st.steps, 0), stepsPerTrack)) * c.tickInterval
}

// AddObserver registers o and returns a function that removes it.
func (c *Controller) AddObserver(o Observer) (remove func()) {
	id := c.observers.add(o)
	var once sync.Once
	return func() {
		once.Do(func() { c.observers.remove(id) })
	}
}

// Subscribe creates a channel-based subscription. Closing the controller
// closes every subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	sub := newSubscription(c.state.Phase())
	if c.closed {
		c.mu.Unlock()
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	remove := c.AddObserver(ObserverFunc(func() {
		sub.sendState(c.State())
	}))
	sub.mu.Lock()
	sub.detachFn = func() {
		remove()
		c.dropSubscription(sub)
	}
	sub.mu.Unlock()
	return sub
}

func (c *Controller) dropSubscription(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// TogglePlayback starts playback when stopped and stops it otherwise.
// Starting shows the loader for the loader window; stopping cancels the
// tick and any pending loader-clear.
func (c *Controller) TogglePlayback() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	prev := c.state.Phase()
	if c.state.togglePlaying() {
		c.session++
		session := c.session
		c.state.setLoader(true)
		c.scheduleTickLocked(session)
		c.loader = c.sched.AfterFunc(c.loaderWindow, func() {
			c.clearLoader(session)
		})
	} else {
		c.stopTimersLocked()
	}
	cur := c.state.Phase()
	c.mu.Unlock()

	c.log.Debug("playback toggled",
		zap.Stringer("from", prev),
		zap.Stringer("to", cur))
	c.notify()
}

// SelectTab highlights tab, or clears the highlight if tab is already
// selected. Tabs outside the navigation bar are ignored.
func (c *Controller) SelectTab(tab Tab) {
	if !tab.Valid() {
		c.log.Warn("ignoring unknown tab", zap.Int("tab", int(tab)))
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.toggleTab(tab)
	selected := c.state.selectedTab
	c.mu.Unlock()

	c.log.Debug("tab selection changed", zap.Stringer("selected", selected))
	c.notify()
}

// SkipForward is accepted from the transport controls. A single simulated
// track has nothing to skip to, so the state is left untouched.
func (c *Controller) SkipForward() {
	c.log.Debug("skip forward requested")
}

// SkipBackward is accepted from the transport controls and leaves the
// state untouched.
func (c *Controller) SkipBackward() {
	c.log.Debug("skip backward requested")
}

// ToggleShuffle flips the shuffle affordance.
func (c *Controller) ToggleShuffle() {
	c.toggleFlag("shuffle", (*State).toggleShuffle)
}

// ToggleRepeat flips the repeat affordance.
func (c *Controller) ToggleRepeat() {
	c.toggleFlag("repeat", (*State).toggleRepeat)
}

func (c *Controller) toggleFlag(name string, toggle func(*State) bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	on := toggle(&c.state)
	c.mu.Unlock()

	c.log.Debug("display flag toggled", zap.String("flag", name), zap.Bool("on", on))
	c.notify()
}

// Close stops all timers, invalidates pending callbacks and closes
// subscriptions. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.stopTimersLocked()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	c.observers.clear()
	for _, sub := range subs {
		sub.close()
	}
	return nil
}

// tick advances progress for the given session and re-arms itself until
// the track completes.
func (c *Controller) tick(session uint64) {
	c.mu.Lock()
	if c.closed || session != c.session || !c.state.playing {
		c.mu.Unlock()
		return
	}

	finished := c.state.advance()
	if finished {
		c.stopTimersLocked()
	} else {
		c.scheduleTickLocked(session)
	}
	c.mu.Unlock()

	if finished {
		c.log.Debug("track finished, playback stopped")
	}
	c.notify()
}

// clearLoader ends the loader window for the given session.
func (c *Controller) clearLoader(session uint64) {
	c.mu.Lock()
	if c.closed || session != c.session || !c.state.playing || !c.state.loader {
		c.mu.Unlock()
		return
	}
	c.state.setLoader(false)
	c.loader = nil
	c.mu.Unlock()

	c.log.Debug("loader window elapsed")
	c.notify()
}

func (c *Controller) scheduleTickLocked(session uint64) {
	c.ticker = c.sched.AfterFunc(c.tickInterval, func() {
		c.tick(session)
	})
}

// stopTimersLocked cancels the tick and the loader-clear, clears the
// loader and moves to a new session so callbacks already queued for
// delivery are ignored.
func (c *Controller) stopTimersLocked() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.loader != nil {
		c.loader.Stop()
		c.loader = nil
	}
	c.state.setLoader(false)
	c.session++
}

// notify calls every observer in registration order. It must be called
// without holding c.mu.
func (c *Controller) notify() {
	for _, o := range c.observers.snapshot() {
		o.StateChanged()
	}
}
