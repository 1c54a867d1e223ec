package app

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/nowplaying/internal/playback"
)

// Dispatcher is a playback.Scheduler that delivers expired callbacks to
// the program as CallbackMsg, so they run on the event loop like any
// other input. Until a program is attached, callbacks run on the timer
// goroutine.
type Dispatcher struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

var _ playback.Scheduler = (*Dispatcher)(nil)

// NewDispatcher creates a detached dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach routes subsequent callbacks through p.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.AttachFunc(p.Send)
}

// AttachFunc routes subsequent callbacks through send.
func (d *Dispatcher) AttachFunc(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	d.mu.Unlock()
}

// Detach makes callbacks run on the timer goroutine again.
func (d *Dispatcher) Detach() {
	d.AttachFunc(nil)
}

// Do runs f on the event loop, or right away when detached. It lets
// callers on other goroutines, such as D-Bus handlers, drive the
// controller the way key presses do.
func (d *Dispatcher) Do(f func()) {
	d.mu.RLock()
	send := d.send
	d.mu.RUnlock()

	if send == nil {
		f()
		return
	}
	send(CallbackMsg{run: f})
}

// AfterFunc schedules f after delay.
func (d *Dispatcher) AfterFunc(delay time.Duration, f func()) playback.Timer {
	t := &dispatchTimer{}
	t.timer = time.AfterFunc(delay, func() {
		d.dispatch(t, f)
	})
	return t
}

func (d *Dispatcher) dispatch(t *dispatchTimer, f func()) {
	d.mu.RLock()
	send := d.send
	d.mu.RUnlock()

	run := func() {
		if !t.stopped.Load() {
			f()
		}
	}
	if send == nil {
		run()
		return
	}
	send(CallbackMsg{run: run})
}

// dispatchTimer can still be stopped after its timer fired but before the
// event loop ran the callback.
type dispatchTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *dispatchTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.timer.Stop()
}
