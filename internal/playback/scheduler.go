package playback

import "time"

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations decide on which
// goroutine the callback runs; the TUI dispatches them onto its event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealTime schedules callbacks with time.AfterFunc.
var RealTime Scheduler = realScheduler{}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
