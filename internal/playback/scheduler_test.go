package playback

import (
	"testing"
	"testing/synctest"
	"time"
)

// fakeScheduler is a virtual clock. Callbacks run synchronously from
// Advance, ordered by due time and then by scheduling order.
type fakeScheduler struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer

	// leaky makes Stop ineffective, like a callback already queued on an
	// event loop when the timer is stopped.
	leaky bool
}

type fakeTimer struct {
	sched   *fakeScheduler
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &fakeTimer{sched: s, due: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that falls due.
func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		s.now = t.due
		t.fired = true
		t.f()
	}
	s.now = end
}

func (s *fakeScheduler) next(end time.Duration) *fakeTimer {
	var best *fakeTimer
	for _, t := range s.timers {
		if t.fired || (t.stopped && !s.leaky) || t.due > end {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// live returns the number of timers that are neither fired nor stopped.
func (s *fakeScheduler) live() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func TestRealTime_AfterFunc_FiresAfterDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		fired := make(chan time.Duration, 1)
		start := time.Now()

		RealTime.AfterFunc(2*time.Second, func() {
			fired <- time.Since(start)
		})

		elapsed := <-fired
		if elapsed != 2*time.Second {
			t.Errorf("callback fired after %v, want 2s", elapsed)
		}
	})
}

func TestRealTime_Stop_PreventsCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		called := false
		timer := RealTime.AfterFunc(time.Second, func() { called = true })

		if !timer.Stop() {
			t.Error("Stop() = false for pending timer")
		}
		time.Sleep(2 * time.Second)
		synctest.Wait()

		if called {
			t.Error("callback ran after Stop()")
		}
	})
}
