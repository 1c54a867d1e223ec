// internal/playback/controller_test.go
package playback

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*Controller, *fakeScheduler, *int) {
	t.Helper()
	sched := &fakeScheduler{}
	c := NewController(Options{Scheduler: sched})
	t.Cleanup(func() { _ = c.Close() })

	notifications := new(int)
	c.AddObserver(ObserverFunc(func() { *notifications++ }))
	return c, sched, notifications
}

func TestNewController_StartsStopped(t *testing.T) {
	c, sched, _ := newTestController(t)

	st := c.State()
	assert.False(t, st.IsPlaying())
	assert.False(t, st.IsShowingLoader())
	assert.Equal(t, 0.0, st.Progress())
	assert.Equal(t, TabNone, st.SelectedTab())
	assert.Equal(t, PhaseStopped, c.Phase())
	assert.Equal(t, 0, sched.live())
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController(Options{})
	defer c.Close()

	assert.Equal(t, DefaultTickInterval, c.tickInterval)
	assert.Equal(t, DefaultLoaderWindow, c.loaderWindow)
	assert.Equal(t, 100*time.Second, c.NominalDuration())
	assert.NotNil(t, c.log)
	assert.Equal(t, RealTime, c.sched)
}

func TestController_TogglePlayback_StartsLoading(t *testing.T) {
	c, sched, notifications := newTestController(t)

	c.TogglePlayback()

	st := c.State()
	assert.True(t, st.IsPlaying())
	assert.True(t, st.IsShowingLoader())
	assert.Equal(t, PhaseLoading, st.Phase())
	assert.Equal(t, CoverCollapsed, st.CoverTargetSize())
	assert.Equal(t, 1, *notifications, "one notification on start")
	assert.Equal(t, 2, sched.live(), "tick and loader-clear pending")
}

func TestController_LoaderClearsAfterWindow(t *testing.T) {
	c, sched, notifications := newTestController(t)
	c.TogglePlayback()

	sched.Advance(999 * time.Millisecond)
	require.True(t, c.State().IsShowingLoader(), "loader cleared early")

	sched.Advance(time.Millisecond)
	st := c.State()
	assert.False(t, st.IsShowingLoader())
	assert.True(t, st.IsPlaying())
	assert.Equal(t, PhasePlaying, st.Phase())
	assert.Equal(t, CoverExpanded, st.CoverTargetSize())
	// start + first tick + loader-clear
	assert.Equal(t, 3, *notifications)
}

func TestController_EvenTogglesReturnToStopped(t *testing.T) {
	for _, n := range []int{0, 2, 4, 10} {
		c, sched, _ := newTestController(t)
		for range n {
			c.TogglePlayback()
			sched.Advance(300 * time.Millisecond)
		}
		assert.False(t, c.State().IsPlaying(), "after %d toggles", n)
		assert.False(t, c.State().IsShowingLoader(), "after %d toggles", n)
	}
}

func TestController_HundredTicksAutoStop(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.TogglePlayback()

	for i := 1; i < 100; i++ {
		sched.Advance(time.Second)
		p := c.State().Progress()
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 1.0)
		require.True(t, c.State().IsPlaying(), "stopped early at tick %d", i)
	}
	assert.InDelta(t, 0.99, c.State().Progress(), 1e-9)

	sched.Advance(time.Second)

	st := c.State()
	assert.False(t, st.IsPlaying())
	assert.False(t, st.IsShowingLoader())
	assert.Equal(t, 0.0, st.Progress())
	assert.Equal(t, PhaseStopped, st.Phase())
	assert.Equal(t, 0, sched.live(), "no timers left after auto-stop")
}

func TestController_TickNotifiesOncePerTick(t *testing.T) {
	c, sched, notifications := newTestController(t)
	c.TogglePlayback()
	sched.Advance(time.Second) // first tick + loader-clear
	*notifications = 0

	sched.Advance(5 * time.Second)

	assert.Equal(t, 5, *notifications)
	assert.InDelta(t, 0.06, c.State().Progress(), 1e-9)
}

func TestController_AutoStopNotifiesOnce(t *testing.T) {
	c, sched, notifications := newTestController(t)
	c.TogglePlayback()
	sched.Advance(99 * time.Second)
	*notifications = 0

	sched.Advance(time.Second)

	assert.Equal(t, 1, *notifications)
}

func TestController_ManualStopClearsLoaderImmediately(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.TogglePlayback()
	sched.Advance(400 * time.Millisecond)

	c.TogglePlayback()

	st := c.State()
	assert.False(t, st.IsPlaying())
	assert.False(t, st.IsShowingLoader())
	assert.Equal(t, 0, sched.live(), "stop cancels tick and loader-clear")
}

func TestController_ManualStopKeepsProgress(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.TogglePlayback()
	sched.Advance(10 * time.Second)

	c.TogglePlayback()
	sched.Advance(10 * time.Second)

	assert.InDelta(t, 0.10, c.State().Progress(), 1e-9)
}

func TestController_StopThenLoaderCallbackHasNoEffect(t *testing.T) {
	c, sched, _ := newTestController(t)

	c.TogglePlayback()
	sched.Advance(300 * time.Millisecond)
	assert.True(t, c.State().IsShowingLoader())

	c.TogglePlayback()
	sched.Advance(5 * time.Second)

	st := c.State()
	assert.False(t, st.IsPlaying())
	assert.False(t, st.IsShowingLoader())
	assert.Equal(t, 0.0, st.Progress())
	assert.Equal(t, 0, sched.live())
}

func TestController_StopBeforeLoaderClear_ThenRestart(t *testing.T) {
	c, sched, _ := newTestController(t)

	c.TogglePlayback()
	sched.Advance(300 * time.Millisecond)
	c.TogglePlayback()
	c.TogglePlayback()

	// The first session's loader-clear would have been due at 1s.
	sched.Advance(800 * time.Millisecond)
	assert.True(t, c.State().IsShowingLoader())
	assert.Equal(t, 0.0, c.State().Progress())

	sched.Advance(200 * time.Millisecond)
	st := c.State()
	assert.True(t, st.IsPlaying())
	assert.False(t, st.IsShowingLoader())
	assert.InDelta(t, 0.01, st.Progress(), 1e-9)
}

func TestController_StaleCallbacksAreIgnored(t *testing.T) {
	c, sched, _ := newTestController(t)
	sched.leaky = true

	c.TogglePlayback() // session A: loader-clear and tick due at 1s
	sched.Advance(500 * time.Millisecond)
	c.TogglePlayback() // stop
	c.TogglePlayback() // session B: loader-clear and tick due at 1.5s

	sched.Advance(500 * time.Millisecond) // session A callbacks fire anyway
	st := c.State()
	assert.True(t, st.IsShowingLoader(), "stale loader-clear cleared the new loader")
	assert.Equal(t, 0.0, st.Progress(), "stale tick advanced progress")

	sched.Advance(500 * time.Millisecond)
	st = c.State()
	assert.False(t, st.IsShowingLoader())
	assert.InDelta(t, 0.01, st.Progress(), 1e-9)
}

func TestController_SelectTab_TogglesSelection(t *testing.T) {
	c, _, notifications := newTestController(t)

	c.SelectTab(TabHome)
	assert.Equal(t, TabHome, c.State().SelectedTab())

	c.SelectTab(TabHome)
	assert.Equal(t, TabNone, c.State().SelectedTab())

	c.SelectTab(TabHome)
	c.SelectTab(TabMusic)
	assert.Equal(t, TabMusic, c.State().SelectedTab())
	assert.Equal(t, 4, *notifications)
}

func TestController_SelectTab_Scales(t *testing.T) {
	c, _, _ := newTestController(t)

	c.SelectTab(TabHome)
	assert.Equal(t, 1.2, c.State().TabScale(TabHome))
	assert.Equal(t, 1.0, c.State().TabScale(TabMusic))

	c.SelectTab(TabHome)
	assert.Equal(t, 1.0, c.State().TabScale(TabHome))
}

func TestController_SelectTab_IgnoresUnknownTab(t *testing.T) {
	c, _, notifications := newTestController(t)

	c.SelectTab(Tab(5))
	c.SelectTab(TabNone)

	assert.Equal(t, TabNone, c.State().SelectedTab())
	assert.Equal(t, 0, *notifications)
}

func TestController_SkipIntents_LeaveStateUntouched(t *testing.T) {
	c, sched, notifications := newTestController(t)
	c.TogglePlayback()
	sched.Advance(3 * time.Second)
	before := c.State()
	*notifications = 0

	c.SkipForward()
	c.SkipBackward()

	assert.Equal(t, before, c.State())
	assert.Equal(t, 0, *notifications)
}

func TestController_ShuffleAndRepeat_ToggleFlags(t *testing.T) {
	c, _, notifications := newTestController(t)

	c.ToggleShuffle()
	c.ToggleRepeat()
	assert.True(t, c.State().Shuffle())
	assert.True(t, c.State().Repeat())
	assert.Equal(t, PhaseStopped, c.Phase(), "flags do not start playback")

	c.ToggleShuffle()
	assert.False(t, c.State().Shuffle())
	assert.Equal(t, 3, *notifications)
}

func TestController_ObserverSeesMutatedState(t *testing.T) {
	c, sched, _ := newTestController(t)

	var seen []Phase
	c.AddObserver(ObserverFunc(func() {
		seen = append(seen, c.Phase())
	}))

	c.TogglePlayback()
	sched.Advance(time.Second)
	c.TogglePlayback()

	// Loading (start), Loading (first tick), Playing (loader-clear), Stopped.
	assert.Equal(t, []Phase{PhaseLoading, PhaseLoading, PhasePlaying, PhaseStopped}, seen)
}

func TestController_ObserverMayCallBack(t *testing.T) {
	c, _, _ := newTestController(t)

	var remove func()
	remove = c.AddObserver(ObserverFunc(func() {
		remove()
		c.SelectTab(TabFavorite)
	}))

	c.TogglePlayback()

	assert.Equal(t, TabFavorite, c.State().SelectedTab())
}

func TestController_RemoveObserver(t *testing.T) {
	c, _, _ := newTestController(t)
	calls := 0
	remove := c.AddObserver(ObserverFunc(func() { calls++ }))

	c.SelectTab(TabHome)
	remove()
	remove()
	c.SelectTab(TabHome)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.observers.len(), "only the test counter remains")
}

func TestController_Position(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.TogglePlayback()

	sched.Advance(30 * time.Second)

	assert.Equal(t, 30*time.Second, c.Position())
}

func TestController_Close_InvalidatesPendingCallbacks(t *testing.T) {
	c, sched, notifications := newTestController(t)
	sched.leaky = true
	c.TogglePlayback()
	*notifications = 0

	require.NoError(t, c.Close())
	sched.Advance(5 * time.Second)

	assert.Equal(t, 0, *notifications)
	assert.Equal(t, 0.0, c.State().Progress())
	assert.Equal(t, 0, c.observers.len())
}

func TestController_Close_Idempotent(t *testing.T) {
	c, _, _ := newTestController(t)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestController_Close_IgnoresLaterIntents(t *testing.T) {
	c, sched, _ := newTestController(t)
	_ = c.Close()

	c.TogglePlayback()
	c.SelectTab(TabHome)
	c.ToggleShuffle()

	st := c.State()
	assert.False(t, st.IsPlaying())
	assert.Equal(t, TabNone, st.SelectedTab())
	assert.False(t, st.Shuffle())
	assert.Equal(t, 0, sched.live())
}

func TestController_Subscribe_ReceivesChanges(t *testing.T) {
	c, sched, _ := newTestController(t)
	sub := c.Subscribe()

	c.TogglePlayback()
	sched.Advance(time.Second)

	e := <-sub.StateChanged
	assert.Equal(t, PhaseStopped, e.Previous)
	assert.Equal(t, PhaseLoading, e.Current)
	assert.True(t, e.PhaseChanged())

	e = <-sub.StateChanged // first tick
	assert.False(t, e.PhaseChanged())
	assert.InDelta(t, 0.01, e.State.Progress(), 1e-9)

	e = <-sub.StateChanged // loader-clear
	assert.Equal(t, PhaseLoading, e.Previous)
	assert.Equal(t, PhasePlaying, e.Current)
}

func TestController_Subscribe_CloseDetaches(t *testing.T) {
	c, _, _ := newTestController(t)
	sub := c.Subscribe()

	sub.Close()
	c.SelectTab(TabHome)

	select {
	case e := <-sub.StateChanged:
		t.Errorf("unexpected event after Close: %+v", e)
	default:
	}
	<-sub.Done
	assert.Empty(t, c.subs)
}

func TestController_Close_SignalsSubscribers(t *testing.T) {
	c, _, _ := newTestController(t)
	sub := c.Subscribe()

	_ = c.Close()

	select {
	case <-sub.Done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for Done")
	}
}

func TestController_Subscribe_AfterClose(t *testing.T) {
	c, _, _ := newTestController(t)
	_ = c.Close()

	sub := c.Subscribe()

	<-sub.Done
}

func TestController_RealTime_Scenario(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := NewController(Options{})
		defer c.Close()

		c.TogglePlayback()
		assert.Equal(t, PhaseLoading, c.Phase())

		time.Sleep(999 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, PhaseLoading, c.Phase())

		time.Sleep(time.Millisecond)
		synctest.Wait()
		assert.Equal(t, PhasePlaying, c.Phase())

		time.Sleep(20 * time.Second)
		synctest.Wait()
		assert.InDelta(t, 0.21, c.State().Progress(), 1e-9)

		c.TogglePlayback()
		assert.Equal(t, PhaseStopped, c.Phase())

		time.Sleep(5 * time.Second)
		synctest.Wait()
		assert.InDelta(t, 0.21, c.State().Progress(), 1e-9)
	})
}

func TestController_RealTime_AutoStop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := NewController(Options{
			TickInterval: 10 * time.Millisecond,
			LoaderWindow: 50 * time.Millisecond,
		})
		defer c.Close()

		c.TogglePlayback()
		time.Sleep(500 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, PhasePlaying, c.Phase())
		assert.InDelta(t, 0.5, c.State().Progress(), 1e-9)

		time.Sleep(500 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, PhaseStopped, c.Phase())
		assert.Equal(t, 0.0, c.State().Progress())
	})
}
