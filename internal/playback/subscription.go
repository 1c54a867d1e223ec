package playback

import "sync"

const eventBufferSize = 16

// Subscription delivers state changes over a buffered channel for
// consumers running on another goroutine.
type Subscription struct {
	StateChanged <-chan StateChange
	Done         <-chan struct{}

	// Internal write channels
	stateCh chan StateChange
	doneCh  chan struct{}

	mu       sync.Mutex
	last     Phase
	closed   bool
	detachFn func()
}

// newSubscription creates a subscription that treats initial as the
// previously seen phase.
func newSubscription(initial Phase) *Subscription {
	s := &Subscription{
		stateCh: make(chan StateChange, eventBufferSize),
		doneCh:  make(chan struct{}),
		last:    initial,
	}
	s.StateChanged = s.stateCh
	s.Done = s.doneCh
	return s
}

// Close detaches the subscription from its controller and signals Done.
func (s *Subscription) Close() {
	s.mu.Lock()
	detach := s.detachFn
	s.detachFn = nil
	s.mu.Unlock()

	if detach != nil {
		detach()
	}
	s.close()
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	e := StateChange{Previous: s.last, Current: st.Phase(), State: st}
	s.last = e.Current

	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}
