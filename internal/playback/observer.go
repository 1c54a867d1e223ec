package playback

import "sync"

// Observer is notified after every state change. It re-reads the current
// state from the controller; no diff is passed.
type Observer interface {
	StateChanged()
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func()

// StateChanged calls f.
func (f ObserverFunc) StateChanged() { f() }

type observerEntry struct {
	id uint64
	o  Observer
}

// observerList is an ordered set of observers with removal by id.
type observerList struct {
	mu      sync.RWMutex
	nextID  uint64
	entries []observerEntry
}

func (l *observerList) add(o Observer) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.entries = append(l.entries, observerEntry{id: l.nextID, o: o})
	return l.nextID
}

func (l *observerList) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *observerList) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func (l *observerList) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// snapshot returns the observers in registration order.
func (l *observerList) snapshot() []Observer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Observer, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.o
	}
	return out
}
