package playback

// StateChange is delivered to subscriptions after every state change.
// Previous and Current are equal when the change did not move the phase
// (a progress tick, a tab selection, a display flag).
type StateChange struct {
	Previous Phase
	Current  Phase
	State    State
}

// PhaseChanged reports whether the change moved the playback phase.
func (e StateChange) PhaseChanged() bool {
	return e.Previous != e.Current
}
