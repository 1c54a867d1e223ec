// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionSkipForward   Action = "skip_forward"
	ActionSkipBackward  Action = "skip_backward"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionToggleRepeat  Action = "toggle_repeat"

	// Navigation bar
	ActionSelectHome     Action = "select_home"
	ActionSelectMusic    Action = "select_music"
	ActionSelectFavorite Action = "select_favorite"
)

// Binding maps keys to an action, with a description for help output.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "navigation"
}

// Bindings is the default key map. Space is reported by bubbletea as " ".
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Help", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
	{ActionSkipForward, []string{"right", "l", "n"}, "Skip forward", "playback"},
	{ActionSkipBackward, []string{"left", "h", "b"}, "Skip backward", "playback"},
	{ActionToggleShuffle, []string{"s"}, "Toggle shuffle", "playback"},
	{ActionToggleRepeat, []string{"r"}, "Toggle repeat", "playback"},

	// Navigation bar
	{ActionSelectHome, []string{"1"}, "Home tab", "navigation"},
	{ActionSelectMusic, []string{"2"}, "Music tab", "navigation"},
	{ActionSelectFavorite, []string{"3"}, "Favorite tab", "navigation"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Default returns a resolver over Bindings.
func Default() *Resolver {
	return NewResolver(Bindings)
}
