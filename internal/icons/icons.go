package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play     string
	Pause    string
	Next     string
	Previous string
	Shuffle  string
	Repeat   string
	Home     string
	Music    string
	Favorite string
}

var (
	nerdIcons = Icons{
		Play:     "\U000F040A", // nf-md-play
		Pause:    "\U000F03E4", // nf-md-pause
		Next:     "\U000F04AD", // nf-md-skip_next
		Previous: "\U000F04AE", // nf-md-skip_previous
		Shuffle:  "\U000F049F", // nf-md-shuffle
		Repeat:   "\U000F0456", // nf-md-repeat
		Home:     "\U000F02DC", // nf-md-home
		Music:    "\U000F075A", // nf-md-music
		Favorite: "\U000F08D0", // nf-md-heart
	}

	unicodeIcons = Icons{
		Play:     "▶",
		Pause:    "⏸",
		Next:     "⏭",
		Previous: "⏮",
		Shuffle:  "🔀",
		Repeat:   "🔁",
		Home:     "⌂",
		Music:    "♫",
		Favorite: "♥",
	}

	noneIcons = Icons{
		Play:     ">",
		Pause:    "||",
		Next:     ">>",
		Previous: "<<",
		Shuffle:  "[S]",
		Repeat:   "[R]",
		Home:     "",
		Music:    "",
		Favorite: "*",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// PlayPause returns the icon for the play/pause button: pause while
// playing, play otherwise.
func PlayPause(playing bool) string {
	if playing {
		return current.Pause
	}
	return current.Play
}

// Next returns the skip forward icon.
func Next() string {
	return current.Next
}

// Previous returns the skip backward icon.
func Previous() string {
	return current.Previous
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}

// Repeat returns the repeat icon.
func Repeat() string {
	return current.Repeat
}

// Favorite returns the favorite/heart icon.
func Favorite() string {
	return current.Favorite
}

// FormatTab formats a tab label with its icon. For the "none" style the
// label is returned unchanged, except for the favorite marker.
func FormatTab(icon, label string) string {
	if icon == "" {
		return label
	}
	return icon + " " + label
}

// Home returns the home tab icon.
func Home() string {
	return current.Home
}

// Music returns the music tab icon.
func Music() string {
	return current.Music
}
