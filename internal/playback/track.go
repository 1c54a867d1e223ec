package playback

// Track is the metadata shown on the screen for the simulated track.
type Track struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Cover  []byte
}

// HasCover reports whether the track carries cover art.
func (t Track) HasCover() bool {
	return len(t.Cover) > 0
}
