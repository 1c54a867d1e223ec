package tags

import (
	"fmt"
	"path/filepath"

	"github.com/bogem/id3v2/v2"

	"github.com/llehouerou/nowplaying/internal/playback"
)

// readMP3 reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readMP3(path string) (playback.Track, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return playback.Track{}, fmt.Errorf("read id3v2: %w", err)
	}
	defer id3tag.Close()

	if id3tag.Count() == 0 {
		return playback.Track{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoTags)
	}

	artist := id3tag.Artist()
	if artist == "" {
		artist = getID3TextFrame(id3tag, "TPE2") // Album artist frame
	}

	return playback.Track{
		Path:   path,
		Title:  id3tag.Title(),
		Artist: artist,
		Album:  id3tag.Album(),
		Cover:  frontCover(id3tag),
	}, nil
}

// frontCover returns the front cover picture, or the first picture when no
// frame is marked as front cover.
func frontCover(id3tag *id3v2.Tag) []byte {
	var first []byte
	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic.Picture
		}
		if first == nil {
			first = pic.Picture
		}
	}
	return first
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
