// Package tags reads the metadata and cover art shown for the track.
package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/llehouerou/nowplaying/internal/playback"
)

// ErrNoTags is returned when neither tag reader finds metadata.
var ErrNoTags = errors.New("no tags found")

// Read returns the track metadata and cover art for the audio file at path.
// dhowden/tag handles every container; MP3 files it rejects are retried
// with the ID3v2 reader. Cover art falls back to images in the folder.
func Read(path string) (playback.Track, error) {
	t, err := readGeneric(path)
	if err != nil && isMP3(path) {
		t, err = readMP3(path)
	}
	if err != nil {
		return playback.Track{}, err
	}

	if !t.HasCover() {
		data, _, ferr := findFolderArt(filepath.Dir(path))
		if ferr == nil {
			t.Cover = data
		}
	}
	return t, nil
}

func readGeneric(path string) (playback.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return playback.Track{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return playback.Track{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoTags)
		}
		return playback.Track{}, fmt.Errorf("read tags: %w", err)
	}

	t := playback.Track{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}
	if t.Artist == "" {
		t.Artist = m.AlbumArtist()
	}
	if pic := m.Picture(); pic != nil {
		t.Cover = pic.Data
	}
	return t, nil
}

func isMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}
