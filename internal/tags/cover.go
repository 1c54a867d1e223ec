package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// Common cover art filenames to look for in album folders.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// ReadCoverFile loads an explicit cover image.
func ReadCoverFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty file", filepath.Base(path))
	}
	return data, nil
}

// findFolderArt looks for common cover art files in the given directory.
// It returns nil data without error when none is found.
func findFolderArt(dir string) (data []byte, mimeType string, err error) {
	for _, filename := range coverArtFilenames {
		for _, name := range []string{filename, strings.ToUpper(filename)} {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			return data, mimeFor(filename), nil
		}
	}
	return nil, "", nil
}

func mimeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return mimeJPEG
	case ".png":
		return mimePNG
	default:
		return "application/octet-stream"
	}
}
