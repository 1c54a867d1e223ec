// Command trackinfo prints what nowplaying would show for an audio file:
// its tags, the cover art found for it and the folder art advertised over
// MPRIS.
package main

import (
	"bytes"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	_ "image/png"  // PNG decoder for cover art
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/nowplaying/internal/mpris"
	"github.com/llehouerou/nowplaying/internal/tags"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <audio file>...", os.Args[0])
	}

	failed := false
	for _, path := range os.Args[1:] {
		track, err := tags.Read(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
			continue
		}

		log.Printf("%s", path)
		log.Printf("  title:  %s", track.Title)
		log.Printf("  artist: %s", track.Artist)
		log.Printf("  album:  %s", track.Album)

		if track.HasCover() {
			cfg, format, err := image.DecodeConfig(bytes.NewReader(track.Cover))
			if err != nil {
				log.Printf("  cover:  %s, not decodable: %v", humanize.Bytes(uint64(len(track.Cover))), err)
			} else {
				log.Printf("  cover:  %s %dx%d, %s", format, cfg.Width, cfg.Height, humanize.Bytes(uint64(len(track.Cover))))
			}
		} else {
			log.Printf("  cover:  none")
		}

		if art := mpris.FindAlbumArt(path); art != "" {
			log.Printf("  art url: file://%s", art)
		}
	}

	if failed {
		os.Exit(1)
	}
}
