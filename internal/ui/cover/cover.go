// Package cover renders the track cover art at the size the playback
// state asks for, with Kitty graphics when the terminal supports them and
// an ASCII frame otherwise.
package cover

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder for cover art
	_ "image/jpeg" // JPEG decoder for cover art
	_ "image/png"  // PNG decoder for cover art
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/llehouerou/nowplaying/internal/config"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/ui/kittyimg"
	"github.com/llehouerou/nowplaying/internal/ui/styles"
)

// Approximate cell size in pixels, used to pick the thumbnail resolution.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// Options configures a Renderer.
type Options struct {
	Mode   string              // config.CoverArtAuto, CoverArtKitty or CoverArtNone
	Getenv func(string) string // nil reads the process environment
	Logger *zap.Logger
}

// Renderer turns cover image bytes into terminal output. Each size is
// resized and transmitted once and reused afterwards.
type Renderer struct {
	mu sync.Mutex

	img    image.Image
	format string
	kitty  bool
	log    *zap.Logger

	nextID uint32
	ids    map[playback.Size]uint32
}

// New decodes data and prepares a renderer. Undecodable or empty data
// yields a renderer that only draws the placeholder.
func New(data []byte, opts Options) *Renderer {
	r := &Renderer{
		log: opts.Logger,
		ids: make(map[playback.Size]uint32),
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}

	switch opts.Mode {
	case config.CoverArtNone:
	case config.CoverArtKitty:
		r.kitty = true
	default:
		r.kitty = KittySupported(opts.Getenv)
	}

	if len(data) == 0 {
		return r
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		r.log.Warn("cover art not decodable, using placeholder", zap.Error(err))
		return r
	}
	r.img = img
	r.format = format
	b := img.Bounds()
	r.log.Debug("cover art decoded",
		zap.String("format", format),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return r
}

// HasImage reports whether an image was decoded.
func (r *Renderer) HasImage() bool {
	return r.img != nil
}

// UsesKitty reports whether the image is drawn with Kitty graphics.
func (r *Renderer) UsesKitty() bool {
	return r.kitty && r.img != nil
}

// Block returns the text occupying the cover area at size: blank cells
// reserved for the image, or the placeholder frame.
func (r *Renderer) Block(size playback.Size) string {
	if r.UsesKitty() {
		return kittyimg.Blank(size.Cols, size.Rows)
	}
	return styles.T().S().CoverFrame.Render(kittyimg.Placeholder(size.Cols, size.Rows))
}

// Prepare returns the upload sequence for size the first time it is
// requested, and "" afterwards or when Kitty graphics are not in use.
func (r *Renderer) Prepare(size playback.Size) (string, error) {
	if !r.UsesKitty() {
		return "", nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[size]; ok {
		return "", nil
	}

	thumb := resize.Thumbnail(
		uint(size.Cols*cellWidthPx),  //nolint:gosec // small cell counts
		uint(size.Rows*cellHeightPx), //nolint:gosec // small cell counts
		r.img, resize.Lanczos3)

	r.nextID++
	id := r.nextID
	seq, err := kittyimg.Transmit(thumb, id)
	if err != nil {
		return "", fmt.Errorf("transmit cover %dx%d: %w", size.Cols, size.Rows, err)
	}
	r.ids[size] = id

	r.log.Debug("cover art transmitted",
		zap.Int("cols", size.Cols),
		zap.Int("rows", size.Rows),
		zap.String("payload", humanize.Bytes(uint64(len(seq)))))
	return seq, nil
}

// Placement returns the sequence placing the image prepared for size at
// the 1-based terminal position (row, col), or "" if none was prepared.
// Images prepared for other sizes are hidden first.
func (r *Renderer) Placement(size playback.Size, row, col int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[size]
	if !ok {
		return ""
	}
	var out string
	for other, otherID := range r.ids {
		if other != size {
			out += kittyimg.Hide(otherID)
		}
	}
	return out + kittyimg.Place(id, row, col, size.Cols, size.Rows)
}

// Hide removes every placement and keeps the uploaded images.
func (r *Renderer) Hide() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out string
	for _, id := range r.ids {
		out += kittyimg.Hide(id)
	}
	return out
}

// Clear frees every transmitted image and returns the sequence to send.
func (r *Renderer) Clear() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out string
	for size, id := range r.ids {
		out += kittyimg.Delete(id)
		delete(r.ids, size)
	}
	return out
}
