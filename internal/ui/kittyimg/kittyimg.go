// Package kittyimg provides Kitty terminal graphics protocol support.
package kittyimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const (
	escStart  = "\x1b_G"
	escEnd    = "\x1b\\"
	chunkSize = 4096 // Max base64 bytes per escape sequence chunk
)

// Transmit encodes img as PNG and returns the escape sequence that uploads
// it to the terminal under id without displaying it.
func Transmit(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

// TransmitPNG returns the upload sequence for pre-encoded PNG data.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded) || i == 0; i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			// a=t transmit only, f=100 PNG, q=2 quiet
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// Place returns the sequence that displays image id at the 1-based
// terminal position (row, col), scaled to cols×rows cells. The placement
// id is fixed so a new placement replaces the previous one.
func Place(id uint32, row, col, cols, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, cols, rows, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// Hide returns the sequence that removes the placements of image id and
// keeps its data for later placements.
func Hide(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

// Delete returns the sequence that frees image id and its placements.
func Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}

// Blank returns a cols×rows block of spaces reserving room for a placed image.
func Blank(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Placeholder returns an ASCII art frame with a centered note, used when
// no cover art can be shown.
func Placeholder(cols, rows int) string {
	if cols < 4 || rows < 2 {
		return ""
	}

	lines := make([]string, 0, rows)
	lines = append(lines, "┌"+strings.Repeat("─", cols-2)+"┐")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 && cols >= 5 {
			padding := (cols - 3) / 2
			lines = append(lines, "│"+strings.Repeat(" ", padding)+"♪"+strings.Repeat(" ", cols-3-padding)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", cols-2)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", cols-2)+"┘")

	return strings.Join(lines, "\n")
}
