package imagepkg

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/qrcard/internal/roster"
	"github.com/youruser/qrcard/internal/wrap"
)

// LoadFace loads the TTF at path, or the embedded Go Bold face when path is empty.
func LoadFace(path string, size float64) (font.Face, error) {
	if path != "" {
		face, err := gg.LoadFontFace(path, size)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", path, err)
		}
		return face, nil
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

// TextLines wraps the honorific and the rest of the name separately so the
// honorific always starts its own line.
func TextLines(rec roster.Record, maxChars int) []string {
	rest := strings.TrimSpace(rec.Family + " " + rec.Given + " " + rec.Note)
	lines := wrap.Lines(rec.Honorific, maxChars)
	return append(lines, wrap.Lines(rest, maxChars)...)
}

// drawLines draws lines centered on x with the top of each line's ascent at
// its y, one every spacing pixels, centered as a block on anchorY.
func drawLines(dc *gg.Context, face font.Face, lines []string, x, anchorY, spacing int) {
	ascent := float64(face.Metrics().Ascent) / 64
	startY := TextStartY(anchorY, len(lines), spacing)
	for i, line := range lines {
		w, _ := dc.MeasureString(line)
		y := startY + i*spacing
		dc.DrawString(line, float64(x)-w/2, float64(y)+ascent)
	}
}
