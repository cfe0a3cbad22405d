package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/youruser/qrcard/internal/roster"
)

// Compose pastes the QR code for payload onto a copy of bg and, when face is
// non-nil, draws the wrapped name of rec next to it. bg is left untouched.
func Compose(bg image.Image, payload string, rec roster.Record, l Layout, face font.Face) (*image.NRGBA, error) {
	qr, err := RenderQR(payload, l)
	if err != nil {
		return nil, err
	}

	b := bg.Bounds()
	canvas := imaging.Paste(bg, qr, QRRect(b, l).Min)
	if face == nil {
		return canvas, nil
	}

	lines := TextLines(rec, l.MaxChars)
	if len(lines) == 0 {
		return canvas, nil
	}
	dc := gg.NewContextForImage(canvas)
	dc.SetFontFace(face)
	if l.TextColor != "" {
		dc.SetHexColor(l.TextColor)
	} else {
		dc.SetRGB(0, 0, 0)
	}
	anchor := TextAnchor(b.Dx(), b.Dy(), l)
	drawLines(dc, face, lines, anchor.X, anchor.Y, l.LineSpacing)
	return imaging.Clone(dc.Image()), nil
}
