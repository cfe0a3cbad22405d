package imagepkg

import "image"

// Layout places the QR code and the name block on a background. Percentages
// are measured from the left/top edge and mark the center of the QR code and
// the top-center of the text block.
type Layout struct {
	QRSize       int     `yaml:"qr_size"`
	QRXPercent   float64 `yaml:"qr_x_percent"`
	QRYPercent   float64 `yaml:"qr_y_percent"`
	QRModule     int     `yaml:"qr_module"`
	QRBorder     int     `yaml:"qr_border"`
	QRLevel      string  `yaml:"qr_level"`
	TextXPercent float64 `yaml:"text_x_percent"`
	TextYPercent float64 `yaml:"text_y_percent"`
	LineSpacing  int     `yaml:"line_spacing"`
	MaxChars     int     `yaml:"max_chars"`
	FontPath     string  `yaml:"font_path"`
	FontSize     float64 `yaml:"font_size"`
	TextColor    string  `yaml:"text_color"`
}

// DefaultLayout matches the printed card templates.
func DefaultLayout() Layout {
	return Layout{
		QRSize:       450,
		QRXPercent:   32,
		QRYPercent:   60,
		QRModule:     8,
		QRBorder:     1,
		QRLevel:      "low",
		TextXPercent: 77,
		TextYPercent: 50,
		LineSpacing:  60,
		MaxChars:     12,
		FontSize:     55,
		TextColor:    "#000000",
	}
}

// PlainQRLayout is l set up for stand-alone QR files: medium recovery, 10px
// modules and a 4-module quiet zone, written at native size.
func PlainQRLayout(l Layout) Layout {
	l.QRLevel = "medium"
	l.QRModule = 10
	l.QRBorder = 4
	return l
}

func percentOf(n int, pct float64) int {
	return int(float64(n) * pct / 100)
}

// QROffset is the top-left corner of the QR code on a bgW x bgH background.
func QROffset(bgW, bgH int, l Layout) image.Point {
	return image.Pt(
		percentOf(bgW, l.QRXPercent)-l.QRSize/2,
		percentOf(bgH, l.QRYPercent)-l.QRSize/2,
	)
}

// QRRect is the area the QR code covers on a bounds-sized background.
func QRRect(bounds image.Rectangle, l Layout) image.Rectangle {
	p := QROffset(bounds.Dx(), bounds.Dy(), l).Add(bounds.Min)
	return image.Rect(p.X, p.Y, p.X+l.QRSize, p.Y+l.QRSize)
}

// TextAnchor is the point the name block is centered on.
func TextAnchor(bgW, bgH int, l Layout) image.Point {
	return image.Pt(percentOf(bgW, l.TextXPercent), percentOf(bgH, l.TextYPercent))
}

// TextStartY is the top of the first of lineCount lines so the block is
// vertically centered on anchorY.
func TextStartY(anchorY, lineCount, spacing int) int {
	if lineCount <= 1 {
		return anchorY
	}
	return anchorY - (lineCount-1)*spacing/2
}
