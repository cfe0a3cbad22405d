package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// RecoveryLevel maps a level name to the encoder's constant.
func RecoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "low", "l":
		return qrcode.Low, nil
	case "medium", "m":
		return qrcode.Medium, nil
	case "high", "q":
		return qrcode.High, nil
	case "highest", "h":
		return qrcode.Highest, nil
	}
	return qrcode.Low, fmt.Errorf("unknown QR recovery level %q", name)
}

// GenerateQRPNG returns PNG bytes of a size x size QR code for text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage encodes text at the layout's recovery level. Each module is
// QRModule pixels wide, surrounded by a QRBorder-module white border.
func GenerateQRImage(text string, l Layout) (image.Image, error) {
	level, err := RecoveryLevel(l.QRLevel)
	if err != nil {
		return nil, err
	}
	q, err := qrcode.New(text, level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.DisableBorder = true

	module := l.QRModule
	if module < 1 {
		module = 1
	}
	img := q.Image(-module)
	if l.QRBorder <= 0 {
		return img, nil
	}
	pad := l.QRBorder * module
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, color.White)
	return imaging.Paste(canvas, img, image.Pt(pad, pad)), nil
}

// RenderQR is the QR code scaled to the layout's pixel size.
func RenderQR(text string, l Layout) (*image.NRGBA, error) {
	img, err := GenerateQRImage(text, l)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, l.QRSize, l.QRSize, imaging.Lanczos), nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
