// Package scan reads QR codes back out of generated cards.
package scan

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	imagepkg "github.com/youruser/qrcard/internal/image"
	"github.com/youruser/qrcard/internal/payload"
)

// quiet is the white margin added around an image before decoding.
const quiet = 40

// Decode returns the text of the QR code in img.
func Decode(img image.Image) (string, error) {
	b := img.Bounds()
	if b.Empty() {
		return "", fmt.Errorf("empty image")
	}
	padded := imaging.Paste(imaging.New(b.Dx()+2*quiet, b.Dy()+2*quiet, color.White), img, image.Pt(quiet, quiet))

	bmp, err := gozxing.NewBinaryBitmapFromImage(padded)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no QR code found in image: %w", err)
	}
	return result.GetText(), nil
}

// DecodeCard looks for the QR code where l places it, then in the whole image.
func DecodeCard(img image.Image, l imagepkg.Layout) (string, error) {
	region := imagepkg.QRRect(img.Bounds(), l).Inset(-l.QRSize / 10).Intersect(img.Bounds())
	if !region.Empty() && region != img.Bounds() {
		if text, err := Decode(imaging.Crop(img, region)); err == nil {
			return text, nil
		}
	}
	return Decode(img)
}

// ScanFile opens an image file and decodes the QR code on it.
func ScanFile(path string, l imagepkg.Layout) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image file: %w", err)
	}
	return DecodeCard(img, l)
}

// Problem is a card whose code does not match its file name.
type Problem struct {
	File    string `json:"file"`
	Decoded string `json:"decoded,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Report is the outcome of VerifyDir.
type Report struct {
	Checked  int       `json:"checked"`
	OK       int       `json:"ok"`
	Problems []Problem `json:"problems,omitempty"`
}

// VerifyDir decodes every PNG in dir and checks that the payload names the file.
func VerifyDir(dir string, l imagepkg.Layout) (Report, error) {
	var rep Report
	entries, err := os.ReadDir(dir)
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		rep.Checked++
		text, err := ScanFile(filepath.Join(dir, name), l)
		switch {
		case err != nil:
			rep.Problems = append(rep.Problems, Problem{File: name, Err: err.Error()})
		case !payload.Matches(text, name):
			rep.Problems = append(rep.Problems, Problem{File: name, Decoded: text})
		default:
			rep.OK++
		}
	}
	return rep, nil
}
