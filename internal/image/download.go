package imagepkg

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/youruser/qrcard/internal/util"
)

// DownloadImage downloads an image from URL and returns image.Image (decoded).
func DownloadImage(url string) (image.Image, error) {
	body, err := util.GetBytes(url)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

// OpenBackground decodes the background template at path. Callers open it
// again for every card so no two cards share a surface.
func OpenBackground(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open background %s: %w", path, err)
	}
	return img, nil
}
