// Package imagemeta probes image files for their pixel dimensions without
// decoding pixel data. It backs the lazy width/height fallback used when an
// annotation document omits image sizes.
package imagemeta

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Reader reports pixel dimensions for an image file.
type Reader interface {
	Dimensions(path string) (width, height int, err error)
}

// FileReader reads dimensions from image headers on disk.
type FileReader struct{}

// Dimensions decodes just the image header of the file at path.
func (FileReader) Dimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("image reports invalid dimensions %dx%d (format %s)", cfg.Width, cfg.Height, format)
	}

	return cfg.Width, cfg.Height, nil
}
