package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-pathtracer/pkg/texture"
)

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file. The format is
// detected from the file header and returned alongside the image.
func LoadImage(filename string) (image.Image, string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, format, nil
}

// LoadImageTexture loads an image file as a texture
func LoadImageTexture(filename string) (*texture.ImageTexture, error) {
	img, _, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return texture.NewImageTextureFromImage(img), nil
}
