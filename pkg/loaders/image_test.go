package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/core"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue
	return img
}

// TestLoadImageTexture writes the same picture in several formats and loads each back
func TestLoadImageTexture(t *testing.T) {
	tmpDir := t.TempDir()

	encoders := map[string]func(f *os.File, img image.Image) error{
		"png":  func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		"bmp":  func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
		"tiff": func(f *os.File, img image.Image) error { return tiff.Encode(f, img, nil) },
	}

	for format, encode := range encoders {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(tmpDir, "test."+format)
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			if err := encode(f, testImage()); err != nil {
				f.Close()
				t.Fatalf("Failed to encode %s: %v", format, err)
			}
			f.Close()

			_, detected, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if detected != format {
				t.Errorf("Expected format %s, got %s", format, detected)
			}

			tex, err := LoadImageTexture(path)
			if err != nil {
				t.Fatalf("LoadImageTexture failed: %v", err)
			}
			if tex.Width != 2 || tex.Height != 2 {
				t.Fatalf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
			}

			// v=1 is the top row of the image
			checkColor(t, "Top-left", tex.Value(0.1, 0.9, core.Vec3{}), core.NewColor(1, 1, 1))
			checkColor(t, "Top-right", tex.Value(0.9, 0.9, core.Vec3{}), core.NewColor(1, 0, 0))
			checkColor(t, "Bottom-left", tex.Value(0.1, 0.1, core.Vec3{}), core.NewColor(0, 1, 0))
			checkColor(t, "Bottom-right", tex.Value(0.9, 0.1, core.Vec3{}), core.NewColor(0, 0, 1))
		})
	}
}

func checkColor(t *testing.T, name string, got, expected core.Color) {
	t.Helper()
	const tolerance = 0.01
	if got.Subtract(expected).Length() > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	if _, err := LoadImageTexture("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImageNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error, got nil")
	}
}
