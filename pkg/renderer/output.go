package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageSink receives a rendered image one scanline at a time, top row first
type ImageSink interface {
	Begin(width, height int) error
	WriteRow(pixels []core.RGB8) error
	Close() error
}

// PPMWriter writes the plain-text P3 format: a header followed by one
// "r g b" line per pixel
type PPMWriter struct {
	w *bufio.Writer
}

// NewPPMWriter creates a writer. The header and every row are flushed to w
// before Begin and WriteRow return, so a failing w is noticed on that row.
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// NewNullSink returns a sink that formats the image and throws it away
func NewNullSink() *PPMWriter {
	return NewPPMWriter(io.Discard)
}

// Begin writes the P3 header
func (p *PPMWriter) Begin(width, height int) error {
	if _, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}
	return nil
}

// WriteRow writes one line per pixel and flushes the row
func (p *PPMWriter) WriteRow(pixels []core.RGB8) error {
	for _, px := range pixels {
		if _, err := fmt.Fprintf(p.w, "%d %d %d\n", px.R, px.G, px.B); err != nil {
			return fmt.Errorf("failed to write ppm pixel: %w", err)
		}
	}
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("failed to write ppm row: %w", err)
	}
	return nil
}

// Close flushes anything still buffered
func (p *PPMWriter) Close() error {
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush ppm output: %w", err)
	}
	return nil
}

// PNGWriter collects rows into an image and encodes it on Close
type PNGWriter struct {
	w   io.Writer
	img *image.RGBA
	row int
}

// NewPNGWriter creates a writer that encodes to w
func NewPNGWriter(w io.Writer) *PNGWriter {
	return &PNGWriter{w: w}
}

// Begin allocates the image
func (p *PNGWriter) Begin(width, height int) error {
	p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	p.row = 0
	return nil
}

// WriteRow stores the next scanline
func (p *PNGWriter) WriteRow(pixels []core.RGB8) error {
	if p.img == nil {
		return fmt.Errorf("png row written before Begin")
	}
	if p.row >= p.img.Bounds().Dy() {
		return fmt.Errorf("png row %d is outside the %d row image", p.row, p.img.Bounds().Dy())
	}
	for x, px := range pixels {
		p.img.SetRGBA(x, p.row, color.RGBA{R: px.R, G: px.G, B: px.B, A: 255})
	}
	p.row++
	return nil
}

// Close encodes the image
func (p *PNGWriter) Close() error {
	if p.img == nil {
		return nil
	}
	if err := png.Encode(p.w, p.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// fileSink closes the underlying file after the image sink
type fileSink struct {
	ImageSink
	file *os.File
}

func (s *fileSink) Close() error {
	err := s.ImageSink.Close()
	if cerr := s.file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", s.file.Name(), cerr)
	}
	return err
}

// CreateFileSink creates path and returns a sink writing to it. A .png
// extension selects PNG encoding; anything else is written as PPM.
func CreateFileSink(path string) (ImageSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".png") {
		return &fileSink{ImageSink: NewPNGWriter(file), file: file}, nil
	}
	return &fileSink{ImageSink: NewPPMWriter(file), file: file}, nil
}
