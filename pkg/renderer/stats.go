package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID        string        // Unique id attached to the render's log records
	Width, Height   int           // Image size in pixels
	Workers         int           // Number of workers that rendered rows
	Seed            int64         // Base seed the row samplers were derived from
	TotalPixels     int           // Pixels written to the sink
	TotalSamples    int           // Camera rays actually traced
	SamplesPerPixel int           // Configured samples per pixel
	RowsWritten     int           // Rows flushed to the sink in order
	Duration        time.Duration // Wall time from start to the last row
}

// AverageSamples returns the mean number of rays traced per written pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// PixelsPerSecond returns the throughput of the render
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // Sum of linear sample colors
	SampleCount int
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
