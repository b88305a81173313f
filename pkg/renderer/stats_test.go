package renderer

import (
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPixelStats_GetColor(t *testing.T) {
	var ps PixelStats
	if got := ps.GetColor(); got != (core.Color{}) {
		t.Errorf("Expected black for an empty pixel, got %v", got)
	}

	ps.AddSample(core.NewColor(1, 0, 0))
	ps.AddSample(core.NewColor(0, 1, 0))
	ps.AddSample(core.NewColor(0, 0, 1))
	ps.AddSample(core.NewColor(1, 1, 1))

	expected := core.NewColor(0.5, 0.5, 0.5)
	if got := ps.GetColor(); got != expected {
		t.Errorf("Expected average %v, got %v", expected, got)
	}
	if ps.SampleCount != 4 {
		t.Errorf("Expected 4 samples, got %d", ps.SampleCount)
	}
}

func TestRenderStats_Rates(t *testing.T) {
	stats := RenderStats{TotalPixels: 200, TotalSamples: 1000, Duration: 2 * time.Second}

	if got := stats.AverageSamples(); got != 5 {
		t.Errorf("Expected 5 samples per pixel, got %f", got)
	}
	if got := stats.PixelsPerSecond(); got != 100 {
		t.Errorf("Expected 100 pixels/s, got %f", got)
	}

	var empty RenderStats
	if empty.AverageSamples() != 0 || empty.PixelsPerSecond() != 0 {
		t.Errorf("Expected zero rates for empty stats")
	}
}
