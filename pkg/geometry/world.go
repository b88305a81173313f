package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BackgroundFunc returns the radiance seen along a ray that escapes the scene
type BackgroundFunc func(ray core.Ray) core.Color

// SkyBackground blends from white at the horizon to light blue overhead
func SkyBackground(ray core.Ray) core.Color {
	return GradientBackground(core.NewColor(1, 1, 1), core.NewColor(0.5, 0.7, 1.0))(ray)
}

// GradientBackground blends from bottom to top by the ray's unit y component
func GradientBackground(bottom, top core.Color) BackgroundFunc {
	return func(ray core.Ray) core.Color {
		t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
		return bottom.Lerp(top, t)
	}
}

// SolidBackground returns the same color for every ray
func SolidBackground(color core.Color) BackgroundFunc {
	return func(core.Ray) core.Color {
		return color
	}
}

// World is the renderable scene: a BVH over every object plus a background
type World struct {
	root       *BVHNode
	background BackgroundFunc
	count      int
}

// NewWorld builds the hierarchy for rays departing in [time0, time1].
// A nil background means the sky gradient.
func NewWorld(objects []Hittable, background BackgroundFunc, time0, time1 float64, sampler core.Sampler) (*World, error) {
	root, err := NewBVH(objects, time0, time1, sampler)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}
	if background == nil {
		background = SkyBackground
	}
	return &World{root: root, background: background, count: len(objects)}, nil
}

// Hit returns the nearest intersection with any object
func (w *World) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return w.root.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box around every object
func (w *World) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return w.root.BoundingBox(time0, time1)
}

// Background returns the color for a ray that hits nothing
func (w *World) Background(ray core.Ray) core.Color {
	return w.background(ray)
}

// Len returns the number of top-level objects
func (w *World) Len() int {
	return w.count
}

// Depth returns the depth of the hierarchy
func (w *World) Depth() int {
	return w.root.Depth()
}
