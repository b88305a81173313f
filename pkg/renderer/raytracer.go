package renderer

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// hitEpsilon keeps scattered rays from hitting the surface they left
const hitEpsilon = 0.001

// World is the scene as seen by the renderer
type World interface {
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)
	Background(ray core.Ray) core.Color
}

// Camera turns normalized image coordinates into rays
type Camera interface {
	GetRay(s, t float64, sampler core.Sampler) core.Ray
	AspectRatio() float64
}

// RayColor returns the radiance arriving along ray, following at most depth
// bounces. Exhausting the depth returns black.
func RayColor(ray core.Ray, world World, depth int, sampler core.Sampler) core.Color {
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, hitEpsilon, math.Inf(1), sampler)
	if !isHit {
		return world.Background(ray)
	}

	emitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)
	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, world, depth-1, sampler)))
}

// Raytracer evaluates pixels of a fixed-size image
type Raytracer struct {
	world  World
	camera Camera
	width  int
	height int
	config RenderConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world World, camera Camera, width, height int, config RenderConfig) *Raytracer {
	return &Raytracer{
		world:  world,
		camera: camera,
		width:  width,
		height: height,
		config: config,
	}
}

// Size returns the image dimensions
func (rt *Raytracer) Size() (width, height int) {
	return rt.width, rt.height
}

// PixelColor averages the configured number of samples for the pixel at
// (row, col), row 0 being the top scanline. A single sample is taken at the
// pixel corner; more samples are jittered across the pixel.
func (rt *Raytracer) PixelColor(row, col int, sampler core.Sampler) core.Color {
	var stats PixelStats
	for s := 0; s < rt.config.Samples; s++ {
		var du, dv float64
		if rt.config.Samples > 1 {
			du = sampler.Get1D()
			dv = sampler.Get1D()
		}

		u := (float64(col) + du) / float64(rt.width)
		v := (float64(rt.height-1-row) + dv) / float64(rt.height)

		ray := rt.camera.GetRay(u, v, sampler)
		stats.AddSample(RayColor(ray, rt.world, rt.config.MaxDepth, sampler))
	}

	color := stats.GetColor()
	if rt.config.Gamma {
		color = color.Sqrt()
	}
	return color
}

// RenderRow computes one scanline. Once canceled is set, the remaining pixels
// are left black without sampling.
func (rt *Raytracer) RenderRow(row int, sampler core.Sampler, canceled *atomic.Bool) RowResult {
	result := RowResult{Row: row, Pixels: make([]core.RGB8, rt.width)}
	for col := 0; col < rt.width; col++ {
		if canceled.Load() {
			continue
		}
		result.Pixels[col] = core.ToRGB8(rt.PixelColor(row, col, sampler))
		result.Samples += rt.config.Samples
	}
	return result
}

// rowSeed derives an independent seed for each row so the image does not
// depend on which worker renders which row
func rowSeed(seed int64, row int) int64 {
	z := uint64(seed) + uint64(row+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
