package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// exitEpsilon separates the entry hit from the search for the exit hit
const exitEpsilon = 0.0001

// ConstantMedium is a volume of uniform density bounded by a convex object
type ConstantMedium struct {
	Boundary      Hittable
	Density       float64
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Hittable, density float64, color core.Color) (*ConstantMedium, error) {
	return NewConstantMediumTexture(boundary, density, texture.NewSolidColor(color))
}

// NewConstantMediumTexture fills boundary with a medium whose color comes from a texture
func NewConstantMediumTexture(boundary Hittable, density float64, albedo texture.Texture) (*ConstantMedium, error) {
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidDensity, density)
	}
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewIsotropicTexture(albedo),
		negInvDensity: -1.0 / density,
	}, nil
}

// Hit samples a free-flight distance through the medium and reports a scattering
// event when it falls before the ray leaves the boundary
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+exitEpsilon, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t1 := max(entry.T, tMin)
	t2 := min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	t1 = max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(1-sampler.Get1D())
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
