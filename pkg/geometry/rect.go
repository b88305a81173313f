package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane names the two axes an axis-aligned rectangle spans
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// axes returns the in-plane axes (a, b) and the fixed axis
func (p Plane) axes() (a, b, fixed int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	default:
		return "yz"
	}
}

// rectPadding keeps the bounding box of a flat rectangle from having zero thickness
const rectPadding = 0.0001

// AARect is a rectangle lying in a plane perpendicular to one of the coordinate axes
type AARect struct {
	Plane    Plane
	A0, A1   float64 // Extent along the first in-plane axis
	B0, B1   float64 // Extent along the second in-plane axis
	K        float64 // Position on the fixed axis
	Material material.Material
}

// NewAARect creates a rectangle; the extents must have positive length
func NewAARect(plane Plane, a0, a1, b0, b1, k float64, mat material.Material) (*AARect, error) {
	if !(a0 < a1) || !(b0 < b1) {
		return nil, fmt.Errorf("%w: %s rect [%g,%g]x[%g,%g]", ErrDegenerateRect, plane, a0, a1, b0, b1)
	}
	return &AARect{Plane: plane, A0: a0, A1: a1, B0: b0, B1: b1, K: k, Material: mat}, nil
}

// NewXYRect creates a rectangle spanning x0..x1, y0..y1 at z=k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) (*AARect, error) {
	return NewAARect(PlaneXY, x0, x1, y0, y1, k, mat)
}

// NewXZRect creates a rectangle spanning x0..x1, z0..z1 at y=k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) (*AARect, error) {
	return NewAARect(PlaneXZ, x0, x1, z0, z1, k, mat)
}

// NewYZRect creates a rectangle spanning y0..y1, z0..z1 at x=k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) (*AARect, error) {
	return NewAARect(PlaneYZ, y0, y1, z0, z1, k, mat)
}

// Hit intersects the ray with the rectangle's plane and checks the extents
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	aAxis, bAxis, fixed := r.Plane.axes()

	// A ray parallel to the plane gives ±Inf or NaN, both rejected here
	t := (r.K - ray.Origin.Axis(fixed)) / ray.Direction.Axis(fixed)
	if !(t >= tMin && t <= tMax) {
		return nil, false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, core.Vec3{}.WithAxis(fixed, 1))

	return hitRecord, true
}

// BoundingBox returns the rectangle's extent padded slightly along the fixed axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	aAxis, bAxis, fixed := r.Plane.axes()

	var lo, hi core.Vec3
	lo = lo.WithAxis(aAxis, r.A0).WithAxis(bAxis, r.B0).WithAxis(fixed, r.K-rectPadding)
	hi = hi.WithAxis(aAxis, r.A1).WithAxis(bAxis, r.B1).WithAxis(fixed, r.K+rectPadding)
	return core.NewAABB(lo, hi), true
}
