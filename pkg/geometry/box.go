package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is an axis-aligned box built from six rectangles sharing one material
type Box struct {
	Min, Max core.Point3
	Material material.Material
	faces    *HittableList
}

// NewBox creates a box spanning the corners p0 and p1
func NewBox(p0, p1 core.Point3, mat material.Material) (*Box, error) {
	lo := core.NewVec3(min(p0.X, p1.X), min(p0.Y, p1.Y), min(p0.Z, p1.Z))
	hi := core.NewVec3(max(p0.X, p1.X), max(p0.Y, p1.Y), max(p0.Z, p1.Z))

	type face struct {
		plane          Plane
		a0, a1, b0, b1 float64
		k              float64
	}
	faces := []face{
		{PlaneXY, lo.X, hi.X, lo.Y, hi.Y, hi.Z}, // front
		{PlaneXY, lo.X, hi.X, lo.Y, hi.Y, lo.Z}, // back
		{PlaneXZ, lo.X, hi.X, lo.Z, hi.Z, hi.Y}, // top
		{PlaneXZ, lo.X, hi.X, lo.Z, hi.Z, lo.Y}, // bottom
		{PlaneYZ, lo.Y, hi.Y, lo.Z, hi.Z, hi.X}, // right
		{PlaneYZ, lo.Y, hi.Y, lo.Z, hi.Z, lo.X}, // left
	}

	list := NewHittableList()
	for _, f := range faces {
		rect, err := NewAARect(f.plane, f.a0, f.a1, f.b0, f.b1, f.k, mat)
		if err != nil {
			return nil, fmt.Errorf("box %v-%v: %w", p0, p1, err)
		}
		list.Add(rect)
	}

	return &Box{Min: lo, Max: hi, Material: mat, faces: list}, nil
}

// Hit returns the nearest face hit
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the union of the face boxes, so it carries their padding
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return b.faces.BoundingBox(time0, time1)
}
