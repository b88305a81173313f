package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// triangleEpsilon rejects rays nearly parallel to the triangle's plane
const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Point3
	Material   material.Material
	normal     core.Vec3
	bbox       core.AABB
}

// NewTriangle creates a triangle; the front face follows counterclockwise winding
func NewTriangle(v0, v1, v2 core.Point3, mat material.Material) *Triangle {
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		// Padding gives axis-aligned triangles some thickness
		bbox: core.NewAABBFromPoints(v0, v1, v2).Pad(2 * rectPadding),
	}
}

// Normal returns the geometric normal of the triangle
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit uses the Möller-Trumbore algorithm; (u, v) are the barycentric coordinates
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return nil, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	root := f * edge2.Dot(q)
	if root < tMin || root > tMax {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		U:        u,
		V:        v,
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)
	return hitRecord, true
}

// BoundingBox returns the cached box around the vertices
func (t *Triangle) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return t.bbox, true
}
