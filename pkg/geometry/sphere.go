package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere that is either static, moving with constant
// velocity, or following a baked motion path
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Material material.Material
	Velocity core.Vec3   // Center moves by Velocity per unit of time
	Path     *MotionPath // When set, overrides Center and Velocity
}

// NewSphere creates a new static sphere
func NewSphere(center core.Point3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// NewMovingSphere creates a sphere whose center is center + velocity*t
func NewMovingSphere(center core.Point3, velocity core.Vec3, radius float64, material material.Material) *Sphere {
	s := NewSphere(center, radius, material)
	s.Velocity = velocity
	return s
}

// NewPathSphere creates a sphere whose center follows path
func NewPathSphere(path *MotionPath, radius float64, material material.Material) *Sphere {
	s := NewSphere(path.At(0), radius, material)
	s.Path = path
	return s
}

// CenterAt returns the center of the sphere at time t
func (s *Sphere) CenterAt(t float64) core.Point3 {
	if s.Path != nil {
		return s.Path.At(t)
	}
	return s.Center.Add(s.Velocity.Multiply(t))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	center := s.CenterAt(ray.Time)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox covers the sphere at every position it takes during [time0, time1]
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	var centers core.AABB
	if s.Path != nil {
		centers = s.Path.Bounds(time0, time1)
	} else {
		centers = core.NewAABBFromPoints(s.CenterAt(time0), s.CenterAt(time1))
	}
	return core.NewAABB(centers.Min.Subtract(radius), centers.Max.Add(radius)), true
}

// sphereUV maps a point on the unit sphere to texture coordinates:
// u runs around the y axis starting at -x, v from the south pole to the north pole
func sphereUV(p core.Vec3) (u, v float64) {
	phi := math.Atan2(-p.Z, p.X)
	theta := math.Asin(max(-1, min(1, p.Y)))
	return phi/(2*math.Pi) + 0.5, theta/math.Pi + 0.5
}
