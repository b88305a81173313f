package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves an object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears shifted by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space instead of moving the object
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRayAt(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the object's box shifted by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// Axis selects a coordinate axis for rotations
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Rotate turns an object about one coordinate axis through the origin
type Rotate struct {
	Object  Hittable
	Axis    Axis
	Degrees float64

	toWorld  mgl64.Mat3
	toObject mgl64.Mat3

	// Box over the unit time interval, computed once
	box    core.AABB
	hasBox bool
}

// NewRotate wraps object rotated counterclockwise by degrees about axis
func NewRotate(object Hittable, axis Axis, degrees float64) (*Rotate, error) {
	angle := mgl64.DegToRad(degrees)

	var toWorld mgl64.Mat3
	switch axis {
	case AxisX:
		toWorld = mgl64.Rotate3DX(angle)
	case AxisY:
		toWorld = mgl64.Rotate3DY(angle)
	case AxisZ:
		toWorld = mgl64.Rotate3DZ(angle)
	default:
		return nil, fmt.Errorf("unknown rotation axis %d", axis)
	}

	r := &Rotate{
		Object:   object,
		Axis:     axis,
		Degrees:  degrees,
		toWorld:  toWorld,
		toObject: toWorld.Transpose(),
	}
	r.box, r.hasBox = r.rotatedBox(0, 1)
	return r, nil
}

// NewRotateY is the common case of turning an object about the vertical axis
func NewRotateY(object Hittable, degrees float64) *Rotate {
	r, _ := NewRotate(object, AxisY, degrees)
	return r
}

// Hit rotates the ray into object space and the hit back out
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	local := core.NewRayAt(apply(r.toObject, ray.Origin), apply(r.toObject, ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(local, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	// Rotation preserves the normal's orientation relative to the ray, so FrontFace carries over
	hit.Point = apply(r.toWorld, hit.Point)
	hit.Normal = apply(r.toWorld, hit.Normal)
	return hit, true
}

// BoundingBox returns the cached box for the unit interval and bounds the
// rotated corners again for any other interval
func (r *Rotate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if time0 == 0 && time1 == 1 {
		return r.box, r.hasBox
	}
	return r.rotatedBox(time0, time1)
}

// rotatedBox bounds the eight rotated corners of the object's box
func (r *Rotate) rotatedBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = apply(r.toWorld, corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

func apply(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out[0], out[1], out[2])
}
