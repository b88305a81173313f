package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrNoBoundingBox is returned when an object without bounds is placed in a BVH
	ErrNoBoundingBox = errors.New("object has no bounding box")
	// ErrDegenerateRect is returned for rectangles with zero or negative extent
	ErrDegenerateRect = errors.New("degenerate rectangle")
	// ErrInvalidDensity is returned for participating media with non-positive density
	ErrInvalidDensity = errors.New("medium density must be positive")
	// ErrInvalidCamera is returned for camera settings that cannot form a view
	ErrInvalidCamera = errors.New("invalid camera")
)

// Hittable interface for objects that can be hit by rays.
// Implementations are immutable after construction and safe for concurrent use.
type Hittable interface {
	// Hit returns the nearest intersection with t in [tMin, tMax].
	// The sampler is only consumed by stochastic objects such as media.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns a box enclosing the object over the time interval,
	// or false when the object is unbounded
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}
