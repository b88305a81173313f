package geometry

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MotionPath is a piecewise linear trajectory sampled at evenly spaced times
type MotionPath struct {
	Keyframes []core.Point3
	Duration  float64 // Time of the last keyframe; the first is at time 0
}

// NewProjectilePath bakes a ballistic trajectory starting at start with the given
// initial velocity and constant acceleration (for example harmonica.Gravity).
// The path is stepped fps times per unit of time until duration.
func NewProjectilePath(start, velocity, acceleration core.Vec3, fps int, duration float64) (*MotionPath, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("projectile path needs a positive step rate, got %d", fps)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("projectile path needs a positive duration, got %g", duration)
	}

	projectile := harmonica.NewProjectile(
		harmonica.FPS(fps),
		harmonica.Point{X: start.X, Y: start.Y, Z: start.Z},
		harmonica.Vector{X: velocity.X, Y: velocity.Y, Z: velocity.Z},
		harmonica.Vector{X: acceleration.X, Y: acceleration.Y, Z: acceleration.Z},
	)

	steps := int(math.Ceil(duration * float64(fps)))
	keyframes := make([]core.Point3, 0, steps+1)
	keyframes = append(keyframes, start)
	for i := 0; i < steps; i++ {
		p := projectile.Update()
		keyframes = append(keyframes, core.NewVec3(p.X, p.Y, p.Z))
	}

	return &MotionPath{Keyframes: keyframes, Duration: float64(steps) / float64(fps)}, nil
}

// At returns the position at time t, holding the end points outside [0, Duration]
func (m *MotionPath) At(t float64) core.Point3 {
	last := len(m.Keyframes) - 1
	if last <= 0 || t <= 0 || m.Duration <= 0 {
		return m.Keyframes[0]
	}
	if t >= m.Duration {
		return m.Keyframes[last]
	}

	f := t / m.Duration * float64(last)
	i := int(f)
	return m.Keyframes[i].Lerp(m.Keyframes[i+1], f-float64(i))
}

// Bounds returns the box around every position reached during [time0, time1]
func (m *MotionPath) Bounds(time0, time1 float64) core.AABB {
	points := []core.Point3{m.At(time0), m.At(time1)}
	last := len(m.Keyframes) - 1
	if last > 0 && m.Duration > 0 {
		// Interior keyframes are the only places the path can turn
		for i := 1; i < last; i++ {
			kt := float64(i) / float64(last) * m.Duration
			if kt > time0 && kt < time1 {
				points = append(points, m.Keyframes[i])
			}
		}
	}
	return core.NewAABBFromPoints(points...)
}
