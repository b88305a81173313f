package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Point3 `yaml:"look_from"`
	LookAt        core.Point3 `yaml:"look_at"`
	Up            core.Vec3   `yaml:"up"`
	VFov          float64     `yaml:"vfov"`           // Vertical field of view in degrees
	AspectRatio   float64     `yaml:"aspect_ratio"`   // Width / height
	Aperture      float64     `yaml:"aperture"`       // Lens diameter; 0 is a pinhole
	FocusDistance float64     `yaml:"focus_distance"` // 0 focuses on LookAt
	Shutter       float64     `yaml:"shutter"`        // Rays depart uniformly in [0, Shutter]
}

// DefaultCameraConfig looks down -Z from the origin with a 90° 16:9 pinhole
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0,
		FocusDistance: 1.0,
		Shutter:       0.0,
	}
}

// Validate checks that the settings describe a usable view
func (c CameraConfig) Validate() error {
	switch {
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical fov %g must be in (0, 180)", ErrInvalidCamera, c.VFov)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidCamera, c.AspectRatio)
	case c.Aperture < 0:
		return fmt.Errorf("%w: aperture %g must not be negative", ErrInvalidCamera, c.Aperture)
	case c.FocusDistance < 0:
		return fmt.Errorf("%w: focus distance %g must not be negative", ErrInvalidCamera, c.FocusDistance)
	case c.Shutter < 0:
		return fmt.Errorf("%w: shutter %g must not be negative", ErrInvalidCamera, c.Shutter)
	case c.LookFrom == c.LookAt:
		return fmt.Errorf("%w: look-from and look-at are both %v", ErrInvalidCamera, c.LookFrom)
	case c.LookAt.Subtract(c.LookFrom).Cross(c.Up).NearZero():
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, c.Up)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera builds the view basis and focus-plane viewport from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focus := config.FocusDistance
	if focus == 0 {
		focus = config.LookAt.Subtract(config.LookFrom).Length()
	}

	h := math.Tan(config.VFov * math.Pi / 180 / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w looks forward, u right, v up
	w := config.LookAt.Subtract(config.LookFrom).Normalize()
	u := w.Cross(config.Up).Normalize()
	v := u.Cross(w).Normalize()

	origin := config.LookFrom
	horizontal := u.Multiply(focus * viewportWidth)
	vertical := v.Multiply(focus * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Add(w.Multiply(focus))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the bottom-left corner
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := 0.0
	if c.config.Shutter > 0 {
		time = c.config.Shutter * sampler.Get1D()
	}

	return core.NewRayAt(origin, direction, time)
}

// Config returns the settings the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// AspectRatio returns width / height
func (c *Camera) AspectRatio() float64 {
	return c.config.AspectRatio
}

// Shutter returns the shutter duration
func (c *Camera) Shutter() float64 {
	return c.config.Shutter
}
