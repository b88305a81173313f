package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// LambertianMode selects how diffuse bounce directions are drawn
type LambertianMode int

const (
	// LambertianTrue offsets the normal by a random unit vector, giving a cosine distribution
	LambertianTrue LambertianMode = iota
	// LambertianApproximate offsets the normal by a point inside the unit sphere
	LambertianApproximate
	// LambertianHemisphere picks a uniform direction on the normal's hemisphere
	LambertianHemisphere
)

// String returns the mode name used in config files and flags
func (m LambertianMode) String() string {
	switch m {
	case LambertianApproximate:
		return "approximate"
	case LambertianHemisphere:
		return "hemisphere"
	default:
		return "true"
	}
}

// ParseLambertianMode parses a mode name
func ParseLambertianMode(name string) (LambertianMode, error) {
	switch strings.ToLower(name) {
	case "", "true", "cosine":
		return LambertianTrue, nil
	case "approximate", "approx":
		return LambertianApproximate, nil
	case "hemisphere":
		return LambertianHemisphere, nil
	}
	return LambertianTrue, fmt.Errorf("unknown lambertian mode %q", name)
}

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	NonEmissive
	Albedo texture.Texture
	Mode   LambertianMode
}

// NewLambertian creates a diffuse material with a solid color
func NewLambertian(albedo core.Color) *Lambertian {
	return NewLambertianTexture(texture.NewSolidColor(albedo))
}

// NewLambertianTexture creates a diffuse material whose albedo comes from a texture
func NewLambertianTexture(albedo texture.Texture) *Lambertian {
	return &Lambertian{Albedo: albedo, Mode: LambertianTrue}
}

// WithMode sets the bounce sampling strategy
func (l *Lambertian) WithMode(mode LambertianMode) *Lambertian {
	l.Mode = mode
	return l
}

// Scatter always scatters, attenuating by the albedo at the hit point
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	var direction core.Vec3
	switch l.Mode {
	case LambertianApproximate:
		direction = hit.Normal.Add(core.RandomInUnitSphere(sampler))
	case LambertianHemisphere:
		direction = core.RandomOnHemisphere(hit.Normal, sampler)
	default:
		direction = hit.Normal.Add(core.RandomUnitVector(sampler))
	}

	// The offset can cancel the normal exactly
	if direction.NearZero() {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: l.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
