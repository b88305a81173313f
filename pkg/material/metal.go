package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	NonEmissive
	Albedo texture.Texture // Metal color
	Fuzz   float64         // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material; fuzz is folded into [0, 1]
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	return NewMetalTexture(texture.NewSolidColor(albedo), fuzz)
}

// NewMetalTexture creates a metal whose color comes from a texture
func NewMetalTexture(albedo texture.Texture, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: math.Min(math.Abs(fuzz), 1.0)}
}

// Scatter reflects the ray, perturbed by fuzz; rays pushed below the surface are absorbed
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	result := ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, reflected, rayIn.Time),
		Attenuation: m.Albedo.Value(hit.U, hit.V, hit.Point),
	}
	return result, reflected.Dot(hit.Normal) > 0
}
