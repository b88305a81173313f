package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// DiffuseLight emits light and never scatters
type DiffuseLight struct {
	Emit       texture.Texture
	Multiplier float64
}

// NewDiffuseLight creates a light with a solid emission color
func NewDiffuseLight(emit core.Color) *DiffuseLight {
	return NewDiffuseLightTexture(texture.NewSolidColor(emit))
}

// NewDiffuseLightTexture creates a light whose emission comes from a texture
func NewDiffuseLightTexture(emit texture.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit, Multiplier: 1.0}
}

// WithMultiplier scales the emitted intensity
func (d *DiffuseLight) WithMultiplier(multiplier float64) *DiffuseLight {
	d.Multiplier = multiplier
	return d
}

// Scatter never scatters
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the texture color times the multiplier
func (d *DiffuseLight) Emitted(u, v float64, p core.Point3) core.Color {
	return d.Emit.Value(u, v, p).Multiply(d.Multiplier)
}
