package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for surfaces and volumes that scatter or emit light
type Material interface {
	// Scatter returns the continuation ray and its attenuation, or false when the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the light given off at a surface point
	Emitted(u, v float64, p core.Point3) core.Color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// NonEmissive provides the black Emitted of materials that give off no light
type NonEmissive struct{}

// Emitted returns black
func (NonEmissive) Emitted(u, v float64, p core.Point3) core.Color {
	return core.Color{}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Surface normal at intersection, always opposing the ray
	T         float64     // Parameter t along the ray
	U, V      float64     // Surface texture coordinates
	FrontFace bool        // Whether the ray hit the outside face
	Material  Material    // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
