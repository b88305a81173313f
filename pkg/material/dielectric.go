package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ReflectanceCurve gives the probability that a ray reflects instead of refracting
type ReflectanceCurve interface {
	Reflectance(cosTheta, refractionRatio float64) float64
}

// Schlick is Schlick's approximation of the Fresnel reflectance
type Schlick struct{}

// Reflectance returns r0 + (1-r0)(1-cosθ)^5
func (Schlick) Reflectance(cosTheta, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	NonEmissive
	Color           core.Color       // Attenuation applied to every bounce
	RefractiveIndex float64          // Index of refraction (e.g., 1.5 for glass)
	Curve           ReflectanceCurve // Optional; nil refracts whenever possible
}

// NewDielectric creates a clear dielectric without a reflectance curve
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{Color: core.NewColor(1, 1, 1), RefractiveIndex: refractiveIndex}
}

// NewGlass creates a clear dielectric that uses Schlick reflectance
func NewGlass(refractiveIndex float64) *Dielectric {
	return NewDielectric(refractiveIndex).WithCurve(Schlick{})
}

// WithColor sets the attenuation color
func (d *Dielectric) WithColor(color core.Color) *Dielectric {
	d.Color = color
	return d
}

// WithCurve sets the reflectance curve
func (d *Dielectric) WithCurve(curve ReflectanceCurve) *Dielectric {
	d.Curve = curve
	return d
}

// Scatter refracts through the surface, or reflects on total internal reflection
// or when the reflectance curve says so
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	ratio := d.RefractiveIndex
	if hit.FrontFace {
		ratio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if ratio*sinTheta > 1.0 || d.reflects(cosTheta, ratio, sampler) {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = refract(unitDirection, hit.Normal, cosTheta, ratio)
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: d.Color,
	}, true
}

func (d *Dielectric) reflects(cosTheta, ratio float64, sampler core.Sampler) bool {
	if d.Curve == nil {
		return false
	}
	return sampler.Get1D() < d.Curve.Reflectance(cosTheta, ratio)
}

// refract bends a unit direction through a surface as r_parallel + r_perpendicular
func refract(unitDirection, normal core.Vec3, cosTheta, ratio float64) core.Vec3 {
	rParallel := unitDirection.Add(normal.Multiply(cosTheta)).Multiply(ratio)
	rPerp := normal.Multiply(-math.Sqrt(math.Abs(1.0 - rParallel.LengthSquared())))
	return rParallel.Add(rPerp)
}
