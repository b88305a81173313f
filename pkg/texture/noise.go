package texture

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SmoothMode controls how lattice values are blended
type SmoothMode int

const (
	// SmoothNone samples the nearest lattice cell, giving blocky noise
	SmoothNone SmoothMode = iota
	// SmoothLinear trilinearly interpolates the eight surrounding lattice values
	SmoothLinear
	// SmoothHermite applies a hermite cubic fade before interpolating
	SmoothHermite
)

// NoiseMode selects how the noise value becomes a color
type NoiseMode int

const (
	// NoisePlain returns the scaled noise value
	NoisePlain NoiseMode = iota
	// NoiseTurbulence sums octaves of noise
	NoiseTurbulence
	// NoiseMarble phase-shifts a sine wave along z with turbulence
	NoiseMarble
)

// DefaultPointCount is the lattice size used by NewDefaultPerlin
const DefaultPointCount = 256

// Perlin is a lattice noise texture
type Perlin struct {
	Mode   NoiseMode
	Smooth SmoothMode
	Scale  float64
	Depth  int // Octaves for turbulence and marble

	pointCount int
	vector     bool
	floats     []float64
	vectors    []core.Vec3
	permX      []int
	permY      []int
	permZ      []int
}

// NewPerlin builds a noise lattice of pointCount entries, which must be a power of two.
// With vector set, each lattice point holds a random unit gradient instead of a scalar.
func NewPerlin(pointCount int, vector bool, sampler core.Sampler) (*Perlin, error) {
	if pointCount <= 0 || pointCount&(pointCount-1) != 0 {
		return nil, fmt.Errorf("perlin point count %d must be a positive power of two", pointCount)
	}

	p := &Perlin{
		Mode:       NoisePlain,
		Smooth:     SmoothHermite,
		Scale:      1.0,
		Depth:      7,
		pointCount: pointCount,
		vector:     vector,
	}

	if vector {
		p.vectors = make([]core.Vec3, pointCount)
		for i := range p.vectors {
			p.vectors[i] = core.RandomUnitVector(sampler)
		}
	} else {
		p.floats = make([]float64, pointCount)
		for i := range p.floats {
			p.floats[i] = sampler.Get1D()
		}
	}

	p.permX = permutation(pointCount, sampler)
	p.permY = permutation(pointCount, sampler)
	p.permZ = permutation(pointCount, sampler)
	return p, nil
}

// NewDefaultPerlin creates a gradient noise texture with the default lattice size
func NewDefaultPerlin(sampler core.Sampler) *Perlin {
	p, _ := NewPerlin(DefaultPointCount, true, sampler)
	return p
}

// WithScale sets the frequency of the noise
func (p *Perlin) WithScale(scale float64) *Perlin {
	p.Scale = scale
	return p
}

// WithSmooth sets the interpolation mode
func (p *Perlin) WithSmooth(smooth SmoothMode) *Perlin {
	p.Smooth = smooth
	return p
}

// WithTurbulence switches to turbulence with the given number of octaves
func (p *Perlin) WithTurbulence(depth int) *Perlin {
	p.Mode = NoiseTurbulence
	p.Depth = depth
	return p
}

// WithMarble switches to the marble pattern with the given number of octaves
func (p *Perlin) WithMarble(depth int) *Perlin {
	p.Mode = NoiseMarble
	p.Depth = depth
	return p
}

// Value returns white scaled by the noise pattern
func (p *Perlin) Value(u, v float64, point core.Point3) core.Color {
	var value float64
	switch p.Mode {
	case NoiseTurbulence:
		value = p.Turbulence(point, p.Depth)
	case NoiseMarble:
		value = 0.5 * (1 + math.Sin(p.Scale*point.Z+10*p.Turbulence(point, p.Depth)))
	default:
		value = p.Noise(point.Multiply(p.Scale))
		if p.vector {
			// Gradient noise lies in [-1, 1]
			value = 0.5 * (value + 1.0)
		}
	}
	return core.NewColor(1, 1, 1).Multiply(value)
}

// Turbulence sums depth octaves of noise, halving the weight and doubling the frequency each time
func (p *Perlin) Turbulence(point core.Point3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// Noise evaluates the raw lattice noise at a point
func (p *Perlin) Noise(point core.Point3) float64 {
	mask := p.pointCount - 1

	if p.Smooth == SmoothNone {
		i := int(4*point.X) & mask
		j := int(4*point.Y) & mask
		k := int(4*point.Z) & mask
		index := p.permX[i] ^ p.permY[j] ^ p.permZ[k]
		if p.vector {
			return p.vectors[index].X
		}
		return p.floats[index]
	}

	fi, fj, fk := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fi, point.Y-fj, point.Z-fk
	i, j, k := int(fi), int(fj), int(fk)

	uu, vv, ww := u, v, w
	if p.Smooth == SmoothHermite {
		uu = u * u * (3 - 2*u)
		vv = v * v * (3 - 2*v)
		ww = w * w * (3 - 2*w)
	}

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				index := p.permX[(i+di)&mask] ^ p.permY[(j+dj)&mask] ^ p.permZ[(k+dk)&mask]

				var corner float64
				if p.vector {
					offset := core.NewVec3(u-float64(di), v-float64(dj), w-float64(dk))
					corner = p.vectors[index].Dot(offset)
				} else {
					corner = p.floats[index]
				}

				accum += weight(di, uu) * weight(dj, vv) * weight(dk, ww) * corner
			}
		}
	}
	return accum
}

// weight is the trilinear blend factor for a lattice corner offset of 0 or 1
func weight(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}

// permutation returns a Fisher-Yates shuffle of [0, n)
func permutation(n int, sampler core.Sampler) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(sampler.Get1D() * float64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
