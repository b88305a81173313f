package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Checker alternates between two textures in a 3D checkerboard pattern
type Checker struct {
	Odd  Texture
	Even Texture
}

// NewChecker creates a checker from two textures
func NewChecker(odd, even Texture) *Checker {
	return &Checker{Odd: odd, Even: even}
}

// NewCheckerColors creates a checker from two solid colors
func NewCheckerColors(odd, even core.Color) *Checker {
	return NewChecker(NewSolidColor(odd), NewSolidColor(even))
}

// Value picks Odd where sin(10x)*sin(10y)*sin(10z) is negative, Even otherwise
func (c *Checker) Value(u, v float64, p core.Point3) core.Color {
	sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
