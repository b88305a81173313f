// Package texture provides spatially varying colors for materials.
package texture

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture maps a surface coordinate and world position to a color.
// UV is used by image textures, the point by procedural textures.
type Texture interface {
	Value(u, v float64, p core.Point3) core.Color
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Point3) core.Color {
	return s.Color
}
