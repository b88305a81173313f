package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestNewConstantMedium_InvalidDensity(t *testing.T) {
	for _, density := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := NewConstantMedium(NewSphere(core.Vec3{}, 1, nil), density, core.NewColor(1, 1, 1))
		assert.ErrorIs(t, err, ErrInvalidDensity, "density %g", density)
	}
}

func TestConstantMedium_DenseScattersAtEntry(t *testing.T) {
	medium, err := NewConstantMedium(NewSphere(core.Vec3{}, 1, nil), 1e6, core.NewColor(0.8, 0.8, 0.8))
	require.NoError(t, err)

	sampler := core.NewSeededSampler(5)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	for i := 0; i < 100; i++ {
		hit, ok := medium.Hit(ray, 0.001, math.Inf(1), sampler)
		require.True(t, ok)
		assert.InDelta(t, 4.0, hit.T, 1e-3)
		assert.True(t, hit.FrontFace)
		assert.Equal(t, core.NewVec3(1, 0, 0), hit.Normal)
		assert.IsType(t, &material.Isotropic{}, hit.Material)
	}
}

func TestConstantMedium_ThinRarelyScatters(t *testing.T) {
	medium, err := NewConstantMedium(NewSphere(core.Vec3{}, 1, nil), 1e-9, core.NewColor(1, 1, 1))
	require.NoError(t, err)

	sampler := core.NewSeededSampler(6)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hits := 0
	for i := 0; i < 1000; i++ {
		if _, ok := medium.Hit(ray, 0.001, math.Inf(1), sampler); ok {
			hits++
		}
	}
	assert.Equal(t, 0, hits)
}

func TestConstantMedium_RayStartingInside(t *testing.T) {
	medium, err := NewConstantMedium(NewSphere(core.Vec3{}, 2, nil), 1e6, core.NewColor(1, 1, 1))
	require.NoError(t, err)

	hit, ok := medium.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0.001, math.Inf(1), core.NewSeededSampler(1))
	require.True(t, ok)
	assert.Less(t, hit.T, 0.01, "scatters right after the origin")
	assert.GreaterOrEqual(t, hit.T, 0.001)
}

func TestConstantMedium_MissAndBounds(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 3, 0), 1, nil)
	medium, err := NewConstantMedium(boundary, 1, core.NewColor(1, 1, 1))
	require.NoError(t, err)

	_, ok := medium.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0.001, math.Inf(1), core.NewSeededSampler(1))
	assert.False(t, ok)

	want, _ := boundary.BoundingBox(0, 1)
	got, ok := medium.BoundingBox(0, 1)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
