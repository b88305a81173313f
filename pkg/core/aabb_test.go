package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"Straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, math.Inf(1), true},
		{"Misses to the side", NewRay(NewVec3(3, 0, -5), NewVec3(0, 0, 1)), 0, math.Inf(1), false},
		{"Pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), 0, math.Inf(1), false},
		{"Interval ends before box", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, 3, false},
		{"Origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), 0, math.Inf(1), true},
		{"Diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), 0, math.Inf(1), true},
		// Zero direction components divide to infinities and need no special branch
		{"Parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), 0, math.Inf(1), true},
		{"Parallel outside slab", NewRay(NewVec3(2, 0.5, -5), NewVec3(0, 0, 1)), 0, math.Inf(1), false},
		{"Negative direction", NewRay(NewVec3(0, 5, 0), NewVec3(0, -1, 0)), 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, box.Hit(tt.ray, tt.tMin, tt.tMax))
		})
	}
}

func TestAABB_UnionContainsBoth(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	randomBox := func() AABB {
		a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		return NewAABBFromPoints(a, b)
	}

	for i := 0; i < 200; i++ {
		a, b := randomBox(), randomBox()
		u := a.Union(b)
		assert.True(t, u.Contains(a), "union %v must contain %v", u, a)
		assert.True(t, u.Contains(b), "union %v must contain %v", u, b)
	}
}

func TestAABB_Corners(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	corners := box.Corners()
	assert.Equal(t, box, NewAABBFromPoints(corners[:]...))
	assert.Contains(t, corners, NewVec3(1, 2, 3))
	assert.Contains(t, corners, NewVec3(0, 2, 0))
}

func TestAABB_Pad(t *testing.T) {
	flat := NewAABB(NewVec3(0, 5, 0), NewVec3(1, 5, 1))
	padded := flat.Pad(0.0002)

	assert.InDelta(t, 5-0.0001, padded.Min.Y, 1e-12)
	assert.InDelta(t, 5+0.0001, padded.Max.Y, 1e-12)
	assert.Equal(t, 0.0, padded.Min.X, "wide axes are untouched")
}

func TestAABB_Translate(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).Translate(NewVec3(1, 2, 3))
	assert.Equal(t, NewVec3(1, 2, 3), box.Min)
	assert.Equal(t, NewVec3(2, 3, 4), box.Max)
}
