package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is a node of a bounding volume hierarchy. A leaf holds a single
// object in Left; an empty hierarchy has neither child and never hits.
type BVHNode struct {
	Box   core.AABB
	Left  Hittable
	Right Hittable
}

// bvhEntry pairs an object with its box so each box is computed once
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a hierarchy over objects for rays departing in [time0, time1].
// Each split sorts along a randomly chosen axis and halves the list.
// Every object must have a bounding box.
func NewBVH(objects []Hittable, time0, time1 float64, sampler core.Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return &BVHNode{}, nil
	}

	// Copy so sorting leaves the caller's slice untouched
	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("bvh object %d (%T): %w", i, object, ErrNoBoundingBox)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return buildBVH(entries, sampler), nil
}

func buildBVH(entries []bvhEntry, sampler core.Sampler) *BVHNode {
	switch len(entries) {
	case 1:
		return &BVHNode{Box: entries[0].box, Left: entries[0].object}
	case 2:
		return &BVHNode{
			Box:   entries[0].box.Union(entries[1].box),
			Left:  entries[0].object,
			Right: entries[1].object,
		}
	}

	axis := min(int(3*sampler.Get1D()), 2)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].box.Min.Axis(axis) < entries[j].box.Min.Axis(axis)
	})

	mid := len(entries) / 2
	left := buildBVH(entries[:mid], sampler)
	right := buildBVH(entries[mid:], sampler)

	return &BVHNode{
		Box:   left.Box.Union(right.Box),
		Left:  left,
		Right: right,
	}
}

// Hit tests the node's box, then the left child, then the right child limited
// to anything nearer than the left hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if n.Left == nil || !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)

	if n.Right != nil {
		upper := tMax
		if hitLeft {
			upper = leftHit.T
		}
		if rightHit, hitRight := n.Right.Hit(ray, tMin, upper, sampler); hitRight {
			return rightHit, true
		}
	}

	return leftHit, hitLeft
}

// BoundingBox returns the node's box; an empty hierarchy has none
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, n.Left != nil
}

// Depth returns the number of levels below and including this node
func (n *BVHNode) Depth() int {
	depth := 0
	for _, child := range []Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			depth = max(depth, node.Depth())
		}
	}
	return depth + 1
}
