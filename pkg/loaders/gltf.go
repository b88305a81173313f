package loaders

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Mesh is a triangle soup read from a model file
type Mesh struct {
	Name      string
	Triangles [][3]core.Point3 // Counterclockwise winding faces the front
}

// LoadGLTFMesh loads every triangle primitive of a glTF or GLB file.
// Node transforms are ignored; positions are taken as stored.
func LoadGLTFMesh(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &Mesh{Name: filepath.Base(path)}
	for _, m := range doc.Meshes {
		if err := mesh.addPrimitives(doc, m); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("%s contains no triangles", path)
	}
	return mesh, nil
}

func (mesh *Mesh) addPrimitives(doc *gltf.Document, m *gltf.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines and points have no surface
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if max(a, b, c) >= len(positions) {
				return fmt.Errorf("index %d out of range for %d positions", max(a, b, c), len(positions))
			}
			mesh.Triangles = append(mesh.Triangles, [3]core.Point3{positions[a], positions[b], positions[c]})
		}
	}
	return nil
}

// Bounds returns the box around every vertex
func (mesh *Mesh) Bounds() core.AABB {
	points := make([]core.Point3, 0, 3*len(mesh.Triangles))
	for _, tri := range mesh.Triangles {
		points = append(points, tri[:]...)
	}
	return core.NewAABBFromPoints(points...)
}

// Fit scales the mesh uniformly so its largest extent equals size and moves
// the center of its box to center
func (mesh *Mesh) Fit(center core.Point3, size float64) *Mesh {
	bounds := mesh.Bounds()
	extent := bounds.Size()
	largest := max(extent.X, extent.Y, extent.Z)
	scale := 1.0
	if largest > 0 {
		scale = size / largest
	}
	mid := bounds.Center()

	fitted := &Mesh{Name: mesh.Name, Triangles: make([][3]core.Point3, len(mesh.Triangles))}
	for i, tri := range mesh.Triangles {
		for j, p := range tri {
			fitted.Triangles[i][j] = p.Subtract(mid).Multiply(scale).Add(center)
		}
	}
	return fitted
}

// Hittables converts every triangle into a geometry.Triangle sharing mat.
// Triangles with zero area are dropped.
func (mesh *Mesh) Hittables(mat material.Material) []geometry.Hittable {
	objects := make([]geometry.Hittable, 0, len(mesh.Triangles))
	for _, tri := range mesh.Triangles {
		if tri[1].Subtract(tri[0]).Cross(tri[2].Subtract(tri[0])).NearZero() {
			continue
		}
		objects = append(objects, geometry.NewTriangle(tri[0], tri[1], tri[2], mat))
	}
	return objects
}

// readPositions reads a float VEC3 accessor
func readPositions(doc *gltf.Document, accessorIdx int) ([]core.Point3, error) {
	accessor, data, stride, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	result := make([]core.Point3, accessor.Count)
	for i := range result {
		offset := i * stride
		result[i] = core.NewVec3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads an unsigned SCALAR accessor
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	_, data, stride, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := i * stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorAt returns the accessor at accessorIdx or an error when the file
// refers to one that does not exist
func accessorAt(doc *gltf.Document, accessorIdx int) (*gltf.Accessor, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) || doc.Accessors[accessorIdx] == nil {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	return doc.Accessors[accessorIdx], nil
}

// accessorBytes returns the bytes an accessor covers, starting at its first
// element, and the distance between elements
func accessorBytes(doc *gltf.Document, accessorIdx, elementSize int) (*gltf.Accessor, []byte, int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, nil, 0, err
	}
	if accessor.BufferView == nil {
		return nil, nil, 0, fmt.Errorf("accessor %d has no buffer view", accessorIdx)
	}

	viewIdx := *accessor.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) || doc.BufferViews[viewIdx] == nil {
		return nil, nil, 0, fmt.Errorf("accessor %d: buffer view %d out of range", accessorIdx, viewIdx)
	}
	view := doc.BufferViews[viewIdx]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) || doc.Buffers[view.Buffer] == nil {
		return nil, nil, 0, fmt.Errorf("buffer view %d: buffer %d out of range", viewIdx, view.Buffer)
	}
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elementSize
	}
	if stride < elementSize {
		return nil, nil, 0, fmt.Errorf("buffer view %d: stride %d is smaller than an element", viewIdx, stride)
	}

	start := view.ByteOffset + accessor.ByteOffset
	if start < 0 || accessor.Count < 0 {
		return nil, nil, 0, fmt.Errorf("accessor %d has a negative offset or count", accessorIdx)
	}
	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elementSize
	}
	if end > len(buffer.Data) {
		return nil, nil, 0, fmt.Errorf("accessor %d reads past the end of buffer %d", accessorIdx, view.Buffer)
	}
	return accessor, buffer.Data[start:end], stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
