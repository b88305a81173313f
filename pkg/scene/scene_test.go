package scene

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// assetFree lists the presets that build without external files
var assetFree = []string{"checker", "cornell", "cornell-smoke", "motion-blur", "next-week", "perlin", "simple", "spheres"}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"checker", "cornell", "cornell-smoke", "earth", "mesh",
		"motion-blur", "next-week", "perlin", "simple", "spheres",
	}, Names())

	for _, info := range List() {
		assert.NotEmpty(t, info.Description, info.Name)
	}
}

func TestNew_UnknownScene(t *testing.T) {
	_, err := New("teapot", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestNew_MissingAssets(t *testing.T) {
	for _, name := range []string{"earth", "mesh"} {
		t.Run(name, func(t *testing.T) {
			_, err := New(name, DefaultOptions())
			assert.ErrorIs(t, err, ErrMissingAsset)

			opts := DefaultOptions()
			opts.TexturePath = filepath.Join(t.TempDir(), "missing.png")
			opts.MeshPath = filepath.Join(t.TempDir(), "missing.glb")
			_, err = New(name, opts)
			assert.Error(t, err)
		})
	}
}

func TestPresets_BuildAndRender(t *testing.T) {
	for _, name := range assetFree {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, DefaultOptions())
			require.NoError(t, err)
			require.NotEmpty(t, s.Objects)

			world, err := s.World(core.NewSeededSampler(1))
			require.NoError(t, err)
			assert.Equal(t, len(s.Objects), world.Len())

			config := renderer.RenderConfig{Height: 4, Samples: 1, MaxDepth: 3, Gamma: true, Parallel: true, Workers: 2}
			r, err := renderer.NewRenderer(world, s.Camera, config.WithSeed(1), nil)
			require.NoError(t, err)
			stats, err := r.Render(context.Background(), renderer.NewNullSink())
			require.NoError(t, err)
			assert.Equal(t, 4, stats.RowsWritten)
		})
	}
}

func TestSpheresScene_SeededLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 7

	a, err := NewSpheresScene(opts, false)
	require.NoError(t, err)
	b, err := NewSpheresScene(opts, false)
	require.NoError(t, err)
	require.Equal(t, len(a.Objects), len(b.Objects))
	for i := range a.Objects {
		sa, sb := a.Objects[i].(*geometry.Sphere), b.Objects[i].(*geometry.Sphere)
		assert.Equal(t, sa.Center, sb.Center)
	}

	// Ground, at most 22*22 small spheres and three big ones
	assert.LessOrEqual(t, len(a.Objects), 1+22*22+3)

	clearing := core.NewVec3(4, 0.2, 0)
	for _, obj := range a.Objects[1 : len(a.Objects)-3] {
		sphere := obj.(*geometry.Sphere)
		assert.Equal(t, 0.2, sphere.Radius)
		assert.Greater(t, sphere.Center.Subtract(clearing).Length(), 0.9)
	}
}

func TestMotionBlurScene(t *testing.T) {
	s, err := New("motion-blur", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.CameraConfig.Shutter)

	moving, thrown := 0, 0
	for _, obj := range s.Objects {
		sphere, ok := obj.(*geometry.Sphere)
		if !ok {
			continue
		}
		if sphere.Path != nil {
			thrown++
		}
		if sphere.Velocity != (core.Vec3{}) {
			moving++
			assert.Equal(t, 0.0, sphere.Velocity.X)
			assert.GreaterOrEqual(t, sphere.Velocity.Y, 0.0)
			assert.Less(t, sphere.Velocity.Y, 0.5)
		}
	}
	assert.Equal(t, 1, thrown)
	assert.Greater(t, moving, 0)
}

func TestCornellScene(t *testing.T) {
	s, err := New("cornell", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, s.Objects, 8, "six rects and two boxes")
	assert.Equal(t, 1.0, s.Camera.AspectRatio())
	assert.Equal(t, core.Color{}, s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))))

	world, err := s.World(core.NewSeededSampler(1))
	require.NoError(t, err)

	// Straight up from the floor through the light opening
	hit, ok := world.Hit(core.NewRay(core.NewVec3(278, 1, 278), core.NewVec3(0, 1, 0)), 0.001, 1e9, nil)
	require.True(t, ok)
	assert.InDelta(t, boxSize-2, hit.T, 1e-9)
	light, ok := hit.Material.(*material.DiffuseLight)
	require.True(t, ok)
	assert.Equal(t, 15.0, light.Multiplier)
}

func TestOptions_AspectRatioAndLambertian(t *testing.T) {
	opts := DefaultOptions()
	opts.AspectRatio = 2
	opts.Lambertian = material.LambertianHemisphere

	s, err := New("simple", opts)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Camera.AspectRatio())

	sphere := s.Objects[0].(*geometry.Sphere)
	assert.Equal(t, material.LambertianHemisphere, sphere.Material.(*material.Lambertian).Mode)
}

func TestEarthScene(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 0, G: 0, B: 255, A: 255})
		img.Set(x, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	}
	path := filepath.Join(t.TempDir(), "earth.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	opts := DefaultOptions()
	opts.TexturePath = path
	s, err := New("earth", opts)
	require.NoError(t, err)
	require.Len(t, s.Objects, 1)

	// The north pole samples the top row of the image
	sphere := s.Objects[0].(*geometry.Sphere)
	hit, ok := sphere.Hit(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)), 0.001, 1e9, nil)
	require.True(t, ok)
	albedo := sphere.Material.(*material.Lambertian).Albedo.Value(hit.U, hit.V, hit.Point)
	assert.Equal(t, core.NewColor(0, 0, 1), albedo)
}
